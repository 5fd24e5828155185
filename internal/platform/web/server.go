// Package web serves a read/poke HTTP inspector for a running board.
package web

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/ledsnake/internal/machine"
	"github.com/vovakirdan/ledsnake/internal/periph"
	"github.com/vovakirdan/ledsnake/internal/storage"
)

const (
	defaultScale = 8
	maxRunsLimit = 100
)

// Server exposes machine state, the LED frame and run history over HTTP,
// and accepts D-pad and restart input.
type Server struct {
	machine *machine.Machine
	store   *storage.Store
	logger  *log.Logger
	router  *gin.Engine
}

// NewServer builds the router. A nil store makes the run endpoints
// answer 503.
func NewServer(m *machine.Machine, store *storage.Store, logger *log.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		machine: m,
		store:   store,
		logger:  logger,
		router:  gin.New(),
	}
	s.router.Use(gin.Recovery(), s.requestLogger())

	s.router.GET("/healthz", Healthz())
	s.router.GET("/state", StateHandler(m))
	s.router.GET("/frame.png", FramePNGHandler(m))
	s.router.GET("/frame.txt", FrameTextHandler(m))
	s.router.POST("/input/:button", InputHandler(m))
	s.router.GET("/runs", RunsHandler(store))
	s.router.GET("/stats", StatsHandler(store))

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP inspector", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("http",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"took", time.Since(start),
		)
	}
}

// Healthz reports liveness.
func Healthz() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// StateHandler returns the engine snapshot.
func StateHandler(m *machine.Machine) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, m.Snapshot())
	}
}

// FramePNGHandler renders the LED matrix as a PNG. ?scale sets the pixel
// size of one LED.
func FramePNGHandler(m *machine.Machine) gin.HandlerFunc {
	return func(c *gin.Context) {
		scale := defaultScale
		if v := c.Query("scale"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "scale must be a positive integer"})
				return
			}
			scale = n
		}

		var buf bytes.Buffer
		if err := periph.EncodePNG(&buf, m.Frame(), scale); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to render frame"})
			return
		}
		c.Data(http.StatusOK, "image/png", buf.Bytes())
	}
}

// FrameTextHandler returns the LED matrix as text, one glyph per cell.
func FrameTextHandler(m *machine.Machine) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, m.Frame().String())
	}
}

// InputHandler presses a D-pad button for one tick, or pulses the restart
// switch for "restart".
func InputHandler(m *machine.Machine) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("button")
		if name == "restart" {
			m.PressRestart()
			c.JSON(http.StatusAccepted, gin.H{"input": name})
			return
		}

		btn, ok := periph.ParseButton(name)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "button must be up, down, left, right or restart"})
			return
		}
		m.Press(btn)
		c.JSON(http.StatusAccepted, gin.H{"input": name})
	}
}

type runJSON struct {
	ID        string    `json:"id"`
	Seed      uint32    `json:"seed"`
	Apples    int       `json:"apples"`
	Length    int       `json:"length"`
	Ticks     uint64    `json:"ticks"`
	Reason    string    `json:"reason"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
}

// RunsHandler lists stored runs. ?order=top sorts by apples, otherwise the
// most recent come first. ?limit caps the count.
func RunsHandler(store *storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "run history is disabled"})
			return
		}

		limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
		if err != nil || limit <= 0 || limit > maxRunsLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
			return
		}

		var runs []storage.Run
		if c.Query("order") == "top" {
			runs, err = store.TopRuns(limit)
		} else {
			runs, err = store.RecentRuns(limit)
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load runs"})
			return
		}

		out := make([]runJSON, len(runs))
		for i, r := range runs {
			out[i] = runJSON{
				ID:        r.ID,
				Seed:      r.Seed,
				Apples:    r.Apples,
				Length:    r.Length,
				Ticks:     r.Ticks,
				Reason:    r.Reason,
				StartedAt: r.StartedAt.UTC(),
				EndedAt:   r.EndedAt.UTC(),
			}
		}
		c.JSON(http.StatusOK, out)
	}
}

// StatsHandler returns aggregated run statistics.
func StatsHandler(store *storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "run history is disabled"})
			return
		}
		stats, err := store.GetStats()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"runs":         stats.Runs,
			"high_score":   stats.HighScore,
			"avg_apples":   stats.AvgApples,
			"total_apples": stats.TotalApples,
			"total_ticks":  stats.TotalTicks,
			"by_reason":    stats.ByReason,
		})
	}
}
