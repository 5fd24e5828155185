package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/ledsnake/internal/machine"
	"github.com/vovakirdan/ledsnake/internal/periph"
)

// screenshotScale is the PNG pixel size of one LED.
const screenshotScale = 16

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	gameOverStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	switchOnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model is the Bubble Tea model that plays the board in a terminal.
// Key presses write board registers; each TickMsg runs one machine tick.
type Model struct {
	machine       *machine.Machine
	board         *periph.Board
	keys          KeyMap
	help          help.Model
	tickRate      int
	screenshotDir string
	width         int
	height        int
	latched       bool   // Restart switch is latched on
	message       string // Last notice, e.g. a saved screenshot
	quitting      bool
}

// NewModel creates a model driving m at tickRate ticks per second.
// The machine must not pace its own ticks.
func NewModel(m *machine.Machine, tickRate int) Model {
	dir := ""
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".ledsnake", "screenshots")
	}

	return Model{
		machine:       m,
		board:         m.Board(),
		keys:          DefaultKeyMap(),
		help:          help.New(),
		tickRate:      tickRate,
		screenshotDir: dir,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if btn, ok := m.keys.Button(msg); ok {
		m.machine.Press(btn)
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Restart):
		if !m.latched {
			m.machine.PressRestart()
		}

	case key.Matches(msg, m.keys.Latch):
		m.latched = m.board.Switches.Toggle(periph.RestartSwitch)

	case key.Matches(msg, m.keys.Screenshot):
		path, err := m.saveScreenshot()
		if err != nil {
			m.message = "screenshot failed: " + err.Error()
		} else {
			m.message = "saved " + path
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// handleTick runs one machine tick and schedules the next.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if err := m.machine.Tick(context.Background()); err != nil {
		m.message = "tick failed: " + err.Error()
	}
	return m, tickCmd(m.tickRate)
}

// saveScreenshot writes the current LED frame as a PNG.
func (m *Model) saveScreenshot() (string, error) {
	if m.screenshotDir == "" {
		return "", fmt.Errorf("no screenshot directory")
	}
	if err := os.MkdirAll(m.screenshotDir, 0o755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.screenshotDir, fmt.Sprintf("snake_%s.png", timestamp))

	if err := periph.SaveImage(path, m.machine.Frame(), screenshotScale); err != nil {
		return "", err
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	frame := m.machine.Frame()
	if m.width > 0 && (m.width < frame.Width()*cellWidth || m.height < frame.Height()+4) {
		return fmt.Sprintf("Terminal too small: need %dx%d, have %dx%d",
			frame.Width()*cellWidth, frame.Height()+4, m.width, m.height)
	}

	var b strings.Builder
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(RenderFrame(frame))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	if m.message != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.message))
	}
	return b.String()
}

func (m Model) statusLine() string {
	snap := m.machine.Snapshot()

	parts := []string{
		titleStyle.Render("LED SNAKE"),
		statusStyle.Render(fmt.Sprintf("apples %d  length %d  tick %d", snap.Score, snap.Length, snap.Tick)),
	}
	if m.board.Switches.Bit(periph.RestartSwitch) {
		parts = append(parts, switchOnStyle.Render("SW0"))
	}
	if snap.State == "game_over" {
		parts = append(parts, gameOverStyle.Render(fmt.Sprintf("GAME OVER (%s) press r", snap.Reason)))
	}
	return strings.Join(parts, "  ")
}

// Run starts the Bubble Tea program for m.
func Run(m *machine.Machine, tickRate int) error {
	p := tea.NewProgram(
		NewModel(m, tickRate),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
