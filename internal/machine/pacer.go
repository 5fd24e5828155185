package machine

import (
	"context"
	"time"
)

// Pacer holds the loop to a fixed tick rate.
type Pacer interface {
	// Wait blocks until the next tick is due or ctx is done.
	Wait(ctx context.Context) error
	Stop()
}

// TickerPacer sleeps until the next tick boundary. Slow iterations do not
// accumulate: missed ticks are dropped by the underlying ticker.
type TickerPacer struct {
	ticker *time.Ticker
}

// NewTickerPacer creates a pacer running at rate ticks per second.
func NewTickerPacer(rate int) *TickerPacer {
	if rate <= 0 {
		rate = 1
	}
	return &TickerPacer{ticker: time.NewTicker(time.Second / time.Duration(rate))}
}

func (p *TickerPacer) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ticker.C:
		return nil
	}
}

func (p *TickerPacer) Stop() {
	p.ticker.Stop()
}

// NopPacer never waits. Used by headless runs and tests, and when the
// caller already paces ticks (the terminal UI's tick command).
type NopPacer struct{}

func (NopPacer) Wait(ctx context.Context) error {
	return ctx.Err()
}

func (NopPacer) Stop() {}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
