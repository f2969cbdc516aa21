package sim

import (
	"context"
	"time"
)

// Clock paces the frame loop. Wait blocks until the next frame is due or
// ctx is done.
type Clock interface {
	Wait(ctx context.Context) error
}

// TickerClock delivers frames at a fixed wall-clock rate.
type TickerClock struct {
	ticker *time.Ticker
}

func NewTickerClock(fps int) *TickerClock {
	if fps <= 0 {
		fps = 60
	}
	return &TickerClock{ticker: time.NewTicker(time.Second / time.Duration(fps))}
}

func (c *TickerClock) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.ticker.C:
		return nil
	}
}

func (c *TickerClock) Stop() { c.ticker.Stop() }

// ManualClock never blocks; frames are as fast as the loop can take them.
// It counts how many frames were handed out.
type ManualClock struct {
	Frames int
}

func (c *ManualClock) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.Frames++
	return nil
}
