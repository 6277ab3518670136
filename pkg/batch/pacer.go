package batch

import (
	"context"
	"time"
)

// PacingInterval is the fixed pause between two rows. It keeps the request cadence
// within what the generation service accepts and is not user configurable.
const PacingInterval = 3 * time.Second

// Pacer is called between row n and row n+1 of a table, never after the last row.
type Pacer interface {
	Wait(ctx context.Context, completedRow int) error
}

// FixedPacer sleeps for Interval, returning early when ctx is canceled.
type FixedPacer struct {
	Interval time.Duration
}

func NewFixedPacer() FixedPacer {
	return FixedPacer{Interval: PacingInterval}
}

func (p FixedPacer) Wait(ctx context.Context, _ int) error {
	timer := time.NewTimer(p.Interval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// PacerFunc adapts a function to Pacer.
type PacerFunc func(ctx context.Context, completedRow int) error

func (f PacerFunc) Wait(ctx context.Context, completedRow int) error {
	return f(ctx, completedRow)
}
