package engine

import (
	"context"
	"log/slog"
	"time"
)

// StopReason says why Driver.Run returned
type StopReason string

const (
	StopCanceled       StopReason = "canceled"
	StopMaxGenerations StopReason = "max generations reached"
	StopStuck          StopReason = "stuck"
	StopRequested      StopReason = "requested"
)

// Driver steps a Game on a fixed interval
type Driver struct {
	Game *Game
	// Interval between steps. Zero steps as fast as possible.
	Interval time.Duration
	// MaxGenerations stops the loop after that many steps, counted across
	// restarts done by AfterStep. Zero means no limit.
	MaxGenerations int
	// StopWhenStuck stops the loop after a step reports stuck.
	StopWhenStuck bool
	// AfterStep runs after every step; returning false stops the loop.
	AfterStep func(stuck bool) bool
	Logger    *slog.Logger
}

// Run steps until ctx is canceled or a stop condition is met
func (d *Driver) Run(ctx context.Context) (StopReason, error) {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var tick <-chan time.Time
	if d.Interval > 0 {
		ticker := time.NewTicker(d.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	steps := 0
	for {
		if tick != nil {
			select {
			case <-ctx.Done():
				return StopCanceled, ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return StopCanceled, err
		}

		stuck := d.Game.Step()
		steps++
		generation := d.Game.Generation()

		if d.AfterStep != nil && !d.AfterStep(stuck) {
			logger.Debug("driver stopped by caller", "generation", generation)
			return StopRequested, nil
		}
		if d.MaxGenerations > 0 && steps >= d.MaxGenerations {
			logger.Info("reached maximum generations", "steps", steps)
			return StopMaxGenerations, nil
		}
		// AfterStep may have restarted the game, which clears stuck
		if stuck && d.StopWhenStuck && d.Game.IsStuck() {
			logger.Info("pattern is stuck", "generation", generation)
			return StopStuck, nil
		}
	}
}
