package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Locker grants one instance at a time the right to run a job.
type Locker interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// Recorder receives one observation per run.
type Recorder interface {
	ObserveDuration(job string, d time.Duration)
	IncSuccess(job string)
	IncFailure(job string)
}

// runner wraps a job body with the optional lock, timing and logging.
type runner struct {
	name    string
	lock    Locker
	metrics Recorder
	logger  *slog.Logger
}

// run returns false when another instance held the lock.
func (r runner) run(ctx context.Context, body func(ctx context.Context) error) (bool, error) {
	if r.lock != nil {
		acquired, err := r.lock.Acquire(ctx)
		if err != nil {
			r.recordFailure()
			return false, fmt.Errorf("acquire %s lock: %w", r.name, err)
		}
		if !acquired {
			r.logger.DebugContext(ctx, "Another instance holds the lock, skipping run")
			return false, nil
		}
		defer func() {
			if err := r.lock.Release(ctx); err != nil {
				r.logger.WarnContext(ctx, "Failed to release job lock", "error", err)
			}
		}()
	}

	start := time.Now()
	err := body(ctx)
	if r.metrics != nil {
		r.metrics.ObserveDuration(r.name, time.Since(start))
	}
	if err != nil {
		r.recordFailure()
		return true, err
	}
	if r.metrics != nil {
		r.metrics.IncSuccess(r.name)
	}
	return true, nil
}

func (r runner) recordFailure() {
	if r.metrics != nil {
		r.metrics.IncFailure(r.name)
	}
}
