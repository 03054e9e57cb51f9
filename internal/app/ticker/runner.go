package ticker

import (
	"context"
	"log/slog"
	"time"

	"idleodyssey/internal/app/ports"
	"idleodyssey/internal/domain/idle"
)

const (
	DefaultInterval = 100 * time.Millisecond
	DefaultMaxFrame = 250 * time.Millisecond
)

// Runner drives Engine.Tick through the session at a fixed interval. Each
// frame delta is clamped to MaxFrame before it reaches the engine.
type Runner struct {
	Session  ports.EngineSession
	Metrics  ports.CommandMetrics
	Logger   *slog.Logger
	Interval time.Duration
	MaxFrame time.Duration
	Now      func() time.Time
}

// Run blocks until ctx is cancelled. Session errors are logged and the loop
// keeps going.
func (r Runner) Run(ctx context.Context) error {
	interval := r.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	log := r.logger()
	log.Info("ticker started", "interval", interval, "max_frame", r.maxFrame())

	t := time.NewTicker(interval)
	defer t.Stop()

	last := r.now()
	for {
		select {
		case <-ctx.Done():
			log.Info("ticker stopped")
			return nil
		case <-t.C:
			now := r.now()
			if _, err := r.Step(ctx, now.Sub(last)); err != nil {
				log.Warn("tick failed", "err", err)
			}
			last = now
		}
	}
}

// Step runs a single frame with the given raw delta.
func (r Runner) Step(ctx context.Context, dt time.Duration) (idle.TickReport, error) {
	frame := ClampFrame(dt, r.maxFrame())
	var report idle.TickReport
	err := r.Session.Do(ctx, func(e *idle.Engine) error {
		report = e.Tick(frame.Seconds())
		return nil
	})
	if err != nil {
		return idle.TickReport{}, err
	}
	if report.Completions > 0 {
		r.logger().Debug("gather completed",
			"node_id", report.NodeID,
			"completions", report.Completions,
			"xp", report.XP,
			"rewards", report.Rewards,
		)
		if r.Metrics != nil {
			r.Metrics.RecordTick(report.Completions)
		}
	}
	if len(report.Pruned) > 0 {
		r.logger().Debug("effects expired", "ids", report.Pruned)
	}
	return report, nil
}

func ClampFrame(dt, limit time.Duration) time.Duration {
	if dt < 0 {
		return 0
	}
	if limit > 0 && dt > limit {
		return limit
	}
	return dt
}

func (r Runner) maxFrame() time.Duration {
	if r.MaxFrame <= 0 {
		return DefaultMaxFrame
	}
	return r.MaxFrame
}

func (r Runner) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

func (r Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}
