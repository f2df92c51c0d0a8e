// Package publisher runs the background job that hands due schedules to a
// dispatcher and records the outcome.
package publisher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/rpggio/cadence/internal/domain/schedule"
)

// DefaultSpec runs a pass every minute.
const DefaultSpec = "@every 1m"

// DefaultBatchSize caps how many due schedules one pass handles.
const DefaultBatchSize = 100

// Dispatcher delivers one schedule to its platforms.
type Dispatcher interface {
	Dispatch(ctx context.Context, sched schedule.Schedule) error
}

// ScheduleService defines the schedule operations the publisher needs.
type ScheduleService interface {
	Due(ctx context.Context, now time.Time, limit int) ([]schedule.Schedule, error)
	MarkPosted(ctx context.Context, userID, id string, at time.Time) (*schedule.Schedule, error)
	MarkFailed(ctx context.Context, userID, id, reason string, at time.Time) (*schedule.Schedule, error)
}

// Options configures a Publisher. Zero values select the defaults.
type Options struct {
	Spec      string
	BatchSize int
	Logger    *slog.Logger
	Now       func() time.Time
}

// Result summarizes one pass.
type Result struct {
	Posted int `json:"posted"`
	Failed int `json:"failed"`
}

// Publisher periodically publishes due schedules.
type Publisher struct {
	schedules  ScheduleService
	dispatcher Dispatcher
	spec       string
	batchSize  int
	logger     *slog.Logger
	now        func() time.Time

	mu   sync.Mutex
	cron *cron.Cron

	// pass serializes RunOnce between cron ticks and manual calls.
	pass sync.Mutex
}

// New creates a publisher. Start must be called to schedule passes.
func New(schedules ScheduleService, dispatcher Dispatcher, opts Options) *Publisher {
	p := &Publisher{
		schedules:  schedules,
		dispatcher: dispatcher,
		spec:       opts.Spec,
		batchSize:  opts.BatchSize,
		logger:     opts.Logger,
		now:        opts.Now,
	}
	if p.spec == "" {
		p.spec = DefaultSpec
	}
	if p.batchSize <= 0 {
		p.batchSize = DefaultBatchSize
	}
	if p.logger == nil {
		p.logger = slog.New(slog.DiscardHandler)
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p
}

// Start schedules passes on the cron spec. Calling Start on a running
// publisher is a no-op. Passes use ctx until Stop.
func (p *Publisher) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cron != nil {
		return nil
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(p.spec, func() {
		if _, err := p.RunOnce(ctx); err != nil {
			p.logger.Error("publish pass failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("invalid publisher schedule %q: %w", p.spec, err)
	}
	c.Start()
	p.cron = c
	p.logger.Info("publisher started", "schedule", p.spec)
	return nil
}

// Stop halts scheduling and waits for a running pass to finish. It is safe
// to call more than once.
func (p *Publisher) Stop() {
	p.mu.Lock()
	c := p.cron
	p.cron = nil
	p.mu.Unlock()
	if c == nil {
		return
	}
	<-c.Stop().Done()
	p.logger.Info("publisher stopped")
}

// Run starts the publisher and blocks until ctx is done.
func (p *Publisher) Run(ctx context.Context) error {
	if err := p.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	p.Stop()
	return nil
}

// RunOnce publishes every schedule due now. Dispatch failures mark the
// schedule failed and do not stop the pass; storage errors are joined into
// the returned error.
func (p *Publisher) RunOnce(ctx context.Context) (Result, error) {
	p.pass.Lock()
	defer p.pass.Unlock()

	var res Result
	now := p.now()
	due, err := p.schedules.Due(ctx, now, p.batchSize)
	if err != nil {
		return res, err
	}

	var errs []error
	for _, sched := range due {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		if dispatchErr := p.dispatcher.Dispatch(ctx, sched); dispatchErr != nil {
			if _, err := p.schedules.MarkFailed(ctx, sched.UserID, sched.ID, dispatchErr.Error(), now); err != nil {
				errs = append(errs, fmt.Errorf("schedule %s: %w", sched.ID, err))
				continue
			}
			res.Failed++
			p.logger.Warn("schedule failed", "schedule_id", sched.ID, "user_id", sched.UserID, "error", dispatchErr)
			continue
		}

		if _, err := p.schedules.MarkPosted(ctx, sched.UserID, sched.ID, now); err != nil {
			errs = append(errs, fmt.Errorf("schedule %s: %w", sched.ID, err))
			continue
		}
		res.Posted++
		p.logger.Debug("schedule posted", "schedule_id", sched.ID, "user_id", sched.UserID)
	}

	if len(due) > 0 {
		p.logger.Info("publish pass complete", "due", len(due), "posted", res.Posted, "failed", res.Failed)
	}
	return res, errors.Join(errs...)
}
