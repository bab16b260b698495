// Package scheduler runs the periodic delivery log retention job.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

// pruneTimeout bounds a single retention run.
const pruneTimeout = 30 * time.Second

// EventDeliveriesPruned is published after a run that removed entries.
// Payload keys: "deleted", "retention".
const EventDeliveriesPruned = "delivery_log.pruned"

// Pruner deletes delivery log entries older than a given age.
type Pruner interface {
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
}

// EventPublisher allows the scheduler to emit events without depending on a
// concrete event bus implementation.
type EventPublisher interface {
	Publish(eventType string, payload map[string]string)
}

// Config holds the scheduler configuration.
type Config struct {
	Pruner    Pruner
	Retention time.Duration
	Interval  time.Duration
	Logger    *slog.Logger
	// EventPublisher is optional. When set, prune runs that delete entries are published.
	EventPublisher EventPublisher
}

// Scheduler prunes the delivery log on a fixed interval using gocron.
type Scheduler struct {
	cron   gocron.Scheduler
	cfg    Config
	mu     sync.Mutex
	jobID  uuid.UUID
	logger *slog.Logger
}

// New creates a new Scheduler. Retention and Interval must be positive.
func New(cfg Config) (*Scheduler, error) {
	if cfg.Pruner == nil {
		return nil, errors.New("scheduler: pruner is required")
	}
	if cfg.Retention <= 0 || cfg.Interval <= 0 {
		return nil, fmt.Errorf("scheduler: retention (%s) and interval (%s) must be positive",
			cfg.Retention, cfg.Interval)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	cron, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("creating gocron scheduler: %w", err)
	}

	return &Scheduler{cron: cron, cfg: cfg, logger: cfg.Logger}, nil
}

// Start schedules the retention job, runs it once immediately and starts the
// gocron scheduler.
func (s *Scheduler) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, err := s.cron.NewJob(
		gocron.DurationJob(s.cfg.Interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), pruneTimeout)
			defer cancel()
			if _, err := s.RunOnce(ctx); err != nil {
				s.logger.Warn("delivery log pruning failed", "error", err)
			}
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("scheduling retention job: %w", err)
	}
	s.jobID = job.ID()

	s.cron.Start()
	s.logger.Info("retention scheduler started",
		"job_id", s.jobID.String(),
		"retention", s.cfg.Retention.String(),
		"interval", s.cfg.Interval.String(),
	)
	return nil
}

// Stop shuts down the gocron scheduler.
func (s *Scheduler) Stop() error {
	return s.cron.Shutdown()
}

// RunOnce prunes entries older than the configured retention.
func (s *Scheduler) RunOnce(ctx context.Context) (int64, error) {
	n, err := s.cfg.Pruner.Prune(ctx, s.cfg.Retention)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("delivery log pruned", "deleted", n, "retention", s.cfg.Retention.String())
		if s.cfg.EventPublisher != nil {
			s.cfg.EventPublisher.Publish(EventDeliveriesPruned, map[string]string{
				"deleted":   strconv.FormatInt(n, 10),
				"retention": s.cfg.Retention.String(),
			})
		}
	}
	return n, nil
}
