package scheduler_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaharia-lab/regnotify/internal/scheduler"
)

// --- helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

type stubPruner struct {
	mu      sync.Mutex
	calls   []time.Duration
	deleted int64
	err     error
}

func (p *stubPruner) Prune(_ context.Context, olderThan time.Duration) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, olderThan)
	return p.deleted, p.err
}

func (p *stubPruner) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

type stubPublisher struct {
	mu     sync.Mutex
	events []string
	last   map[string]string
}

func (p *stubPublisher) Publish(eventType string, payload map[string]string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
	p.last = payload
}

// --- tests ---

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  scheduler.Config
	}{
		{"missing pruner", scheduler.Config{Retention: time.Hour, Interval: time.Minute}},
		{"zero retention", scheduler.Config{Pruner: &stubPruner{}, Interval: time.Minute}},
		{"zero interval", scheduler.Config{Pruner: &stubPruner{}, Retention: time.Hour}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scheduler.New(tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestRunOnce_PublishesWhenEntriesDeleted(t *testing.T) {
	pruner := &stubPruner{deleted: 4}
	pub := &stubPublisher{}
	s, err := scheduler.New(scheduler.Config{
		Pruner:         pruner,
		Retention:      48 * time.Hour,
		Interval:       time.Hour,
		Logger:         newTestLogger(),
		EventPublisher: pub,
	})
	require.NoError(t, err)

	n, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.Equal(t, []time.Duration{48 * time.Hour}, pruner.calls)
	assert.Equal(t, []string{scheduler.EventDeliveriesPruned}, pub.events)
	assert.Equal(t, "4", pub.last["deleted"])
	assert.Equal(t, "48h0m0s", pub.last["retention"])
}

func TestRunOnce_NothingDeleted(t *testing.T) {
	pub := &stubPublisher{}
	s, err := scheduler.New(scheduler.Config{
		Pruner:         &stubPruner{},
		Retention:      time.Hour,
		Interval:       time.Hour,
		Logger:         newTestLogger(),
		EventPublisher: pub,
	})
	require.NoError(t, err)

	n, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, pub.events)
}

func TestRunOnce_Error(t *testing.T) {
	s, err := scheduler.New(scheduler.Config{
		Pruner:    &stubPruner{err: errors.New("db locked")},
		Retention: time.Hour,
		Interval:  time.Hour,
		Logger:    newTestLogger(),
	})
	require.NoError(t, err)

	_, err = s.RunOnce(context.Background())
	assert.EqualError(t, err, "db locked")
}

func TestStart_RunsImmediately(t *testing.T) {
	pruner := &stubPruner{}
	s, err := scheduler.New(scheduler.Config{
		Pruner:    pruner,
		Retention: time.Hour,
		Interval:  time.Hour,
		Logger:    newTestLogger(),
	})
	require.NoError(t, err)

	require.NoError(t, s.Start(context.Background()))
	defer func() { _ = s.Stop() }()

	assert.Eventually(t, func() bool { return pruner.callCount() >= 1 }, 2*time.Second, 10*time.Millisecond)
}
