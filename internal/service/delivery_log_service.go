package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shaharia-lab/regnotify/internal/storage"
)

// DeliveryLogService exposes the notification delivery log.
type DeliveryLogService interface {
	// List returns the most recent delivery log entries, newest first.
	List(ctx context.Context, limit int) ([]storage.DeliveryLogEntry, error)
	// Prune deletes entries older than olderThan and returns how many were removed.
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
}

// deliveryLogServiceImpl implements DeliveryLogService.
type deliveryLogServiceImpl struct {
	store storage.DeliveryStore
	now   func() time.Time
}

// NewDeliveryLogService creates a new DeliveryLogService.
func NewDeliveryLogService(store storage.DeliveryStore) DeliveryLogService {
	return &deliveryLogServiceImpl{store: store, now: time.Now}
}

func (s *deliveryLogServiceImpl) List(ctx context.Context, limit int) ([]storage.DeliveryLogEntry, error) {
	entries, err := s.store.ListDeliveries(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing deliveries: %w", err)
	}
	if entries == nil {
		entries = []storage.DeliveryLogEntry{}
	}
	return entries, nil
}

func (s *deliveryLogServiceImpl) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, &ValidationError{Field: "older_than", Message: "must be a positive duration"}
	}
	n, err := s.store.PruneDeliveries(ctx, s.now().Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("pruning deliveries: %w", err)
	}
	return n, nil
}
