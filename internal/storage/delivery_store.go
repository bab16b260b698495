package storage

import (
	"context"
	"time"
)

// Delivery statuses recorded in the delivery log.
const (
	DeliveryStatusSent   = "sent"
	DeliveryStatusFailed = "failed"
)

// DeliveryLogEntry records a single notification delivery attempt.
type DeliveryLogEntry struct {
	ID        int64     `json:"id" yaml:"id"`
	Channel   string    `json:"channel" yaml:"channel"`
	Message   string    `json:"message" yaml:"message"`
	Status    string    `json:"status" yaml:"status"`
	ErrorMsg  string    `json:"error_msg,omitempty" yaml:"error_msg,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// DeliveryStore persists the notification delivery log.
type DeliveryStore interface {
	// LogDelivery records a delivery attempt.
	LogDelivery(ctx context.Context, entry DeliveryLogEntry) error
	// ListDeliveries returns the most recent entries, newest first, up to limit.
	ListDeliveries(ctx context.Context, limit int) ([]DeliveryLogEntry, error)
	// PruneDeliveries deletes entries created before the cutoff and returns how many were removed.
	PruneDeliveries(ctx context.Context, before time.Time) (int64, error)
}
