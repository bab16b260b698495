package notification

import (
	"context"
	"log/slog"
	"time"

	"github.com/shaharia-lab/regnotify/internal/storage"
)

// recordTimeout bounds how long a single delivery-log write may take.
const recordTimeout = 5 * time.Second

// Recorder wraps a Notifier and records every delivery attempt in a
// DeliveryStore. Recording never changes what the wrapped notifier emits.
type Recorder struct {
	inner  Notifier
	store  storage.DeliveryStore
	logger *slog.Logger
	now    func() time.Time
}

// NewRecorder creates a Recorder around inner.
func NewRecorder(inner Notifier, store storage.DeliveryStore, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{inner: inner, store: store, logger: logger, now: time.Now}
}

// Name reports the wrapped notifier's channel.
func (r *Recorder) Name() string { return Name(r.inner) }

// Send forwards message to the wrapped notifier exactly once and logs the attempt.
func (r *Recorder) Send(message string) {
	_ = r.Deliver(message)
}

// Deliver forwards message and returns the wrapped notifier's delivery error,
// if it reports one.
func (r *Recorder) Deliver(message string) error {
	var sendErr error
	if d, ok := r.inner.(Deliverer); ok {
		sendErr = d.Deliver(message)
	} else {
		r.inner.Send(message)
	}

	entry := storage.DeliveryLogEntry{
		Channel:   r.Name(),
		Message:   message,
		Status:    storage.DeliveryStatusSent,
		CreatedAt: r.now(),
	}
	if sendErr != nil {
		entry.Status = storage.DeliveryStatusFailed
		entry.ErrorMsg = sendErr.Error()
		r.logger.Warn("notification delivery failed",
			slog.String("channel", entry.Channel),
			slog.Any("error", sendErr),
		)
	}

	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	if logErr := r.store.LogDelivery(ctx, entry); logErr != nil {
		r.logger.Warn("failed to record delivery",
			slog.String("channel", entry.Channel),
			slog.Any("error", logErr),
		)
	}
	return sendErr
}
