package cmd

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	"github.com/shaharia-lab/regnotify/internal/config"
	"github.com/shaharia-lab/regnotify/internal/eventbus"
	"github.com/shaharia-lab/regnotify/internal/notification"
	"github.com/shaharia-lab/regnotify/internal/storage"
)

// app holds the collaborators shared by the subcommands. Each command builds
// only what it needs and calls Close when done.
type app struct {
	cfg    *config.AppConfig
	logger *slog.Logger
	db     *sql.DB
	store  storage.DeliveryStore
	bus    eventbus.EventBus
}

func newApp(cfg *config.AppConfig, logger *slog.Logger) *app {
	return &app{cfg: cfg, logger: logger}
}

// openStore opens the SQLite delivery log at cfg.DBPath().
func (a *app) openStore() (storage.DeliveryStore, error) {
	if a.store != nil {
		return a.store, nil
	}
	db, fresh, err := storage.NewSQLiteDB(a.cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("opening delivery log: %w", err)
	}
	if fresh {
		a.logger.Debug("created delivery log database", slog.String("path", a.cfg.DBPath()))
	}
	a.db = db
	a.store = storage.NewSQLiteDeliveryStore(db)
	return a.store, nil
}

// startBus creates the event bus and subscribes a debug logging listener.
func (a *app) startBus() eventbus.EventBus {
	if a.bus != nil {
		return a.bus
	}
	a.bus = eventbus.New(a.cfg.EventWorkers, a.logger)
	a.bus.Subscribe(func(e eventbus.Event) {
		a.logger.Debug("event published",
			slog.String("event_id", e.ID),
			slog.String("type", e.Type),
			slog.Any("payload", e.Payload),
		)
	})
	return a.bus
}

// notifier builds the notifier for channel writing to out. When record is
// true the notifier is wrapped in a Recorder backed by the delivery log.
func (a *app) notifier(channel string, out io.Writer, record bool) (notification.Notifier, error) {
	n, err := notification.NewRegistry().New(channel, out, a.logger)
	if err != nil {
		return nil, err
	}
	if !record {
		return n, nil
	}
	store, err := a.openStore()
	if err != nil {
		return nil, err
	}
	return notification.NewRecorder(n, store, a.logger), nil
}

// Close drains the event bus and closes the database.
func (a *app) Close() {
	if a.bus != nil {
		a.bus.Close()
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close delivery log", slog.Any("error", err))
		}
	}
}
