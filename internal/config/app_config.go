package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// AppConfig holds all application-level configuration loaded from environment variables.
type AppConfig struct {
	// Channel selects the notification channel injected into the registration
	// service (e.g. "email", "sms").
	Channel string `envconfig:"REGNOTIFY_CHANNEL" default:"email"`

	// Port is the HTTP server port. Defaults to 8990.
	Port int `envconfig:"PORT" default:"8990"`

	// DataDir is the root data directory. Defaults to ~/.regnotify.
	DataDir string `envconfig:"REGNOTIFY_DATA_DIR"`

	// LogLevel sets the minimum log level (debug, info, warn, error). Defaults to info.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// RecordDeliveries keeps a delivery log of every notification in SQLite.
	RecordDeliveries bool `envconfig:"REGNOTIFY_RECORD_DELIVERIES" default:"true"`

	// EventWorkers is the number of event bus worker goroutines.
	EventWorkers int `envconfig:"REGNOTIFY_EVENT_WORKERS" default:"3"`

	// DeliveryRetention is how long delivery log entries are kept. Zero disables pruning.
	DeliveryRetention time.Duration `envconfig:"REGNOTIFY_DELIVERY_RETENTION" default:"720h"`

	// PruneInterval is how often the retention job runs. Zero disables pruning.
	PruneInterval time.Duration `envconfig:"REGNOTIFY_PRUNE_INTERVAL" default:"1h"`

	// CORSOrigins lists the origins allowed to call the HTTP API.
	CORSOrigins []string `envconfig:"REGNOTIFY_CORS_ORIGINS" default:"*"`

	// OTLPEndpoint is the OTLP gRPC collector address. Tracing is off when empty.
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	// OTLPInsecure disables TLS towards the collector.
	OTLPInsecure bool `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"true"`
}

// Load reads AppConfig from environment variables using envconfig. A .env file
// in the working directory is loaded first when present; variables already set
// in the environment take precedence over it.
// DataDir defaults to ~/.regnotify if not set.
func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	var c AppConfig
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		c.DataDir = filepath.Join(home, ".regnotify")
	}
	return &c, nil
}

// SlogLevel converts the LogLevel string to a slog.Level.
// Unknown values default to slog.LevelInfo.
func (c *AppConfig) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogDir returns the path to the log directory.
func (c *AppConfig) LogDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// DBPath returns the path to the SQLite delivery log database.
func (c *AppConfig) DBPath() string {
	return filepath.Join(c.DataDir, "regnotify.db")
}

// PruningEnabled reports whether the delivery log retention job should run.
func (c *AppConfig) PruningEnabled() bool {
	return c.RecordDeliveries && c.DeliveryRetention > 0 && c.PruneInterval > 0
}
