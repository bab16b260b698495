package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		want     slog.Level
	}{
		{"debug", "debug", slog.LevelDebug},
		{"info", "info", slog.LevelInfo},
		{"warn", "warn", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"unknown defaults to info", "unknown", slog.LevelInfo},
		{"empty defaults to info", "", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &AppConfig{LogLevel: tt.logLevel}
			assert.Equal(t, tt.want, c.SlogLevel())
		})
	}
}

func TestAppConfig_Paths(t *testing.T) {
	c := &AppConfig{DataDir: "/data"}
	assert.Equal(t, "/data/logs", c.LogDir())
	assert.Equal(t, "/data/regnotify.db", c.DBPath())
}

func TestAppConfig_PruningEnabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  AppConfig
		want bool
	}{
		{"enabled", AppConfig{RecordDeliveries: true, DeliveryRetention: time.Hour, PruneInterval: time.Minute}, true},
		{"recording off", AppConfig{RecordDeliveries: false, DeliveryRetention: time.Hour, PruneInterval: time.Minute}, false},
		{"no retention", AppConfig{RecordDeliveries: true, PruneInterval: time.Minute}, false},
		{"no interval", AppConfig{RecordDeliveries: true, DeliveryRetention: time.Hour}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.PruningEnabled())
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("REGNOTIFY_DATA_DIR", "/tmp/test-regnotify")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "email", cfg.Channel)
	assert.Equal(t, 8990, cfg.Port)
	assert.Equal(t, "/tmp/test-regnotify", cfg.DataDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.RecordDeliveries)
	assert.Equal(t, 3, cfg.EventWorkers)
	assert.Equal(t, 720*time.Hour, cfg.DeliveryRetention)
	assert.Equal(t, time.Hour, cfg.PruneInterval)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.True(t, cfg.OTLPInsecure)
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("REGNOTIFY_DATA_DIR", "/tmp/custom")
	t.Setenv("REGNOTIFY_CHANNEL", "sms")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REGNOTIFY_RECORD_DELIVERIES", "false")
	t.Setenv("REGNOTIFY_EVENT_WORKERS", "5")
	t.Setenv("REGNOTIFY_DELIVERY_RETENTION", "24h")
	t.Setenv("REGNOTIFY_PRUNE_INTERVAL", "10m")
	t.Setenv("REGNOTIFY_CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sms", cfg.Channel)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.RecordDeliveries)
	assert.Equal(t, 5, cfg.EventWorkers)
	assert.Equal(t, 24*time.Hour, cfg.DeliveryRetention)
	assert.Equal(t, 10*time.Minute, cfg.PruneInterval)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("REGNOTIFY_DATA_DIR", "/tmp/test")
	t.Setenv("REGNOTIFY_PRUNE_INTERVAL", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestLoad_DataDirDefaultsToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("REGNOTIFY_DATA_DIR", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".regnotify"), cfg.DataDir)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("REGNOTIFY_CHANNEL=sms\n"), 0600))
	t.Chdir(dir)
	t.Setenv("REGNOTIFY_DATA_DIR", dir)
	// Keep the variable unset so the .env value applies, and restore afterwards.
	t.Setenv("REGNOTIFY_CHANNEL", "")
	require.NoError(t, os.Unsetenv("REGNOTIFY_CHANNEL"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sms", cfg.Channel)
}
