package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaharia-lab/devicedesk-notifier/internal/config"
)

// unsetenv clears an environment variable for the test while restoring the
// original value afterwards.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	_ = os.Unsetenv(key)
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "LOG_LEVEL", "SMTP_HOST", "SMTP_PORT", "SMTP_FROM", "SMTP_ENCRYPTION", "EVENT_WORKERS"} {
		unsetenv(t, key)
	}
	t.Setenv("NOTIFIER_DATA_DIR", "/tmp/notifier-test")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8991, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 3, cfg.EventWorkers)
	assert.Equal(t, "localhost", cfg.SMTPHost)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, "noreply@devicedesk.io", cfg.SMTPFrom)
	assert.Equal(t, "starttls", cfg.SMTPEncryption)
	assert.Equal(t, filepath.Join("/tmp/notifier-test", "logs"), cfg.LogDir())
	assert.Equal(t, filepath.Join("/tmp/notifier-test", "notifier.db"), cfg.DatabasePath())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9100")
	t.Setenv("NOTIFIER_DATA_DIR", "/var/lib/notifier")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("SMTP_ENCRYPTION", "ssl_tls")
	t.Setenv("EVENT_WORKERS", "8")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "/var/lib/notifier", cfg.DataDir)
	assert.Equal(t, 8, cfg.EventWorkers)

	smtp := cfg.SMTP()
	assert.Equal(t, "smtp.example.com", smtp.Host)
	assert.Equal(t, 465, smtp.Port)
	assert.Equal(t, "ssl_tls", smtp.Encryption)
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		cfg := &config.AppConfig{LogLevel: tt.level}
		assert.Equal(t, tt.want, cfg.SlogLevel(), tt.level)
	}
}
