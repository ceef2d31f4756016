package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("полная конфигурация", func(t *testing.T) {
		path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db.local"
port = 5433
user = "booking"
password = "secret"
dbname = "sportcity"

[metrics]
enabled = true

[booking]
slot_duration_minutes = 30
`)

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.HTTPPort)
		assert.Equal(t, 30, cfg.Booking.SlotDurationMinutes)
		assert.True(t, cfg.Metrics.Enabled)
		assert.Equal(t,
			"host=db.local port=5433 user=booking password=secret dbname=sportcity sslmode=disable",
			cfg.Database.DSN())
	})

	t.Run("значения по умолчанию", func(t *testing.T) {
		path := writeConfig(t, `
[database]
dbname = "sportcity"
`)

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Server.HTTPPort)
		assert.Equal(t, 60, cfg.Booking.SlotDurationMinutes)
		assert.Equal(t, "/metrics", cfg.Metrics.Path)
		assert.False(t, cfg.Metrics.Enabled)
	})

	t.Run("файл не найден", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
		assert.ErrorIs(t, err, ErrReadConfig)
	})

	t.Run("пустое имя базы", func(t *testing.T) {
		path := writeConfig(t, `
[database]
dbname = ""
`)

		_, err := Load(path)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("слот не делит сутки нацело", func(t *testing.T) {
		path := writeConfig(t, `
[database]
dbname = "sportcity"

[booking]
slot_duration_minutes = 50
`)

		_, err := Load(path)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}
