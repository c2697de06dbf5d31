package cmd_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"ordering/cmd"
	"ordering/internal/adapters/out/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigFrom_Defaults(t *testing.T) {
	cfg, err := cmd.LoadConfigFrom()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, "* * * * * *", cfg.Relay.Schedule)
	assert.Equal(t, 100, cfg.Relay.BatchSize)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, level)
}

func TestLoadConfigFrom_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
http:
  addr: 127.0.0.1:9090
relay:
  schedule: "*/5 * * * * *"
  batch_size: 25
log:
  level: debug
`)
	t.Setenv("ORDERING_RELAY_BATCH_SIZE", "50")

	cfg, err := cmd.LoadConfigFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.HTTP.Addr)
	assert.Equal(t, "*/5 * * * * *", cfg.Relay.Schedule)
	assert.Equal(t, 50, cfg.Relay.BatchSize, "environment wins over file")

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, level)
}

func TestLoadConfigFrom_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "batch size too large", body: "relay:\n  batch_size: 5000\n"},
		{name: "unknown log level", body: "log:\n  level: chatty\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cmd.LoadConfigFrom(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestDBConfig_DSN(t *testing.T) {
	db := cmd.DBConfig{Host: "db", Port: 5433, User: "app", Password: "secret", Name: "orders", SSLMode: "require"}

	assert.Equal(t, "host=db port=5433 user=app password=secret dbname=orders sslmode=require", db.DSN())
}

func TestShippedConfigFiles(t *testing.T) {
	cfg, err := cmd.LoadConfigFrom("../configs/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "configs/catalog.yaml", cfg.Catalog.Path)

	cat, err := catalog.Load("../" + cfg.Catalog.Path)
	require.NoError(t, err)

	variants, promotions, methods := cat.Size()
	assert.Equal(t, 3, variants)
	assert.Equal(t, 2, promotions)
	assert.Equal(t, 2, methods)
}
