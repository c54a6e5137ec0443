package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 16.0, cfg.Map.Zoom)
	assert.Equal(t, 1.0, cfg.Map.MinZoom)
	assert.Equal(t, 17.0, cfg.Map.MaxZoom)
	assert.InDelta(t, 4420570.329, cfg.Map.CenterX, 1e-3)
	assert.Equal(t, 250*time.Millisecond, cfg.Map.AutoPanDuration)
	assert.Equal(t, "stream:marker:events", cfg.Events.Stream)
	assert.False(t, cfg.Events.Enabled)
	assert.Equal(t, int64(10000), cfg.Events.MaxLen)
	assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddr())
	assert.Equal(t, "*", cfg.Server.CORSOrigins)
	assert.Equal(t, "marker-event-log", cfg.Worker.ConsumerGroup)
	assert.Equal(t, 100*time.Millisecond, cfg.Worker.PollInterval)
	assert.Equal(t, 20, cfg.Worker.BatchSize)
	assert.Equal(t, "batch", cfg.Worker.ReadMode)
	assert.Equal(t, time.Second, cfg.Worker.BlockTimeout)
}

func TestLoadFile_ReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "API_PORT=9090\nLOG_LEVEL=debug\nEVENTS_ENABLED=true\nMAP_ZOOM=10\nREDIS_HOST=redis\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Events.Enabled)
	assert.Equal(t, 10.0, cfg.Map.Zoom)
	assert.Equal(t, "redis:6379", cfg.GetRedisAddr())
}

func TestLoadFile_RejectsZoomOutsideBounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("MAP_ZOOM=18\n"), 0o600))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFile_WorkerReadMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("WORKER_READ_MODE=stream\nWORKER_BLOCK_TIMEOUT=250\n"), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "stream", cfg.Worker.ReadMode)
	assert.Equal(t, 250*time.Millisecond, cfg.Worker.BlockTimeout)

	require.NoError(t, os.WriteFile(path, []byte("WORKER_READ_MODE=push\n"), 0o600))
	_, err = LoadFile(path)
	assert.Error(t, err)
}
