package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// chTempDir moves the test into an empty directory so Load only sees the
// config file the test plants there.
func chTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chTempDir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/contributions.txt", cfg.Data.File)
	assert.InDelta(t, 0.7, cfg.Search.FuzzyThreshold, 0.001)
	assert.Equal(t, 2, cfg.Search.MinTokenLen)
	assert.Equal(t, 1000, cfg.Search.MaxFuzzyCandidates)
	assert.Equal(t, 8, cfg.Bulk.Concurrency)
	assert.Equal(t, 10, cfg.Cache.TTLMinutes)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.InDelta(t, 50, cfg.Server.RatePerSecond, 0.001)
	assert.Equal(t, 100, cfg.Server.RateBurst)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chTempDir(t)

	yaml := `
data:
  file: /srv/fec/itcont.txt
search:
  fuzzy_threshold: 0.85
bulk:
  concurrency: 16
log:
  level: debug
  format: console
server:
  port: 9090
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/fec/itcont.txt", cfg.Data.File)
	assert.InDelta(t, 0.85, cfg.Search.FuzzyThreshold, 0.001)
	assert.Equal(t, 16, cfg.Bulk.Concurrency)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)

	// Untouched keys keep their defaults.
	assert.Equal(t, 10, cfg.Cache.TTLMinutes)
	assert.Equal(t, 1000, cfg.Search.MaxFuzzyCandidates)
}

func TestLoadFromEnv(t *testing.T) {
	chTempDir(t)

	t.Setenv("PCM_DATA_FILE", "/env/itcont.txt")
	t.Setenv("PCM_CACHE_TTL_MINUTES", "30")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/env/itcont.txt", cfg.Data.File)
	assert.Equal(t, 30, cfg.Cache.TTLMinutes)
}

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name    string
		cfg     LogConfig
		wantErr bool
	}{
		{name: "json info", cfg: LogConfig{Level: "info", Format: "json"}},
		{name: "console debug", cfg: LogConfig{Level: "debug", Format: "console"}},
		{name: "bad level", cfg: LogConfig{Level: "shouting", Format: "json"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := InitLogger(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, zap.L())
		})
	}
}
