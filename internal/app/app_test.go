package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/bookmarks/internal/config"
	"github.com/MrSnakeDoc/bookmarks/internal/logger"
	"github.com/MrSnakeDoc/bookmarks/internal/store/memory"
)

func testConfig() *config.Config {
	return &config.Config{
		ListenPort:            ":0",
		ShutdownTimeout:       time.Second,
		RequestTimeout:        time.Second,
		LogLevel:              "error",
		RateLimitRefillPerMin: 60,
		MetricsNamespace:      "bookmarks",
	}
}

func TestSeedStoreDefault(t *testing.T) {
	cfg := testConfig()
	cfg.SeedDefault = true
	store := memory.NewStore()

	source, err := seedStore(cfg, store, logger.NewNop())

	require.NoError(t, err)
	assert.Equal(t, "default", source)
	all := store.List()
	require.Len(t, all, 1)
	assert.Equal(t, "NestJS Documentation", all[0].Description)
}

func TestSeedStoreFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
bookmarks:
  - url: https://go.dev/
    description: Go
  - url: https://pkg.go.dev/
    description: Packages
`), 0o600))

	cfg := testConfig()
	cfg.SeedFile = path
	cfg.SeedDefault = true // ignored when a file is configured
	store := memory.NewStore()

	source, err := seedStore(cfg, store, logger.NewNop())

	require.NoError(t, err)
	assert.Equal(t, "file:"+path, source)
	all := store.List()
	require.Len(t, all, 2)
	assert.Equal(t, "https://go.dev/", all[0].URL)
	assert.Equal(t, "https://pkg.go.dev/", all[1].URL)
}

func TestSeedStoreDisabled(t *testing.T) {
	store := memory.NewStore()

	source, err := seedStore(testConfig(), store, logger.NewNop())

	require.NoError(t, err)
	assert.Equal(t, "none", source)
	assert.Equal(t, 0, store.Count())
}

func TestSeedStoreMissingFile(t *testing.T) {
	cfg := testConfig()
	cfg.SeedFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := seedStore(cfg, memory.NewStore(), logger.NewNop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load seed bookmarks")
}

func TestNewWithConfig(t *testing.T) {
	cfg := testConfig()
	cfg.SeedDefault = true

	a, err := NewWithConfig(cfg)

	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, 1, a.store.Count())
}

func TestNewWithConfigRejectsInvalid(t *testing.T) {
	cfg := testConfig()
	cfg.RequestTimeout = 0

	_, err := NewWithConfig(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
