package testsupport

import (
	"path/filepath"
	"testing"

	"github.com/simongoricar/lastfm-extended-scrobbles/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.LastFm.APIKey = "test-api-key"
	cfg.LastFm.Username = "test-user"
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.MusicLibraryRoot = filepath.Join(base, "music")
	cfg.Paths.ScrobbleArchiveDir = filepath.Join(base, "archives")
	cfg.Paths.CacheDir = filepath.Join(base, "cache")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.SpreadsheetPath = filepath.Join(base, "scrobbles.xlsx")

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	return &cfg
}

// WithAPIKey sets the Last.fm API key on the test config.
func WithAPIKey(key string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.LastFm.APIKey = key
	}
}

// WithUsername sets the Last.fm account name on the test config.
func WithUsername(name string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.LastFm.Username = name
	}
}
