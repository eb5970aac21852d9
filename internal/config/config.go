package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and output file configuration.
type Paths struct {
	DataDir            string `toml:"data_dir"`
	MusicLibraryRoot   string `toml:"music_library_root"`
	ScrobbleArchiveDir string `toml:"scrobble_archive_dir"`
	CacheDir           string `toml:"cache_dir"`
	LogDir             string `toml:"log_dir"`
	SpreadsheetPath    string `toml:"spreadsheet_output_path"`
}

// LastFm contains configuration for the Last.fm web service.
type LastFm struct {
	APIKey            string `toml:"api_key"`
	Username          string `toml:"username"`
	BaseURL           string `toml:"base_url"`
	PageSize          int    `toml:"page_size"`
	RequestIntervalMS int    `toml:"request_interval_ms"`
	SearchPageLimit   int    `toml:"search_page_limit"`
}

// MusicBrainz contains configuration for MusicBrainz release lookups.
type MusicBrainz struct {
	BaseURL         string `toml:"base_url"`
	CacheTTLMinutes int    `toml:"cache_ttl_minutes"`
}

// YouTube contains configuration for the YouTube search fallback.
type YouTube struct {
	Enabled    bool   `toml:"enabled"`
	BaseURL    string `toml:"base_url"`
	MaxResults int    `toml:"max_results"`
}

// Matching contains fuzzy matching score cutoffs (0-100).
type Matching struct {
	MinArtistScore       int `toml:"min_artist_score"`
	MinAlbumScore        int `toml:"min_album_score"`
	MinTitleScore        int `toml:"min_title_score"`
	MinYouTubeTitleScore int `toml:"min_youtube_title_score"`
	MinLastFmSimilarity  int `toml:"min_lastfm_similarity"`
}

// Genres contains configuration for genre resolution against the beets
// lastgenre whitelist and tree.
type Genres struct {
	Enabled    bool   `toml:"enabled"`
	MaxCount   int    `toml:"max_count"`
	MinWeight  int    `toml:"min_weight"`
	ListURL    string `toml:"list_url"`
	TreeURL    string `toml:"tree_url"`
	LicenseURL string `toml:"license_url"`
}

// Analysis contains pipeline tuning: scan concurrency, progress logging
// cadence, and spreadsheet write retries.
type Analysis struct {
	ScanWorkers            int `toml:"scan_workers"`
	CacheLogInterval       int `toml:"cache_log_interval"`
	ParseLogInterval       int `toml:"parse_log_interval"`
	WriteRetries           int `toml:"write_retries"`
	WriteRetryDelaySeconds int `toml:"write_retry_delay_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for the scrobble tooling.
//
// Configuration sections by subsystem:
//   - Paths: data, library, archive, cache, and report locations
//   - LastFm: API credentials, paging, and client-side rate limiting
//   - MusicBrainz: release lookup endpoint and response caching
//   - YouTube: search fallback for tracks absent from every catalog
//   - Matching: fuzzy score cutoffs used by the resolution chain
//   - Genres: beets genre data sources and tag selection limits
//   - Analysis: scan workers, progress intervals, report write retries
//   - Logging: log format and level
type Config struct {
	Paths       Paths       `toml:"paths"`
	LastFm      LastFm      `toml:"lastfm"`
	MusicBrainz MusicBrainz `toml:"musicbrainz"`
	YouTube     YouTube     `toml:"youtube"`
	Matching    Matching    `toml:"matching"`
	Genres      Genres      `toml:"genres"`
	Analysis    Analysis    `toml:"analysis"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/lastfm-extended-scrobbles/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The second return
// value is the resolved path, the third reports whether the file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("scrobbles.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a run needs to exist up front.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.ScrobbleArchiveDir, c.Paths.CacheDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LibraryDatabasePath returns the location of the SQLite library cache.
func (c *Config) LibraryDatabasePath() string {
	return filepath.Join(c.Paths.CacheDir, "library.db")
}

// RunLockPath returns the lock file guarding the data directory against
// concurrent runs.
func (c *Config) RunLockPath() string {
	return filepath.Join(c.Paths.DataDir, ".scrobbles.lock")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if len(pathValue) > 0 && pathValue[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
