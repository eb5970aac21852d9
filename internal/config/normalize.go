package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLastFm()
	c.normalizeMusicBrainz()
	c.normalizeYouTube()
	c.normalizeAnalysis()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ScrobbleArchiveDir) == "" {
		c.Paths.ScrobbleArchiveDir = defaultScrobbleArchiveDir
	}
	if c.Paths.ScrobbleArchiveDir, err = expandPath(c.Paths.ScrobbleArchiveDir); err != nil {
		return fmt.Errorf("paths.scrobble_archive_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		c.Paths.CacheDir = defaultCacheDir
	}
	if c.Paths.CacheDir, err = expandPath(c.Paths.CacheDir); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.SpreadsheetPath, err = expandPath(c.Paths.SpreadsheetPath); err != nil {
		return fmt.Errorf("paths.spreadsheet_output_path: %w", err)
	}
	// An empty library root disables local library search; keep it empty.
	if strings.TrimSpace(c.Paths.MusicLibraryRoot) != "" {
		if c.Paths.MusicLibraryRoot, err = expandPath(c.Paths.MusicLibraryRoot); err != nil {
			return fmt.Errorf("paths.music_library_root: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeLastFm() {
	c.LastFm.APIKey = strings.TrimSpace(c.LastFm.APIKey)
	if c.LastFm.APIKey == "" {
		c.LastFm.APIKey = strings.TrimSpace(os.Getenv("LASTFM_API_KEY"))
	}
	c.LastFm.Username = strings.TrimSpace(c.LastFm.Username)
	if c.LastFm.Username == "" {
		c.LastFm.Username = strings.TrimSpace(os.Getenv("LASTFM_USERNAME"))
	}
	c.LastFm.BaseURL = strings.TrimRight(strings.TrimSpace(c.LastFm.BaseURL), "/")
	if c.LastFm.BaseURL == "" {
		c.LastFm.BaseURL = strings.TrimRight(defaultLastFmBaseURL, "/")
	}
	if c.LastFm.PageSize <= 0 || c.LastFm.PageSize > 200 {
		c.LastFm.PageSize = defaultLastFmPageSize
	}
	if c.LastFm.RequestIntervalMS < 0 {
		c.LastFm.RequestIntervalMS = defaultRequestIntervalMS
	}
	if c.LastFm.SearchPageLimit <= 0 {
		c.LastFm.SearchPageLimit = defaultSearchPageLimit
	}
}

func (c *Config) normalizeMusicBrainz() {
	c.MusicBrainz.BaseURL = strings.TrimRight(strings.TrimSpace(c.MusicBrainz.BaseURL), "/")
	if c.MusicBrainz.BaseURL == "" {
		c.MusicBrainz.BaseURL = defaultMusicBrainzBaseURL
	}
	if c.MusicBrainz.CacheTTLMinutes <= 0 {
		c.MusicBrainz.CacheTTLMinutes = defaultMusicBrainzCacheTTL
	}
}

func (c *Config) normalizeYouTube() {
	c.YouTube.BaseURL = strings.TrimRight(strings.TrimSpace(c.YouTube.BaseURL), "/")
	if c.YouTube.BaseURL == "" {
		c.YouTube.BaseURL = defaultYouTubeBaseURL
	}
	if c.YouTube.MaxResults <= 0 {
		c.YouTube.MaxResults = defaultYouTubeMaxResults
	}
}

func (c *Config) normalizeAnalysis() {
	if c.Analysis.ScanWorkers <= 0 {
		c.Analysis.ScanWorkers = defaultScanWorkers
	}
	if c.Analysis.CacheLogInterval <= 0 {
		c.Analysis.CacheLogInterval = defaultCacheLogInterval
	}
	if c.Analysis.ParseLogInterval <= 0 {
		c.Analysis.ParseLogInterval = defaultParseLogInterval
	}
	if c.Analysis.WriteRetries <= 0 {
		c.Analysis.WriteRetries = defaultWriteRetries
	}
	if c.Analysis.WriteRetryDelaySeconds < 0 {
		c.Analysis.WriteRetryDelaySeconds = defaultWriteRetryDelay
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
