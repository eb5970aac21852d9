package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLastFm(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateGenres(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLastFm() error {
	if c.LastFm.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/lastfm-extended-scrobbles/config.toml"
		}
		return fmt.Errorf("lastfm.api_key is required. Set LASTFM_API_KEY env var or edit %s (create with 'scrobbles config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateMatching() error {
	cutoffs := []struct {
		name  string
		value int
	}{
		{"matching.min_artist_score", c.Matching.MinArtistScore},
		{"matching.min_album_score", c.Matching.MinAlbumScore},
		{"matching.min_title_score", c.Matching.MinTitleScore},
		{"matching.min_youtube_title_score", c.Matching.MinYouTubeTitleScore},
		{"matching.min_lastfm_similarity", c.Matching.MinLastFmSimilarity},
	}
	for _, cutoff := range cutoffs {
		if cutoff.value < 0 || cutoff.value > 100 {
			return fmt.Errorf("%s must be between 0 and 100", cutoff.name)
		}
	}
	return nil
}

func (c *Config) validateGenres() error {
	if !c.Genres.Enabled {
		return nil
	}
	if c.Genres.MaxCount <= 0 {
		return errors.New("genres.max_count must be positive")
	}
	if c.Genres.MinWeight < 0 {
		return errors.New("genres.min_weight must not be negative")
	}
	if c.Genres.ListURL == "" || c.Genres.TreeURL == "" {
		return errors.New("genres.list_url and genres.tree_url must be set when genres are enabled")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
