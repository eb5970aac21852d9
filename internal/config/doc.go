// Package config loads, normalizes, and validates analysis configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// LASTFM_API_KEY. The Config type centralizes every knob the CLI needs:
// library and archive locations, API endpoints, fuzzy matching cutoffs, and
// genre resolution limits.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
