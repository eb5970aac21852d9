// Package library maintains the local music collection cache.
//
// A scan walks the configured library root, reads tags (including
// MusicBrainz identifiers) out of every supported audio file with a bounded
// worker pool, and persists the result in a SQLite database so later runs
// skip the expensive re-read. The in-memory Index groups tracks by album,
// artist, title, and track MBID for the resolution chain.
package library
