// Package analysis runs the extension pipeline: it loads the archived
// scrobble history, reconciles every scrobble against the metadata sources
// in priority order, fills in genres, and writes the spreadsheet report.
//
// The source priority is fixed: a local library track matched by MBID wins
// over one matched by exact metadata, which wins over a fuzzy metadata
// match; only then are MusicBrainz and YouTube consulted, and a scrobble no
// source can enrich falls through to its basic Last.fm info.
package analysis
