// Package scrobble defines the scrobble data model and the on-disk archive
// format.
//
// A Raw scrobble is the flattened form of one Last.fm history entry.
// An Extended scrobble is a Raw scrobble reconciled against an authoritative
// source (local library, MusicBrainz, YouTube) and annotated with the source,
// track duration, and genres.
//
// Archives are JSON snapshots of a user's history over a closed time range,
// named deterministically so the downloader can detect which ranges are
// still missing. The legacy page-list format produced by the old downloader
// script is still readable.
package scrobble
