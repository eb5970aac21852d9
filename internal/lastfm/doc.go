// Package lastfm implements the subset of the Last.fm web API this tool
// needs: recent track (scrobble) history, top tags for tracks, albums, and
// artists, and the search endpoints backing genre resolution.
//
// The recent-tracks decoder enforces the structural invariants observed in
// the API's JSON (non-empty track names and URLs, 36-character MusicBrainz
// IDs, consistent album text/mbid combinations) so downstream code can rely
// on clean data. Requests are rate limited client-side.
package lastfm
