// Package musicbrainz implements the small slice of the MusicBrainz web
// service this tool needs: resolving a track MBID to its length via a
// release browse. Responses are cached in memory, including misses, since
// scrobble histories repeat tracks heavily.
package musicbrainz
