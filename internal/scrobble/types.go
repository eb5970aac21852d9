package scrobble

import (
	"time"

	"github.com/simongoricar/lastfm-extended-scrobbles/internal/lastfm"
	"github.com/simongoricar/lastfm-extended-scrobbles/internal/library"
)

// Source identifies which authority filled in the extended fields of a
// scrobble. The values land verbatim in the spreadsheet's source column.
type Source string

const (
	SourceLocalLibraryMBID     Source = "local_library_mbid"
	SourceLocalLibraryMetadata Source = "local_library_metadata"
	SourceMusicBrainz          Source = "musicbrainz"
	SourceYouTube              Source = "youtube"
	SourceBasicInfo            Source = "basic_info"
)

// Raw is the flattened form of one Last.fm history entry, carrying only the
// fields the extension pipeline works with.
type Raw struct {
	ScrobbledAt time.Time

	ArtistName string
	ArtistMBID string

	AlbumName string
	AlbumMBID string

	TrackName string
	TrackMBID string
}

// FromTrack flattens a validated Last.fm history entry into a Raw scrobble.
func FromTrack(track lastfm.Track) Raw {
	raw := Raw{
		ScrobbledAt: track.ScrobbledAt,
		ArtistName:  track.Artist.Name,
		ArtistMBID:  track.Artist.MBID,
		TrackName:   track.Name,
		TrackMBID:   track.MBID,
	}
	if track.Album != nil {
		raw.AlbumName = track.Album.Name
		raw.AlbumMBID = track.Album.MBID
	}
	return raw
}

// Extended is a Raw scrobble reconciled against one of the metadata sources.
type Extended struct {
	Raw

	Source          Source
	DurationSeconds float64
	Genres          []string
}

// ExtendFromLibrary builds an Extended scrobble from a local library track.
// The library's tags win over the scrobbled text where both are present.
func ExtendFromLibrary(raw Raw, track library.Track, source Source) Extended {
	extended := Extended{Raw: raw, Source: source, DurationSeconds: track.DurationSeconds}
	if track.ArtistName != "" {
		extended.ArtistName = track.ArtistName
	}
	if track.ArtistMBID != "" {
		extended.ArtistMBID = track.ArtistMBID
	}
	if track.AlbumName != "" {
		extended.AlbumName = track.AlbumName
	}
	if track.AlbumMBID != "" {
		extended.AlbumMBID = track.AlbumMBID
	}
	if track.TrackTitle != "" {
		extended.TrackName = track.TrackTitle
	}
	if track.TrackMBID != "" {
		extended.TrackMBID = track.TrackMBID
	}
	return extended
}

// ExtendFromDuration builds an Extended scrobble whose only enrichment is a
// track duration, as returned by MusicBrainz or a YouTube search.
func ExtendFromDuration(raw Raw, durationSeconds float64, source Source) Extended {
	return Extended{Raw: raw, Source: source, DurationSeconds: durationSeconds}
}

// ExtendBasic builds the fallback Extended scrobble when no source could
// supply a duration.
func ExtendBasic(raw Raw) Extended {
	return Extended{Raw: raw, Source: SourceBasicInfo}
}
