package scrobble

import (
	"testing"
	"time"

	"github.com/simongoricar/lastfm-extended-scrobbles/internal/lastfm"
	"github.com/simongoricar/lastfm-extended-scrobbles/internal/library"
)

func TestFromTrackFlattens(t *testing.T) {
	scrobbledAt := time.Unix(1700000000, 0).UTC()
	track := lastfm.Track{
		Name:        "Hurt",
		MBID:        "11111111-1111-1111-1111-111111111111",
		URL:         "https://www.last.fm/music/Johnny+Cash/_/Hurt",
		Artist:      lastfm.Entity{Name: "Johnny Cash"},
		Album:       &lastfm.Entity{Name: "American IV", MBID: "22222222-2222-2222-2222-222222222222"},
		ScrobbledAt: scrobbledAt,
	}

	raw := FromTrack(track)
	if raw.TrackName != "Hurt" || raw.ArtistName != "Johnny Cash" {
		t.Fatalf("unexpected names: %+v", raw)
	}
	if raw.AlbumName != "American IV" || raw.AlbumMBID != "22222222-2222-2222-2222-222222222222" {
		t.Fatalf("album not carried over: %+v", raw)
	}
	if !raw.ScrobbledAt.Equal(scrobbledAt) {
		t.Fatalf("timestamp not carried over: %v", raw.ScrobbledAt)
	}
}

func TestFromTrackWithoutAlbum(t *testing.T) {
	raw := FromTrack(lastfm.Track{Name: "Hurt", Artist: lastfm.Entity{Name: "Johnny Cash"}})
	if raw.AlbumName != "" || raw.AlbumMBID != "" {
		t.Fatalf("expected empty album fields: %+v", raw)
	}
}

func TestExtendFromLibraryPrefersTags(t *testing.T) {
	raw := Raw{
		ArtistName: "johnny cash",
		AlbumName:  "american iv",
		TrackName:  "hurt",
	}
	track := library.Track{
		DurationSeconds: 216,
		ArtistName:      "Johnny Cash",
		ArtistMBID:      "33333333-3333-3333-3333-333333333333",
		TrackTitle:      "Hurt",
	}

	extended := ExtendFromLibrary(raw, track, SourceLocalLibraryMBID)
	if extended.Source != SourceLocalLibraryMBID {
		t.Fatalf("unexpected source %q", extended.Source)
	}
	if extended.ArtistName != "Johnny Cash" {
		t.Fatalf("expected tag artist to win, got %q", extended.ArtistName)
	}
	if extended.ArtistMBID != "33333333-3333-3333-3333-333333333333" {
		t.Fatalf("expected tag MBID, got %q", extended.ArtistMBID)
	}
	// Empty tag fields leave the scrobbled text in place.
	if extended.AlbumName != "american iv" {
		t.Fatalf("expected scrobbled album to survive, got %q", extended.AlbumName)
	}
	if extended.DurationSeconds != 216 {
		t.Fatalf("expected duration 216, got %v", extended.DurationSeconds)
	}
}

func TestExtendBasic(t *testing.T) {
	extended := ExtendBasic(Raw{TrackName: "Hurt"})
	if extended.Source != SourceBasicInfo {
		t.Fatalf("unexpected source %q", extended.Source)
	}
	if extended.DurationSeconds != 0 {
		t.Fatalf("expected zero duration, got %v", extended.DurationSeconds)
	}
}
