package downloader

import (
	"context"
	"testing"
	"time"

	"github.com/simongoricar/lastfm-extended-scrobbles/internal/lastfm"
	"github.com/simongoricar/lastfm-extended-scrobbles/internal/scrobble"
)

type fakeHistory struct {
	pages map[int][]lastfm.Track
	calls []lastfm.RecentTracksOptions
}

func (f *fakeHistory) GetRecentTracks(_ context.Context, _ string, opts lastfm.RecentTracksOptions) (*lastfm.RecentTracksPage, error) {
	f.calls = append(f.calls, opts)
	page := opts.Page
	if page <= 0 {
		page = 1
	}
	return &lastfm.RecentTracksPage{
		Page:       page,
		TotalPages: len(f.pages),
		Tracks:     f.pages[page],
	}, nil
}

func historyTrack(name string, at int64) lastfm.Track {
	return lastfm.Track{
		Name:        name,
		URL:         "https://www.last.fm/music/x/_/" + name,
		Artist:      lastfm.Entity{Name: "Artist"},
		ScrobbledAt: time.Unix(at, 0).UTC(),
	}
}

func TestRunDownloadsWholeHistory(t *testing.T) {
	dir := t.TempDir()
	source := &fakeHistory{pages: map[int][]lastfm.Track{
		1: {historyTrack("b", 2000), historyTrack("a", 1000)},
		2: {{Name: "current", Artist: lastfm.Entity{Name: "Artist"}, NowPlaying: true}, historyTrack("c", 500)},
	}}

	now := time.Unix(5000, 0).UTC()
	result, err := Run(context.Background(), source, Options{
		Username:   "tester",
		ArchiveDir: dir,
		Now:        now,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Spans != 1 || result.Scrobbles != 3 {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(result.ArchivePaths) != 1 {
		t.Fatalf("expected one archive, got %v", result.ArchivePaths)
	}

	archive, err := scrobble.Load(result.ArchivePaths[0])
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(archive.Tracks) != 3 {
		t.Fatalf("expected nowplaying entry to be dropped, got %d tracks", len(archive.Tracks))
	}
	if archive.Metadata.Username != "tester" || !archive.Metadata.To.Equal(now) {
		t.Fatalf("unexpected metadata %+v", archive.Metadata)
	}

	// Both pages requested, with the span bounds passed through.
	if len(source.calls) != 2 {
		t.Fatalf("expected 2 page requests, got %d", len(source.calls))
	}
	if source.calls[0].From == nil || source.calls[0].To == nil || !source.calls[0].To.Equal(now) {
		t.Fatalf("unexpected span bounds %+v", source.calls[0])
	}
}

func TestRunSkipsCoveredRanges(t *testing.T) {
	dir := t.TempDir()
	now := time.Unix(5000, 0).UTC()

	// Seed an archive covering everything up to now.
	_, err := scrobble.Write(dir, scrobble.Archive{
		Metadata: scrobble.ArchiveMetadata{
			ArchivedAt: now,
			Username:   "tester",
			From:       time.Unix(0, 0).UTC(),
			To:         now,
		},
	})
	if err != nil {
		t.Fatalf("seed archive: %v", err)
	}

	source := &fakeHistory{pages: map[int][]lastfm.Track{1: {historyTrack("a", 1000)}}}
	result, err := Run(context.Background(), source, Options{
		Username:   "tester",
		ArchiveDir: dir,
		Now:        now,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Spans != 0 || len(source.calls) != 0 {
		t.Fatalf("expected no downloads, got %+v with %d calls", result, len(source.calls))
	}

	// Full overrides the existing coverage.
	result, err = Run(context.Background(), source, Options{
		Username:   "tester",
		ArchiveDir: dir,
		Now:        now,
		Full:       true,
	})
	if err != nil {
		t.Fatalf("full Run: %v", err)
	}
	if result.Spans != 1 || result.Scrobbles != 1 {
		t.Fatalf("unexpected full result %+v", result)
	}
}

func TestRunClipsToRequestedWindow(t *testing.T) {
	dir := t.TempDir()
	source := &fakeHistory{pages: map[int][]lastfm.Track{1: {historyTrack("a", 1500)}}}

	now := time.Unix(5000, 0).UTC()
	from := time.Unix(1000, 0).UTC()
	to := time.Unix(2000, 0).UTC()
	result, err := Run(context.Background(), source, Options{
		Username:   "tester",
		ArchiveDir: dir,
		Now:        now,
		From:       from,
		To:         to,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Spans != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(source.calls) != 1 {
		t.Fatalf("expected 1 page request, got %d", len(source.calls))
	}
	if !source.calls[0].From.Equal(from) || !source.calls[0].To.Equal(to) {
		t.Fatalf("span not clipped to window: %+v", source.calls[0])
	}
}

func TestRunRequiresUsername(t *testing.T) {
	if _, err := Run(context.Background(), &fakeHistory{}, Options{ArchiveDir: t.TempDir()}); err == nil {
		t.Fatal("expected error for missing username")
	}
}
