package library

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "library.db"))
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreReplaceAllAndAll(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.ReplaceAll(ctx, sampleTracks()); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	tracks, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(tracks) != 3 {
		t.Fatalf("expected 3 tracks, got %d", len(tracks))
	}
	// Ordered by file path.
	if tracks[0].FilePath != "/music/beyonce/halo.flac" {
		t.Fatalf("unexpected first track %q", tracks[0].FilePath)
	}
	if tracks[1].TrackMBID != "11111111-1111-1111-1111-111111111111" {
		t.Fatalf("expected MBID to survive the round trip, got %q", tracks[1].TrackMBID)
	}
}

func TestStoreReplaceAllOverwrites(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.ReplaceAll(ctx, sampleTracks()); err != nil {
		t.Fatalf("first ReplaceAll: %v", err)
	}
	if err := store.ReplaceAll(ctx, sampleTracks()[:1]); err != nil {
		t.Fatalf("second ReplaceAll: %v", err)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 track after overwrite, got %d", count)
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "library.db")
	ctx := context.Background()

	store, err := OpenStore(path)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	if err := store.ReplaceAll(ctx, sampleTracks()); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := OpenStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	count, err := reopened.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 tracks after reopen, got %d", count)
	}
}
