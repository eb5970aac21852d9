package library

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestScanSkipsNonAudioAndUnreadableFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "notes.txt"), "not audio")
	writeFile(t, filepath.Join(dir, "broken.mp3"), "not a real mp3")
	if err := os.MkdirAll(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(dir, "nested", "also-broken.flac"), "junk")

	tracks, err := Scan(context.Background(), dir, ScanOptions{Workers: 2})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(tracks) != 0 {
		t.Fatalf("expected no parsable tracks, got %d", len(tracks))
	}
}

func TestScanMissingRoot(t *testing.T) {
	if _, err := Scan(context.Background(), filepath.Join(t.TempDir(), "missing"), ScanOptions{}); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
