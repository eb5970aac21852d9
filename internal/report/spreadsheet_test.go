package report

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/simongoricar/lastfm-extended-scrobbles/internal/scrobble"
)

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scrobbles.xlsx")
	entries := []scrobble.Extended{
		{
			Raw: scrobble.Raw{
				ScrobbledAt: time.Unix(1700000000, 0).UTC(),
				ArtistName:  "Johnny Cash",
				AlbumName:   "American IV",
				TrackName:   "Hurt",
				TrackMBID:   "11111111-1111-1111-1111-111111111111",
			},
			Source:          scrobble.SourceLocalLibraryMBID,
			DurationSeconds: 216,
			Genres:          []string{"Country", "Rock"},
		},
		{
			Raw: scrobble.Raw{
				ScrobbledAt: time.Unix(1700000100, 0).UTC(),
				ArtistName:  "Beyoncé",
				TrackName:   "Halo",
			},
			Source: scrobble.SourceBasicInfo,
		},
	}

	if err := Write(context.Background(), path, entries, WriterOptions{}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	workbook, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer func() { _ = workbook.Close() }()

	rows, err := workbook.GetRows(SheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Scrobble time (epoch)" {
		t.Fatalf("unexpected header %v", rows[0])
	}
	if rows[1][2] != "Johnny Cash" || rows[1][6] != "Hurt" {
		t.Fatalf("unexpected first row %v", rows[1])
	}
	if rows[1][9] != "local_library_mbid" {
		t.Fatalf("unexpected source cell %q", rows[1][9])
	}
	if rows[1][10] != "Country, Rock" {
		t.Fatalf("unexpected genres cell %q", rows[1][10])
	}
	if rows[2][2] != "Beyoncé" {
		t.Fatalf("unexpected second row %v", rows[2])
	}
}

func TestWriteRetriesExhausted(t *testing.T) {
	// A directory at the target path makes every save attempt fail.
	dir := t.TempDir()
	err := Write(context.Background(), dir, nil, WriterOptions{Retries: 2, RetryDelay: time.Millisecond})
	if err == nil {
		t.Fatal("expected error when saving over a directory")
	}
}
