package report

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/simongoricar/lastfm-extended-scrobbles/internal/scrobble"
)

// SheetName is the sheet the extended history lands on.
const SheetName = "Data"

var headerRow = []any{
	"Scrobble time (epoch)",
	"Scrobble time (UTC)",
	"Artist",
	"Artist MBID",
	"Album",
	"Album MBID",
	"Track",
	"Track MBID",
	"Track length (s)",
	"Extended source",
	"Genres",
}

// WriterOptions configures spreadsheet saving.
type WriterOptions struct {
	// Retries is how many save attempts to make before giving up.
	Retries int
	// RetryDelay is the pause between attempts.
	RetryDelay time.Duration
	Logger     *slog.Logger
}

// Write renders the extended scrobbles into an xlsx file at path, oldest
// row first as given.
func Write(ctx context.Context, path string, scrobbles []scrobble.Extended, opts WriterOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.Retries < 1 {
		opts.Retries = 1
	}

	workbook := excelize.NewFile()
	defer func() { _ = workbook.Close() }()

	index, err := workbook.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	workbook.SetActiveSheet(index)
	if err := workbook.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	if err := writeRow(workbook, 1, headerRow); err != nil {
		return err
	}
	for i, entry := range scrobbles {
		if err := writeRow(workbook, i+2, scrobbleRow(entry)); err != nil {
			return err
		}
	}

	return saveWithRetries(ctx, workbook, path, opts.Retries, opts.RetryDelay, logger)
}

func scrobbleRow(entry scrobble.Extended) []any {
	var epoch int64
	var utc string
	if !entry.ScrobbledAt.IsZero() {
		epoch = entry.ScrobbledAt.Unix()
		utc = entry.ScrobbledAt.UTC().Format(time.DateTime)
	}
	return []any{
		epoch,
		utc,
		entry.ArtistName,
		entry.ArtistMBID,
		entry.AlbumName,
		entry.AlbumMBID,
		entry.TrackName,
		entry.TrackMBID,
		entry.DurationSeconds,
		string(entry.Source),
		strings.Join(entry.Genres, ", "),
	}
}

func writeRow(workbook *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("locate row %d: %w", row, err)
	}
	if err := workbook.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}

// saveWithRetries attempts SaveAs repeatedly. Spreadsheet viewers hold an
// exclusive lock on open files, so failed saves usually resolve once the
// user closes the file.
func saveWithRetries(ctx context.Context, workbook *excelize.File, path string, retries int, delay time.Duration, logger *slog.Logger) error {
	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		lastErr = workbook.SaveAs(path)
		if lastErr == nil {
			return nil
		}
		if attempt == retries {
			break
		}
		logger.Warn("saving spreadsheet failed, is the file open elsewhere?",
			"path", path, "attempt", attempt, "error", lastErr)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return fmt.Errorf("save spreadsheet after %d attempts: %w", retries, lastErr)
}
