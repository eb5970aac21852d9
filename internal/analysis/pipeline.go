package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/simongoricar/lastfm-extended-scrobbles/internal/report"
	"github.com/simongoricar/lastfm-extended-scrobbles/internal/scrobble"
)

// Options configures a pipeline run.
type Options struct {
	// ArchiveDir holds the scrobble archives to analyze.
	ArchiveDir string
	// SpreadsheetPath is where the report lands.
	SpreadsheetPath string
	// LockPath guards against concurrent runs over the same data dir.
	// Empty disables locking.
	LockPath string

	Thresholds Thresholds

	// ProgressInterval logs progress every N scrobbles when positive.
	ProgressInterval int

	// WriteRetries and WriteRetryDelay control spreadsheet saving.
	WriteRetries    int
	WriteRetryDelay time.Duration
}

// Run executes the full pipeline. Scrobbles that fail to resolve are
// skipped and counted; only infrastructure failures abort the run.
func Run(ctx context.Context, deps Deps, opts Options) (*Stats, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if opts.LockPath != "" {
		lock := flock.New(opts.LockPath)
		locked, err := lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("acquire run lock: %w", err)
		}
		if !locked {
			return nil, fmt.Errorf("another run holds the lock at %s", opts.LockPath)
		}
		defer func() { _ = lock.Unlock() }()
	}

	stats := newStats(uuid.NewString())
	started := time.Now()
	logger = logger.With("run_id", stats.RunID)

	tracks, err := scrobble.LoadAll(opts.ArchiveDir)
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("no archived scrobbles found in %s, run the downloader first", opts.ArchiveDir)
	}
	stats.Total = len(tracks)
	logger.Info("starting scrobble analysis",
		"scrobbles", len(tracks), "library_tracks", deps.Library.Size())

	deps.Logger = logger
	res := newResolver(deps, opts.Thresholds)

	extended := make([]scrobble.Extended, 0, len(tracks))
	for i, track := range tracks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw := scrobble.FromTrack(track)
		entry, err := res.resolve(ctx, raw)
		if err != nil {
			logger.Warn("skipping scrobble",
				"artist", raw.ArtistName, "track", raw.TrackName, "error", err)
			stats.Skipped++
			continue
		}
		res.fillGenres(ctx, &entry)

		extended = append(extended, entry)
		stats.record(entry)

		if opts.ProgressInterval > 0 && (i+1)%opts.ProgressInterval == 0 {
			logger.Info("analysis progress", "processed", i+1, "total", len(tracks))
		}
	}

	if err := report.Write(ctx, opts.SpreadsheetPath, extended, report.WriterOptions{
		Retries:    opts.WriteRetries,
		RetryDelay: opts.WriteRetryDelay,
		Logger:     logger,
	}); err != nil {
		return nil, err
	}

	stats.Elapsed = time.Since(started)
	logger.Info("analysis complete",
		"processed", len(extended), "skipped", stats.Skipped,
		"with_genres", stats.WithGenres, "elapsed", stats.Elapsed,
		"spreadsheet", opts.SpreadsheetPath)
	return stats, nil
}
