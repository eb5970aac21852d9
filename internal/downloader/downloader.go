package downloader

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/simongoricar/lastfm-extended-scrobbles/internal/lastfm"
	"github.com/simongoricar/lastfm-extended-scrobbles/internal/scrobble"
)

// HistorySource is the slice of the Last.fm API the downloader consumes.
type HistorySource interface {
	GetRecentTracks(ctx context.Context, user string, opts lastfm.RecentTracksOptions) (*lastfm.RecentTracksPage, error)
}

// Options configures a download run.
type Options struct {
	// Username is the Last.fm account whose history is archived.
	Username string
	// ArchiveDir is where archive files are read and written.
	ArchiveDir string
	// PerPage is the history page size.
	PerPage int
	// Full ignores existing archives and downloads the whole history.
	Full bool
	// From and To bound the downloaded range; zero values mean unbounded.
	From time.Time
	To   time.Time
	// Now stands in for the current time; zero means time.Now.
	Now    time.Time
	Logger *slog.Logger
}

// Result summarizes a download run.
type Result struct {
	// Spans is how many missing ranges were downloaded.
	Spans int
	// Scrobbles is the total number of archived entries.
	Scrobbles int
	// ArchivePaths lists the files written, in range order.
	ArchivePaths []string
}

// Run downloads the parts of the user's history that no archive covers yet
// and writes one archive file per missing range.
func Run(ctx context.Context, source HistorySource, opts Options) (*Result, error) {
	if opts.Username == "" {
		return nil, fmt.Errorf("username must not be empty")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	var existing []scrobble.ArchiveFile
	if !opts.Full {
		files, err := scrobble.ScanDir(opts.ArchiveDir)
		if err != nil {
			return nil, err
		}
		existing = files
	}

	missing := clipSpans(scrobble.MissingSpans(existing, now), opts.From, opts.To)
	if len(missing) == 0 {
		logger.Info("scrobble archive is up to date", "archives", len(existing))
		return &Result{}, nil
	}
	logger.Info("downloading scrobble history", "user", opts.Username, "missing_spans", len(missing))

	result := &Result{Spans: len(missing)}
	for _, span := range missing {
		tracks, err := downloadSpan(ctx, source, opts, span, logger)
		if err != nil {
			return nil, err
		}

		archive := scrobble.Archive{
			Metadata: scrobble.ArchiveMetadata{
				ArchivedAt: now,
				Username:   opts.Username,
				From:       span.From,
				To:         span.To,
			},
			Tracks: tracks,
		}
		path, err := scrobble.Write(opts.ArchiveDir, archive)
		if err != nil {
			return nil, err
		}
		logger.Info("wrote scrobble archive",
			"path", path, "from", span.From, "to", span.To, "scrobbles", len(tracks))

		result.Scrobbles += len(tracks)
		result.ArchivePaths = append(result.ArchivePaths, path)
	}
	return result, nil
}

// clipSpans intersects missing spans with an optional [from, to) window.
func clipSpans(spans []scrobble.TimeSpan, from, to time.Time) []scrobble.TimeSpan {
	if from.IsZero() && to.IsZero() {
		return spans
	}
	var clipped []scrobble.TimeSpan
	for _, span := range spans {
		if !from.IsZero() && span.From.Before(from) {
			span.From = from
		}
		if !to.IsZero() && span.To.After(to) {
			span.To = to
		}
		if span.To.After(span.From) {
			clipped = append(clipped, span)
		}
	}
	return clipped
}

// downloadSpan pages through one time range. Nowplaying entries carry no
// timestamp and are excluded from archives.
func downloadSpan(ctx context.Context, source HistorySource, opts Options, span scrobble.TimeSpan, logger *slog.Logger) ([]lastfm.Track, error) {
	var tracks []lastfm.Track
	for page := 1; ; page++ {
		result, err := source.GetRecentTracks(ctx, opts.Username, lastfm.RecentTracksOptions{
			PerPage:  opts.PerPage,
			Page:     page,
			Extended: true,
			From:     &span.From,
			To:       &span.To,
		})
		if err != nil {
			return nil, fmt.Errorf("download page %d of %v..%v: %w", page, span.From, span.To, err)
		}

		for _, track := range result.Tracks {
			if track.NowPlaying {
				continue
			}
			tracks = append(tracks, track)
		}
		logger.Debug("downloaded history page",
			"page", result.Page, "total_pages", result.TotalPages, "collected", len(tracks))

		if result.TotalPages <= result.Page {
			return tracks, nil
		}
	}
}
