package library

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

var audioExtensions = map[string]bool{
	".mp3":  true,
	".ogg":  true,
	".wav":  true,
	".flac": true,
	".m4a":  true,
}

// ScanOptions controls a library scan.
type ScanOptions struct {
	// Workers bounds the number of files read concurrently.
	Workers int
	// LogInterval emits a progress line every N files when positive.
	LogInterval int
	Logger      *slog.Logger
}

// Scan walks the music library root and reads the tags of every audio file
// beneath it. Files whose tags cannot be parsed are logged and skipped.
// Tracks come back in file path order regardless of worker scheduling.
func Scan(ctx context.Context, root string, opts ScanOptions) ([]Track, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if audioExtensions[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	logger.Info("scanning music library", "root", root, "files", len(paths))

	tracks := make([]Track, len(paths))
	read := make([]bool, len(paths))

	var mu sync.Mutex
	processed := 0

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for index, path := range paths {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			track, err := ReadTrack(path)
			if err != nil {
				logger.Warn("skipping unreadable audio file", "path", path, "error", err)
			} else {
				tracks[index] = track
				read[index] = true
			}
			mu.Lock()
			processed++
			if opts.LogInterval > 0 && processed%opts.LogInterval == 0 {
				logger.Info("library scan progress", "processed", processed, "total", len(paths))
			}
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	result := make([]Track, 0, len(tracks))
	for index, track := range tracks {
		if read[index] {
			result = append(result, track)
		}
	}
	logger.Info("library scan complete", "tracks", len(result), "skipped", len(paths)-len(result))
	return result, nil
}
