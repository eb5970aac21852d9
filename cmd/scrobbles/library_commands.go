package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/simongoricar/lastfm-extended-scrobbles/internal/config"
	"github.com/simongoricar/lastfm-extended-scrobbles/internal/library"
	"github.com/simongoricar/lastfm-extended-scrobbles/internal/logging"
)

func newLibraryCommand(ctx *commandContext) *cobra.Command {
	libraryCmd := &cobra.Command{
		Use:   "library",
		Short: "Local music library cache",
	}

	libraryCmd.AddCommand(newLibraryScanCommand(ctx))
	libraryCmd.AddCommand(newLibraryStatsCommand(ctx))

	return libraryCmd
}

func newLibraryScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Scan the music library and rebuild the cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			index, err := rebuildLibraryCache(cmd.Context(), cfg, logging.WithComponent(logger, "library"))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cached %d tracks from %s.\n",
				index.Size(), cfg.Paths.MusicLibraryRoot)
			return nil
		},
	}
}

func newLibraryStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show library cache statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := library.OpenStore(cfg.LibraryDatabasePath())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			tracks, err := store.All(cmd.Context())
			if err != nil {
				return err
			}
			index := library.NewIndex(tracks)

			withMBID := 0
			for _, track := range tracks {
				if track.TrackMBID != "" {
					withMBID++
				}
			}

			rows := [][]string{
				{"Tracks", strconv.Itoa(index.Size())},
				{"Artists", strconv.Itoa(len(index.ArtistNames()))},
				{"Albums", strconv.Itoa(len(index.AlbumNames()))},
				{"Tracks with MBID", strconv.Itoa(withMBID)},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Metric", "Value"}, rows,
				[]columnAlignment{alignLeft, alignRight}))
			return nil
		},
	}
}

// rebuildLibraryCache scans the configured library root and replaces the
// cache contents.
func rebuildLibraryCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*library.Index, error) {
	if cfg.Paths.MusicLibraryRoot == "" {
		return nil, fmt.Errorf("paths.music_library_root is not configured")
	}

	tracks, err := library.Scan(ctx, cfg.Paths.MusicLibraryRoot, library.ScanOptions{
		Workers:     cfg.Analysis.ScanWorkers,
		LogInterval: cfg.Analysis.CacheLogInterval,
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}

	store, err := library.OpenStore(cfg.LibraryDatabasePath())
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()

	if err := store.ReplaceAll(ctx, tracks); err != nil {
		return nil, err
	}
	return library.NewIndex(tracks), nil
}

// loadLibraryIndex returns the cached library, scanning first when the
// cache is empty and a library root is configured.
func loadLibraryIndex(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*library.Index, error) {
	store, err := library.OpenStore(cfg.LibraryDatabasePath())
	if err != nil {
		return nil, err
	}

	tracks, err := store.All(ctx)
	closeErr := store.Close()
	if err != nil {
		return nil, err
	}
	if closeErr != nil {
		return nil, closeErr
	}

	if len(tracks) == 0 && cfg.Paths.MusicLibraryRoot != "" {
		return rebuildLibraryCache(ctx, cfg, logger)
	}
	return library.NewIndex(tracks), nil
}
