package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/simongoricar/lastfm-extended-scrobbles/internal/analysis"
	"github.com/simongoricar/lastfm-extended-scrobbles/internal/genres"
	"github.com/simongoricar/lastfm-extended-scrobbles/internal/library"
	"github.com/simongoricar/lastfm-extended-scrobbles/internal/logging"
	"github.com/simongoricar/lastfm-extended-scrobbles/internal/musicbrainz"
	"github.com/simongoricar/lastfm-extended-scrobbles/internal/scrobble"
	"github.com/simongoricar/lastfm-extended-scrobbles/internal/youtube"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var rescanFlag bool

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Extend the archived scrobbles and write the spreadsheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			libraryLogger := logging.WithComponent(logger, "library")
			var index *library.Index
			if rescanFlag {
				index, err = rebuildLibraryCache(cmd.Context(), cfg, libraryLogger)
			} else {
				index, err = loadLibraryIndex(cmd.Context(), cfg, libraryLogger)
			}
			if err != nil {
				return err
			}

			deps := analysis.Deps{
				Library: index,
				Durations: musicbrainz.New(cfg.MusicBrainz.BaseURL,
					musicbrainz.WithCacheTTL(time.Duration(cfg.MusicBrainz.CacheTTLMinutes)*time.Minute)),
				Logger: logging.WithComponent(logger, "analysis"),
			}
			if cfg.YouTube.Enabled {
				deps.Videos = youtube.New(cfg.YouTube.BaseURL,
					youtube.WithMaxResults(cfg.YouTube.MaxResults))
			}
			if cfg.Genres.Enabled {
				resolver, err := buildGenreResolver(cmd, ctx)
				if err != nil {
					return err
				}
				deps.Genres = resolver
			}

			stats, err := analysis.Run(cmd.Context(), deps, analysis.Options{
				ArchiveDir:      cfg.Paths.ScrobbleArchiveDir,
				SpreadsheetPath: cfg.Paths.SpreadsheetPath,
				LockPath:        cfg.RunLockPath(),
				Thresholds: analysis.Thresholds{
					MinArtistScore:       cfg.Matching.MinArtistScore,
					MinAlbumScore:        cfg.Matching.MinAlbumScore,
					MinTitleScore:        cfg.Matching.MinTitleScore,
					MinYouTubeTitleScore: cfg.Matching.MinYouTubeTitleScore,
				},
				ProgressInterval: cfg.Analysis.ParseLogInterval,
				WriteRetries:     cfg.Analysis.WriteRetries,
				WriteRetryDelay:  time.Duration(cfg.Analysis.WriteRetryDelaySeconds) * time.Second,
			})
			if err != nil {
				return err
			}

			printStats(cmd, stats, cfg.Paths.SpreadsheetPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&rescanFlag, "rescan-library", false, "Rescan the music library before analyzing")
	return cmd
}

func buildGenreResolver(cmd *cobra.Command, ctx *commandContext) (*genres.Resolver, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return nil, err
	}

	files, err := genres.Sync(cmd.Context(), genreDataDir(cfg), genres.SyncOptions{
		WhitelistURL: cfg.Genres.ListURL,
		TreeURL:      cfg.Genres.TreeURL,
		LicenseURL:   cfg.Genres.LicenseURL,
		Logger:       logging.WithComponent(logger, "genres"),
	})
	if err != nil {
		return nil, err
	}

	whitelist, err := genres.LoadWhitelist(files.Whitelist)
	if err != nil {
		return nil, err
	}
	tree, err := genres.LoadTree(files.Tree)
	if err != nil {
		return nil, err
	}

	client, err := ctx.lastfmClient()
	if err != nil {
		return nil, err
	}
	return genres.NewResolver(client, whitelist, tree, genres.ResolverOptions{
		MaxCount:        cfg.Genres.MaxCount,
		MinWeight:       cfg.Genres.MinWeight,
		MinSimilarity:   cfg.Matching.MinLastFmSimilarity,
		SearchPageLimit: cfg.LastFm.SearchPageLimit,
	}), nil
}

func printStats(cmd *cobra.Command, stats *analysis.Stats, spreadsheetPath string) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Analyzed %d scrobbles in %s.\n", stats.Total, stats.Elapsed.Round(time.Second))

	sources := []scrobble.Source{
		scrobble.SourceLocalLibraryMBID,
		scrobble.SourceLocalLibraryMetadata,
		scrobble.SourceMusicBrainz,
		scrobble.SourceYouTube,
		scrobble.SourceBasicInfo,
	}
	rows := make([][]string, 0, len(sources)+2)
	for _, source := range sources {
		rows = append(rows, []string{string(source), strconv.Itoa(stats.BySource[source])})
	}
	rows = append(rows, []string{"with genres", strconv.Itoa(stats.WithGenres)})
	rows = append(rows, []string{"skipped", strconv.Itoa(stats.Skipped)})

	fmt.Fprintln(out, renderTable(
		[]string{"Source", "Scrobbles"}, rows,
		[]columnAlignment{alignLeft, alignRight}))
	fmt.Fprintf(out, "Spreadsheet written to %s\n", spreadsheetPath)
}
