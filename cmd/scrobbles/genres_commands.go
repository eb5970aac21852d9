package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/simongoricar/lastfm-extended-scrobbles/internal/config"
	"github.com/simongoricar/lastfm-extended-scrobbles/internal/genres"
	"github.com/simongoricar/lastfm-extended-scrobbles/internal/logging"
)

func genreDataDir(cfg *config.Config) string {
	return filepath.Join(cfg.Paths.DataDir, "genres")
}

func newGenresCommand(ctx *commandContext) *cobra.Command {
	genresCmd := &cobra.Command{
		Use:   "genres",
		Short: "Genre data management",
	}

	genresCmd.AddCommand(newGenresSyncCommand(ctx))

	return genresCmd
}

func newGenresSyncCommand(ctx *commandContext) *cobra.Command {
	var forceFlag bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Download the beets genre whitelist and tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			files, err := genres.Sync(cmd.Context(), genreDataDir(cfg), genres.SyncOptions{
				WhitelistURL: cfg.Genres.ListURL,
				TreeURL:      cfg.Genres.TreeURL,
				LicenseURL:   cfg.Genres.LicenseURL,
				Logger:       logging.WithComponent(logger, "genres"),
				Force:        forceFlag,
			})
			if err != nil {
				return err
			}

			whitelist, err := genres.LoadWhitelist(files.Whitelist)
			if err != nil {
				return err
			}
			tree, err := genres.LoadTree(files.Tree)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Genre data ready: %d whitelisted genres, %d tree entries.\n",
				whitelist.Size(), tree.Size())
			return nil
		},
	}

	cmd.Flags().BoolVar(&forceFlag, "force", false, "Redownload files that already exist")
	return cmd
}
