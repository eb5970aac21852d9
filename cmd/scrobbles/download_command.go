package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/simongoricar/lastfm-extended-scrobbles/internal/downloader"
	"github.com/simongoricar/lastfm-extended-scrobbles/internal/logging"
)

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var userFlag string
	var fullFlag bool
	var fromFlag, toFlag string

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download missing scrobble history into the local archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			client, err := ctx.lastfmClient()
			if err != nil {
				return err
			}

			username := userFlag
			if username == "" {
				username = cfg.LastFm.Username
			}
			if username == "" {
				return fmt.Errorf("no Last.fm username configured, set lastfm.username or pass --user")
			}

			from, err := parseTimeFlag(fromFlag)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			to, err := parseTimeFlag(toFlag)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}

			result, err := downloader.Run(cmd.Context(), client, downloader.Options{
				Username:   username,
				ArchiveDir: cfg.Paths.ScrobbleArchiveDir,
				PerPage:    cfg.LastFm.PageSize,
				Full:       fullFlag,
				From:       from,
				To:         to,
				Logger:     logging.WithComponent(logger, "download"),
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.Spans == 0 {
				fmt.Fprintln(out, "Archive already covers the full history, nothing to download.")
				return nil
			}
			fmt.Fprintf(out, "Downloaded %d scrobbles across %d archive file(s).\n", result.Scrobbles, result.Spans)
			for _, path := range result.ArchivePaths {
				fmt.Fprintf(out, "  %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&userFlag, "user", "u", "", "Last.fm username (overrides lastfm.username)")
	cmd.Flags().BoolVar(&fullFlag, "full", false, "Redownload the whole history, ignoring existing archives")
	cmd.Flags().StringVar(&fromFlag, "from", "", "Only download scrobbles at or after this time (YYYY-MM-DD, RFC 3339, or epoch seconds)")
	cmd.Flags().StringVar(&toFlag, "to", "", "Only download scrobbles before this time (YYYY-MM-DD, RFC 3339, or epoch seconds)")
	return cmd
}

// parseTimeFlag accepts a date, an RFC 3339 timestamp, or epoch seconds.
func parseTimeFlag(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		return parsed.UTC(), nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed.UTC(), nil
	}
	if epoch, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Unix(epoch, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", value)
}
