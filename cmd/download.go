package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pable/go-hockey-leaders/internal/scrape"
)

// download command flags.
var (
	// downloadTeam overrides the configured team code (e.g. "SEA").
	downloadTeam string
	// downloadFrom and downloadTo bound the season range, inclusive.
	downloadFrom int
	downloadTo   int
	// downloadTarget is the table id returned to the caller; it only affects logging.
	downloadTarget string
	// downloadDelay pauses between page requests.
	downloadDelay time.Duration
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download team season pages and save their tables as CSV",
	Long: `Fetches https://www.hockey-reference.com/teams/<TEAM>/<season>.html for every
season in range and saves the skater and goalie tables under the data directory.

Example:
  hockeyleaders download --team SEA --from 2022 --to 2026`,
	Args: cobra.NoArgs,
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().StringVar(&downloadTeam, "team", "", "team code (default from config)")
	downloadCmd.Flags().IntVar(&downloadFrom, "from", 0, "first season (default from config)")
	downloadCmd.Flags().IntVar(&downloadTo, "to", 0, "last season (default from config)")
	downloadCmd.Flags().StringVar(&downloadTarget, "target", "player_stats", "table id to report on")
	downloadCmd.Flags().DurationVar(&downloadDelay, "delay", 0, "pause between requests (default from config)")
}

func runDownload(cmd *cobra.Command, args []string) error {
	if downloadTeam != "" {
		cfg.Team.Short = downloadTeam
	}
	if downloadFrom > 0 {
		cfg.FirstSeason = downloadFrom
	}
	if downloadTo > 0 {
		cfg.LastSeason = downloadTo
	}
	if downloadDelay > 0 {
		cfg.Fetch.Delay = downloadDelay
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	saved := downloadSeasons(cmd)
	fmt.Fprintf(os.Stdout, "Saved %d table(s) under %s\n", saved, cfg.DataDir)
	return cmd.Context().Err()
}

// downloadSeasons scrapes every configured season and returns the number of
// CSV files written. Pages that fail are logged and skipped.
func downloadSeasons(cmd *cobra.Command) int {
	ctx := cmd.Context()
	d := scrape.New(newFetchClient(), tableIDs(), cfg.DataDir)

	var saved int
	for i, season := range cfg.Seasons() {
		if i > 0 && cfg.Fetch.Delay > 0 {
			select {
			case <-ctx.Done():
				return saved
			case <-time.After(cfg.Fetch.Delay):
			}
		}
		if ctx.Err() != nil {
			return saved
		}
		url := scrape.TeamSeasonURL(cfg.BaseURL, cfg.Team.Short, season)
		log.Info().Int("season", season).Msg("downloading season")
		res := d.DownloadTables(ctx, url, downloadTarget)
		if res == nil {
			continue
		}
		saved += res.Saved
		if res.Target == nil {
			log.Debug().Str("target", downloadTarget).Int("season", season).Msg("target table not on page")
		}
	}
	return saved
}
