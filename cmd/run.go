package cmd

import (
	"github.com/spf13/cobra"
)

var runSkipDownload bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Download, aggregate and chart in one go",
	Args:  cobra.NoArgs,
	RunE:  runAll,
}

func init() {
	runCmd.Flags().BoolVar(&runSkipDownload, "skip-download", false, "use the season CSVs already on disk")
}

func runAll(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !runSkipDownload {
		downloadSeasons(cmd)
		if err := cmd.Context().Err(); err != nil {
			return err
		}
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := aggregateAll(db); err != nil {
		return err
	}
	return chartAll(db)
}
