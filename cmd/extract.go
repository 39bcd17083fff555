package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-hockey-leaders/internal/scrape"
)

var (
	extractURL    string
	extractTarget string
	extractAll    bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <page.html>",
	Short: "Extract tables from a saved page without fetching it",
	Long: `Runs the table extractor over an HTML file saved from a team season page.
The --url flag supplies the page address used for the output path and the
provenance line; it is never fetched.

Example:
  hockeyleaders extract 2024.html --url https://www.hockey-reference.com/teams/SEA/2024.html`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractURL, "url", "", "page URL the file was saved from (required)")
	extractCmd.Flags().StringVar(&extractTarget, "target", "player_stats", "table id to print a preview of")
	extractCmd.Flags().BoolVar(&extractAll, "all", false, "save every table on the page, not only the configured ones")
	_ = extractCmd.MarkFlagRequired("url")
}

func runExtract(cmd *cobra.Command, args []string) error {
	body, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read page: %w", err)
	}

	d := scrape.New(nil, tableIDs(), cfg.DataDir)
	d.Extractor.All = extractAll
	res, err := d.ExtractHTML(body, extractURL, extractTarget)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Saved %d table(s) under %s\n", res.Saved, cfg.DataDir)
	if res.Target != nil {
		fmt.Fprintf(os.Stdout, "%s: %d rows, %d columns\n", extractTarget, len(res.Target.Rows), len(res.Target.Columns))
	}
	return nil
}
