package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-hockey-leaders/internal/report"
)

var recordsKind string

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Print single-season team records for every stat",
	Args:  cobra.NoArgs,
	RunE:  runRecords,
}

func init() {
	recordsCmd.Flags().StringVar(&recordsKind, "kind", "skaters", "skaters or goalies")
}

func runRecords(cmd *cobra.Command, args []string) error {
	kind, err := parseKind(recordsKind)
	if err != nil {
		return err
	}
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	recs, err := db.SeasonRecords(kind, cfg.Team.Short)
	if err != nil {
		return fmt.Errorf("season records: %w", err)
	}
	if len(recs) == 0 {
		fmt.Fprintf(os.Stdout, "No %s data stored for %s. Run 'hockeyleaders aggregate' first.\n", kind, cfg.Team.Short)
		return nil
	}
	report.PrintRecords(os.Stdout, recs, cfg.StatNames(kind))
	return nil
}
