package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-hockey-leaders/internal/leaders"
	"github.com/pable/go-hockey-leaders/internal/report"
)

var (
	leadersKind  string
	leadersCount int
	leadersJSON  bool
)

var leadersCmd = &cobra.Command{
	Use:   "leaders <stat>",
	Short: "Print the all-time leaders for one stat",
	Long: `Prints the career leaders for a stat with their per-season values.

Examples:
  hockeyleaders leaders Scoring_PTS
  hockeyleaders leaders W --kind goalies --count 5`,
	Args: cobra.ExactArgs(1),
	RunE: runLeaders,
}

func init() {
	leadersCmd.Flags().StringVar(&leadersKind, "kind", "skaters", "skaters or goalies")
	leadersCmd.Flags().IntVar(&leadersCount, "count", 0, "number of leaders (default from config)")
	leadersCmd.Flags().BoolVar(&leadersJSON, "json", false, "print JSON instead of a table")
}

func runLeaders(cmd *cobra.Command, args []string) error {
	stat := args[0]
	kind, err := parseKind(leadersKind)
	if err != nil {
		return err
	}
	n := cfg.Leaders
	if leadersCount > 0 {
		n = leadersCount
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ds, err := mustStored(db, kind)
	if err != nil {
		return err
	}
	if !ds.HasColumn(stat) {
		return fmt.Errorf("stat %q not in the %s dataset", stat, kind)
	}

	top := leaders.Top(ds, stat, n)
	record, _ := leaders.SingleSeasonRecord(ds, stat)
	if leadersJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(top)
	}
	report.PrintLeaders(os.Stdout, leaders.Title(cfg.TeamName(), cfg.StatName(kind, stat)), ds.Seasons, top, record)
	return nil
}
