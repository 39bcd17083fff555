package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/go-hockey-leaders/internal/season"
	"github.com/pable/go-hockey-leaders/internal/storage"
)

var aggregateExport bool

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Load season CSVs, add career totals and store them",
	Long: `Loads every downloaded season of the configured team for skaters and goalies,
appends one Total row per player and replaces the stored datasets. The career
rows are also written to <output>/<TEAM>/<TEAM>_<kind>_totals.csv.`,
	Args: cobra.NoArgs,
	RunE: runAggregate,
}

func init() {
	aggregateCmd.Flags().BoolVar(&aggregateExport, "export", true, "write totals CSV files")
}

func runAggregate(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()
	return aggregateAll(db)
}

func aggregateAll(db *storage.DB) error {
	fl := loadFlags()
	for _, kind := range kinds {
		ds, err := buildDataset(kind, fl)
		if err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}
		if err := db.SaveDataset(ds); err != nil {
			return fmt.Errorf("save %s: %w", kind, err)
		}
		fmt.Fprintf(os.Stdout, "%-8s %d seasons, %d players stored\n", kind, len(ds.Seasons), len(ds.Totals()))
		if aggregateExport {
			path, err := season.ExportTotals(filepath.Join(cfg.OutputDir, cfg.Team.Short), ds)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "         totals written to %s\n", path)
		}
	}
	return nil
}
