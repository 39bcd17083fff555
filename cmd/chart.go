package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pable/go-hockey-leaders/internal/chart"
	"github.com/pable/go-hockey-leaders/internal/leaders"
	"github.com/pable/go-hockey-leaders/internal/model"
	"github.com/pable/go-hockey-leaders/internal/storage"
)

var (
	chartFormats string
	chartCount   int
	chartStat    string
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render all-time leader charts for every configured stat",
	Long: `Renders one chart per stat in the skater and goalie catalogs. Files go to
<output>/<TEAM>/<format>/top_leaders_<stat>_stacked.<format> (goalies use
top_goalies_leaders_...). The stored datasets are used; when none exist they
are built from the season CSVs first.

Example:
  hockeyleaders chart --formats png,html,svg --count 10`,
	Args: cobra.NoArgs,
	RunE: runChart,
}

func init() {
	chartCmd.Flags().StringVar(&chartFormats, "formats", "", "comma-separated formats: png,svg,html,pdf (default from config)")
	chartCmd.Flags().IntVar(&chartCount, "count", 0, "number of leaders per chart (default from config)")
	chartCmd.Flags().StringVar(&chartStat, "stat", "", "only render this stat")
}

func runChart(cmd *cobra.Command, args []string) error {
	if chartFormats != "" {
		cfg.Formats = strings.Split(chartFormats, ",")
	}
	if chartCount > 0 {
		cfg.Leaders = chartCount
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()
	return chartAll(db)
}

func chartAll(db *storage.DB) error {
	fl := loadFlags()
	dir := filepath.Join(cfg.OutputDir, cfg.Team.Short)
	var written int
	for _, kind := range kinds {
		ds, err := storedOrBuilt(db, kind, fl)
		if err != nil {
			return err
		}
		n, err := renderCharts(ds, dir)
		if err != nil {
			return err
		}
		written += n
	}
	fmt.Fprintf(os.Stdout, "Wrote %d chart file(s) under %s\n", written, dir)
	return nil
}

// renderCharts draws every catalog stat of ds that the dataset carries.
func renderCharts(ds *model.Dataset, dir string) (int, error) {
	var written int
	for _, st := range cfg.StatNames(ds.Kind) {
		if chartStat != "" && st.Key != chartStat {
			continue
		}
		if !ds.HasColumn(st.Key) {
			log.Warn().Str("kind", ds.Kind.String()).Str("stat", st.Key).Msg("stat not in dataset, skipping chart")
			continue
		}
		c := leaders.Build(ds, st.Key, st.Name, cfg.TeamName(), cfg.Leaders)
		base := chart.FileBase(st.Key, ds.Kind == model.KindGoalies)
		paths, err := chart.WriteFiles(dir, base, c, cfg.Formats)
		if err != nil {
			return written, fmt.Errorf("chart %s: %w", st.Key, err)
		}
		for _, p := range paths {
			log.Debug().Str("file", p).Msg("chart written")
		}
		written += len(paths)
	}
	return written, nil
}
