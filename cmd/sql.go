package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-hockey-leaders/internal/report"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the leaders database",
	Long: `Run an arbitrary SQL query against the leaders database and print results as a table.

Schema overview:
  datasets(kind, team, seasons JSON, columns JSON, updated_at)
  stat_lines(kind, team, season, player, flag, pos, age, seasons, row_order)
  stat_values(kind, team, season, player, stat, value)
  stat_text(kind, team, season, player, col, value)

kind is 'skaters' or 'goalies'; career rows have season = 'Total'.

Example:
  hockeyleaders sql "SELECT player, value FROM stat_values
    WHERE kind = 'skaters' AND season = 'Total' AND stat = 'Scoring_PTS'
    ORDER BY value DESC LIMIT 5"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}
	report.PrintQuery(os.Stdout, cols, rows)
	return nil
}
