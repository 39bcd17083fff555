package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-hockey-leaders/internal/model"
	"github.com/pable/go-hockey-leaders/internal/report"
	"github.com/pable/go-hockey-leaders/internal/storage"
)

var playerKind string

// playerCmd prints one player's seasons and career total.
var playerCmd = &cobra.Command{
	Use:   "player <name>",
	Short: "Season-by-season stats and career total for a player",
	Long: `Prints every stored season of a player followed by the career Total row,
using the stats in the configured catalog.

Example:
  hockeyleaders player Jared McCann`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlayer,
}

func init() {
	playerCmd.Flags().StringVar(&playerKind, "kind", "skaters", "skaters or goalies")
}

func runPlayer(cmd *cobra.Command, args []string) error {
	kind, err := parseKind(playerKind)
	if err != nil {
		return err
	}
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()
	return showPlayer(db, kind, strings.Join(args, " "))
}

func showPlayer(db *storage.DB, kind model.Kind, name string) error {
	lines, err := db.PlayerLines(kind, cfg.Team.Short, name)
	if err != nil {
		return fmt.Errorf("query %s: %w", name, err)
	}
	if len(lines) == 0 {
		fmt.Fprintf(os.Stderr, "No %s data found for %q\n", kind, name)
		return nil
	}

	var cols []string
	for _, st := range cfg.StatNames(kind) {
		cols = append(cols, st.Key)
	}
	last := lines[len(lines)-1]
	fmt.Fprintf(os.Stdout, "\n%s\n\n", last.Label())
	report.PrintPlayerLines(os.Stdout, lines, cols)
	return nil
}
