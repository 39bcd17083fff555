package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/go-hockey-leaders/internal/leaders"
	"github.com/pable/go-hockey-leaders/internal/model"
	"github.com/pable/go-hockey-leaders/internal/report"
	"github.com/pable/go-hockey-leaders/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Open a persistent session against the database. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func runShell(_ *cobra.Command, _ []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	cGreeting.Printf("hockeyleaders shell (%s)\n", cfg.TeamName())
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("hockeyleaders")
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		cmd, args := tokens[0], tokens[1:]

		switch cmd {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "list":
			shellList(db)
		case "leaders":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: leaders <stat> [goalies] [count]")
				continue
			}
			shellLeaders(db, args)
		case "records":
			kind := model.KindSkaters
			if len(args) > 0 {
				kind = model.ParseKind(args[0])
			}
			shellRecords(db, kind)
		case "player", "goalie":
			if len(args) == 0 {
				cError.Fprintf(os.Stderr, "usage: %s <name>\n", cmd)
				continue
			}
			kind := model.KindSkaters
			if cmd == "goalie" {
				kind = model.KindGoalies
			}
			if err := showPlayer(db, kind, strings.Join(args, " ")); err != nil {
				cError.Fprintf(os.Stderr, "error: %v\n", err)
			}
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", cmd)
		}
	}
	return nil
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"list", "list stored datasets"},
		{"leaders <stat>", "all-time skater leaders for a stat"},
		{"leaders <stat> goalies [count]", "same, for goalies, optionally top N"},
		{"records [skaters|goalies]", "single-season records"},
		{"player <name>", "a skater's seasons and career total"},
		{"goalie <name>", "a goalie's seasons and career total"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-34s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

func shellList(db *storage.DB) {
	list, err := db.ListDatasets()
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(list) == 0 {
		cMuted.Println("No datasets stored yet.")
		return
	}
	report.PrintDatasets(os.Stdout, list)
}

// shellLeaders parses "<stat> [kind] [count]" in any order after the stat.
func shellLeaders(db *storage.DB, args []string) {
	stat := args[0]
	kind, n := model.KindSkaters, cfg.Leaders
	for _, a := range args[1:] {
		if v, err := strconv.Atoi(a); err == nil && v > 0 {
			n = v
		} else if k := model.ParseKind(a); k != model.KindUnknown {
			kind = k
		}
	}

	ds, err := mustStored(db, kind)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if !ds.HasColumn(stat) {
		cWarn.Fprintf(os.Stderr, "stat %q not in the %s dataset\n", stat, kind)
		return
	}
	record, _ := leaders.SingleSeasonRecord(ds, stat)
	report.PrintLeaders(os.Stdout, leaders.Title(cfg.TeamName(), cfg.StatName(kind, stat)),
		ds.Seasons, leaders.Top(ds, stat, n), record)
}

func shellRecords(db *storage.DB, kind model.Kind) {
	if kind == model.KindUnknown {
		cWarn.Fprintln(os.Stderr, "kind must be skaters or goalies")
		return
	}
	recs, err := db.SeasonRecords(kind, cfg.Team.Short)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(recs) == 0 {
		cMuted.Println("No records stored yet.")
		return
	}
	report.PrintRecords(os.Stdout, recs, cfg.StatNames(kind))
}
