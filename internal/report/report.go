// Package report prints leader tables and store summaries to the terminal.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-hockey-leaders/internal/leaders"
	"github.com/pable/go-hockey-leaders/internal/model"
	"github.com/pable/go-hockey-leaders/internal/storage"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// FormatValue prints whole numbers without decimals and everything else
// with two.
func FormatValue(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// PrintLeaders prints the leader board with one column per season.
// A "*" marks players who hold the single-season record.
func PrintLeaders(w io.Writer, title string, seasons []string, top []leaders.Leader, record float64) {
	fmt.Fprintf(w, "\n%s\n\n", title)

	table := newTable(w)
	header := []any{" ", "#", "PLAYER", "POS", "SEASONS"}
	for _, s := range seasons {
		header = append(header, s)
	}
	header = append(header, "TOTAL")
	table.Header(header...)

	for _, l := range top {
		marker := " "
		for _, v := range l.BySeason {
			if v == record && v != 0 {
				marker = "*"
			}
		}
		row := []any{marker, strconv.Itoa(l.Rank), l.Label(), l.Pos, strconv.Itoa(l.Seasons)}
		for _, v := range l.BySeason {
			row = append(row, FormatValue(v))
		}
		row = append(row, FormatValue(l.Value))
		table.Append(row...)
	}
	table.Render()
	fmt.Fprintf(w, "Single season record: %s\n", FormatValue(record))
}

// PrintDatasets lists stored datasets.
func PrintDatasets(w io.Writer, list []storage.DatasetInfo) {
	table := newTable(w)
	table.Header("TEAM", "KIND", "SEASONS", "PLAYERS", "ROWS", "UPDATED")
	for _, d := range list {
		span := ""
		if n := len(d.Seasons); n > 0 {
			span = d.Seasons[0]
			if n > 1 {
				span += "-" + d.Seasons[n-1]
			}
		}
		table.Append(
			d.Team,
			d.Kind.String(),
			span,
			strconv.Itoa(d.Players),
			strconv.Itoa(d.Rows),
			d.UpdatedAt,
		)
	}
	table.Render()
}

// PrintRecords prints single-season records, using display names where
// the catalog has one.
func PrintRecords(w io.Writer, recs []storage.Record, names []model.StatName) {
	display := make(map[string]string, len(names))
	for _, n := range names {
		display[n.Key] = n.Name
	}

	table := newTable(w)
	table.Header("STAT", "NAME", "RECORD", "PLAYER", "SEASON")
	for _, r := range recs {
		table.Append(r.Stat, display[r.Stat], FormatValue(r.Value), r.Player, r.Season)
	}
	table.Render()
}

// PrintPlayerLines prints a player's seasons and career total for the given
// columns.
func PrintPlayerLines(w io.Writer, lines []model.StatLine, columns []string) {
	table := newTable(w)
	header := []any{"SEASON", "AGE", "POS"}
	for _, c := range columns {
		header = append(header, c)
	}
	table.Header(header...)

	for _, l := range lines {
		row := []any{l.Season, FormatValue(l.Age), l.Pos}
		for _, c := range columns {
			row = append(row, FormatValue(l.Stat(c)))
		}
		table.Append(row...)
	}
	table.Render()
}

// PrintQuery prints the result of a raw SQL query.
func PrintQuery(w io.Writer, cols []string, rows [][]string) {
	table := newTable(w)

	colsAny := make([]any, len(cols))
	for i, c := range cols {
		colsAny[i] = c
	}
	table.Header(colsAny...)

	for _, row := range rows {
		rowAny := make([]any, len(row))
		for i, v := range row {
			rowAny[i] = v
		}
		table.Append(rowAny...)
	}
	table.Render()
	fmt.Fprintf(w, "\n(%d rows)\n", len(rows))
}
