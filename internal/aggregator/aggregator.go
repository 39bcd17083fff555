package aggregator

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/pable/go-hockey-leaders/internal/flags"
	"github.com/pable/go-hockey-leaders/internal/model"
)

// AddTotals appends exactly one Total row per player to ds, in first-seen
// player order, after all season rows. Any Total rows already present are
// replaced. It returns the number of Total rows added.
//
// A player with a single season row gets a copy of that row with the season
// label replaced. Otherwise summable numeric columns are added up across
// seasons and rate columns are recomputed from the summed components.
func AddTotals(ds *model.Dataset, fl *flags.Table) (int, error) {
	if ds == nil {
		return 0, fmt.Errorf("nil Dataset")
	}

	// ---- Pass 1: drop stale totals, fill per-season derived columns. ----

	seasonRows := ds.Rows[:0]
	for _, r := range ds.Rows {
		if !r.IsTotal() {
			seasonRows = append(seasonRows, r)
		}
	}
	ds.Rows = seasonRows
	for i := range ds.Rows {
		for _, name := range deriveSeason(ds.Kind, &ds.Rows[i]) {
			ds.AddColumn(name)
		}
	}

	// ---- Pass 2: group season rows by player. ----

	byPlayer := make(map[string][]model.StatLine)
	for _, r := range ds.Rows {
		byPlayer[r.Player] = append(byPlayer[r.Player], r)
	}

	// ---- Pass 3: one Total per player. ----

	var totals []model.StatLine
	for _, p := range ds.Players() {
		rows := byPlayer[p]
		if len(rows) == 1 {
			t := rows[0].Clone()
			t.Season = model.TotalSeason
			totals = append(totals, t)
			continue
		}

		t := sumRows(ds.Columns, rows)
		if f, ok := fl.Lookup(p); ok {
			t.Flag = f
		} else {
			log.Warn().Str("player", p).Msg("missing flag")
		}
		for _, name := range deriveTotal(ds.Kind, &t) {
			ds.AddColumn(name)
		}
		totals = append(totals, t)
	}

	ds.Rows = append(ds.Rows, totals...)
	return len(totals), nil
}

// sumRows builds a career row from two or more season rows of one player.
// Age is taken from the last season and Pos from the first.
func sumRows(columns []string, rows []model.StatLine) model.StatLine {
	first, last := rows[0], rows[len(rows)-1]
	t := model.StatLine{
		Player:  first.Player,
		Pos:     first.Pos,
		Season:  model.TotalSeason,
		Age:     last.Age,
		Seasons: len(rows),
		Stats:   make(map[string]float64, len(columns)),
		Text:    make(map[string]string),
	}
	for _, c := range columns {
		if IsRate(c) {
			continue
		}
		var sum float64
		for _, r := range rows {
			sum += r.Stat(c)
		}
		t.Stats[c] = sum
	}
	return t
}

// Sum returns the column-wise sum of a stat across rows, treating missing
// values as 0.
func Sum(rows []model.StatLine, stat string) float64 {
	var s float64
	for _, r := range rows {
		s += r.Stat(stat)
	}
	return s
}
