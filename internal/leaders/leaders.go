// Package leaders ranks career totals and turns them into leader charts.
package leaders

import (
	"image/color"
	"math"
	"sort"

	"github.com/pable/go-hockey-leaders/internal/chart"
	"github.com/pable/go-hockey-leaders/internal/model"
)

// PlusMinus goes negative, so its chart groups season bars instead of
// stacking them.
const PlusMinus = "PM"

// DefaultCount is how many leaders a chart shows.
const DefaultCount = 15

// RecordLegend labels the single-season record swatch.
const RecordLegend = "Single Season Record"

// Leader is one player's career line for a single stat.
type Leader struct {
	Rank     int       `json:"rank"`
	Player   string    `json:"player"`
	Flag     string    `json:"flag,omitempty"`
	Pos      string    `json:"pos,omitempty"`
	Seasons  int       `json:"seasons"`
	Value    float64   `json:"value"`
	BySeason []float64 `json:"by_season"` // aligned with Dataset.Seasons
}

// Label is the chart label for the leader.
func (l Leader) Label() string {
	return model.StatLine{Player: l.Player, Flag: l.Flag}.Label()
}

// Top returns the n Total rows with the highest value of stat, ties broken
// by player name. n <= 0 returns every player.
func Top(ds *model.Dataset, stat string, n int) []Leader {
	totals := ds.Totals()
	sort.SliceStable(totals, func(i, j int) bool {
		a, b := totals[i].Stat(stat), totals[j].Stat(stat)
		if a != b {
			return a > b
		}
		return totals[i].Player < totals[j].Player
	})
	if n > 0 && len(totals) > n {
		totals = totals[:n]
	}

	out := make([]Leader, len(totals))
	for i, t := range totals {
		l := Leader{
			Rank:     i + 1,
			Player:   t.Player,
			Flag:     t.Flag,
			Pos:      t.Pos,
			Seasons:  t.Seasons,
			Value:    t.Stat(stat),
			BySeason: make([]float64, len(ds.Seasons)),
		}
		for j, s := range ds.Seasons {
			if r, ok := ds.Lookup(t.Player, s); ok {
				l.BySeason[j] = r.Stat(stat)
			}
		}
		out[i] = l
	}
	return out
}

// SingleSeasonRecord returns the best single-season value of stat. ok is
// false when the dataset has no season rows.
func SingleSeasonRecord(ds *model.Dataset, stat string) (record float64, ok bool) {
	record = math.Inf(-1)
	for _, r := range ds.Rows {
		if r.IsTotal() {
			continue
		}
		record = math.Max(record, r.Stat(stat))
		ok = true
	}
	if !ok {
		return 0, false
	}
	return record, true
}

// Title is the chart heading for a team and stat display name.
func Title(team, statName string) string {
	return team + " All-Time Leaders in " + statName
}

// Build assembles the leader chart: one series per season colored along the
// light-to-dark blue spectrum, with bars equal to the single-season record
// drawn in red.
func Build(ds *model.Dataset, stat, statName, team string, n int) *chart.Chart {
	top := Top(ds, stat, n)
	record, hasRecord := SingleSeasonRecord(ds, stat)

	c := &chart.Chart{
		Title:  Title(team, statName),
		YLabel: statName,
	}
	if stat == PlusMinus {
		c.Mode = chart.Grouped
	}
	for _, l := range top {
		c.Categories = append(c.Categories, l.Label())
	}

	for i, season := range ds.Seasons {
		base := chart.Spectrum(i, chart.LightBlue, chart.DarkBlue, len(ds.Seasons))
		s := chart.Series{
			Name:   season,
			Color:  base,
			Values: make([]float64, len(top)),
			Colors: make([]color.RGBA, len(top)),
		}
		for j, l := range top {
			v := l.BySeason[i]
			s.Values[j] = v
			s.Colors[j] = base
			if hasRecord && v == record {
				s.Colors[j] = chart.RecordRed
			}
		}
		c.Series = append(c.Series, s)
		c.Legend = append(c.Legend, chart.LegendItem{Name: season, Color: base})
	}
	c.Legend = append(c.Legend, chart.LegendItem{Name: RecordLegend, Color: chart.RecordRed})
	return c
}
