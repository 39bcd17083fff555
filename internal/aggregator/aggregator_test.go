package aggregator

import (
	"math"
	"testing"

	"github.com/pable/go-hockey-leaders/internal/flags"
	"github.com/pable/go-hockey-leaders/internal/model"
)

// makeRow creates a season row with the given stats.
func makeRow(player, season string, age float64, stats map[string]float64) model.StatLine {
	return model.StatLine{
		Player:  player,
		Pos:     "C",
		Season:  season,
		Age:     age,
		Seasons: 1,
		Stats:   stats,
		Text:    map[string]string{"Awards": "AS"},
	}
}

// makeSkaters builds a dataset with one multi-season and one single-season player.
func makeSkaters() *model.Dataset {
	return &model.Dataset{
		Kind:    model.KindSkaters,
		Team:    "SEA",
		Seasons: []string{"2022", "2023", "2024"},
		Columns: []string{"GP", "Scoring_G", "Shots_SOG", "Goals_PPG", "Assists_PP", "Ice Time_TOI", "Shots_S%"},
		Rows: []model.StatLine{
			makeRow("Jared McCann", "2022", 25, map[string]float64{"GP": 74, "Scoring_G": 27, "Shots_SOG": 200, "Goals_PPG": 5, "Assists_PP": 4, "Ice Time_TOI": 1200, "Shots_S%": 13.5}),
			makeRow("Jared McCann", "2023", 26, map[string]float64{"GP": 79, "Scoring_G": 40, "Shots_SOG": 225, "Goals_PPG": 11, "Assists_PP": 6, "Ice Time_TOI": 1385, "Shots_S%": 17.8}),
			makeRow("Shane Wright", "2024", 20, map[string]float64{"GP": 8, "Scoring_G": 1, "Shots_SOG": 10, "Goals_PPG": 0, "Assists_PP": 1, "Ice Time_TOI": 100, "Shots_S%": 10}),
			makeRow("Jared McCann", "2024", 27, map[string]float64{"GP": 82, "Scoring_G": 29, "Goals_PPG": 8, "Assists_PP": 7, "Ice Time_TOI": 1510}),
		},
	}
}

func totalOf(t *testing.T, ds *model.Dataset, player string) model.StatLine {
	t.Helper()
	var found []model.StatLine
	for _, r := range ds.Rows {
		if r.Player == player && r.IsTotal() {
			found = append(found, r)
		}
	}
	if len(found) != 1 {
		t.Fatalf("expected exactly one Total row for %s, got %d", player, len(found))
	}
	return found[0]
}

func TestAddTotals_SumsMultiSeason(t *testing.T) {
	ds := makeSkaters()
	fl := flags.New([]flags.Entry{{Player: "Jared McCann", Flag: "CA"}})

	n, err := AddTotals(ds, fl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 totals, got %d", n)
	}

	total := totalOf(t, ds, "Jared McCann")
	var seasons []model.StatLine
	for _, r := range ds.Rows {
		if r.Player == "Jared McCann" && !r.IsTotal() {
			seasons = append(seasons, r)
		}
	}
	for _, c := range ds.Columns {
		if IsRate(c) {
			continue
		}
		if got, want := total.Stat(c), Sum(seasons, c); got != want {
			t.Errorf("column %s: total %v != column sum %v", c, got, want)
		}
	}
	if total.Stat("GP") != 235 || total.Stat("Shots_SOG") != 425 {
		t.Errorf("unexpected sums GP=%v SOG=%v", total.Stat("GP"), total.Stat("Shots_SOG"))
	}
	if total.Age != 27 || total.Seasons != 3 || total.Flag != "CA" || total.Pos != "C" {
		t.Errorf("identity fields: age=%v seasons=%d flag=%q pos=%q", total.Age, total.Seasons, total.Flag, total.Pos)
	}
	if total.Stat("PPP") != 41 {
		t.Errorf("PPP: want 41, got %v", total.Stat("PPP"))
	}
	if math.Abs(total.Stat("ATOI")-4095.0/235.0) > 1e-9 {
		t.Errorf("ATOI not recomputed: %v", total.Stat("ATOI"))
	}
	if math.Abs(total.Stat("S%")-96.0/425.0*100) > 1e-9 {
		t.Errorf("S%% not recomputed: %v", total.Stat("S%"))
	}
	if _, ok := total.Stats["Shots_S%"]; ok {
		t.Error("source rate column must not be summed into totals")
	}
}

func TestAddTotals_SingleSeasonIsCopy(t *testing.T) {
	ds := makeSkaters()
	if _, err := AddTotals(ds, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	season, ok := ds.Lookup("Shane Wright", "2024")
	if !ok {
		t.Fatal("season row missing")
	}
	total := totalOf(t, ds, "Shane Wright")
	if total.Age != season.Age || total.Pos != season.Pos || total.Text["Awards"] != "AS" {
		t.Errorf("single-season total should copy identity fields: %+v", total)
	}
	for k, v := range season.Stats {
		if total.Stats[k] != v {
			t.Errorf("stat %s: total %v != season %v", k, total.Stats[k], v)
		}
	}
	if len(total.Stats) != len(season.Stats) {
		t.Errorf("stat count differs: %d vs %d", len(total.Stats), len(season.Stats))
	}

	// Mutating the copy must not touch the season row.
	total.Stats["GP"] = 999
	if s, _ := ds.Lookup("Shane Wright", "2024"); s.Stat("GP") != 8 {
		t.Error("total aliases season row stats")
	}
}

func TestAddTotals_Idempotent(t *testing.T) {
	ds := makeSkaters()
	AddTotals(ds, nil)
	rows := len(ds.Rows)
	AddTotals(ds, nil)
	if len(ds.Rows) != rows {
		t.Errorf("second AddTotals changed row count %d -> %d", rows, len(ds.Rows))
	}
	totalOf(t, ds, "Jared McCann")
}

func TestAddTotals_TotalsAfterSeasons(t *testing.T) {
	ds := makeSkaters()
	AddTotals(ds, nil)
	seenTotal := false
	for _, r := range ds.Rows {
		if r.IsTotal() {
			seenTotal = true
		} else if seenTotal {
			t.Fatalf("season row %s/%s after a Total row", r.Player, r.Season)
		}
	}
	if got := ds.Totals()[0].Player; got != "Jared McCann" {
		t.Errorf("totals should follow first-seen order, first is %s", got)
	}
}

func TestAddTotals_MissingFlag(t *testing.T) {
	ds := makeSkaters()
	AddTotals(ds, flags.New(nil))
	if f := totalOf(t, ds, "Jared McCann").Flag; f != "" {
		t.Errorf("missing flag should be empty, got %q", f)
	}
}

func TestAddTotals_GoalieSavePct(t *testing.T) {
	ds := &model.Dataset{
		Kind:    model.KindGoalies,
		Columns: []string{"GP", "Goalie Stats_GA", "Goalie Stats_Shots", "Goalie Stats_SV", "Goalie Stats_MIN"},
		Rows: []model.StatLine{
			makeRow("Philipp Grubauer", "2023", 31, map[string]float64{"GP": 39, "Goalie Stats_GA": 100, "Goalie Stats_Shots": 1000, "Goalie Stats_SV": 900, "Goalie Stats_MIN": 2200}),
			makeRow("Philipp Grubauer", "2024", 32, map[string]float64{"GP": 36, "Goalie Stats_GA": 100, "Goalie Stats_Shots": 1000, "Goalie Stats_SV": 900, "Goalie Stats_MIN": 2000}),
			makeRow("Chris Driedger", "2023", 29, map[string]float64{"GP": 1, "Goalie Stats_GA": 0, "Goalie Stats_Shots": 0, "Goalie Stats_SV": 0, "Goalie Stats_MIN": 5}),
			makeRow("Chris Driedger", "2024", 30, map[string]float64{"GP": 1, "Goalie Stats_GA": 0, "Goalie Stats_Shots": 3, "Goalie Stats_SV": 3, "Goalie Stats_MIN": 10}),
		},
	}
	if _, err := AddTotals(ds, nil); err != nil {
		t.Fatal(err)
	}
	g := totalOf(t, ds, "Philipp Grubauer")
	if g.Stat("SV%") != 90 {
		t.Errorf("SV%%: want 90, got %v", g.Stat("SV%"))
	}
	if math.Abs(g.Stat("GAA")-200*60/4200.0) > 1e-9 {
		t.Errorf("GAA: got %v", g.Stat("GAA"))
	}
	if d := totalOf(t, ds, "Chris Driedger"); d.Stat("SV%") != 100 {
		t.Errorf("no goals against should credit 100, got %v", d.Stat("SV%"))
	}
}

func TestAddTotals_Nil(t *testing.T) {
	if _, err := AddTotals(nil, nil); err == nil {
		t.Error("expected error for nil dataset")
	}
}

func TestIsRate(t *testing.T) {
	for _, c := range []string{"S%", "Shots_S%", "ATOI", "Ice Time_ATOI", "GAA", "Goalie Stats_GAA", "SV%"} {
		if !IsRate(c) {
			t.Errorf("%s should be a rate", c)
		}
	}
	for _, c := range []string{"GP", "Scoring_G", "PPP", "Goalie Stats_GA"} {
		if IsRate(c) {
			t.Errorf("%s should be summable", c)
		}
	}
}
