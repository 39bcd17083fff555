package season

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pable/go-hockey-leaders/internal/flags"
	"github.com/pable/go-hockey-leaders/internal/model"
)

func writeSeason(t *testing.T, dir, name, body string) {
	t.Helper()
	p := filepath.Join(dir, "teams", "SEA", name)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
}

const season2023 = `# Data downloaded from: https://www.hockey-reference.com/teams/SEA/2023.html
Rk,Player,Age,Pos,GP,Scoring_G,Shots_SOG,Ice Time_TOI,ATOI,Awards
1,Jared McCann,26,C,79,40,225,1385,17:32,AS
2,Vince Dunn,26,D,81,14,,1793,22:08,
`

const season2024 = `# Data downloaded from: https://www.hockey-reference.com/teams/SEA/2024.html
Rk,Player,Age,Pos,GP,Scoring_G,Shots_SOG,Ice Time_TOI,ATOI,Awards
1,Jared McCann,27,C,82,29,226,1510,18:25,
`

func TestDiscoverAndLabel(t *testing.T) {
	dir := t.TempDir()
	writeSeason(t, dir, "2024_player_stats.csv", season2024)
	writeSeason(t, dir, "2023_player_stats.csv", season2023)
	writeSeason(t, dir, "2023_goalie_stats.csv", "Rk,Player\n")

	files, err := Discover(dir, "SEA", "player_stats")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %v", files)
	}
	if Label(files[0]) != "2023" || Label(files[1]) != "2024" {
		t.Errorf("expected chronological order, got %s, %s", Label(files[0]), Label(files[1]))
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeSeason(t, dir, "2023_player_stats.csv", season2023)
	writeSeason(t, dir, "2024_player_stats.csv", season2024)

	ds, err := Load(Options{
		Kind:    model.KindSkaters,
		Team:    "SEA",
		DataDir: dir,
		TableID: "player_stats",
		Flags:   flags.New([]flags.Entry{{Player: "Jared McCann", Flag: "CA"}}),
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ds.Rows) != 3 {
		t.Fatalf("expected 3 season rows, got %d", len(ds.Rows))
	}
	if len(ds.Seasons) != 2 || ds.Seasons[0] != "2023" {
		t.Errorf("unexpected seasons %v", ds.Seasons)
	}
	if ds.HasColumn("Rk") || ds.HasColumn("ATOI") || ds.HasColumn("Age") {
		t.Errorf("dropped or identity columns leaked into numeric columns: %v", ds.Columns)
	}
	if !ds.HasColumn("Shots_SOG") || !ds.HasColumn("Ice Time_TOI") {
		t.Errorf("expected numeric columns, got %v", ds.Columns)
	}

	mc, ok := ds.Lookup("Jared McCann", "2023")
	if !ok {
		t.Fatal("missing McCann 2023")
	}
	if mc.Age != 26 || mc.Pos != "C" || mc.Flag != "CA" {
		t.Errorf("identity fields: %+v", mc)
	}
	if mc.Stat("Scoring_G") != 40 {
		t.Errorf("goals: %v", mc.Stat("Scoring_G"))
	}
	if mc.Text["Awards"] != "AS" {
		t.Errorf("text column: %q", mc.Text["Awards"])
	}

	dunn, _ := ds.Lookup("Vince Dunn", "2023")
	if dunn.Stat("Shots_SOG") != 0 {
		t.Errorf("missing value should default to 0, got %v", dunn.Stat("Shots_SOG"))
	}
	if dunn.Flag != "" {
		t.Errorf("unknown player should have empty flag, got %q", dunn.Flag)
	}
}

func TestLoadNoFiles(t *testing.T) {
	if _, err := Load(Options{Team: "SEA", DataDir: t.TempDir(), TableID: "player_stats"}); err == nil {
		t.Fatal("expected error when no season files exist")
	}
}

func TestToMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"17:30", 17.5},
		{"1385", 1385},
		{"", 0},
		{"0:45", 0.75},
	}
	for _, c := range cases {
		got, err := ToMinutes(c.in)
		if err != nil {
			t.Errorf("ToMinutes(%q): %v", c.in, err)
			continue
		}
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("ToMinutes(%q) = %v, want %v", c.in, got, c.want)
		}
	}
	if _, err := ToMinutes("abc"); err == nil {
		t.Error("expected error for non-numeric time")
	}
}
