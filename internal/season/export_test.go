package season

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/pable/go-hockey-leaders/internal/model"
)

func exportDataset() *model.Dataset {
	return &model.Dataset{
		Kind:    model.KindSkaters,
		Team:    "SEA",
		Seasons: []string{"2023"},
		Columns: []string{"GP", "ATOI"},
		Rows: []model.StatLine{
			{Player: "Vince Dunn", Pos: "D", Season: "2023", Age: 26, Seasons: 1,
				Stats: map[string]float64{"GP": 81, "ATOI": 22.5}},
			{Player: "Vince Dunn", Flag: "🇺🇸", Pos: "D", Season: model.TotalSeason, Age: 26, Seasons: 1,
				Stats: map[string]float64{"GP": 81, "ATOI": 22.5}},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, exportDataset(), false); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(lines))
	}
	if lines[0] != "Player,Flag,Pos,Age,Season,Seasons,GP,ATOI" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "Vince Dunn,,D,26,2023,1,81,22.5" {
		t.Errorf("row = %q", lines[1])
	}
}

func TestExportTotals(t *testing.T) {
	dir := t.TempDir()
	path, err := ExportTotals(dir, exportDataset())
	if err != nil {
		t.Fatalf("ExportTotals: %v", err)
	}
	if !strings.HasSuffix(path, "SEA_skaters_totals.csv") {
		t.Errorf("path = %s", path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 2 || !strings.Contains(lines[1], "Total") {
		t.Errorf("expected only the career row, got %q", lines)
	}
}
