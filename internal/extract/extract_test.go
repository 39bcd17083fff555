package extract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const teamURL = "https://www.hockey-reference.com/teams/SEA/2024.html"

// skaterTable is a two-level header table like the ones on team pages,
// including a repeated header row and a team totals footer.
const skaterTable = `
<table id="player_stats">
<thead>
<tr class="over_header"><th colspan="4"></th><th colspan="3">Scoring</th><th colspan="2">Goals</th></tr>
<tr><th>Rk</th><th>Player</th><th>Age</th><th>GP</th><th>G</th><th>A</th><th>PTS</th><th>EV</th><th>PP</th></tr>
</thead>
<tbody>
<tr><th>1</th><td>Jared McCann</td><td>27</td><td>82</td><td>29</td><td>33</td><td>62</td><td>20</td><td>9</td></tr>
<tr class="thead"><th>Rk</th><th>Player</th><th>Age</th><th>GP</th><th>G</th><th>A</th><th>PTS</th><th>EV</th><th>PP</th></tr>
<tr><th>2</th><td>Vince Dunn</td><td>27</td><td>48</td><td>11</td><td>24</td><td>35</td><td>8</td><td>3</td></tr>
</tbody>
<tfoot>
<tr><th></th><td>Team Totals</td><td></td><td>82</td><td>40</td><td>57</td><td>97</td><td>28</td><td>12</td></tr>
</tfoot>
</table>`

func mustDoc(t *testing.T, src string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func readCSV(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}

func TestHTMLTableFlattenAndClean(t *testing.T) {
	doc := mustDoc(t, "<html><body>"+skaterTable+"</body></html>")

	f, err := ParseTable(doc, "player_stats")
	if err != nil {
		t.Fatalf("ParseTable: %v", err)
	}
	want := []string{"Rk", "Player", "Age", "GP", "Scoring_G", "Scoring_A", "Scoring_PTS", "Goals_EV", "Goals_PP"}
	if strings.Join(f.Columns, "|") != strings.Join(want, "|") {
		t.Fatalf("columns:\n got %v\nwant %v", f.Columns, want)
	}
	if len(f.Rows) != 2 {
		t.Fatalf("expected 2 rows after dropping header and totals rows, got %d: %v", len(f.Rows), f.Rows)
	}
	if f.Cell(1, "Player") != "Vince Dunn" {
		t.Errorf("second row player: got %q", f.Cell(1, "Player"))
	}
}

func TestCommentTableAndRename(t *testing.T) {
	src := `<html><body><div id="all_goalie_stats"><!--
<table id="goalie_stats"><thead><tr><th>Rk</th><th>Player</th><th>+/-</th></tr></thead>
<tbody><tr><th>1</th><td>Joey Daccord</td><td>3</td></tr></tbody></table>
--></div></body></html>`
	doc := mustDoc(t, src)

	tables, err := Tables(doc)
	if err != nil {
		t.Fatalf("Tables: %v", err)
	}
	if len(tables) != 1 || tables[0].ID != "goalie_stats" {
		t.Fatalf("expected goalie_stats from comment, got %+v", tables)
	}

	f, err := ParseTable(doc, "goalie_stats")
	if err != nil {
		t.Fatalf("ParseTable: %v", err)
	}
	if f.Index("PM") < 0 || f.Index("+/-") >= 0 {
		t.Errorf("expected +/- renamed to PM, got %v", f.Columns)
	}
}

func TestHiddenCSVPreferred(t *testing.T) {
	// Visible markup disagrees with the payload; the payload must win.
	src := `<html><body>` + skaterTable + `
<div id="csv_player_stats"><!--
,,,,Scoring,Scoring,Scoring,Goals,Goals
Rk,Player,Age,GP,G,A,PTS,EV,PP
1,Yanni Gourde,32,80,11,25,36,7,1
Rk,Player,Age,GP,G,A,PTS,EV,PP
2,Eeli Tolvanen,25,78,16,8,24,13,3
,Team Totals,,82,40,57,97,28,12
--></div></body></html>`
	doc := mustDoc(t, src)
	dir := t.TempDir()

	var ex Extractor
	f, n := ex.FindAndParseTables(doc, teamURL, dir, "player_stats")
	if n != 1 {
		t.Fatalf("expected 1 file saved, got %d", n)
	}
	if f == nil {
		t.Fatal("expected target frame")
	}
	if got := f.Cell(0, "Player"); got != "Yanni Gourde" {
		t.Errorf("first row should come from the payload, got %q", got)
	}
	if f.Index("Scoring_G") < 0 {
		t.Errorf("payload over-header not flattened: %v", f.Columns)
	}

	out := readCSV(t, filepath.Join(dir, "teams", "SEA", "2024_player_stats.csv"))
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != "# Data downloaded from: "+teamURL {
		t.Errorf("provenance line: got %q", lines[0])
	}
	if lines[2] != "1,Yanni Gourde,32,80,11,25,36,7,1" {
		t.Errorf("first data row: got %q", lines[2])
	}
	if len(lines) != 4 {
		t.Errorf("expected comment, header and 2 rows; got %d lines", len(lines))
	}
}

func TestExtractionIdempotent(t *testing.T) {
	src := "<html><body>" + skaterTable + "</body></html>"
	dir := t.TempDir()
	path := filepath.Join(dir, "teams", "SEA", "2024_player_stats.csv")

	var ex Extractor
	ex.FindAndParseTables(mustDoc(t, src), teamURL, dir, "")
	first := readCSV(t, path)
	ex.FindAndParseTables(mustDoc(t, src), teamURL, dir, "")
	second := readCSV(t, path)

	if first != second {
		t.Errorf("re-running extraction changed output:\n%s\n---\n%s", first, second)
	}
}

func TestUninterestingAndBrokenTablesSkipped(t *testing.T) {
	src := `<html><body>
<table id="team_stats"><thead><tr><th>W</th></tr></thead><tbody><tr><td>1</td></tr></tbody></table>
<table id="goalie_stats"><tbody><tr><td>no header here</td></tr></tbody></table>
` + skaterTable + `</body></html>`
	dir := t.TempDir()

	var ex Extractor
	f, n := ex.FindAndParseTables(mustDoc(t, src), "https://example.com/page", dir, "goalie_stats")
	if n != 1 {
		t.Errorf("expected only player_stats saved, got %d", n)
	}
	if f != nil {
		t.Errorf("broken goalie table should not be returned")
	}
	if _, err := os.Stat(filepath.Join(dir, "data_player_stats.csv")); err != nil {
		t.Errorf("expected fallback filename: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "data_team_stats.csv")); err == nil {
		t.Errorf("team_stats is not a table of interest")
	}
}

func TestAllTables(t *testing.T) {
	src := `<html><body>
<table id="team_stats"><thead><tr><th>W</th></tr></thead><tbody><tr><td>1</td></tr></tbody></table>
` + skaterTable + `</body></html>`
	dir := t.TempDir()

	ex := Extractor{All: true}
	if _, n := ex.FindAndParseTables(mustDoc(t, src), teamURL, dir, "team_stats"); n != 2 {
		t.Errorf("expected both tables saved, got %d", n)
	}
	if _, err := os.Stat(filepath.Join(dir, "teams", "SEA", "2024_team_stats.csv")); err != nil {
		t.Errorf("team_stats should be saved with All: %v", err)
	}
}

func TestNoTables(t *testing.T) {
	doc := mustDoc(t, "<html><body><p>nothing</p></body></html>")
	var ex Extractor
	f, n := ex.FindAndParseTables(doc, teamURL, t.TempDir(), "player_stats")
	if f != nil || n != 0 {
		t.Errorf("expected nothing, got frame=%v n=%d", f, n)
	}
	if _, err := Tables(doc); err != ErrNoTables {
		t.Errorf("expected ErrNoTables, got %v", err)
	}
}

func TestDedupeColumns(t *testing.T) {
	got := dedupeColumns([]string{"G", "A", "G", "G"})
	want := "G|A|G.1|G.2"
	if strings.Join(got, "|") != want {
		t.Errorf("got %v want %s", got, want)
	}
}
