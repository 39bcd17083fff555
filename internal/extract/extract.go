// Package extract pulls statistics tables out of sports-reference pages and
// saves them as CSV files.
//
// Those pages hide most tables inside HTML comments and sometimes ship a
// pre-rendered CSV export in a "csv_<table id>" div. Both are searched; the
// CSV export is preferred over re-parsing table markup.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
)

// DefaultTables are the table ids saved when no list is configured.
var DefaultTables = []string{"player_stats", "goalie_stats"}

// ErrNoTables is returned by Tables when the page carries no identified table.
var ErrNoTables = errors.New("no tables found")

var teamSeasonRe = regexp.MustCompile(`/(teams/\w+/\d{4})\.html`)

// Extractor finds, cleans and saves the tables of interest on a page.
type Extractor struct {
	// Tables lists the table ids worth saving. Empty means DefaultTables.
	Tables []string
	// All saves every identified table and ignores Tables.
	All bool
	// Logger defaults to the global zerolog logger.
	Logger *zerolog.Logger
}

// Table is one identified <table> found in the page or in a comment.
type Table struct {
	ID  string
	Sel *goquery.Selection
}

// page is the main document plus every document parsed out of comments.
type page struct {
	docs []*goquery.Document
}

func (e *Extractor) logger() *zerolog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return &log.Logger
}

func (e *Extractor) wanted(id string) bool {
	if e.All {
		return true
	}
	tables := e.Tables
	if len(tables) == 0 {
		tables = DefaultTables
	}
	for _, t := range tables {
		if t == id {
			return true
		}
	}
	return false
}

// FindAndParseTables saves every table of interest under outDir and returns
// the frame whose id equals targetID (nil if none) along with the number of
// files written. A failure on one table is logged and does not stop the rest.
func (e *Extractor) FindAndParseTables(doc *goquery.Document, pageURL, outDir, targetID string) (*Frame, int) {
	lg := e.logger()
	p := newPage(doc)

	tables := p.tables()
	if len(tables) == 0 {
		lg.Warn().Str("url", pageURL).Msg("no tables were found on the page")
		return nil, 0
	}

	var target *Frame
	saved := 0
	for _, t := range tables {
		if !e.wanted(t.ID) {
			continue
		}
		f, path, err := e.saveTable(p, t, pageURL, outDir)
		if err != nil {
			lg.Warn().Err(err).Str("table", t.ID).Msg("could not parse or save table")
			continue
		}
		lg.Info().Str("table", t.ID).Str("path", path).Int("rows", len(f.Rows)).Msg("saved table")
		saved++
		if t.ID == targetID {
			target = f
		}
	}
	return target, saved
}

// Tables lists every identified table in the document, comment tables
// included. Visible tables take precedence over a comment table with the
// same id.
func Tables(doc *goquery.Document) ([]Table, error) {
	t := newPage(doc).tables()
	if len(t) == 0 {
		return nil, ErrNoTables
	}
	return t, nil
}

// ParseTable returns the cleaned frame for one table id without writing it.
func ParseTable(doc *goquery.Document, id string) (*Frame, error) {
	p := newPage(doc)
	for _, t := range p.tables() {
		if t.ID == id {
			return p.parse(t, nil)
		}
	}
	return nil, fmt.Errorf("table %q: %w", id, ErrNoTables)
}

func (e *Extractor) saveTable(p *page, t Table, pageURL, outDir string) (*Frame, string, error) {
	f, err := p.parse(t, e.logger())
	if err != nil {
		return nil, "", err
	}
	path, err := OutputPath(outDir, pageURL, t.ID)
	if err != nil {
		return nil, "", err
	}
	if err := WriteFile(path, pageURL, f); err != nil {
		return nil, "", err
	}
	return f, path, nil
}

func (p *page) parse(t Table, lg *zerolog.Logger) (*Frame, error) {
	var f *Frame
	if payload, ok := p.csvPayload(t.ID); ok {
		if lg != nil {
			lg.Debug().Str("table", t.ID).Msg("found pre-formatted CSV; parsing directly")
		}
		parsed, err := parseCSVPayload(t.ID, payload)
		if err != nil {
			return nil, err
		}
		f = parsed
	}
	if f == nil {
		if lg != nil {
			lg.Debug().Str("table", t.ID).Msg("no pre-formatted CSV; parsing HTML table")
		}
		parsed, err := parseHTMLTable(t.ID, t.Sel)
		if err != nil {
			return nil, err
		}
		f = parsed
	}
	Clean(f)
	return f, nil
}

// Clean drops repeated header rows and team total rows, then renames +/-.
func Clean(f *Frame) {
	if rk := f.Index("Rk"); rk >= 0 {
		f.Filter(func(r []string) bool { return r[rk] != "Rk" })
	}
	if pl := f.Index("Player"); pl >= 0 {
		f.Filter(func(r []string) bool { return !strings.HasPrefix(r[pl], "Team Totals") })
	}
	f.Rename("+/-", "PM")
}

// OutputPath derives the CSV location from the page URL: team season pages
// map to <outDir>/teams/<TEAM>/<YEAR>_<id>.csv, anything else to
// <outDir>/data_<id>.csv. Needed directories are created.
func OutputPath(outDir, pageURL, id string) (string, error) {
	if m := teamSeasonRe.FindStringSubmatch(pageURL); m != nil {
		path := filepath.Join(outDir, filepath.FromSlash(m[1])+"_"+id+".csv")
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return "", fmt.Errorf("create output dir: %w", err)
		}
		return path, nil
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	return filepath.Join(outDir, "data_"+id+".csv"), nil
}

// WriteFile writes a provenance comment line followed by the frame as CSV.
func WriteFile(path, pageURL string, f *Frame) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# Data downloaded from: %s\n", pageURL)
	if err := f.WriteCSV(&buf); err != nil {
		return fmt.Errorf("encode %s: %w", f.ID, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ---- page scanning ----

func newPage(doc *goquery.Document) *page {
	p := &page{docs: []*goquery.Document{doc}}
	for _, c := range comments(doc.Nodes) {
		if !strings.Contains(c, "<table") && !strings.Contains(c, "csv_") {
			continue
		}
		cd, err := goquery.NewDocumentFromReader(strings.NewReader(c))
		if err != nil {
			continue
		}
		p.docs = append(p.docs, cd)
	}
	return p
}

func (p *page) tables() []Table {
	var out []Table
	seen := make(map[string]bool)
	for _, d := range p.docs {
		d.Find("table[id]").Each(func(_ int, s *goquery.Selection) {
			id := strings.TrimSpace(s.AttrOr("id", ""))
			if id == "" || seen[id] {
				return
			}
			seen[id] = true
			out = append(out, Table{ID: id, Sel: s})
		})
	}
	return out
}

// csvPayload returns the CSV export for a table: the comment inside
// div#csv_<id>, or its <pre> text.
func (p *page) csvPayload(id string) (string, bool) {
	for _, d := range p.docs {
		div := d.Find("div#csv_" + id).First()
		if div.Length() == 0 {
			continue
		}
		for _, c := range comments(div.Nodes) {
			if strings.TrimSpace(c) != "" {
				return c, true
			}
		}
		if pre := strings.TrimSpace(div.Find("pre").First().Text()); pre != "" {
			return pre, true
		}
	}
	return "", false
}

// comments collects the text of every comment node beneath the given roots.
func comments(roots []*html.Node) []string {
	var out []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.CommentNode {
			out = append(out, n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, r := range roots {
		walk(r)
	}
	return out
}

// ---- HTML table parsing ----

// parseHTMLTable reads header rows from <thead> (or leading all-<th> rows)
// and data rows from <tbody>/<tfoot>, expanding colspans.
func parseHTMLTable(id string, table *goquery.Selection) (*Frame, error) {
	var headers [][]string
	var body [][]string

	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if tr.Closest("table").Get(0) != table.Get(0) {
			return
		}
		cells := rowCells(tr)
		if len(cells) == 0 {
			return
		}
		section := goquery.NodeName(tr.Parent())
		switch {
		case section == "thead":
			headers = append(headers, cells)
		case len(body) == 0 && section != "tfoot" && tr.Children().Not("th").Length() == 0 && len(headers) == 0:
			headers = append(headers, cells)
		case tr.HasClass("over_header") || tr.HasClass("spacer"):
		default:
			body = append(body, cells)
		}
	})

	if len(headers) == 0 {
		return nil, fmt.Errorf("table %s has no header row", id)
	}

	cols := headers[len(headers)-1]
	if len(headers) >= 2 {
		cols = flattenHeaders(headers[len(headers)-2], cols)
	}
	f := &Frame{ID: id, Columns: dedupeColumns(trimAll(cols)), Rows: body}
	f.normalizeWidth()
	return f, nil
}

func rowCells(tr *goquery.Selection) []string {
	var cells []string
	tr.Children().Filter("th,td").Each(func(_ int, c *goquery.Selection) {
		text := strings.Join(strings.Fields(c.Text()), " ")
		span := 1
		if v, err := strconv.Atoi(c.AttrOr("colspan", "1")); err == nil && v > 1 {
			span = v
		}
		for i := 0; i < span; i++ {
			cells = append(cells, text)
		}
	})
	return cells
}
