// Package season discovers the per-season CSV files written by the
// extractor and loads them into a dataset of season rows.
package season

import (
	"bufio"
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/rs/zerolog/log"

	"github.com/pable/go-hockey-leaders/internal/flags"
	"github.com/pable/go-hockey-leaders/internal/model"
)

// DefaultDrop lists columns discarded on load.
var DefaultDrop = []string{"Rk", "ATOI"}

// DefaultTimeColumns hold "min:sec" values converted to minutes.
var DefaultTimeColumns = []string{"Ice Time_TOI"}

// Options controls Load.
type Options struct {
	Kind    model.Kind
	Team    string
	DataDir string
	TableID string

	Drop        []string
	TimeColumns []string
	Flags       *flags.Table
}

func (o Options) drop() []string {
	if o.Drop == nil {
		return DefaultDrop
	}
	return o.Drop
}

func (o Options) timeColumns() []string {
	if o.TimeColumns == nil {
		return DefaultTimeColumns
	}
	return o.TimeColumns
}

// identity columns are kept out of the numeric stats.
var identity = map[string]bool{"Player": true, "Pos": true, "Age": true, "Flag": true, "Season": true}

// Discover returns the season files for a team and table, sorted by name so
// that seasons load in chronological order.
func Discover(dataDir, team, tableID string) ([]string, error) {
	pattern := filepath.Join(dataDir, "teams", team, "*_"+tableID+".csv")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	sort.Strings(files)
	return files, nil
}

// Label is the season label encoded in a file name: "2024_player_stats.csv"
// yields "2024".
func Label(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if i := strings.Index(stem, "_"); i >= 0 {
		return stem[:i]
	}
	return stem
}

// Load reads every season file for the options' team and table.
func Load(opts Options) (*model.Dataset, error) {
	files, err := Discover(opts.DataDir, opts.Team, opts.TableID)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files for team %s under %s", opts.TableID, opts.Team, opts.DataDir)
	}

	ds := &model.Dataset{Kind: opts.Kind, Team: opts.Team}
	for _, f := range files {
		label := Label(f)
		log.Info().Str("file", f).Str("season", label).Msg("loading season")
		rows, cols, err := LoadFile(f, label, opts)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
		ds.Seasons = append(ds.Seasons, label)
		for _, c := range cols {
			ds.AddColumn(c)
		}
		ds.Rows = append(ds.Rows, rows...)
	}
	return ds, nil
}

// LoadFile parses one season CSV. It returns the rows and the numeric
// column names in file order.
func LoadFile(path, label string, opts Options) ([]model.StatLine, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	df := dataframe.ReadCSV(bytes.NewReader(stripComments(data)),
		dataframe.NaNValues([]string{"NA", "NaN", "<nil>", ""}))
	if df.Err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", df.Err)
	}

	var drop []string
	for _, name := range opts.drop() {
		if hasName(df.Names(), name) {
			drop = append(drop, name)
		}
	}
	if len(drop) > 0 {
		df = df.Drop(drop)
		if df.Err != nil {
			return nil, nil, fmt.Errorf("drop columns: %w", df.Err)
		}
	}
	if !hasName(df.Names(), "Player") {
		return nil, nil, fmt.Errorf("no Player column")
	}

	n := df.Nrow()
	rows := make([]model.StatLine, n)
	players := df.Col("Player").Records()
	for i := range rows {
		rows[i] = model.StatLine{
			Player:  strings.TrimSpace(players[i]),
			Season:  label,
			Seasons: 1,
			Stats:   make(map[string]float64),
			Text:    make(map[string]string),
		}
		if f, ok := opts.Flags.Lookup(rows[i].Player); ok {
			rows[i].Flag = f
		}
	}
	if hasName(df.Names(), "Pos") {
		for i, v := range df.Col("Pos").Records() {
			rows[i].Pos = strings.TrimSpace(v)
		}
	}
	if hasName(df.Names(), "Age") {
		for i, v := range df.Col("Age").Float() {
			if !math.IsNaN(v) {
				rows[i].Age = v
			}
		}
	}

	timeCols := make(map[string]bool)
	for _, c := range opts.timeColumns() {
		timeCols[c] = true
	}

	var cols []string
	for _, name := range df.Names() {
		if identity[name] {
			continue
		}
		col := df.Col(name)
		switch {
		case timeCols[name]:
			for i, v := range col.Records() {
				m, err := ToMinutes(v)
				if err != nil {
					return nil, nil, fmt.Errorf("column %s row %d: %w", name, i, err)
				}
				rows[i].Stats[name] = m
			}
			cols = append(cols, name)
		case col.Type() == series.Int || col.Type() == series.Float:
			for i, v := range col.Float() {
				if math.IsNaN(v) {
					v = 0
				}
				rows[i].Stats[name] = v
			}
			cols = append(cols, name)
		default:
			for i, v := range col.Records() {
				if v != "NaN" {
					rows[i].Text[name] = v
				}
			}
		}
	}
	return rows, cols, nil
}

// ToMinutes converts "min:sec" (or bare minutes) to fractional minutes.
// Empty values are 0.
func ToMinutes(v string) (float64, error) {
	v = strings.TrimSpace(v)
	if v == "" || v == "NaN" {
		return 0, nil
	}
	min, sec := v, "0"
	if i := strings.Index(v, ":"); i >= 0 {
		min, sec = v[:i], v[i+1:]
	}
	m, err := strconv.ParseFloat(min, 64)
	if err != nil {
		return 0, fmt.Errorf("parse minutes %q: %w", v, err)
	}
	s, err := strconv.ParseFloat(sec, 64)
	if err != nil {
		return 0, fmt.Errorf("parse seconds %q: %w", v, err)
	}
	return m + s/60, nil
}

// stripComments removes "#" provenance lines written by the extractor.
func stripComments(data []byte) []byte {
	var out bytes.Buffer
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		out.WriteString(line)
		out.WriteByte('\n')
	}
	return out.Bytes()
}

func hasName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
