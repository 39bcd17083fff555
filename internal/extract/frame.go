package extract

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Frame is a parsed statistics table: flattened column names plus rows of
// raw cell text, one entry per column.
type Frame struct {
	ID      string
	Columns []string
	Rows    [][]string
}

// Index returns the position of the named column, or -1.
func (f *Frame) Index(name string) int {
	for i, c := range f.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell returns the value in row r for the named column, or "".
func (f *Frame) Cell(r int, name string) string {
	i := f.Index(name)
	if i < 0 || r < 0 || r >= len(f.Rows) || i >= len(f.Rows[r]) {
		return ""
	}
	return f.Rows[r][i]
}

// Rename changes a column name in place if it exists.
func (f *Frame) Rename(from, to string) {
	if i := f.Index(from); i >= 0 {
		f.Columns[i] = to
	}
}

// Filter keeps only rows for which keep returns true.
func (f *Frame) Filter(keep func(row []string) bool) {
	out := f.Rows[:0]
	for _, r := range f.Rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	f.Rows = out
}

// WriteCSV writes the header and rows as CSV.
func (f *Frame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(f.Columns); err != nil {
		return err
	}
	for _, r := range f.Rows {
		if err := cw.Write(r); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// normalizeWidth pads or truncates every row to the column count.
func (f *Frame) normalizeWidth() {
	n := len(f.Columns)
	for i, r := range f.Rows {
		switch {
		case len(r) < n:
			f.Rows[i] = append(r, make([]string, n-len(r))...)
		case len(r) > n:
			f.Rows[i] = r[:n]
		}
	}
}

// flattenHeaders combines a two-level header: an empty top label yields the
// bottom label alone, otherwise "top_bottom".
func flattenHeaders(top, bottom []string) []string {
	out := make([]string, len(bottom))
	for i, b := range bottom {
		t := ""
		if i < len(top) {
			t = strings.TrimSpace(top[i])
		}
		b = strings.TrimSpace(b)
		if t == "" || strings.HasPrefix(t, "Unnamed") {
			out[i] = b
			continue
		}
		out[i] = strings.TrimSpace(fmt.Sprintf("%s_%s", t, b))
	}
	return out
}

// dedupeColumns suffixes repeated names with .1, .2, ... in order.
func dedupeColumns(cols []string) []string {
	seen := make(map[string]int, len(cols))
	out := make([]string, len(cols))
	for i, c := range cols {
		n := seen[c]
		seen[c] = n + 1
		if n == 0 {
			out[i] = c
			continue
		}
		out[i] = c + "." + strconv.Itoa(n)
	}
	return out
}

// parseCSVPayload parses the pre-rendered CSV shipped inside csv_<id> divs.
func parseCSVPayload(id, payload string) (*Frame, error) {
	r := csv.NewReader(strings.NewReader(strings.TrimSpace(payload)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv payload: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty csv payload")
	}

	header := records[0]
	body := records[1:]
	if len(records) >= 2 && isOverHeader(records[0], records[1]) {
		header = flattenHeaders(records[0], records[1])
		body = records[2:]
	}

	f := &Frame{ID: id, Columns: dedupeColumns(trimAll(header)), Rows: body}
	f.normalizeWidth()
	return f, nil
}

// isOverHeader reports whether first is a group row sitting above the real
// header in second.
func isOverHeader(first, second []string) bool {
	return !containsAny(first, "Rk", "Player") && containsAny(second, "Rk", "Player")
}

func containsAny(row []string, names ...string) bool {
	for _, c := range row {
		c = strings.TrimSpace(c)
		for _, n := range names {
			if c == n {
				return true
			}
		}
	}
	return false
}

func trimAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.TrimSpace(s)
	}
	return out
}
