package season

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gocarina/gocsv"

	"github.com/pable/go-hockey-leaders/internal/model"
)

// WriteCSV writes the dataset rows as CSV: identity columns first, then the
// numeric columns in dataset order. With totalsOnly only career rows are
// written.
func WriteCSV(w io.Writer, ds *model.Dataset, totalsOnly bool) error {
	cw := gocsv.NewSafeCSVWriter(csv.NewWriter(w))

	header := append([]string{"Player", "Flag", "Pos", "Age", "Season", "Seasons"}, ds.Columns...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range ds.Rows {
		if totalsOnly && !r.IsTotal() {
			continue
		}
		rec := []string{
			r.Player, r.Flag, r.Pos,
			formatFloat(r.Age), r.Season, strconv.Itoa(r.Seasons),
		}
		for _, c := range ds.Columns {
			rec = append(rec, formatFloat(r.Stat(c)))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportTotals writes the career rows to <dir>/<TEAM>_<kind>_totals.csv and
// returns the path.
func ExportTotals(dir string, ds *model.Dataset) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s_totals.csv", ds.Team, ds.Kind))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := WriteCSV(f, ds, true); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
