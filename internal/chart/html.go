package chart

import (
	"bytes"
	"html/template"
	"io"
	"strconv"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; margin: 24px; color: #222; }
table { border-collapse: collapse; margin-top: 16px; font-size: 13px; }
th, td { border: 1px solid #ddd; padding: 4px 8px; text-align: right; }
th:first-child, td:first-child { text-align: left; }
</style>
</head>
<body>
{{.SVG}}
<table>
<thead><tr><th>Player</th>{{range .Seasons}}<th>{{.}}</th>{{end}}<th>Total</th></tr></thead>
<tbody>
{{range .Rows}}<tr><td>{{.Name}}</td>{{range .Cells}}<td>{{.}}</td>{{end}}<td>{{.Total}}</td></tr>
{{end}}</tbody>
</table>
</body>
</html>
`))

type htmlRow struct {
	Name  string
	Cells []string
	Total string
}

// WriteHTML renders a page with the SVG chart inline and a data table of
// the per-season values below it.
func WriteHTML(w io.Writer, c *Chart) error {
	var svgBuf bytes.Buffer
	if err := WriteSVG(&svgBuf, c); err != nil {
		return err
	}

	var seasons []string
	for _, s := range c.Series {
		seasons = append(seasons, s.Name)
	}
	rows := make([]htmlRow, len(c.Categories))
	for i, cat := range c.Categories {
		var total float64
		row := htmlRow{Name: cat}
		for _, s := range c.Series {
			v := value(s, i)
			total += v
			row.Cells = append(row.Cells, formatValue(v))
		}
		row.Total = formatValue(total)
		rows[i] = row
	}

	return pageTmpl.Execute(w, struct {
		Title   string
		SVG     template.HTML
		Seasons []string
		Rows    []htmlRow
	}{c.Title, template.HTML(svgBuf.String()), seasons, rows})
}

func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
