package chart

import (
	"bytes"
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
)

const fontStyle = "font-family:Helvetica,Arial,sans-serif"

// WriteSVG renders the chart as a standalone SVG document.
func WriteSVG(w io.Writer, c *Chart) error {
	var buf bytes.Buffer
	drawSVG(&buf, c.Resolve(DefaultWidth, DefaultHeight))
	_, err := w.Write(buf.Bytes())
	return err
}

func drawSVG(w io.Writer, l Layout) {
	r := func(v float64) int { return int(math.Round(v)) }

	canvas := svg.New(w)
	canvas.Start(r(l.Width), r(l.Height))
	canvas.Title(l.Title)
	canvas.Rect(0, 0, r(l.Width), r(l.Height), "fill:white")
	canvas.Gstyle(fontStyle)

	canvas.Text(r(l.Width/2), 34, l.Title, "text-anchor:middle;font-size:22px;fill:#222")

	for _, t := range l.Ticks {
		canvas.Line(r(l.Left), r(t.Y), r(l.Right), r(t.Y), "stroke:#e5e5e5")
		canvas.Text(r(l.Left-8), r(t.Y+4), t.Label, "text-anchor:end;font-size:11px;fill:#555")
	}
	canvas.Line(r(l.Left), r(l.ZeroY), r(l.Right), r(l.ZeroY), "stroke:#888")
	if l.YLabel != "" {
		canvas.TranslateRotate(18, r((l.Top+l.Bottom)/2), -90)
		canvas.Text(0, 0, l.YLabel, "text-anchor:middle;font-size:12px;fill:#333")
		canvas.Gend()
	}

	for _, b := range l.Bars {
		canvas.Rect(r(b.X), r(b.Y), max(r(b.W), 1), max(r(b.H), 1),
			fmt.Sprintf("fill:%s;stroke:white;stroke-width:0.5", CSS(b.Fill)))
	}

	for _, lb := range l.Labels {
		canvas.TranslateRotate(r(lb.X), r(lb.Y), 45)
		canvas.Text(0, 0, lb.Text, "text-anchor:start;font-size:11px;fill:#222")
		canvas.Gend()
	}

	x, y := r(l.Right+20), r(l.Top)
	for i, item := range l.Legend {
		yy := y + i*20
		canvas.Rect(x, yy, 14, 14, "fill:"+CSS(item.Color))
		canvas.Text(x+20, yy+11, item.Name, "font-size:12px;fill:#222")
	}

	canvas.Gend()
	canvas.End()
}
