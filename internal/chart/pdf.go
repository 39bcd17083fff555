package chart

import (
	"io"

	"github.com/jung-kurt/gofpdf"
)

// WritePDF renders the chart on a single page sized to the layout, in points.
// Portrait orientation keeps the custom size as given.
func WritePDF(w io.Writer, c *Chart) error {
	l := c.Resolve(DefaultWidth, DefaultHeight)

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: l.Width, Ht: l.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(34, 34, 34)
	title := ASCII(l.Title)
	pdf.Text(l.Width/2-pdf.GetStringWidth(title)/2, 34, title)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetLineWidth(0.5)
	for _, t := range l.Ticks {
		pdf.SetDrawColor(229, 229, 229)
		pdf.Line(l.Left, t.Y, l.Right, t.Y)
		pdf.Text(l.Left-8-pdf.GetStringWidth(t.Label), t.Y+3, t.Label)
	}
	pdf.SetDrawColor(136, 136, 136)
	pdf.Line(l.Left, l.ZeroY, l.Right, l.ZeroY)

	for _, b := range l.Bars {
		pdf.SetFillColor(int(b.Fill.R), int(b.Fill.G), int(b.Fill.B))
		pdf.Rect(b.X, b.Y, b.W, b.H, "F")
	}

	for _, lb := range l.Labels {
		pdf.TransformBegin()
		pdf.TransformRotate(-45, lb.X, lb.Y)
		pdf.Text(lb.X, lb.Y+4, ASCII(lb.Text))
		pdf.TransformEnd()
	}

	x, y := l.Right+20, l.Top
	for i, item := range l.Legend {
		yy := y + float64(i)*20
		pdf.SetFillColor(int(item.Color.R), int(item.Color.G), int(item.Color.B))
		pdf.Rect(x, yy, 14, 14, "F")
		pdf.Text(x+20, yy+11, ASCII(item.Name))
	}

	return pdf.Output(w)
}
