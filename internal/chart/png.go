package chart

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strings"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// PNGScale multiplies the canvas size of PNG output.
const PNGScale = 2

// WritePNG rasterizes the chart. The bitmap font only covers ASCII, so
// labels are folded with ASCII.
func WritePNG(w io.Writer, c *Chart) error {
	l := c.Resolve(DefaultWidth, DefaultHeight)
	img := image.NewRGBA(image.Rect(0, 0, int(l.Width)*PNGScale, int(l.Height)*PNGScale))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	s := func(v float64) int { return int(math.Round(v * PNGScale)) }
	fill := func(x, y, w, h float64, col color.Color) {
		r := image.Rect(s(x), s(y), s(x+w), s(y+h))
		draw.Draw(img, r, image.NewUniform(col), image.Point{}, draw.Over)
	}
	grid := color.RGBA{229, 229, 229, 255}
	ink := color.RGBA{34, 34, 34, 255}

	for _, t := range l.Ticks {
		fill(l.Left, t.Y, l.Right-l.Left, 0.5, grid)
		text(img, s(l.Left-8)-len(t.Label)*7, s(t.Y)+4, t.Label, ink)
	}
	fill(l.Left, l.ZeroY, l.Right-l.Left, 0.75, color.RGBA{136, 136, 136, 255})

	for _, b := range l.Bars {
		fill(b.X, b.Y, math.Max(b.W, 0.5), math.Max(b.H, 0.5), b.Fill)
	}

	title := ASCII(l.Title)
	text(img, s(l.Width/2)-len(title)*7/2, s(34), title, ink)

	// Stagger category labels on two lines so neighbours do not collide.
	slot := (l.Right - l.Left) / float64(max(len(l.Labels), 1))
	maxChars := max(int(slot*2*PNGScale/7)-1, 3)
	for i, lb := range l.Labels {
		t := ASCII(lb.Text)
		if len(t) > maxChars {
			t = t[:maxChars]
		}
		y := s(lb.Y) + 14 + (i%2)*16
		text(img, s(lb.X)-len(t)*7/2, y, t, ink)
	}

	x, y := l.Right+20, l.Top
	for i, item := range l.Legend {
		yy := y + float64(i)*20
		fill(x, yy, 14, 14, item.Color)
		text(img, s(x+20), s(yy+11), ASCII(item.Name), ink)
	}

	return png.Encode(w, img)
}

func text(dst draw.Image, x, y int, s string, col color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

var fold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// ASCII strips diacritics and drops anything left outside printable ASCII
// (flag emoji included).
func ASCII(s string) string {
	if out, _, err := transform.String(fold, s); err == nil {
		s = out
	}
	s = strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
