// Package chart renders all-time leader bar charts as PNG, SVG, HTML and PDF.
//
// Every renderer draws the same Layout, so the formats agree on bar
// geometry, colors and labels.
package chart

import (
	"fmt"
	"image/color"
	"math"
)

// Mode selects how season series share a category.
type Mode int

const (
	// Stacked piles season values on top of each other; negatives stack
	// downward from zero.
	Stacked Mode = iota
	// Grouped places season bars side by side.
	Grouped
)

// Palette used by the leader charts.
var (
	LightBlue = color.RGBA{144, 211, 211, 255}
	DarkBlue  = color.RGBA{3, 22, 35, 255}
	RecordRed = color.RGBA{228, 24, 46, 255}
)

// Series is one season's values across all categories.
type Series struct {
	Name   string
	Color  color.RGBA   // legend color
	Values []float64    // one per category
	Colors []color.RGBA // per-bar override; nil means Color
}

// BarColor returns the fill for the i-th bar.
func (s Series) BarColor(i int) color.RGBA {
	if i < len(s.Colors) {
		return s.Colors[i]
	}
	return s.Color
}

// LegendItem is a legend swatch.
type LegendItem struct {
	Name  string
	Color color.RGBA
}

// Chart is a renderer-independent bar chart.
type Chart struct {
	Title      string
	YLabel     string
	Categories []string
	Series     []Series
	Legend     []LegendItem
	Mode       Mode
}

// Spectrum interpolates between from and to: band n of bands, truncating
// each channel.
func Spectrum(n int, from, to color.RGBA, bands int) color.RGBA {
	if bands <= 1 {
		return from
	}
	mix := func(a, b uint8) uint8 {
		return uint8(int(float64(a) + float64(n)*(float64(b)-float64(a))/float64(bands-1)))
	}
	return color.RGBA{mix(from.R, to.R), mix(from.G, to.G), mix(from.B, to.B), 255}
}

// CSS formats a color as rgb(r,g,b).
func CSS(c color.RGBA) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// Range returns the value extent the chart needs on the y axis, always
// including zero.
func (c *Chart) Range() (lo, hi float64) {
	for i := range c.Categories {
		var pos, neg float64
		for _, s := range c.Series {
			v := value(s, i)
			if c.Mode == Stacked {
				if v >= 0 {
					pos += v
				} else {
					neg += v
				}
				continue
			}
			hi = math.Max(hi, v)
			lo = math.Min(lo, v)
		}
		hi = math.Max(hi, pos)
		lo = math.Min(lo, neg)
	}
	return lo, hi
}

func value(s Series, i int) float64 {
	if i >= len(s.Values) || math.IsNaN(s.Values[i]) {
		return 0
	}
	return s.Values[i]
}

// niceStep picks a 1/2/5 x 10^k tick step giving roughly n ticks.
func niceStep(span float64, n int) float64 {
	if span <= 0 || n <= 0 {
		return 1
	}
	raw := span / float64(n)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5, 10} {
		if raw <= m*mag {
			return m * mag
		}
	}
	return 10 * mag
}
