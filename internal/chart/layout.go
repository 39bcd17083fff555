package chart

import (
	"image/color"
	"math"
	"strconv"
)

// Default canvas size in pixels.
const (
	DefaultWidth  = 1200
	DefaultHeight = 700
)

// Rect is a filled bar in canvas coordinates (y grows downward).
type Rect struct {
	X, Y, W, H float64
	Fill       color.RGBA
	Series     string
	Category   string
	Value      float64
}

// Tick is a y-axis gridline.
type Tick struct {
	Y     float64
	Label string
}

// Label is a category label anchored at the bottom of the plot.
type Label struct {
	X, Y float64
	Text string
}

// Layout is the chart resolved to canvas geometry.
type Layout struct {
	Width, Height float64

	// plot area
	Left, Top, Right, Bottom float64
	ZeroY                    float64

	Bars   []Rect
	Ticks  []Tick
	Labels []Label
	Legend []LegendItem
	Title  string
	YLabel string
}

// Resolve computes bar rectangles, ticks and label anchors.
func (c *Chart) Resolve(width, height float64) Layout {
	l := Layout{
		Width: width, Height: height,
		Left: 70, Top: 60, Right: width - 220, Bottom: height - 170,
		Legend: c.Legend, Title: c.Title, YLabel: c.YLabel,
	}

	lo, hi := c.Range()
	if hi == lo {
		hi = lo + 1
	}
	step := niceStep(hi-lo, 8)
	lo = math.Floor(lo/step) * step
	hi = math.Ceil(hi/step) * step
	scale := (l.Bottom - l.Top) / (hi - lo)
	y := func(v float64) float64 { return l.Bottom - (v-lo)*scale }
	l.ZeroY = y(0)

	for v := lo; v <= hi+step/2; v += step {
		l.Ticks = append(l.Ticks, Tick{Y: y(v), Label: formatTick(v)})
	}

	n := len(c.Categories)
	if n == 0 {
		return l
	}
	slot := (l.Right - l.Left) / float64(n)
	barW := slot * 0.7

	for i, cat := range c.Categories {
		x0 := l.Left + float64(i)*slot + (slot-barW)/2
		l.Labels = append(l.Labels, Label{X: x0 + barW/2, Y: l.Bottom + 8, Text: cat})

		switch c.Mode {
		case Grouped:
			w := barW / float64(max(len(c.Series), 1))
			for j, s := range c.Series {
				v := value(s, i)
				top, bottom := y(math.Max(v, 0)), y(math.Min(v, 0))
				l.Bars = append(l.Bars, Rect{
					X: x0 + float64(j)*w, Y: top, W: w, H: bottom - top,
					Fill: s.BarColor(i), Series: s.Name, Category: cat, Value: v,
				})
			}
		default:
			var pos, neg float64
			for _, s := range c.Series {
				v := value(s, i)
				if v == 0 {
					continue
				}
				var top, bottom float64
				if v > 0 {
					top, bottom = y(pos+v), y(pos)
					pos += v
				} else {
					top, bottom = y(neg), y(neg+v)
					neg += v
				}
				l.Bars = append(l.Bars, Rect{
					X: x0, Y: top, W: barW, H: bottom - top,
					Fill: s.BarColor(i), Series: s.Name, Category: cat, Value: v,
				})
			}
		}
	}
	return l
}

func formatTick(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}
