package chart

import (
	"fmt"
	"io"
	"math"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	DefaultWidth  = 720
	DefaultHeight = 400
)

type bounds struct {
	min, max float64
}

func newBounds() bounds {
	return bounds{min: math.Inf(1), max: math.Inf(-1)}
}

func (b *bounds) add(v ...float64) {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		b.min = math.Min(b.min, x)
		b.max = math.Max(b.max, x)
	}
}

func (b bounds) empty() bool {
	return b.min > b.max
}

// padded widens the range by 5% on each side; a degenerate range gets ±1
// so the renderer never sees a zero-width axis. An axis with no values is
// drawn as 0..1.
func (b bounds) padded() *gochart.ContinuousRange {
	if b.empty() {
		return &gochart.ContinuousRange{Min: 0, Max: 1}
	}
	lo, hi := b.min, b.max
	if hi-lo == 0 {
		return &gochart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}
	pad := (hi - lo) * 0.05
	return &gochart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func color(hex string) drawing.Color {
	if hex == "" {
		return gochart.ColorBlue
	}
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func style(s Series) gochart.Style {
	c := color(s.Color)
	switch s.Kind {
	case KindMarkers:
		return gochart.Style{StrokeWidth: gochart.Disabled, DotWidth: 5, DotColor: c}
	case KindLinesMarkers:
		return gochart.Style{StrokeColor: c, StrokeWidth: 2, DotWidth: 4, DotColor: c}
	case KindBar:
		return gochart.Style{StrokeColor: c, StrokeWidth: 1, FillColor: c.WithAlpha(160)}
	default:
		return gochart.Style{StrokeColor: c, StrokeWidth: 2}
	}
}

// barOutline traces the bars as one closed outline along the x axis.
func barOutline(s Series) ([]float64, []float64) {
	half := s.Width / 2
	xs := make([]float64, 0, 4*len(s.X))
	ys := make([]float64, 0, 4*len(s.Y))
	for i, x := range s.X {
		l, r := x-half, x+half
		xs = append(xs, l, l, r, r)
		ys = append(ys, 0, s.Y[i], s.Y[i], 0)
	}
	return xs, ys
}

// Render draws spec as SVG. Dual-axis charts put left series on go-chart's
// secondary axis, which it draws on the left.
func Render(w io.Writer, spec Spec, width int) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	if width <= 0 {
		width = DefaultWidth
	}
	height := spec.Height
	if height <= 0 {
		height = DefaultHeight
	}

	dual := spec.Y2Title != ""
	xb, left, right := newBounds(), newBounds(), newBounds()
	var series []gochart.Series

	for _, s := range spec.Series {
		axis, yb := gochart.YAxisPrimary, &left
		if dual {
			if s.Axis == AxisRight {
				yb = &right
			} else {
				axis = gochart.YAxisSecondary
			}
		}

		st := style(s)
		xs, ys := s.X, s.Y
		if s.Kind == KindBar {
			xs, ys = barOutline(s)
		}
		xb.add(xs...)
		yb.add(ys...)

		series = append(series, gochart.ContinuousSeries{
			Name:    s.Name,
			Style:   st,
			YAxis:   axis,
			XValues: xs,
			YValues: ys,
		})

		for i, e := range s.ErrorY {
			lo, hi := s.Y[i]-e, s.Y[i]+e
			yb.add(lo, hi)
			series = append(series, gochart.ContinuousSeries{
				Style:   gochart.Style{StrokeColor: color(s.Color), StrokeWidth: 1},
				YAxis:   axis,
				XValues: []float64{s.X[i], s.X[i]},
				YValues: []float64{lo, hi},
			})
		}
	}

	ch := gochart.Chart{
		Title:      spec.Title,
		Width:      width,
		Height:     height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 24}},
		XAxis:      gochart.XAxis{Name: spec.XTitle, Range: xb.padded()},
		Series:     series,
	}
	if len(spec.XTicks) > 0 {
		ticks := make([]gochart.Tick, len(spec.XTicks))
		for i, t := range spec.XTicks {
			ticks[i] = gochart.Tick{Value: t.Value, Label: t.Label}
		}
		ch.XAxis.Ticks = ticks
	}
	if dual {
		ch.YAxisSecondary = gochart.YAxis{Name: spec.YTitle, Range: left.padded()}
		ch.YAxis = gochart.YAxis{Name: spec.Y2Title, Range: right.padded()}
	} else {
		ch.YAxis = gochart.YAxis{Name: spec.YTitle, Range: left.padded()}
	}
	if spec.Legend {
		ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	}

	if err := ch.Render(gochart.SVG, w); err != nil {
		return fmt.Errorf("render chart %s: %w", spec.ID, err)
	}
	return nil
}
