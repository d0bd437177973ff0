// Package chart describes dashboard charts as plain data and renders them
// to SVG.
package chart

import (
	"errors"
	"fmt"
)

// Kind is how a series is drawn.
type Kind string

const (
	KindLine         Kind = "line"
	KindMarkers      Kind = "markers"
	KindLinesMarkers Kind = "lines+markers"
	KindBar          Kind = "bar"
)

// Axis selects the y axis a series is plotted against.
type Axis string

const (
	AxisLeft  Axis = "left"
	AxisRight Axis = "right"
)

// Series is one trace of a chart. ErrorY, when set, holds the symmetric
// error for each point. Width is the bar width of bar series.
type Series struct {
	Name   string    `json:"name"`
	Kind   Kind      `json:"kind"`
	Axis   Axis      `json:"axis"`
	Color  string    `json:"color"`
	X      []float64 `json:"x"`
	Y      []float64 `json:"y"`
	ErrorY []float64 `json:"error_y,omitempty"`
	Width  float64   `json:"width,omitempty"`
}

// Tick is a labeled position on the x axis.
type Tick struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// Spec is a renderer-independent chart description.
type Spec struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	XTitle  string   `json:"x_title"`
	YTitle  string   `json:"y_title"`
	Y2Title string   `json:"y2_title,omitempty"`
	Height  int      `json:"height"`
	Legend  bool     `json:"legend"`
	XTicks  []Tick   `json:"x_ticks,omitempty"`
	Series  []Series `json:"series"`
}

// ErrEmpty is returned when a chart has no points to draw.
var ErrEmpty = errors.New("chart has no data points")

// Validate checks that every series is well formed and that there is at
// least one point.
func (s Spec) Validate() error {
	points := 0
	for _, ser := range s.Series {
		if len(ser.X) != len(ser.Y) {
			return fmt.Errorf("series %q: %d x values for %d y values", ser.Name, len(ser.X), len(ser.Y))
		}
		if len(ser.ErrorY) != 0 && len(ser.ErrorY) != len(ser.Y) {
			return fmt.Errorf("series %q: %d errors for %d y values", ser.Name, len(ser.ErrorY), len(ser.Y))
		}
		if ser.Kind == KindBar && ser.Width <= 0 {
			return fmt.Errorf("series %q: bar width must be positive", ser.Name)
		}
		points += len(ser.X)
	}
	if points == 0 {
		return ErrEmpty
	}
	return nil
}

// Find returns the chart with the given id.
func Find(specs []Spec, id string) (Spec, bool) {
	for _, s := range specs {
		if s.ID == id {
			return s, true
		}
	}
	return Spec{}, false
}
