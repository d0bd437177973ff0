package report

import (
	"strconv"
	"time"

	"github.com/emiliopalmerini/herdstats/internal/chart"
	"github.com/emiliopalmerini/herdstats/internal/domain"
)

const (
	colorMilk   = "#1f77b4"
	colorDays   = "#ff7f0e"
	colorBirths = "#2ca02c"
	colorBars   = "#9ecae1"
	colorActual = "#08519c"
	colorFit    = "#d62728"

	miniHeight = 260
)

func column(rows []domain.PeriodStats, get func(domain.PeriodStats) float64) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = get(r)
	}
	return out
}

func periodKeys(rows []domain.PeriodStats) []float64 {
	return column(rows, func(r domain.PeriodStats) float64 { return float64(r.Key) })
}

// stepTicks labels every integer between the first and last key.
func stepTicks(rows []domain.PeriodStats, label func(int) string) []chart.Tick {
	if len(rows) == 0 {
		return nil
	}
	lo, hi := rows[0].Key, rows[0].Key
	for _, r := range rows[1:] {
		lo, hi = min(lo, r.Key), max(hi, r.Key)
	}
	ticks := make([]chart.Tick, 0, hi-lo+1)
	for k := lo; k <= hi; k++ {
		ticks = append(ticks, chart.Tick{Value: float64(k), Label: label(k)})
	}
	return ticks
}

func monthLabel(m int) string {
	if m < 1 || m > 12 {
		return strconv.Itoa(m)
	}
	return time.Month(m).String()[:3]
}

// dualAxisChart plots average milk on the left axis and average days on the right.
func dualAxisChart(id, title, xTitle string, rows []domain.PeriodStats, ticks []chart.Tick) chart.Spec {
	x := periodKeys(rows)
	return chart.Spec{
		ID:      id,
		Title:   title,
		XTitle:  xTitle,
		YTitle:  "Average milk (kg)",
		Y2Title: "Average days",
		Height:  chart.DefaultHeight,
		Legend:  true,
		XTicks:  ticks,
		Series: []chart.Series{
			{
				Name: "Average milk", Kind: chart.KindLinesMarkers, Axis: chart.AxisLeft, Color: colorMilk,
				X: x, Y: column(rows, func(r domain.PeriodStats) float64 { return r.AvgMilk }),
			},
			{
				Name: "Average days", Kind: chart.KindLinesMarkers, Axis: chart.AxisRight, Color: colorDays,
				X: x, Y: column(rows, func(r domain.PeriodStats) float64 { return r.AvgDays }),
			},
		},
	}
}

func miniChart(id, title, yTitle, color string, rows []domain.PeriodStats, ticks []chart.Tick, get func(domain.PeriodStats) float64) chart.Spec {
	return chart.Spec{
		ID:     id,
		Title:  title,
		XTitle: "Year",
		YTitle: yTitle,
		Height: miniHeight,
		XTicks: ticks,
		Series: []chart.Series{{
			Name: title, Kind: chart.KindLinesMarkers, Axis: chart.AxisLeft, Color: color,
			X: periodKeys(rows), Y: column(rows, get),
		}},
	}
}

func yearlyCharts(rows []domain.PeriodStats) []chart.Spec {
	ticks := stepTicks(rows, strconv.Itoa)
	return []chart.Spec{
		dualAxisChart("production", "Average milk and lactation days per year", "Year", rows, ticks),
		miniChart("std_milk", "STD milk", "kg", colorMilk, rows, ticks, func(r domain.PeriodStats) float64 { return r.StdMilk }),
		miniChart("std_days", "STD days", "days", colorDays, rows, ticks, func(r domain.PeriodStats) float64 { return r.StdDays }),
		miniChart("std_births", "STD births", "offspring", colorBirths, rows, ticks, func(r domain.PeriodStats) float64 { return r.StdBirths }),
	}
}

func errorBarChart(id, title, yTitle, color string, rows []domain.PeriodStats, avg, std func(domain.PeriodStats) float64) chart.Spec {
	return chart.Spec{
		ID:     id,
		Title:  title,
		XTitle: "Lactation period",
		YTitle: yTitle,
		Height: chart.DefaultHeight,
		XTicks: stepTicks(rows, strconv.Itoa),
		Series: []chart.Series{{
			Name: title, Kind: chart.KindMarkers, Axis: chart.AxisLeft, Color: color,
			X: periodKeys(rows), Y: column(rows, avg), ErrorY: column(rows, std),
		}},
	}
}

func lactationCharts(rows []domain.PeriodStats) []chart.Spec {
	return []chart.Spec{
		errorBarChart("milk", "Average milk per lactation period", "Milk (kg)", colorMilk, rows,
			func(r domain.PeriodStats) float64 { return r.AvgMilk },
			func(r domain.PeriodStats) float64 { return r.StdMilk }),
		errorBarChart("days", "Average lactation days per lactation period", "Days", colorDays, rows,
			func(r domain.PeriodStats) float64 { return r.AvgDays },
			func(r domain.PeriodStats) float64 { return r.StdDays }),
	}
}

func monthlyCharts(rows []domain.PeriodStats) []chart.Spec {
	return []chart.Spec{
		dualAxisChart("production", "Average milk and lactation days per birth month", "Birth month", rows, stepTicks(rows, monthLabel)),
	}
}

// classificationChart draws the class counts as bars, the observed
// distribution as a line and, when it can be fitted, the Gaussian curve.
func classificationChart(bins []domain.YieldBin, fit domain.GaussianFit, fitted bool) chart.Spec {
	x := make([]float64, len(bins))
	y := make([]float64, len(bins))
	ticks := make([]chart.Tick, len(bins))
	for i, b := range bins {
		x[i] = b.Midpoint
		y[i] = float64(b.Count)
		ticks[i] = chart.Tick{Value: b.Midpoint, Label: b.Label}
	}

	spec := chart.Spec{
		ID:     "classes",
		Title:  "Distribution of milk yield classes",
		XTitle: "Milk yield class (kg)",
		YTitle: "Animals",
		Height: chart.DefaultHeight,
		Legend: true,
		XTicks: ticks,
		Series: []chart.Series{
			{Name: "Animals", Kind: chart.KindBar, Axis: chart.AxisLeft, Color: colorBars, X: x, Y: y, Width: domain.LabelWidth},
			{Name: "Actual distribution", Kind: chart.KindLinesMarkers, Axis: chart.AxisLeft, Color: colorActual, X: x, Y: y},
		},
	}
	if fitted {
		fx, fy := fit.Points()
		spec.Series = append(spec.Series, chart.Series{
			Name: "Normal distribution", Kind: chart.KindLine, Axis: chart.AxisLeft, Color: colorFit, X: fx, Y: fy,
		})
	}
	return spec
}
