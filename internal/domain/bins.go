package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	// BinWidth is the width of a milk-yield class in grams.
	BinWidth = 50000
	// LabelWidth is the width of a milk-yield class in kilograms, as shown in labels.
	LabelWidth = BinWidth / GramsPerKg
)

// ClassRow is one milk-yield class as returned by the classification query.
type ClassRow struct {
	Index     int     `json:"class_no"`
	Count     int64   `json:"total_animals"`
	AvgDays   float64 `json:"avg_days"`
	AvgMilkKg float64 `json:"avg_milk_kg"`
	StdMilkKg float64 `json:"std_milk_kg"`
}

// ClassMoments is the raw aggregate behind a ClassRow.
type ClassMoments struct {
	Index int
	Count int64
	Days  Moments
	Milk  Moments // grams
}

// Row derives the rounded class row.
func (c ClassMoments) Row() ClassRow {
	milk := c.Milk.Scaled(1.0 / GramsPerKg)
	return ClassRow{
		Index:     c.Index,
		Count:     c.Count,
		AvgDays:   Round2(c.Days.Mean()),
		AvgMilkKg: Round2(milk.Mean()),
		StdMilkKg: Round2(milk.Std()),
	}
}

// YieldBin is a class ready for plotting.
type YieldBin struct {
	Index    int     `json:"index"`
	Label    string  `json:"label"`
	Count    int64   `json:"count"`
	Midpoint float64 `json:"midpoint"`
}

// BinLabel formats the range label of a class, e.g. "101 - 150" for index 2.
func BinLabel(index int) string {
	lo, hi := binBounds(index)
	return fmt.Sprintf("%d - %d", lo, hi)
}

// BinMidpoint returns the midpoint of a class from its index.
// Midpoint(BinLabel(i)) == BinMidpoint(i) for every i >= 0.
func BinMidpoint(index int) float64 {
	lo, hi := binBounds(index)
	return float64(lo+hi) / 2
}

func binBounds(index int) (int, int) {
	return index*LabelWidth + 1, (index + 1) * LabelWidth
}

// Midpoint parses a range label of the form "A - B" and returns (A+B)/2.
// Spaces around the hyphen are optional.
func Midpoint(label string) (float64, error) {
	left, right, ok := strings.Cut(label, "-")
	if !ok || strings.Contains(right, "-") {
		return 0, fmt.Errorf("invalid class label %q", label)
	}
	lo, err := strconv.Atoi(strings.TrimSpace(left))
	if err != nil {
		return 0, fmt.Errorf("invalid class label %q: %w", label, err)
	}
	hi, err := strconv.Atoi(strings.TrimSpace(right))
	if err != nil {
		return 0, fmt.Errorf("invalid class label %q: %w", label, err)
	}
	return float64(lo+hi) / 2, nil
}

// Bins orders class rows by index and attaches label and midpoint.
func Bins(rows []ClassRow) []YieldBin {
	bins := make([]YieldBin, len(rows))
	for i, r := range rows {
		bins[i] = YieldBin{
			Index:    r.Index,
			Label:    BinLabel(r.Index),
			Count:    r.Count,
			Midpoint: BinMidpoint(r.Index),
		}
	}
	sort.SliceStable(bins, func(i, j int) bool {
		return bins[i].Index < bins[j].Index
	})
	return bins
}
