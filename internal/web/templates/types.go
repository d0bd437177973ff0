package templates

import (
	"github.com/emiliopalmerini/herdstats/internal/domain"
	"github.com/emiliopalmerini/herdstats/internal/report"
)

// NavItem is one entry of the top navigation.
type NavItem struct {
	Kind   report.Kind
	Title  string
	Active bool
}

// Nav builds the navigation with active marking the current page.
func Nav(active report.Kind) []NavItem {
	items := make([]NavItem, len(report.Kinds))
	for i, k := range report.Kinds {
		items[i] = NavItem{Kind: k, Title: k.Title(), Active: k == active}
	}
	return items
}

// IndexData feeds the landing page.
type IndexData struct {
	Breeds []domain.Breed
	Years  []int
	Areas  []domain.Area
}

// ChartWidth is the inline SVG width of page charts.
const ChartWidth = 720
