package report

import (
	"fmt"

	"github.com/emiliopalmerini/herdstats/internal/chart"
	"github.com/emiliopalmerini/herdstats/internal/domain"
)

// Kind identifies a dashboard page.
type Kind string

const (
	KindYearly         Kind = "yearly"
	KindLactation      Kind = "lactation"
	KindClassification Kind = "classification"
	KindMonthly        Kind = "monthly"
)

// Kinds lists the pages in navigation order.
var Kinds = []Kind{KindYearly, KindLactation, KindClassification, KindMonthly}

// ParseKind validates a page name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown page %q", s)
}

// Title returns the page heading.
func (k Kind) Title() string {
	switch k {
	case KindYearly:
		return "Production by year"
	case KindLactation:
		return "Production by lactation period"
	case KindClassification:
		return "Milk yield classes"
	case KindMonthly:
		return "Production by birth month"
	default:
		return string(k)
	}
}

func (k Kind) fields() domain.FilterFields {
	switch k {
	case KindYearly:
		return domain.UsesLactation | domain.UsesMinDays
	case KindLactation:
		return domain.UsesYear | domain.UsesMinDays
	default:
		return domain.UsesLactation | domain.UsesYear
	}
}

// Level is the severity of a notice.
type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
)

// Notice is a user-visible, non-fatal message shown instead of results.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// MessageNoData is shown when a valid filter matches nothing.
const MessageNoData = "No data found for the selected filters."

// Indicator is one figure of a page summary.
type Indicator struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

// Table is a data table; every row has one cell per column.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Form is the filter form state: the available options and the effective
// selection. Nil ranges are filters the page does not use.
type Form struct {
	Breeds     []string      `json:"breeds"`
	Years      []int         `json:"years,omitempty"`
	Lactations []int         `json:"lactations,omitempty"`
	Breed      string        `json:"breed"`
	Lactation  *domain.Range `json:"lactation,omitempty"`
	Year       *domain.Range `json:"year,omitempty"`
	MinDays    *int          `json:"min_days,omitempty"`
}

// Input converts the form selection into resolver input.
func (f Form) Input() domain.FilterInput {
	in := domain.FilterInput{Breed: f.Breed}
	if f.Lactation != nil {
		in.Fields |= domain.UsesLactation
		in.Lactation = *f.Lactation
	}
	if f.Year != nil {
		in.Fields |= domain.UsesYear
		in.Year = *f.Year
	}
	if f.MinDays != nil {
		in.Fields |= domain.UsesMinDays
		in.MinDays = *f.MinDays
	}
	return in
}

// Page is a fully computed dashboard page, independent of how it is shown.
type Page struct {
	Kind    Kind         `json:"kind"`
	Title   string       `json:"title"`
	Form    Form         `json:"form"`
	Notice  *Notice      `json:"notice,omitempty"`
	Summary []Indicator  `json:"summary,omitempty"`
	Charts  []chart.Spec `json:"charts,omitempty"`
	Data    *Table       `json:"data,omitempty"`
}

// HasResults reports whether the page carries computed results.
func (p *Page) HasResults() bool {
	return p.Notice == nil && p.Data != nil
}
