package domain

import (
	"errors"
	"fmt"
)

// Widget bounds for the filter form.
const (
	MinLactation = 1
	MaxLactation = 15
	MinDaysLower = 0
	MinDaysUpper = 365

	DefaultMinDays = 90

	// DefaultUnknownBreedID is the breed row that stands for "breed not recorded".
	DefaultUnknownBreedID = 1
)

var (
	// ErrUnknownBreed is returned when the selected breed cannot be used for filtering.
	ErrUnknownBreed = errors.New("please choose a valid breed")
	// ErrNoData marks a query that matched no rows.
	ErrNoData = errors.New("no data found for the selected filters")
)

// Range is an inclusive integer interval.
type Range struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Valid reports whether From <= To.
func (r Range) Valid() bool {
	return r.From <= r.To
}

// RangeError reports an inverted range. Field names the offending filter.
type RangeError struct {
	Field string
	Range Range
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: 'from' (%d) must be less than or equal to 'to' (%d)", e.Field, e.Range.From, e.Range.To)
}

// Range field names used in validation messages.
const (
	FieldNameLactation = "lactation period"
	FieldNameYear      = "production year"
)

// FilterFields selects which filters a page uses.
type FilterFields uint8

const (
	UsesLactation FilterFields = 1 << iota
	UsesYear
	UsesMinDays
)

// Has reports whether f includes field.
func (f FilterFields) Has(field FilterFields) bool {
	return f&field != 0
}

// FilterInput is the raw user selection before resolution.
type FilterInput struct {
	Breed     string
	Lactation Range
	Year      Range
	MinDays   int
	Fields    FilterFields
}

// FilterSelection is a validated filter ready to be bound to a query.
type FilterSelection struct {
	BreedID   int   `json:"breed_id"`
	Lactation Range `json:"lactation"`
	Year      Range `json:"year"`
	MinDays   int   `json:"min_days"`
}

// Params returns the named query parameters for the selection.
func (f FilterSelection) Params() map[string]any {
	return map[string]any{
		"breed":     f.BreedID,
		"lact_from": f.Lactation.From,
		"lact_to":   f.Lactation.To,
		"year_from": f.Year.From,
		"year_to":   f.Year.To,
		"min_days":  f.MinDays,
	}
}

// Resolver validates filter input and maps breed display names to IDs.
type Resolver struct {
	ids       map[string]int
	unknownID int
}

// NewResolver builds a resolver from the breed lookup table.
func NewResolver(breeds []Breed, unknownID int) *Resolver {
	ids := make(map[string]int, len(breeds))
	for _, b := range breeds {
		ids[b.Name] = b.ID
	}
	return &Resolver{ids: ids, unknownID: unknownID}
}

// Resolve checks the ranges the page uses (lactation first, then year) and
// then resolves the breed. It returns a *RangeError or ErrUnknownBreed on
// failure; nothing else is validated.
func (r *Resolver) Resolve(in FilterInput) (FilterSelection, error) {
	if in.Fields.Has(UsesLactation) && !in.Lactation.Valid() {
		return FilterSelection{}, &RangeError{Field: FieldNameLactation, Range: in.Lactation}
	}
	if in.Fields.Has(UsesYear) && !in.Year.Valid() {
		return FilterSelection{}, &RangeError{Field: FieldNameYear, Range: in.Year}
	}

	id, ok := r.ids[in.Breed]
	if !ok || id == r.unknownID {
		return FilterSelection{}, ErrUnknownBreed
	}

	return FilterSelection{
		BreedID:   id,
		Lactation: in.Lactation,
		Year:      in.Year,
		MinDays:   in.MinDays,
	}, nil
}

// ClampInt bounds v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
