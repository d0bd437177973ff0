package report

import (
	"net/url"
	"strconv"
	"strings"
)

// Request is the raw filter input of a page. Nil fields take their defaults.
type Request struct {
	Breed    string `json:"breed,omitempty"`
	LactFrom *int   `json:"lact_from,omitempty"`
	LactTo   *int   `json:"lact_to,omitempty"`
	YearFrom *int   `json:"year_from,omitempty"`
	YearTo   *int   `json:"year_to,omitempty"`
	MinDays  *int   `json:"min_days,omitempty"`
}

// Query parameter names shared by the HTML form and the JSON API.
const (
	ParamBreed    = "breed"
	ParamLactFrom = "lact_from"
	ParamLactTo   = "lact_to"
	ParamYearFrom = "year_from"
	ParamYearTo   = "year_to"
	ParamMinDays  = "min_days"
)

// RequestFromValues reads a request from URL query values. Values that are
// not integers are treated as absent.
func RequestFromValues(v url.Values) Request {
	return Request{
		Breed:    strings.TrimSpace(v.Get(ParamBreed)),
		LactFrom: intParam(v, ParamLactFrom),
		LactTo:   intParam(v, ParamLactTo),
		YearFrom: intParam(v, ParamYearFrom),
		YearTo:   intParam(v, ParamYearTo),
		MinDays:  intParam(v, ParamMinDays),
	}
}

func intParam(v url.Values, key string) *int {
	s := strings.TrimSpace(v.Get(key))
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// Values encodes the request as URL query values.
func (r Request) Values() url.Values {
	v := url.Values{}
	if r.Breed != "" {
		v.Set(ParamBreed, r.Breed)
	}
	set := func(key string, p *int) {
		if p != nil {
			v.Set(key, strconv.Itoa(*p))
		}
	}
	set(ParamLactFrom, r.LactFrom)
	set(ParamLactTo, r.LactTo)
	set(ParamYearFrom, r.YearFrom)
	set(ParamYearTo, r.YearTo)
	set(ParamMinDays, r.MinDays)
	return v
}
