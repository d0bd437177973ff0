package sqlstore

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/emiliopalmerini/herdstats/internal/infrastructure/database"
)

// Dialect captures the few places where the supported databases disagree:
// placeholder style, the milk class expression and the birth month expression.
type Dialect struct {
	Name string
	// Numbered placeholders ($1, $2, ...) instead of ?.
	Numbered bool
	// BinExpr maps p_fmilk to its 0-based class index.
	BinExpr string
	// MonthExpr extracts the 1-based month from p_bdate.
	MonthExpr string
}

var (
	MySQL = Dialect{
		Name:      "mysql",
		BinExpr:   "FLOOR(p_fmilk / 50000)",
		MonthExpr: "MONTH(p_bdate)",
	}
	Postgres = Dialect{
		Name:      "postgres",
		Numbered:  true,
		BinExpr:   "FLOOR(p_fmilk / 50000.0)",
		MonthExpr: "EXTRACT(MONTH FROM p_bdate)",
	}
	SQLite = Dialect{
		Name:      "sqlite",
		BinExpr:   "CAST(p_fmilk / 50000 AS INTEGER)",
		MonthExpr: "CAST(strftime('%m', p_bdate) AS INTEGER)",
	}
)

// DialectFor returns the dialect of a database/sql driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case database.DriverMySQL:
		return MySQL, nil
	case database.DriverPostgres, "postgres":
		return Postgres, nil
	case database.DriverLibSQL, "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("no SQL dialect for driver %q", driver)
	}
}

// Render substitutes the dialect expressions into a query template.
func (d Dialect) Render(query string) string {
	return strings.NewReplacer("{bin}", d.BinExpr, "{month}", d.MonthExpr).Replace(query)
}

var namedParam = regexp.MustCompile(`:([a-z_]+)`)

// Bind rewrites :name parameters into the dialect's placeholders and returns
// the positional arguments in order. Every referenced name must be present
// in params.
func (d Dialect) Bind(query string, params map[string]any) (string, []any, error) {
	var (
		args    []any
		missing string
	)
	out := namedParam.ReplaceAllStringFunc(query, func(m string) string {
		name := m[1:]
		v, ok := params[name]
		if !ok {
			if missing == "" {
				missing = name
			}
			return m
		}
		args = append(args, v)
		if d.Numbered {
			return "$" + strconv.Itoa(len(args))
		}
		return "?"
	})
	if missing != "" {
		return "", nil, fmt.Errorf("missing query parameter %q", missing)
	}
	return out, args, nil
}
