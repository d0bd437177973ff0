package sqlstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialect_Bind(t *testing.T) {
	params := map[string]any{"breed": 2, "lact_from": 1, "lact_to": 5}
	q := "WHERE b = :breed AND l BETWEEN :lact_from AND :lact_to AND x = :breed"

	tests := []struct {
		name    string
		dialect Dialect
		want    string
	}{
		{"mysql", MySQL, "WHERE b = ? AND l BETWEEN ? AND ? AND x = ?"},
		{"sqlite", SQLite, "WHERE b = ? AND l BETWEEN ? AND ? AND x = ?"},
		{"postgres", Postgres, "WHERE b = $1 AND l BETWEEN $2 AND $3 AND x = $4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, args, err := tt.dialect.Bind(q, params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, []any{2, 1, 5, 2}, args)
		})
	}
}

func TestDialect_BindMissingParam(t *testing.T) {
	_, _, err := MySQL.Bind("WHERE p_year BETWEEN :year_from AND :year_to", map[string]any{"year_from": 2000})
	assert.ErrorContains(t, err, `"year_to"`)
}

func TestDialect_Render(t *testing.T) {
	assert.Equal(t,
		"SELECT CAST(p_fmilk / 50000 AS INTEGER), CAST(strftime('%m', p_bdate) AS INTEGER)",
		SQLite.Render("SELECT {bin}, {month}"),
	)
	assert.Equal(t, "GROUP BY FLOOR(p_fmilk / 50000)", MySQL.Render("GROUP BY {bin}"))
}

func TestDialect_QueriesBindOnEveryDialect(t *testing.T) {
	params := map[string]any{
		"breed": 2, "lact_from": 1, "lact_to": 15,
		"year_from": 2000, "year_to": 2020, "min_days": 90,
	}
	for _, d := range []Dialect{MySQL, Postgres, SQLite} {
		for _, q := range []string{queryYearlyStats, queryTotals, queryLactationStats, queryMonthlyStats, queryYieldClasses, queryBreeds, queryYears, queryAreas} {
			stmt, _, err := d.Bind(d.Render(q), params)
			require.NoError(t, err, d.Name)
			assert.NotContains(t, stmt, "{", d.Name)
			assert.NotContains(t, stmt, ":", d.Name)
		}
	}
}

func TestDialectFor(t *testing.T) {
	for driver, want := range map[string]string{"mysql": "mysql", "pgx": "postgres", "libsql": "sqlite"} {
		d, err := DialectFor(driver)
		require.NoError(t, err)
		assert.Equal(t, want, d.Name)
	}
	_, err := DialectFor("oracle")
	assert.Error(t, err)
}
