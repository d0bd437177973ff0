package util

import (
	"database/sql"
	"strconv"
)

// ToInt64 converts a scanned aggregate column to int64.
// Drivers disagree on aggregate types: SQLite yields int64, MySQL DECIMAL
// sums arrive as []byte and Postgres numeric sums as string.
// Returns 0 for nil or unsupported types.
func ToInt64(v any) int64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case uint64:
		return int64(n)
	case float64:
		return int64(n)
	case float32:
		return int64(n)
	case []byte:
		return parseInt(string(n))
	case string:
		return parseInt(n)
	case sql.NullInt64:
		if n.Valid {
			return n.Int64
		}
		return 0
	case sql.NullFloat64:
		if n.Valid {
			return int64(n.Float64)
		}
		return 0
	default:
		return 0
	}
}

func parseInt(s string) int64 {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	f, _ := strconv.ParseFloat(s, 64)
	return int64(f)
}

// ToFloat64 converts a scanned aggregate column to float64.
// Returns 0 for nil or unsupported types.
func ToFloat64(v any) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case uint64:
		return float64(n)
	case []byte:
		f, _ := strconv.ParseFloat(string(n), 64)
		return f
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	case sql.NullFloat64:
		if n.Valid {
			return n.Float64
		}
		return 0
	case sql.NullInt64:
		if n.Valid {
			return float64(n.Int64)
		}
		return 0
	default:
		return 0
	}
}
