package util

import (
	"fmt"
	"strconv"
)

// FormatFloat formats a statistic with two decimals.
// Examples: 150 -> "150.00", 7.0711 -> "7.07"
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatCell formats one table cell: floats with two decimals, integers and
// strings as is, anything else with fmt.
func FormatCell(v any) string {
	switch n := v.(type) {
	case float64:
		return FormatFloat(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case int:
		return strconv.Itoa(n)
	case string:
		return n
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// FormatCount formats a count with K/M suffix for readability.
// Examples: 500 -> "500", 1500 -> "1.5K", 1500000 -> "1.5M"
func FormatCount(n int64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	}
	return fmt.Sprintf("%.1fM", float64(n)/1000000)
}
