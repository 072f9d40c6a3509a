package output

import (
	"math"
	"strconv"
)

// parseValue attempts to parse a cell text as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
// Text that would not print back identically (such as "007" or "1.50") stays a string.
func parseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil && strconv.FormatInt(i, 10) == s {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) && strconv.FormatFloat(f, 'f', -1, 64) == s {
		return f
	}
	// Return as string
	return s
}
