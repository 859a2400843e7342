package nutrition

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// FormatTwoDecimals truncates v toward zero at two decimals. Non-finite
// values render as "0.00".
func FormatTwoDecimals(v float64) string {
	if !isFinite(v) {
		return "0.00"
	}

	return decimal.NewFromFloat(v).Truncate(2).StringFixed(2)
}

// FormatOneDecimal renders grams the way meal rows show them.
func FormatOneDecimal(v float64) string {
	if !isFinite(v) {
		return "0.0"
	}

	return strconv.FormatFloat(v, 'f', 1, 64)
}
