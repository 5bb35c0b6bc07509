package costing

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round2 rounds v half away from zero to two decimals for display.
// Non-finite values display as 0.
func Round2(v float64) float64 {
	if !finite(v) {
		return 0
	}
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Format2 renders v with exactly two decimals.
func Format2(v float64) string {
	if !finite(v) {
		return "0.00"
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
