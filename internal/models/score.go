package models

import (
	"math"
	"strconv"
)

// FormatScore formats a score to one decimal place, rounding halves away
// from zero.
func FormatScore(score float64) string {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return "0.0"
	}
	rounded := math.Round(score*10) / 10
	if rounded == 0 {
		rounded = 0 // drop negative zero
	}
	return strconv.FormatFloat(rounded, 'f', 1, 64)
}
