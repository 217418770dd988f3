package game

import (
	"strconv"
	"strings"
)

// ParseRating turns a rating-like string into an order key. It covers
// both difficulty ratings ("9", "9+", "?") and content version strings
// ("5.5"). A trailing "+" sorts halfway to the next integer, "?" sorts
// as the lowest possible value, and an empty string reports absent.
func ParseRating(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	norm := strings.ReplaceAll(s, "+", ".5")
	norm = strings.ReplaceAll(norm, "?", "0")
	v, err := strconv.ParseFloat(norm, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// CompareRatings orders two rating strings through ParseRating.
// Results: -1 guessed lower, 1 guessed higher, 0 equal. The bool is
// false when exactly one side is absent and no ordering exists; two
// absent values compare equal.
func CompareRatings(guessed, answer string) (int, bool) {
	gv, gok := ParseRating(guessed)
	av, aok := ParseRating(answer)
	switch {
	case gok && aok:
		if gv < av {
			return -1, true
		}
		if gv > av {
			return 1, true
		}
		return 0, true
	case !gok && !aok:
		return 0, true
	default:
		return 0, false
	}
}
