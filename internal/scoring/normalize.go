// Package scoring implements the deterministic and hybrid job scoring engine.
//
// All operations are pure functions over immutable inputs. The package never
// logs and never performs I/O, so any number of scoring calls may run
// concurrently with no coordination.
package scoring

import "strings"

// NormalizeText lower-cases the input, collapses internal whitespace runs to
// single spaces and trims the result. Empty input normalizes to the empty
// string. Every token is normalized before pattern matching or set
// membership, so matching is consistently case- and whitespace-insensitive.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// clampScore clamps to the canonical 0-100 score range.
func clampScore(x int) int {
	return clampInt(x, 0, 100)
}
