// Package club classifies free-text club names into efficiency targets
// and display sort ranks.
package club

import (
	"strconv"
	"strings"
	"unicode"
)

// Target smash factors per club family.
const (
	targetDriver = 1.48
	targetWood   = 1.47
	targetHybrid = 1.45
	targetWedge  = 1.25
	targetIron   = 1.33
)

// Sort rank anchors. Numbered clubs land at rankNumbered+N so irons order
// by their number between the driver and the wedges.
const (
	rankDriver   = 1
	rankNumbered = 100
	rankWedge    = 200
	rankOther    = 300
)

// TargetSmash returns the ideal smash factor for a club name. Matching is
// case-insensitive substring search, first rule wins; anything unmatched is
// treated as an iron. Total: always returns a value.
func TargetSmash(name string) float64 {
	n := strings.ToLower(name)

	switch {
	case strings.Contains(n, "driver"):
		return targetDriver
	case containsAny(n, "wood", "fw", "3w", "5w"):
		return targetWood
	case containsAny(n, "hybrid", "rescue", "híbrido"):
		return targetHybrid
	case containsAny(n, "wedge", "gw", "sw", "lw"):
		return targetWedge
	default:
		return targetIron
	}
}

// SortRank returns a display ordering key: driver first, numbered clubs by
// their number, wedges after, everything else last. The digit rule runs
// before the wedge rule, so a wedge carrying a model number ranks by the
// number. Total: always returns a value.
func SortRank(name string) int {
	n := strings.ToLower(name)

	if strings.Contains(n, "driver") {
		return rankDriver
	}
	if num, ok := firstNumber(n); ok {
		return rankNumbered + num
	}
	if containsAny(n, "wedge", "gw", "sw", "lw") {
		return rankWedge
	}
	return rankOther
}

// containsAny reports whether s contains any of the substrings.
func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// firstNumber extracts the first run of decimal digits in s.
func firstNumber(s string) (int, bool) {
	start := -1
	for i, r := range s {
		if unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			n, err := strconv.Atoi(s[start:i])
			return n, err == nil
		}
	}
	if start >= 0 {
		n, err := strconv.Atoi(s[start:])
		return n, err == nil
	}
	return 0, false
}
