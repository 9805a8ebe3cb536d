// Package session derives display labels for practice-session files.
package session

import (
	"path/filepath"
	"strings"
)

// Label converts a session file name like "saturday__05_46_pm.csv" into a
// display label like "Saturday 05:46 PM". Names that do not split into
// exactly a day and a time token on "__" fall back to the bare base name.
// Total: never fails, no side effects.
func Label(filename string) string {
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))

	parts := strings.Split(name, "__")
	if len(parts) != 2 {
		return name
	}

	return capitalize(parts[0]) + " " + formatClock(parts[1])
}

// formatClock turns a time token like "05_46_pm" into "05:46 PM". A
// trailing am/pm segment is split off with a space; everything else joins
// on colons.
func formatClock(tok string) string {
	segs := strings.Split(tok, "_")
	last := len(segs) - 1
	meridiem := ""
	if last > 0 && (strings.EqualFold(segs[last], "am") || strings.EqualFold(segs[last], "pm")) {
		meridiem = " " + strings.ToUpper(segs[last])
		segs = segs[:last]
	}
	return strings.ToUpper(strings.Join(segs, ":")) + meridiem
}

// capitalize upper-cases the first letter only, leaving the rest untouched.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
