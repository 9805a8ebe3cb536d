package aggregate

import (
	"math"
	"sort"
)

// Trend directions.
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// trendDeadzone absorbs noise around zero change: a smash delta within
// ±0.01 (inclusive) classifies as stable.
const trendDeadzone = 0.01

// TrendRow compares a club's first and last session on mean smash.
// Numeric fields are rounded to 3 decimals for display.
type TrendRow struct {
	Club       string
	ClubRank   int
	Sessions   int
	FirstSmash float64
	LastSmash  float64
	Diff       float64
	Direction  string
}

// Trends derives at most one TrendRow per club from the aggregated rows.
// Clubs with fewer than 2 sessions are skipped. Sessions order by capture
// time when every row in the club group has one; otherwise by session
// label as a plain string sort, which is only chronological when labels
// share a format that compares that way.
func Trends(rows []Row) []TrendRow {
	var order []string
	byClub := make(map[string][]Row)
	for _, r := range rows {
		if _, ok := byClub[r.Club]; !ok {
			order = append(order, r.Club)
		}
		byClub[r.Club] = append(byClub[r.Club], r)
	}

	var out []TrendRow
	for _, name := range order {
		group := byClub[name]
		if len(group) < 2 {
			continue
		}

		sortSessions(group)
		first := group[0].SmashAvg
		last := group[len(group)-1].SmashAvg
		diff := last - first

		out = append(out, TrendRow{
			Club:       name,
			ClubRank:   group[0].ClubRank,
			Sessions:   len(group),
			FirstSmash: Round3(first),
			LastSmash:  Round3(last),
			Diff:       Round3(diff),
			Direction:  classify(diff),
		})
	}
	return out
}

// sortSessions orders a club's rows chronologically when possible.
func sortSessions(group []Row) {
	timed := true
	for _, r := range group {
		if r.SessionTime.IsZero() {
			timed = false
			break
		}
	}
	if timed {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].SessionTime.Before(group[j].SessionTime)
		})
		return
	}
	sort.SliceStable(group, func(i, j int) bool {
		return group[i].SessionLabel < group[j].SessionLabel
	})
}

// classify maps a smash delta to a trend direction. Strict inequalities:
// a delta of exactly ±0.01 is stable.
func classify(diff float64) string {
	switch {
	case diff > trendDeadzone:
		return TrendImproving
	case diff < -trendDeadzone:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// Round3 rounds to 3 decimal places. NaN passes through.
func Round3(v float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	return math.Round(v*1000) / 1000
}
