// Package aggregate turns raw shot tables into per-(session, club)
// summaries and per-club trend classifications.
package aggregate

import (
	"math"
	"time"

	"github.com/okian/fairway/internal/domain/club"
	"github.com/okian/fairway/internal/domain/model"
	"github.com/okian/fairway/internal/domain/stats"
)

// Row is one aggregated (session, club) summary. Float fields hold NaN
// when the underlying sample was too small to compute them.
type Row struct {
	SessionFile  string
	SessionLabel string
	SessionTime  time.Time // capture time, zero when unknown
	Club         string
	ClubRank     int

	Shots       int
	SmashAvg    float64
	SmashStd    float64
	TargetSmash float64
	SmashDiff   float64
	Consistency float64
}

// groupKey identifies one (session, club) partition of the input.
type groupKey struct {
	file  string
	label string
	club  string
}

// Build aggregates the shot table into one Row per (session, club) group
// present in the input. basisMetric names the column feeding the
// consistency index; when it is absent from the table the smash column is
// used instead. An input without a smash column yields an empty result:
// that column is required, all others are optional.
//
// Pure and stateless: the same table always produces the same rows, in
// first-appearance group order.
func Build(t *model.ShotTable, basisMetric string) []Row {
	if t == nil || !t.HasColumn(model.MetricSmash) {
		return nil
	}

	if !t.HasColumn(basisMetric) {
		basisMetric = model.MetricSmash
	}
	hasShotNum := t.HasColumn(model.ColumnShot)

	// Partition rows by (session file, session label, club), keeping
	// first-appearance order for deterministic output.
	var order []groupKey
	groups := make(map[groupKey][]model.Shot)
	for _, s := range t.Shots {
		k := groupKey{file: s.SessionFile, label: s.SessionLabel, club: s.Club}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], s)
	}

	rows := make([]Row, 0, len(order))
	for _, k := range order {
		shots := groups[k]

		smash := make([]float64, 0, len(shots))
		basis := make([]float64, 0, len(shots))
		for _, s := range shots {
			smash = append(smash, s.Smash)
			basis = append(basis, s.Metric(basisMetric))
		}
		smash = stats.DropNaN(smash)

		target := club.TargetSmash(k.club)
		avg := stats.Mean(smash)

		rows = append(rows, Row{
			SessionFile:  k.file,
			SessionLabel: k.label,
			SessionTime:  sessionTime(shots),
			Club:         k.club,
			ClubRank:     club.SortRank(k.club),
			Shots:        countShots(shots, hasShotNum, len(smash)),
			SmashAvg:     avg,
			SmashStd:     stats.StdDev(smash),
			TargetSmash:  target,
			SmashDiff:    avg - target,
			Consistency:  stats.Consistency(basis),
		})
	}

	return rows
}

// countShots counts rows carrying a sequence number when the source had a
// shot column, else falls back to the non-missing smash count.
func countShots(shots []model.Shot, hasShotNum bool, smashCount int) int {
	if !hasShotNum {
		return smashCount
	}
	n := 0
	for _, s := range shots {
		if !math.IsNaN(s.Num) {
			n++
		}
	}
	return n
}

// sessionTime returns the first known capture time in the group.
func sessionTime(shots []model.Shot) time.Time {
	for _, s := range shots {
		if !s.CapturedAt.IsZero() {
			return s.CapturedAt
		}
	}
	return time.Time{}
}
