// Package model contains domain models passed between layers.
package model

import (
	"math"
	"sort"
	"time"
)

// Canonical metric column names. Import adapters map source headers
// (e.g. "Carry (yds)") onto these identifiers.
const (
	MetricBallSpeed  = "ball_speed"
	MetricClubSpeed  = "club_speed"
	MetricSmash      = "smash"
	MetricCarry      = "carry"
	MetricTotal      = "total"
	MetricRoll       = "roll"
	MetricSpin       = "spin"
	MetricHeight     = "height"
	MetricFlightTime = "flight_time"
	MetricAOA        = "aoa"
	MetricSpinLoft   = "spin_loft"
	MetricSwingV     = "swing_v"
	MetricCurveDist  = "curve_dist"

	// ColumnShot is the per-shot sequence number column, not a metric.
	ColumnShot = "shot"
	// ColumnClub is the only required source column.
	ColumnClub = "club"
)

// MetricNames lists every optional numeric metric a shot may carry,
// in launch-monitor export order.
var MetricNames = []string{
	MetricBallSpeed,
	MetricClubSpeed,
	MetricSmash,
	MetricCarry,
	MetricTotal,
	MetricRoll,
	MetricSpin,
	MetricHeight,
	MetricFlightTime,
	MetricAOA,
	MetricSpinLoft,
	MetricSwingV,
	MetricCurveDist,
}

// IsMetric reports whether name is a known metric column.
func IsMetric(name string) bool {
	for _, m := range MetricNames {
		if m == name {
			return true
		}
	}
	return false
}

// Shot represents one recorded launch-monitor shot. Club is always present;
// every numeric metric is optional and holds NaN when missing.
type Shot struct {
	SessionFile  string    // source file name, identifies the session
	SessionLabel string    // derived display label
	CapturedAt   time.Time // session capture time; zero when unknown
	Club         string    // free-text club name

	Num float64 // per-shot sequence number, NaN when absent

	BallSpeed  float64
	ClubSpeed  float64
	Smash      float64
	Carry      float64
	Total      float64
	Roll       float64
	Spin       float64
	Height     float64
	FlightTime float64
	AOA        float64
	SpinLoft   float64
	SwingV     float64
	CurveDist  float64
}

// NewShot returns a Shot with every optional field set to NaN.
func NewShot() Shot {
	nan := math.NaN()
	return Shot{
		Num:        nan,
		BallSpeed:  nan,
		ClubSpeed:  nan,
		Smash:      nan,
		Carry:      nan,
		Total:      nan,
		Roll:       nan,
		Spin:       nan,
		Height:     nan,
		FlightTime: nan,
		AOA:        nan,
		SpinLoft:   nan,
		SwingV:     nan,
		CurveDist:  nan,
	}
}

// Metric returns the named metric value, or NaN for unknown names.
func (s Shot) Metric(name string) float64 {
	switch name {
	case MetricBallSpeed:
		return s.BallSpeed
	case MetricClubSpeed:
		return s.ClubSpeed
	case MetricSmash:
		return s.Smash
	case MetricCarry:
		return s.Carry
	case MetricTotal:
		return s.Total
	case MetricRoll:
		return s.Roll
	case MetricSpin:
		return s.Spin
	case MetricHeight:
		return s.Height
	case MetricFlightTime:
		return s.FlightTime
	case MetricAOA:
		return s.AOA
	case MetricSpinLoft:
		return s.SpinLoft
	case MetricSwingV:
		return s.SwingV
	case MetricCurveDist:
		return s.CurveDist
	default:
		return math.NaN()
	}
}

// SetMetric assigns the named metric value. Unknown names are ignored.
func (s *Shot) SetMetric(name string, v float64) {
	switch name {
	case MetricBallSpeed:
		s.BallSpeed = v
	case MetricClubSpeed:
		s.ClubSpeed = v
	case MetricSmash:
		s.Smash = v
	case MetricCarry:
		s.Carry = v
	case MetricTotal:
		s.Total = v
	case MetricRoll:
		s.Roll = v
	case MetricSpin:
		s.Spin = v
	case MetricHeight:
		s.Height = v
	case MetricFlightTime:
		s.FlightTime = v
	case MetricAOA:
		s.AOA = v
	case MetricSpinLoft:
		s.SpinLoft = v
	case MetricSwingV:
		s.SwingV = v
	case MetricCurveDist:
		s.CurveDist = v
	}
}

// ShotTable is the in-memory shot-record table consumed by the aggregation
// pipeline. It remembers which source columns were present so that a column
// that never appeared is distinguishable from one that was all-missing.
type ShotTable struct {
	Shots []Shot
	cols  map[string]struct{}
}

// NewShotTable creates an empty table.
func NewShotTable() *ShotTable {
	return &ShotTable{cols: make(map[string]struct{})}
}

// AddColumns records source columns as present.
func (t *ShotTable) AddColumns(names ...string) {
	for _, n := range names {
		t.cols[n] = struct{}{}
	}
}

// Append adds shot rows to the table.
func (t *ShotTable) Append(shots ...Shot) {
	t.Shots = append(t.Shots, shots...)
}

// HasColumn reports whether the named column appeared in any source file.
func (t *ShotTable) HasColumn(name string) bool {
	_, ok := t.cols[name]
	return ok
}

// Columns returns the recorded source columns in sorted order.
func (t *ShotTable) Columns() []string {
	out := make([]string, 0, len(t.cols))
	for c := range t.cols {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of shot rows.
func (t *ShotTable) Len() int {
	return len(t.Shots)
}
