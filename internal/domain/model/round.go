package model

import "math"

// HoleScore represents one hole of a synced golf round. Par, Score, Putts
// and DriveDistance hold NaN when the scorecard did not record them;
// FairwayHit and GreenInReg are nil when not applicable (par 3s, unknown).
type HoleScore struct {
	RoundID string
	Date    string // YYYY-MM-DD, "unknown" when the tracker omitted it
	Course  string
	Hole    int

	Par           float64
	Score         float64
	Putts         float64
	FairwayHit    *bool
	GreenInReg    *bool
	DriveDistance float64
}

// NewHoleScore returns a HoleScore with every optional field set to NaN.
func NewHoleScore() HoleScore {
	nan := math.NaN()
	return HoleScore{
		Par:           nan,
		Score:         nan,
		Putts:         nan,
		DriveDistance: nan,
	}
}
