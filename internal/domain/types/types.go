// Package types contains the JSON-facing row shapes returned by the API.
package types

import "math"

// SessionInfo describes one loaded practice session.
type SessionInfo struct {
	File     string `json:"file"`
	Label    string `json:"label"`
	Captured string `json:"captured_at,omitempty"` // RFC3339, empty when unknown
	Shots    int    `json:"shots"`
}

// ClubAggregate mirrors one aggregated (session, club) row. Undefined
// numeric values marshal as null, never NaN.
type ClubAggregate struct {
	SessionFile  string   `json:"session_file"`
	SessionLabel string   `json:"session_label"`
	Club         string   `json:"club"`
	ClubRank     int      `json:"club_rank"`
	Shots        int      `json:"shots"`
	SmashAvg     *float64 `json:"smash_avg"`
	SmashStd     *float64 `json:"smash_std"`
	TargetSmash  float64  `json:"target_smash"`
	SmashDiff    *float64 `json:"smash_diff"`
	Consistency  *float64 `json:"consistency_index"`
}

// ClubTrend mirrors one per-club trend row.
type ClubTrend struct {
	Club       string   `json:"club"`
	ClubRank   int      `json:"club_rank"`
	Sessions   int      `json:"sessions"`
	FirstSmash *float64 `json:"first_smash"`
	LastSmash  *float64 `json:"last_smash"`
	Diff       *float64 `json:"diff"`
	Direction  string   `json:"direction"`
}

// RoundSummary mirrors one summarized golf round.
type RoundSummary struct {
	RoundID     string `json:"round_id"`
	Date        string `json:"date"`
	Course      string `json:"course"`
	Holes       int    `json:"holes"`
	TotalPar    int    `json:"total_par"`
	TotalScore  int    `json:"total_score"`
	VsPar       int    `json:"vs_par"`
	TotalPutts  int    `json:"total_putts"`
	FairwaysHit int    `json:"fairways_hit"`
	GreensInReg int    `json:"greens_in_reg"`
}

// Float converts a possibly-NaN value to its JSON representation:
// nil for NaN, a pointer otherwise.
func Float(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
