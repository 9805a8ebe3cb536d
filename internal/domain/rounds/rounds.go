// Package rounds summarizes synced golf-round scorecards.
package rounds

import (
	"math"

	"github.com/okian/fairway/internal/domain/model"
)

// Summary is one round's totals. Missing per-hole values are skipped when
// summing, matching how scorecards omit putts or par on unfinished holes.
type Summary struct {
	RoundID string
	Date    string
	Course  string

	Holes       int
	TotalPar    int
	TotalScore  int
	VsPar       int
	TotalPutts  int
	FairwaysHit int
	GreensInReg int
}

// Summarize groups hole rows by round id and computes per-round totals,
// in first-appearance round order. Pure and total: malformed rows only
// ever reduce the sums, never fail.
func Summarize(holes []model.HoleScore) []Summary {
	var order []string
	byRound := make(map[string][]model.HoleScore)
	for _, h := range holes {
		if _, ok := byRound[h.RoundID]; !ok {
			order = append(order, h.RoundID)
		}
		byRound[h.RoundID] = append(byRound[h.RoundID], h)
	}

	out := make([]Summary, 0, len(order))
	for _, id := range order {
		group := byRound[id]
		s := Summary{
			RoundID: id,
			Date:    group[0].Date,
			Course:  group[0].Course,
			Holes:   len(group),
		}
		for _, h := range group {
			s.TotalPar += intOrZero(h.Par)
			s.TotalScore += intOrZero(h.Score)
			s.TotalPutts += intOrZero(h.Putts)
			if h.FairwayHit != nil && *h.FairwayHit {
				s.FairwaysHit++
			}
			if h.GreenInReg != nil && *h.GreenInReg {
				s.GreensInReg++
			}
		}
		s.VsPar = s.TotalScore - s.TotalPar
		out = append(out, s)
	}
	return out
}

// intOrZero truncates a scorecard value, treating missing as zero.
func intOrZero(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(v)
}
