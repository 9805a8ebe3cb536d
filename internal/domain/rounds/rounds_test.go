package rounds_test

import (
	"math"
	"testing"

	"github.com/okian/fairway/internal/domain/model"
	"github.com/okian/fairway/internal/domain/rounds"
	. "github.com/smartystreets/goconvey/convey"
)

// hole builds one scorecard row for the given round.
func hole(roundID string, num int, par, score, putts float64, fairway, green bool) model.HoleScore {
	h := model.NewHoleScore()
	h.RoundID = roundID
	h.Date = "2026-08-20"
	h.Course = "Pebble Creek"
	h.Hole = num
	h.Par = par
	h.Score = score
	h.Putts = putts
	h.FairwayHit = &fairway
	h.GreenInReg = &green
	return h
}

func TestSummarize(t *testing.T) {
	Convey("Given a nine-hole round", t, func() {
		var holes []model.HoleScore
		for i := 1; i <= 9; i++ {
			holes = append(holes, hole("r1", i, 4, 5, 2, i%2 == 0, i%3 == 0))
		}

		Convey("When summarizing", func() {
			sums := rounds.Summarize(holes)

			Convey("Then the totals add up", func() {
				So(sums, ShouldHaveLength, 1)
				s := sums[0]
				So(s.RoundID, ShouldEqual, "r1")
				So(s.Date, ShouldEqual, "2026-08-20")
				So(s.Course, ShouldEqual, "Pebble Creek")
				So(s.Holes, ShouldEqual, 9)
				So(s.TotalPar, ShouldEqual, 36)
				So(s.TotalScore, ShouldEqual, 45)
				So(s.VsPar, ShouldEqual, 9)
				So(s.TotalPutts, ShouldEqual, 18)
				So(s.FairwaysHit, ShouldEqual, 4)
				So(s.GreensInReg, ShouldEqual, 3)
			})
		})
	})

	Convey("Given holes with missing values", t, func() {
		a := hole("r1", 1, 4, 5, 2, true, false)
		b := model.NewHoleScore()
		b.RoundID = "r1"
		b.Hole = 2
		b.Par = 3
		// Score, putts and the flags stay missing.
		So(math.IsNaN(b.Score), ShouldBeTrue)

		Convey("When summarizing", func() {
			sums := rounds.Summarize([]model.HoleScore{a, b})

			Convey("Then missing values count as zero, never fail", func() {
				So(sums, ShouldHaveLength, 1)
				s := sums[0]
				So(s.Holes, ShouldEqual, 2)
				So(s.TotalPar, ShouldEqual, 7)
				So(s.TotalScore, ShouldEqual, 5)
				So(s.TotalPutts, ShouldEqual, 2)
				So(s.FairwaysHit, ShouldEqual, 1)
				So(s.GreensInReg, ShouldEqual, 0)
			})
		})
	})

	Convey("Given holes from interleaved rounds", t, func() {
		holes := []model.HoleScore{
			hole("r2", 1, 4, 4, 2, true, true),
			hole("r1", 1, 4, 6, 3, false, false),
			hole("r2", 2, 3, 3, 1, false, true),
		}

		Convey("When summarizing", func() {
			sums := rounds.Summarize(holes)

			Convey("Then rounds keep first-appearance order", func() {
				So(sums, ShouldHaveLength, 2)
				So(sums[0].RoundID, ShouldEqual, "r2")
				So(sums[0].Holes, ShouldEqual, 2)
				So(sums[1].RoundID, ShouldEqual, "r1")
				So(sums[1].Holes, ShouldEqual, 1)
			})
		})
	})

	Convey("Given no holes", t, func() {
		Convey("Then the summary is empty", func() {
			So(rounds.Summarize(nil), ShouldBeEmpty)
		})
	})
}
