package stats_test

import (
	"math"
	"testing"

	"github.com/okian/fairway/internal/domain/stats"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDropNaN(t *testing.T) {
	Convey("Given a sample with missing values", t, func() {
		nan := math.NaN()
		sample := []float64{1.4, nan, 1.5, nan, 1.6}

		Convey("When dropping NaN", func() {
			got := stats.DropNaN(sample)

			Convey("Then only the real values remain, in order", func() {
				So(got, ShouldResemble, []float64{1.4, 1.5, 1.6})
			})
		})
	})

	Convey("Given an all-missing sample", t, func() {
		sample := []float64{math.NaN(), math.NaN()}

		Convey("When dropping NaN", func() {
			Convey("Then the result is empty", func() {
				So(stats.DropNaN(sample), ShouldBeEmpty)
			})
		})
	})
}

func TestMean(t *testing.T) {
	Convey("Given a non-empty sample", t, func() {
		Convey("Then the mean is the arithmetic average", func() {
			So(stats.Mean([]float64{1.4, 1.5, 1.6}), ShouldAlmostEqual, 1.5, 1e-9)
		})
	})

	Convey("Given an empty sample", t, func() {
		Convey("Then the mean is undefined", func() {
			So(math.IsNaN(stats.Mean(nil)), ShouldBeTrue)
		})
	})
}

func TestStdDev(t *testing.T) {
	Convey("Given at least two samples", t, func() {
		Convey("Then the sample standard deviation uses N-1", func() {
			// Variance of {2,4,4,4,5,5,7,9} with N-1 is 32/7.
			got := stats.StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
			So(got, ShouldAlmostEqual, math.Sqrt(32.0/7.0), 1e-9)
		})
	})

	Convey("Given fewer than two samples", t, func() {
		Convey("Then the deviation is undefined", func() {
			So(math.IsNaN(stats.StdDev([]float64{1.5})), ShouldBeTrue)
			So(math.IsNaN(stats.StdDev(nil)), ShouldBeTrue)
		})
	})
}

func TestConsistency(t *testing.T) {
	Convey("Given a sample with zero spread", t, func() {
		sample := []float64{100, 100, 100}

		Convey("Then consistency is a perfect 100", func() {
			So(stats.Consistency(sample), ShouldEqual, 100.0)
		})
	})

	Convey("Given a sample with spread", t, func() {
		sample := []float64{90, 100, 110}

		Convey("Then consistency scales down with the coefficient of variation", func() {
			got := stats.Consistency(sample)
			So(got, ShouldBeGreaterThan, 0)
			So(got, ShouldBeLessThan, 100)
			// std = 10, mean = 100 -> 100 * (1 - 0.1) = 90.
			So(got, ShouldAlmostEqual, 90.0, 1e-9)
		})
	})

	Convey("Given a wildly spread sample", t, func() {
		sample := []float64{1, 200, 1, 200, 1}

		Convey("Then consistency clamps at zero rather than going negative", func() {
			So(stats.Consistency(sample), ShouldBeGreaterThanOrEqualTo, 0)
		})
	})

	Convey("Given fewer than three samples", t, func() {
		Convey("Then consistency is undefined", func() {
			So(math.IsNaN(stats.Consistency([]float64{100, 100})), ShouldBeTrue)
			So(math.IsNaN(stats.Consistency(nil)), ShouldBeTrue)
		})
	})

	Convey("Given a sample whose mean is zero", t, func() {
		sample := []float64{-1, 0, 1}

		Convey("Then consistency is undefined instead of dividing by zero", func() {
			So(math.IsNaN(stats.Consistency(sample)), ShouldBeTrue)
		})
	})

	Convey("Given a sample with missing values mixed in", t, func() {
		nan := math.NaN()
		sample := []float64{100, nan, 100, nan, 100}

		Convey("Then missing values are dropped before computing", func() {
			So(stats.Consistency(sample), ShouldEqual, 100.0)
		})
	})
}
