package repository

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/fairway/internal/domain/model"
)

func TestCanonicalColumn(t *testing.T) {
	resolve := func(header string) string {
		c, _ := canonicalColumn(header)
		return c
	}

	Convey("Given launch-monitor export headers", t, func() {
		Convey("Then known headers map to canonical metric names", func() {
			So(resolve("Ball (mph)"), ShouldEqual, model.MetricBallSpeed)
			So(resolve("Club (mph)"), ShouldEqual, model.MetricClubSpeed)
			So(resolve("Smash"), ShouldEqual, model.MetricSmash)
			So(resolve("Carry (yds)"), ShouldEqual, model.MetricCarry)
			So(resolve("Time (s)"), ShouldEqual, model.MetricFlightTime)
			So(resolve("AoA (°)"), ShouldEqual, model.MetricAOA)
			So(resolve("Shot"), ShouldEqual, model.ColumnShot)
			So(resolve("Club"), ShouldEqual, model.ColumnClub)
		})

		Convey("And already-canonical names pass through", func() {
			So(resolve("ball_speed"), ShouldEqual, model.MetricBallSpeed)
			So(resolve("smash"), ShouldEqual, model.MetricSmash)
		})

		Convey("And unknown headers are not recognized", func() {
			_, ok := canonicalColumn("Humidity")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestParseCell(t *testing.T) {
	Convey("Given raw numeric cells", t, func() {
		Convey("Then numbers parse", func() {
			So(parseCell("1.45"), ShouldEqual, 1.45)
			So(parseCell(" 230.5 "), ShouldEqual, 230.5)
		})

		Convey("And missing-value markers become NaN", func() {
			So(math.IsNaN(parseCell("")), ShouldBeTrue)
			So(math.IsNaN(parseCell("-")), ShouldBeTrue)
			So(math.IsNaN(parseCell("--")), ShouldBeTrue)
			So(math.IsNaN(parseCell("n/a")), ShouldBeTrue)
		})
	})
}

func TestParseShotRecords(t *testing.T) {
	Convey("Given records with a club column and metrics", t, func() {
		records := [][]string{
			{"Shot", "Club", "Smash", "Carry (yds)"},
			{"1", "Driver", "1.44", "228"},
			{"2", "Driver", "-", "231.5"},
		}

		Convey("When parsing", func() {
			shots, columns, err := parseShotRecords(records)

			Convey("Then each data row becomes a shot", func() {
				So(err, ShouldBeNil)
				So(shots, ShouldHaveLength, 2)
				So(shots[0].Club, ShouldEqual, "Driver")
				So(shots[0].Num, ShouldEqual, 1.0)
				So(shots[0].Smash, ShouldEqual, 1.44)
				So(shots[0].Carry, ShouldEqual, 228.0)
			})

			Convey("And missing cells become NaN", func() {
				So(math.IsNaN(shots[1].Smash), ShouldBeTrue)
				So(shots[1].Carry, ShouldEqual, 231.5)
			})

			Convey("And the recognized columns are reported", func() {
				So(columns, ShouldContain, model.ColumnShot)
				So(columns, ShouldContain, model.ColumnClub)
				So(columns, ShouldContain, model.MetricSmash)
				So(columns, ShouldContain, model.MetricCarry)
			})
		})
	})

	Convey("Given records without a club column", t, func() {
		records := [][]string{
			{"Shot", "Smash"},
			{"1", "1.44"},
		}

		Convey("When parsing", func() {
			_, _, err := parseShotRecords(records)

			Convey("Then parsing fails with the sentinel", func() {
				So(err, ShouldWrap, ErrMissingClubColumn)
			})
		})
	})
}

func TestReadCSV(t *testing.T) {
	Convey("Given a comma-delimited export", t, func() {
		data := []byte("Shot,Club,Smash\n1,Driver,1.44\n")

		Convey("When reading", func() {
			records, err := readCSV(data)

			Convey("Then rows and cells split on commas", func() {
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 2)
				So(records[0], ShouldResemble, []string{"Shot", "Club", "Smash"})
			})
		})
	})

	Convey("Given a semicolon-delimited export", t, func() {
		data := []byte("Shot;Club;Smash\n1;Driver;1,44\n")

		Convey("When reading", func() {
			records, err := readCSV(data)

			Convey("Then the reader falls back to semicolons", func() {
				So(err, ShouldBeNil)
				So(records[0], ShouldResemble, []string{"Shot", "Club", "Smash"})
			})
		})
	})
}

func TestReadSessionFile(t *testing.T) {
	Convey("Given an unsupported file extension", t, func() {
		_, err := readSessionFile("notes.txt", []byte("hello"))

		Convey("Then reading fails with the sentinel", func() {
			So(err, ShouldWrap, ErrUnsupportedFile)
		})
	})
}
