package garmin

import (
	"strconv"
	"strings"

	"github.com/okian/fairway/internal/domain/model"
)

// Activity mirrors the provider's activity payload. The provider is
// inconsistent across API versions, so several fields carry alias keys.
type Activity struct {
	ActivityID     int64        `json:"activityId"`
	ActivityIDLong int64        `json:"activityIdLong"`
	ActivityName   string       `json:"activityName"`
	LocationName   string       `json:"locationName"`
	StartTimeLocal string       `json:"startTimeLocal"`
	StartTimeGMT   string       `json:"startTimeGMT"`
	ActivityType   ActivityType `json:"activityType"`

	GolfScorecard *Scorecard `json:"golfScorecard"`
	GolfGame      *Scorecard `json:"golfGame"`
}

// ActivityType carries the provider's activity classification.
type ActivityType struct {
	TypeKey string `json:"typeKey"`
}

// Scorecard carries a golf round's holes, under either alias key.
type Scorecard struct {
	Holes     []Hole `json:"holes"`
	GolfHoles []Hole `json:"golfHoles"`
}

// Hole mirrors one hole of the provider's scorecard.
type Hole struct {
	HoleNumber int `json:"holeNumber"`
	Hole       int `json:"hole"`

	Par               *float64 `json:"par"`
	Score             *float64 `json:"score"`
	Putts             *float64 `json:"putts"`
	FairwayHit        *bool    `json:"fairwayHit"`
	GreenInRegulation *bool    `json:"greenInRegulation"`
	GIR               *bool    `json:"gir"`
	DriveDistance     *float64 `json:"driveDistance"`
	TeeShotDistance   *float64 `json:"teeShotDistance"`
}

// IsGolf reports whether the activity is a golf round.
func (a Activity) IsGolf() bool {
	return strings.EqualFold(a.ActivityType.TypeKey, "golf")
}

// RoundID derives a stable round identifier, "unknown" as a last resort.
func (a Activity) RoundID() string {
	switch {
	case a.ActivityID != 0:
		return formatID(a.ActivityID)
	case a.ActivityIDLong != 0:
		return formatID(a.ActivityIDLong)
	default:
		return "unknown"
	}
}

// Date returns the round date as YYYY-MM-DD, "unknown" when the provider
// omitted the start time.
func (a Activity) Date() string {
	start := a.StartTimeLocal
	if start == "" {
		start = a.StartTimeGMT
	}
	if len(start) < 10 {
		return "unknown"
	}
	return start[:10]
}

// CourseName returns the best available course name.
func (a Activity) CourseName() string {
	if a.LocationName != "" {
		return a.LocationName
	}
	return a.ActivityName
}

// scorecard resolves the scorecard alias keys.
func (a Activity) scorecard() *Scorecard {
	if a.GolfScorecard != nil {
		return a.GolfScorecard
	}
	return a.GolfGame
}

// holes resolves the hole-list alias keys.
func (s *Scorecard) holes() []Hole {
	if len(s.Holes) > 0 {
		return s.Holes
	}
	return s.GolfHoles
}

// ExtractHoles normalizes an activity's scorecard into hole rows carrying
// the round id, date and course. Returns nil when the activity has no
// parseable scorecard.
func ExtractHoles(a Activity) []model.HoleScore {
	card := a.scorecard()
	if card == nil {
		return nil
	}
	raw := card.holes()
	if len(raw) == 0 {
		return nil
	}

	roundID := a.RoundID()
	date := a.Date()
	course := a.CourseName()

	out := make([]model.HoleScore, 0, len(raw))
	for _, h := range raw {
		row := model.NewHoleScore()
		row.RoundID = roundID
		row.Date = date
		row.Course = course

		row.Hole = h.HoleNumber
		if row.Hole == 0 {
			row.Hole = h.Hole
		}
		if h.Par != nil {
			row.Par = *h.Par
		}
		if h.Score != nil {
			row.Score = *h.Score
		}
		if h.Putts != nil {
			row.Putts = *h.Putts
		}
		row.FairwayHit = h.FairwayHit
		row.GreenInReg = h.GreenInRegulation
		if row.GreenInReg == nil {
			row.GreenInReg = h.GIR
		}
		if h.DriveDistance != nil {
			row.DriveDistance = *h.DriveDistance
		} else if h.TeeShotDistance != nil {
			row.DriveDistance = *h.TeeShotDistance
		}
		out = append(out, row)
	}
	return out
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
