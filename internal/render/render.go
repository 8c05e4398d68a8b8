// Package render maps an itinerary to a presentation tree and writes that
// tree as HTML or Telegram Markdown.
package render

import (
	"strconv"
	"strings"

	"air-trip-planner/internal/money"
	"air-trip-planner/internal/trip"
)

// Tier is the badge style for a reality score.
type Tier string

const (
	TierHigh Tier = "high"
	TierMid  Tier = "mid"
	TierLow  Tier = "low"
)

// Tone colours the reasoning text.
type Tone string

const (
	ToneWarning     Tone = "warning"
	ToneAffirmative Tone = "affirmative"
)

// View is the presentation tree of one itinerary.
type View struct {
	Title      string
	Badge      Badge
	TotalCost  string
	Comment    string
	Reason     string
	ReasonTone Tone
	Days       []DayView
}

// Badge is the reality score indicator.
type Badge struct {
	Tier  Tier
	Label string
}

// DayView is one block of the timeline.
type DayView struct {
	Heading    string
	Activities []ActivityView
}

// ActivityView is one card inside a day block.
type ActivityView struct {
	Icon        string
	Time        string
	Place       string
	Description string
	Cost        string
}

// ClassifyScore maps a reality score to its badge tier.
func ClassifyScore(score float64) Tier {
	switch {
	case score >= 4:
		return TierHigh
	case score <= 2:
		return TierLow
	default:
		return TierMid
	}
}

// ReasonTone returns the colour cue for the reasoning text.
func ReasonTone(score float64) Tone {
	if score < 3 {
		return ToneWarning
	}
	return ToneAffirmative
}

// Render builds the presentation tree without modifying it. Days keep their
// input order.
func Render(it trip.Itinerary) View {
	v := View{
		Title: it.Title,
		Badge: Badge{
			Tier:  ClassifyScore(it.RealityScore),
			Label: "현실성 점수: " + strconv.FormatFloat(it.RealityScore, 'f', -1, 64) + " / 5.0",
		},
		TotalCost:  it.TotalEstimatedCost,
		Comment:    it.PlannerComment,
		Reason:     it.RealityReason,
		ReasonTone: ReasonTone(it.RealityScore),
		Days:       make([]DayView, 0, len(it.DailyPlans)),
	}

	for _, dp := range it.DailyPlans {
		day := DayView{
			Heading:    "Day " + strconv.Itoa(dp.Day) + ": " + dp.Theme,
			Activities: make([]ActivityView, 0, len(dp.Activities)),
		}
		for _, act := range dp.Activities {
			day.Activities = append(day.Activities, ActivityView{
				Icon:        act.Icon,
				Time:        act.Time,
				Place:       act.Place,
				Description: act.Description,
				Cost:        costLabel(act.Cost),
			})
		}
		v.Days = append(v.Days, day)
	}
	return v
}

func costLabel(c trip.Cost) string {
	s := strings.TrimSpace(string(c))
	if s == "" || strings.HasSuffix(s, money.Suffix) {
		return s
	}
	return s + money.Suffix
}
