package trip

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedItinerary marks a payload that does not satisfy the
// itinerary contract.
var ErrMalformedItinerary = errors.New("malformed itinerary")

type rawActivity struct {
	Time        *string `json:"time"`
	Place       *string `json:"place"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Cost        Cost    `json:"cost"`
}

type rawDayPlan struct {
	Day        *int          `json:"day"`
	Theme      string        `json:"date_theme"`
	Activities []rawActivity `json:"activities"`
}

type rawItinerary struct {
	Title              *string      `json:"title"`
	RealityScore       *float64     `json:"reality_score"`
	RealityReason      *string      `json:"reality_reason"`
	TotalEstimatedCost *string      `json:"total_estimated_cost"`
	PlannerComment     *string      `json:"planner_comment"`
	DailyPlans         []rawDayPlan `json:"daily_plans"`
}

// DecodeItinerary parses and validates an itinerary received from outside
// the process. Missing header fields, a score outside [0,5], a day without
// its number or an activity without time or place are rejected. Absent day
// or activity lists decode as empty.
func DecodeItinerary(data []byte) (Itinerary, error) {
	var raw rawItinerary
	if err := json.Unmarshal(data, &raw); err != nil {
		return Itinerary{}, fmt.Errorf("%w: %v", ErrMalformedItinerary, err)
	}

	var missing []string
	if raw.Title == nil {
		missing = append(missing, "title")
	}
	if raw.RealityScore == nil {
		missing = append(missing, "reality_score")
	}
	if raw.RealityReason == nil {
		missing = append(missing, "reality_reason")
	}
	if raw.TotalEstimatedCost == nil {
		missing = append(missing, "total_estimated_cost")
	}
	if raw.PlannerComment == nil {
		missing = append(missing, "planner_comment")
	}
	if len(missing) > 0 {
		return Itinerary{}, fmt.Errorf("%w: missing %s", ErrMalformedItinerary, strings.Join(missing, ", "))
	}

	score := *raw.RealityScore
	if score < 0 || score > 5 {
		return Itinerary{}, fmt.Errorf("%w: reality_score %v out of range", ErrMalformedItinerary, score)
	}

	days := make([]DayPlan, 0, len(raw.DailyPlans))
	for i, rd := range raw.DailyPlans {
		if rd.Day == nil || *rd.Day < 1 {
			return Itinerary{}, fmt.Errorf("%w: daily_plans[%d] has no valid day", ErrMalformedItinerary, i)
		}
		acts := make([]Activity, 0, len(rd.Activities))
		for j, ra := range rd.Activities {
			if ra.Time == nil || ra.Place == nil {
				return Itinerary{}, fmt.Errorf("%w: daily_plans[%d].activities[%d] needs time and place", ErrMalformedItinerary, i, j)
			}
			acts = append(acts, Activity{
				Time:        *ra.Time,
				Place:       *ra.Place,
				Description: ra.Description,
				Icon:        ra.Icon,
				Cost:        ra.Cost,
			})
		}
		days = append(days, DayPlan{Day: *rd.Day, Theme: rd.Theme, Activities: acts})
	}

	return Itinerary{
		Title:              *raw.Title,
		RealityScore:       score,
		RealityReason:      *raw.RealityReason,
		TotalEstimatedCost: *raw.TotalEstimatedCost,
		PlannerComment:     *raw.PlannerComment,
		DailyPlans:         days,
	}, nil
}
