// Package trip holds the data contract shared by the form, the planning
// service, the local synthesizer and the renderer.
package trip

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// PlanRequest is what the form submits. Duration and Budget stay in their
// raw string form on the wire.
type PlanRequest struct {
	Destination string   `json:"destination"`
	Duration    string   `json:"duration"`
	Budget      string   `json:"budget"`
	Transport   []string `json:"transport"`
	Style       string   `json:"style"`
	Preference  string   `json:"preference"`
}

// Days parses the raw duration. Values beyond MaxDays are reported as
// MaxDays+1 so the conversion to int cannot truncate.
func (r PlanRequest) Days() (int, error) {
	n, ok := LeadingInt(r.Duration)
	if !ok {
		return 0, fmt.Errorf("duration %q is not a number", r.Duration)
	}
	if n > MaxDays {
		return MaxDays + 1, nil
	}
	return int(n), nil
}

// Amount parses the raw budget.
func (r PlanRequest) Amount() (int64, error) {
	n, ok := LeadingInt(r.Budget)
	if !ok {
		return 0, fmt.Errorf("budget %q is not a number", r.Budget)
	}
	return n, nil
}

// Activity is a single stop within a day.
type Activity struct {
	Time        string `json:"time"`
	Place       string `json:"place"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Cost        Cost   `json:"cost"`
}

// DayPlan is the schedule of one day.
type DayPlan struct {
	Day        int        `json:"day"`
	Theme      string     `json:"date_theme"`
	Activities []Activity `json:"activities"`
}

// Itinerary is the render contract.
type Itinerary struct {
	Title              string    `json:"title"`
	RealityScore       float64   `json:"reality_score"`
	RealityReason      string    `json:"reality_reason"`
	TotalEstimatedCost string    `json:"total_estimated_cost"`
	PlannerComment     string    `json:"planner_comment"`
	DailyPlans         []DayPlan `json:"daily_plans"`
}

// Cost is an activity price. Planners send it either as a number or as an
// already formatted string such as "15,000" or "15,000원".
type Cost string

// UnmarshalJSON accepts a JSON string, a JSON number or null.
func (c *Cost) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Cost(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("cost must be a string or a number: %w", err)
	}
	*c = Cost(n.String())
	return nil
}

// LeadingInt reads an optionally signed run of leading digits, ignoring
// surrounding whitespace and any trailing text ("3일" reads as 3).
func LeadingInt(raw string) (int64, bool) {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
