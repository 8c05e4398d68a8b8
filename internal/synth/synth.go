// Package synth builds a plausible itinerary locally. It backs the demo
// mode and the fallback path when the planning service cannot be reached.
package synth

import (
	"fmt"
	"strings"

	"air-trip-planner/internal/money"
	"air-trip-planner/internal/trip"
)

const (
	// LowBudgetThreshold is the daily budget under which a plan is flagged
	// as under-provisioned.
	LowBudgetThreshold = 100000
	// LowBudgetPenalty is added to the estimated total of a low-budget plan.
	LowBudgetPenalty = 100000

	LowBudgetScore  = 2
	HighBudgetScore = 5

	defaultMode = "도보"
)

// Synthesize produces the demo itinerary. days is expected to be within
// [1, trip.MaxDays] and budget within [0, trip.MaxBudget]; FromRequest
// enforces both. An empty modes slice is treated as walking only. Day i
// uses modes[i%len(modes)], blank entries meaning walking.
func Synthesize(destination string, days int, budget int64, modes []string) trip.Itinerary {
	if len(modes) == 0 {
		modes = []string{defaultMode}
	}
	days = min(days, trip.MaxDays)
	budget = min(budget, trip.MaxBudget)
	isLowBudget := budget < LowBudgetThreshold

	plans := make([]trip.DayPlan, 0, max(days, 0))
	for i := 1; i <= days; i++ {
		plans = append(plans, dayPlan(destination, i, modes, isLowBudget))
	}

	total := int64(days) * budget
	if isLowBudget {
		total += LowBudgetPenalty
	}

	it := trip.Itinerary{
		Title:              fmt.Sprintf("[A.I.R] %s %s 플랜", destination, trip.StayLabel(max(days, 1))),
		TotalEstimatedCost: "약 " + money.MustFormatKRW(max(total, 0)),
		PlannerComment: fmt.Sprintf("요청하신 %d일 동안의 일정을 %s 이동수단을 고려하여 최적화했습니다.",
			days, strings.Join(nonBlank(modes), ", ")),
		DailyPlans: plans,
	}
	if isLowBudget {
		it.RealityScore = LowBudgetScore
		it.RealityReason = fmt.Sprintf("입력하신 예산은 %s의 물가를 고려할 때 다소 부족합니다.", destination)
	} else {
		it.RealityScore = HighBudgetScore
		it.RealityReason = "예산과 일정이 아주 적절합니다. 즐거운 여행 되세요!"
	}
	return it
}

func nonBlank(modes []string) []string {
	out := make([]string, 0, len(modes))
	for _, m := range modes {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return []string{defaultMode}
	}
	return out
}

func dayPlan(destination string, day int, modes []string, isLowBudget bool) trip.DayPlan {
	mode := strings.TrimSpace(modes[day%len(modes)])
	if mode == "" {
		mode = defaultMode
	}

	sightCost, mealCost := int64(15000), int64(25000)
	if isLowBudget {
		sightCost, mealCost = 0, 10000
	}

	return trip.DayPlan{
		Day:   day,
		Theme: fmt.Sprintf("%d일차 %s 탐방", day, destination),
		Activities: []trip.Activity{
			{
				Time:        "오전 10:00",
				Place:       fmt.Sprintf("%s 명소 %d", destination, day),
				Description: mode + "로 이동하여 관람합니다.",
				Icon:        "🚩",
				Cost:        trip.Cost(money.Group(sightCost)),
			},
			{
				Time:        "오후 2:00",
				Place:       fmt.Sprintf("%d일차 맛집", day),
				Description: "현지 음식을 즐기며 휴식.",
				Icon:        "🍜",
				Cost:        trip.Cost(money.Group(mealCost)),
			},
			{
				Time:        "오후 7:00",
				Place:       fmt.Sprintf("%d일차 야경 스팟", day),
				Description: "하루를 마무리하는 야경 감상.",
				Icon:        "✨",
				Cost:        trip.Cost(money.Group(5000)),
			},
		},
	}
}

// FromRequest runs Synthesize on the raw form values, parsing duration and
// budget itself and rejecting values outside their limits.
func FromRequest(req trip.PlanRequest) (trip.Itinerary, error) {
	if len(req.Modes()) == 0 {
		return trip.Itinerary{}, &trip.ValidationError{Field: "transport", Message: trip.MsgNoTransport}
	}
	stay, err := req.Bounds()
	if err != nil {
		return trip.Itinerary{}, err
	}
	return Synthesize(strings.TrimSpace(req.Destination), stay.Days, stay.Budget, req.Transport), nil
}
