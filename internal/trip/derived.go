package trip

import (
	"fmt"

	"air-trip-planner/internal/money"
)

// SameDayLabel is shown for a one-day trip.
const SameDayLabel = "당일치기"

// NightsLabel turns the raw duration input into "2박 3일". It returns "" for
// anything that is not a positive integer.
func NightsLabel(raw string) string {
	days, ok := LeadingInt(raw)
	if !ok || days < 1 {
		return ""
	}
	return StayLabel(int(days))
}

// StayLabel formats a positive day count.
func StayLabel(days int) string {
	nights := days - 1
	if nights == 0 {
		return SameDayLabel
	}
	return fmt.Sprintf("%d박 %d일", nights, days)
}

// BudgetPreview turns the raw budget input into "(5만원)", or "" when the
// input is not a positive integer.
func BudgetPreview(raw string) string {
	amount, ok := LeadingInt(raw)
	if !ok || amount < 1 {
		return ""
	}
	return "(" + money.MustFormatKRW(amount) + ")"
}
