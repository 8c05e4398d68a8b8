package money

import (
	"errors"
	"strings"

	"github.com/dustin/go-humanize"
)

// Suffix is the currency marker appended to every formatted amount.
const Suffix = "원"

const unitBase = 10000

// units are the Korean myriad units in ascending order. The first slot has
// no label; the last one absorbs anything beyond 조.
var units = []string{"", "만", "억", "조"}

// ErrNegativeAmount is returned for amounts below zero.
var ErrNegativeAmount = errors.New("money: negative amount")

// FormatKRW renders an amount the way the planner shows budgets and totals:
// "9,999원", "1만원", "1억 2,345만 6,789원".
func FormatKRW(amount int64) (string, error) {
	if amount < 0 {
		return "", ErrNegativeAmount
	}
	if amount < unitBase {
		return humanize.Comma(amount) + Suffix, nil
	}

	parts := make([]string, 0, len(units))
	rest := amount
	for i, unit := range units {
		digit := rest % unitBase
		rest /= unitBase
		if i == len(units)-1 {
			digit += rest * unitBase
		}
		if digit > 0 {
			parts = append(parts, humanize.Comma(digit)+unit)
		}
	}

	// parts were collected least significant first
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.TrimSpace(strings.Join(parts, " ")) + Suffix, nil
}

// MustFormatKRW is FormatKRW for callers that already guarantee amount >= 0.
func MustFormatKRW(amount int64) string {
	s, err := FormatKRW(amount)
	if err != nil {
		panic(err)
	}
	return s
}

// Group returns the amount with thousands separators and no suffix.
func Group(amount int64) string {
	return humanize.Comma(amount)
}
