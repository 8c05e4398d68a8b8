package telegram

import (
	"errors"
	"strings"

	"air-trip-planner/internal/trip"
)

const (
	cmdStart   = "start"
	cmdHelp    = "help"
	cmdPlan    = "plan"
	cmdPreview = "preview"
	cmdStatus  = "status"
)

// ErrUsage is returned when command arguments do not match the expected
// "a | b | c" layout.
var ErrUsage = errors.New("wrong command usage")

const helpText = `✈️ *A.I.R 여행 플래너*

/plan 여행지 | 기간 | 예산 | 이동수단1,이동수단2 | 스타일 | 선호사항
예: /plan 제주도 | 3 | 100000 | 자차/렌트카,도보 | 힐링/휴양 | 바다

/preview 기간 | 예산
예: /preview 3 | 50000

/status 서버 상태`

// splitCommand separates "/plan@MyBot args" into "plan" and "args". Text
// that is not a command is returned with an empty name.
func splitCommand(text string) (name, args string) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", text
	}
	name, args, _ = strings.Cut(text[1:], " ")
	name, _, _ = strings.Cut(name, "@")
	return strings.ToLower(name), strings.TrimSpace(args)
}

// ParsePlanArgs reads "destination | duration | budget | modes | style |
// preference". Style and preference are optional. Validation of the values
// is left to the submitter.
func ParsePlanArgs(args string) (trip.PlanRequest, error) {
	parts := splitArgs(args)
	if len(parts) < 4 || len(parts) > 6 {
		return trip.PlanRequest{}, ErrUsage
	}
	for len(parts) < 6 {
		parts = append(parts, "")
	}

	var modes []string
	for _, m := range strings.Split(parts[3], ",") {
		modes = append(modes, strings.TrimSpace(m))
	}

	return trip.PlanRequest{
		Destination: parts[0],
		Duration:    parts[1],
		Budget:      parts[2],
		Transport:   modes,
		Style:       parts[4],
		Preference:  parts[5],
	}, nil
}

// ParsePreviewArgs reads "duration | budget".
func ParsePreviewArgs(args string) (duration, budget string, err error) {
	parts := splitArgs(args)
	if len(parts) != 2 {
		return "", "", ErrUsage
	}
	return parts[0], parts[1], nil
}

func splitArgs(args string) []string {
	if strings.TrimSpace(args) == "" {
		return nil
	}
	parts := strings.Split(args, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
