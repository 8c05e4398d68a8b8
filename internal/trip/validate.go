package trip

import (
	"errors"
	"fmt"
	"strings"
)

const (
	MsgRequiredFields = "여행지, 기간, 예산은 필수 입력 사항입니다!"
	MsgNoTransport    = "이동 수단을 최소 1개 이상 선택해주세요!"
	MsgBadDuration    = "여행 기간은 1일에서 365일 사이의 숫자로 입력해주세요!"
	MsgBadBudget      = "예산은 0원에서 1조원 사이의 숫자로 입력해주세요!"
)

const (
	// MaxDays is the longest trip a request may ask for.
	MaxDays = 365
	// MaxBudget is the largest daily budget accepted. MaxDays * MaxBudget
	// plus any surcharge stays far below math.MaxInt64.
	MaxBudget int64 = 1_000_000_000_000
)

// ValidationError reports a form problem the user has to fix before
// anything is sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// IsValidationError reports whether err carries a ValidationError.
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// Validate enforces the submission invariants: destination, duration and
// budget present, 1 <= duration <= MaxDays, 0 <= budget <= MaxBudget and at
// least one transport mode.
func (r PlanRequest) Validate() error {
	switch {
	case strings.TrimSpace(r.Destination) == "":
		return &ValidationError{Field: "destination", Message: MsgRequiredFields}
	case strings.TrimSpace(r.Duration) == "":
		return &ValidationError{Field: "duration", Message: MsgRequiredFields}
	case strings.TrimSpace(r.Budget) == "":
		return &ValidationError{Field: "budget", Message: MsgRequiredFields}
	}

	if len(r.Modes()) == 0 {
		return &ValidationError{Field: "transport", Message: MsgNoTransport}
	}
	_, err := r.Bounds()
	return err
}

// Bounds parses duration and budget and checks both against their limits.
// It returns a *ValidationError when either is out of range.
func (r PlanRequest) Bounds() (Stay, error) {
	days, err := r.Days()
	if err != nil || days < 1 || days > MaxDays {
		return Stay{}, &ValidationError{Field: "duration", Message: MsgBadDuration}
	}
	amount, err := r.Amount()
	if err != nil || amount < 0 || amount > MaxBudget {
		return Stay{}, &ValidationError{Field: "budget", Message: MsgBadBudget}
	}
	return Stay{Days: days, Budget: amount}, nil
}

// Stay is the parsed numeric part of a request.
type Stay struct {
	Days   int
	Budget int64
}

// Modes returns the selected transport modes with blank entries removed.
func (r PlanRequest) Modes() []string {
	modes := make([]string, 0, len(r.Transport))
	for _, m := range r.Transport {
		if m = strings.TrimSpace(m); m != "" {
			modes = append(modes, m)
		}
	}
	return modes
}
