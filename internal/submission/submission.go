// Package submission runs one form submission from validation to a
// rendered or failed result.
package submission

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"air-trip-planner/internal/config"
	"air-trip-planner/internal/metrics"
	"air-trip-planner/internal/planclient"
	"air-trip-planner/internal/synth"
	"air-trip-planner/internal/trip"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MsgConnectivity is the alert raised in alert mode when the planning
// service cannot be used.
const MsgConnectivity = "서버와 연결할 수 없습니다. 네트워크 상태를 확인한 뒤 다시 시도해주세요."

// MsgInFlight is the alert for a submit that arrives while another one is
// still running.
const MsgInFlight = "이미 여행 계획을 만드는 중입니다. 잠시만 기다려주세요!"

// ErrSubmissionInFlight is returned when Submit is called while another
// submission has not finished.
var ErrSubmissionInFlight = errors.New("submission already in flight")

// State is a step of the submission state machine.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateInFlight   State = "in_flight"
	StateSuccess    State = "success"
	StateFallback   State = "fallback"
	StateFailed     State = "failed"
)

// Requester performs the remote exchange.
type Requester interface {
	Request(ctx context.Context, req trip.PlanRequest) planclient.Result
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Outcome describes how a submission ended.
type Outcome struct {
	ID        string
	State     State
	Itinerary *trip.Itinerary
	Alert     string
	Err       error
	View      ViewState
}

// Options configures a Submitter.
type Options struct {
	Mode          config.FailureMode
	FallbackDelay time.Duration
	Sleep         Sleeper
	Logger        zerolog.Logger
}

// Submitter owns one display region and at most one pending request.
type Submitter struct {
	requester Requester
	mode      config.FailureMode
	delay     time.Duration
	sleep     Sleeper
	logger    zerolog.Logger

	mu       sync.Mutex
	state    State
	view     ViewState
	inFlight bool
}

// NewSubmitter creates a Submitter in the Idle state.
func NewSubmitter(requester Requester, opts Options) *Submitter {
	if opts.Mode == "" {
		opts.Mode = config.ModeFallback
	}
	if opts.Sleep == nil {
		opts.Sleep = sleepContext
	}
	return &Submitter{
		requester: requester,
		mode:      opts.Mode,
		delay:     opts.FallbackDelay,
		sleep:     opts.Sleep,
		logger:    opts.Logger,
		state:     StateIdle,
		view:      ViewState{Phase: PhaseIdle},
	}
}

// View returns the current display state.
func (s *Submitter) View() ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// State returns the state of the most recent submission.
func (s *Submitter) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Submit validates req, performs the remote exchange and applies the
// configured failure policy. Validation problems and transport failures are
// reported through the Outcome; the returned error is only set when the
// submission was rejected outright or the context ended.
func (s *Submitter) Submit(ctx context.Context, req trip.PlanRequest) (Outcome, error) {
	id := uuid.NewString()
	logger := s.logger.With().Str("submission_id", id).Str("destination", req.Destination).Logger()

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		metrics.Submissions.WithLabelValues("rejected").Inc()
		logger.Warn().Msg("submission rejected: another one is in flight")
		return Outcome{ID: id, State: StateInFlight, Alert: MsgInFlight, Err: ErrSubmissionInFlight, View: s.View()}, ErrSubmissionInFlight
	}

	s.state = StateValidating
	if err := req.Validate(); err != nil {
		var vErr *trip.ValidationError
		alert := err.Error()
		if errors.As(err, &vErr) {
			alert = vErr.Message
		}
		s.state = StateIdle
		s.view = Reduce(s.view, Event{Kind: EventRejected, Alert: alert})
		view := s.view
		s.mu.Unlock()

		metrics.Submissions.WithLabelValues("invalid").Inc()
		logger.Info().Err(err).Msg("submission failed validation")
		return Outcome{ID: id, State: StateIdle, Alert: alert, Err: err, View: view}, nil
	}

	s.inFlight = true
	s.state = StateInFlight
	s.view = Reduce(s.view, Event{Kind: EventSubmitted})
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	logger.Info().Msg("requesting itinerary")
	result := s.requester.Request(ctx, req)
	if result.OK() {
		view := s.finish(StateSuccess, Event{Kind: EventSucceeded, Itinerary: result.Itinerary})
		metrics.Submissions.WithLabelValues("success").Inc()
		logger.Info().Str("title", result.Itinerary.Title).Msg("itinerary received")
		return Outcome{ID: id, State: StateSuccess, Itinerary: view.Itinerary, View: view}, nil
	}

	logger.Warn().Err(result.Err).Str("mode", string(s.mode)).Msg("planner request failed")

	if s.mode == config.ModeAlert {
		view := s.finish(StateFailed, Event{Kind: EventFailed, Alert: MsgConnectivity})
		metrics.Submissions.WithLabelValues("failed").Inc()
		return Outcome{ID: id, State: StateFailed, Alert: MsgConnectivity, Err: result.Err, View: view}, nil
	}

	if err := s.sleep(ctx, s.delay); err != nil {
		view := s.finish(StateFailed, Event{Kind: EventFailed, Alert: MsgConnectivity})
		metrics.Submissions.WithLabelValues("failed").Inc()
		return Outcome{ID: id, State: StateFailed, Alert: MsgConnectivity, Err: err, View: view}, err
	}

	itinerary, err := synth.FromRequest(req)
	if err != nil {
		// Validate already guarantees what FromRequest needs.
		view := s.finish(StateFailed, Event{Kind: EventFailed, Alert: MsgConnectivity})
		metrics.Submissions.WithLabelValues("failed").Inc()
		return Outcome{ID: id, State: StateFailed, Alert: MsgConnectivity, Err: fmt.Errorf("local synthesis: %w", err), View: view}, nil
	}

	view := s.finish(StateFallback, Event{Kind: EventFellBack, Itinerary: itinerary})
	metrics.Submissions.WithLabelValues("fallback").Inc()
	logger.Info().Msg("rendered locally synthesized itinerary")
	return Outcome{ID: id, State: StateFallback, Itinerary: view.Itinerary, Err: result.Err, View: view}, nil
}

func (s *Submitter) finish(state State, ev Event) ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.view = Reduce(s.view, ev)
	return s.view
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
