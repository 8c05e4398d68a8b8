package submission

import "air-trip-planner/internal/trip"

// Phase is what the display region currently shows.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseResult  Phase = "result"
)

// ViewState is the whole display region: placeholder, loader or result,
// plus an optional alert raised by the last transition.
type ViewState struct {
	Phase     Phase
	Alert     string
	Itinerary *trip.Itinerary
	// Synthesized is true when Itinerary was built locally.
	Synthesized bool
}

// ShowPlaceholder reports whether the placeholder panel is visible.
func (v ViewState) ShowPlaceholder() bool { return v.Phase == PhaseIdle }

// ShowLoader reports whether the loading indicator is visible.
func (v ViewState) ShowLoader() bool { return v.Phase == PhaseLoading }

// ShowResult reports whether a rendered itinerary is visible.
func (v ViewState) ShowResult() bool { return v.Phase == PhaseResult && v.Itinerary != nil }

// EventKind enumerates the transitions of the display region.
type EventKind int

const (
	EventRejected EventKind = iota
	EventSubmitted
	EventSucceeded
	EventFellBack
	EventFailed
)

// Event drives Reduce.
type Event struct {
	Kind      EventKind
	Alert     string
	Itinerary trip.Itinerary
}

// Reduce is the only place the display region changes.
func Reduce(v ViewState, ev Event) ViewState {
	switch ev.Kind {
	case EventRejected:
		return ViewState{Phase: PhaseIdle, Alert: ev.Alert}
	case EventSubmitted:
		return ViewState{Phase: PhaseLoading}
	case EventSucceeded, EventFellBack:
		it := ev.Itinerary
		return ViewState{Phase: PhaseResult, Itinerary: &it, Synthesized: ev.Kind == EventFellBack}
	case EventFailed:
		return ViewState{Phase: PhaseIdle, Alert: ev.Alert}
	}
	return v
}
