package web

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"slices"

	"air-trip-planner/internal/render"
	"air-trip-planner/internal/submission"
	"air-trip-planner/internal/trip"

	"github.com/rs/zerolog"
)

type option struct {
	Name    string
	Checked bool
}

type pageData struct {
	Form          trip.PlanRequest
	Transports    []option
	Styles        []option
	DurationCheck string
	BudgetCheck   string
	View          submission.ViewState
	Result        template.HTML
}

// Preview is the live feedback shown next to the duration and budget inputs.
type Preview struct {
	DurationCheck string `json:"duration_check"`
	BudgetCheck   string `json:"budget_check"`
}

// NewPreview computes both labels from raw input.
func NewPreview(duration, budget string) Preview {
	p := Preview{BudgetCheck: trip.BudgetPreview(budget)}
	if label := trip.NightsLabel(duration); label != "" {
		p.DurationCheck = "(" + label + ")"
	}
	return p
}

func (w *WebUI) handleIndex(rw http.ResponseWriter, r *http.Request) {
	view := w.submitter.View()
	// alerts are shown once
	view.Alert = ""
	w.renderPage(rw, r, http.StatusOK, trip.PlanRequest{}, view)
}

func (w *WebUI) handlePlan(rw http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(rw, "invalid form", http.StatusBadRequest)
		return
	}
	req := requestFromForm(r)

	outcome, err := w.submitter.Submit(r.Context(), req)
	status := http.StatusOK
	if errors.Is(err, submission.ErrSubmissionInFlight) {
		status = http.StatusConflict
		outcome.View.Alert = outcome.Alert
	} else if err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Str("submission_id", outcome.ID).Msg("submission ended early")
	}

	w.renderPage(rw, r, status, req, outcome.View)
}

func (w *WebUI) handlePreview(rw http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rw.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(rw).Encode(NewPreview(q.Get("duration"), q.Get("budget"))); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to write preview")
	}
}

func (w *WebUI) renderPage(rw http.ResponseWriter, r *http.Request, status int, form trip.PlanRequest, view submission.ViewState) {
	logger := zerolog.Ctx(r.Context())
	preview := NewPreview(form.Duration, form.Budget)

	data := pageData{
		Form:          form,
		Transports:    options(TransportModes, form.Transport...),
		Styles:        options(TravelStyles, form.Style),
		DurationCheck: preview.DurationCheck,
		BudgetCheck:   preview.BudgetCheck,
		View:          view,
	}

	if view.ShowResult() {
		result, err := render.Render(*view.Itinerary).HTMLString()
		if err != nil {
			logger.Error().Err(err).Msg("failed to render itinerary")
			http.Error(rw, "failed to render itinerary", http.StatusInternalServerError)
			return
		}
		data.Result = result
	}

	rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	rw.WriteHeader(status)
	if err := indexTmpl.Execute(rw, data); err != nil {
		logger.Error().Err(err).Msg("failed to write page")
	}
}

func requestFromForm(r *http.Request) trip.PlanRequest {
	return trip.PlanRequest{
		Destination: r.PostForm.Get("destination"),
		Duration:    r.PostForm.Get("duration"),
		Budget:      r.PostForm.Get("budget"),
		Transport:   r.PostForm["transport"],
		Style:       r.PostForm.Get("style"),
		Preference:  r.PostForm.Get("preference"),
	}
}

func options(names []string, selected ...string) []option {
	opts := make([]option, len(names))
	for i, n := range names {
		opts[i] = option{Name: n, Checked: slices.Contains(selected, n)}
	}
	return opts
}
