// Package planner is the core of the remote planning service: it turns a
// plan request into a prompt and walks a chain of text generators until one
// returns a valid itinerary.
package planner

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"air-trip-planner/internal/llm"
	"air-trip-planner/internal/metrics"
	"air-trip-planner/internal/shared"
	"air-trip-planner/internal/trip"

	"github.com/rs/zerolog"
)

//go:embed planner_prompt.md
var plannerPrompt string

var promptTmpl = template.Must(template.New("planner").Parse(plannerPrompt))

// ErrAllGeneratorsFailed is returned when no generator produced a usable plan.
var ErrAllGeneratorsFailed = errors.New("all text generators failed")

type promptData struct {
	Destination string
	Duration    string
	Budget      string
	Transport   string
	Style       string
	Preference  string
}

// Planner generates itineraries with a prioritised list of generators.
type Planner struct {
	generators []llm.TextGenerator
	logger     zerolog.Logger
}

// NewPlanner creates a new Planner. Generators are tried in order.
func NewPlanner(logger zerolog.Logger, generators ...llm.TextGenerator) *Planner {
	return &Planner{
		generators: generators,
		logger:     logger,
	}
}

// GeneratePlan returns the first valid itinerary and the metadata of every
// attempt made.
func (p *Planner) GeneratePlan(ctx context.Context, req trip.PlanRequest) (trip.Itinerary, []shared.AgentMeta, error) {
	prompt, err := buildPrompt(req)
	if err != nil {
		return trip.Itinerary{}, nil, err
	}

	var metas []shared.AgentMeta
	var errs []error
	for _, gen := range p.generators {
		if err := ctx.Err(); err != nil {
			return trip.Itinerary{}, metas, err
		}

		p.logger.Info().Str("model", gen.Name()).Msg("requesting plan")
		start := time.Now()
		resp, err := gen.GenerateContent(ctx, prompt)
		if err == nil {
			var it trip.Itinerary
			it, err = trip.DecodeItinerary([]byte(stripCodeFence(resp.Content)))
			if err == nil {
				meta := metrics.MapUsage(gen.Name(), resp.Usage, time.Since(start), nil)
				metas = append(metas, meta)
				metrics.RecordMeta(meta)
				p.logger.Info().Str("model", gen.Name()).Dur("latency", meta.Latency).Msg("plan generated")
				return it, metas, nil
			}
		}

		meta := metrics.MapUsage(gen.Name(), resp.Usage, time.Since(start), err)
		metas = append(metas, meta)
		metrics.RecordMeta(meta)
		errs = append(errs, fmt.Errorf("%s: %w", gen.Name(), err))
		p.logger.Warn().Err(err).Str("model", gen.Name()).Msg("generator failed, trying next")
	}

	return trip.Itinerary{}, metas, fmt.Errorf("%w: %w", ErrAllGeneratorsFailed, errors.Join(errs...))
}

// UnavailableItinerary is served when every generator failed.
func UnavailableItinerary() trip.Itinerary {
	return trip.Itinerary{
		Title:              "오류 발생",
		RealityScore:       0,
		RealityReason:      "서버 통신량이 많아 AI 연결에 실패했습니다. 잠시 후 다시 시도해주세요.",
		TotalEstimatedCost: "0원",
		PlannerComment:     "모든 AI 모델이 응답하지 않습니다.",
		DailyPlans:         []trip.DayPlan{},
	}
}

func buildPrompt(req trip.PlanRequest) (string, error) {
	var buf bytes.Buffer
	err := promptTmpl.Execute(&buf, promptData{
		Destination: req.Destination,
		Duration:    req.Duration,
		Budget:      req.Budget,
		Transport:   strings.Join(req.Transport, ", "),
		Style:       req.Style,
		Preference:  req.Preference,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build planner prompt: %w", err)
	}
	return buf.String(), nil
}

// stripCodeFence removes a ```json fence some models wrap around output.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
