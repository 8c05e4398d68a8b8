package metrics

import (
	"time"

	"air-trip-planner/internal/shared"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Submissions counts finished form submissions by outcome
	// (success, fallback, failed, invalid, rejected).
	Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "airplanner",
		Name:      "submissions_total",
		Help:      "Form submissions by outcome.",
	}, []string{"outcome"})

	// GeneratorAttempts counts planning-service calls per model and result.
	GeneratorAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "airplanner",
		Name:      "generator_attempts_total",
		Help:      "Text generator attempts by model and result.",
	}, []string{"model", "result"})

	// GeneratorLatency tracks how long each generator attempt took.
	GeneratorLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "airplanner",
		Name:      "generator_latency_seconds",
		Help:      "Text generator latency.",
		Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 40, 60},
	}, []string{"model"})

	// PromptTokens sums prompt tokens sent per model.
	PromptTokens = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "airplanner",
		Name:      "prompt_tokens_total",
		Help:      "Prompt tokens consumed by model.",
	}, []string{"model"})
)

// RecordMeta records one generator attempt.
func RecordMeta(meta shared.AgentMeta) {
	result := "ok"
	if meta.Err != nil {
		result = "error"
	}
	model := meta.Usage.Model
	if model == "" {
		model = meta.AgentName
	}

	GeneratorAttempts.WithLabelValues(model, result).Inc()
	GeneratorLatency.WithLabelValues(model).Observe(meta.Latency.Seconds())
	if meta.Usage.PromptTokens > 0 {
		PromptTokens.WithLabelValues(model).Add(float64(meta.Usage.PromptTokens))
	}
}

// MapUsage builds an AgentMeta from a finished call.
func MapUsage(agentName string, usage shared.TokenUsage, latency time.Duration, err error) shared.AgentMeta {
	if usage.Model == "" {
		usage.Model = agentName
	}
	return shared.AgentMeta{
		AgentName: agentName,
		Usage:     usage,
		Latency:   latency,
		Err:       err,
	}
}
