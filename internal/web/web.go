// Package web serves the trip planning form and renders its result.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"air-trip-planner/internal/submission"
	"air-trip-planner/internal/trip"
	webmiddleware "air-trip-planner/internal/web/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

//go:embed templates/index.html
var templatesFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// TransportModes are the checkboxes offered by the form.
var TransportModes = []string{"대중교통", "자차/렌트카", "도보", "택시", "자전거"}

// TravelStyles are the choices of the style select.
var TravelStyles = []string{"힐링/휴양", "맛집 탐방", "관광/문화", "액티비티", "쇼핑"}

// Submitter is the part of submission.Submitter the form needs.
type Submitter interface {
	Submit(ctx context.Context, req trip.PlanRequest) (submission.Outcome, error)
	View() submission.ViewState
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
}

type WebUI struct {
	router    *chi.Mux
	logger    *zerolog.Logger
	server    *http.Server
	submitter Submitter
	cfg       Config
}

func NewWebUI(logger zerolog.Logger, cfg Config, submitter Submitter) *WebUI {
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	w := &WebUI{
		logger:    &logger,
		submitter: submitter,
		cfg:       cfg,
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(webmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Get("/", w.handleIndex)
	router.Post("/plan", w.handlePlan)
	router.Get("/preview", w.handlePreview)
	router.Handle("/metrics", promhttp.Handler())

	w.router = router
	w.server = &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}
	return w
}

func (w *WebUI) Handler() http.Handler {
	return w.router
}

// Start serves the form until ctx is cancelled.
func (w *WebUI) Start(ctx context.Context) error {
	serverErrors := make(chan error, 1)
	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting web ui")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), w.cfg.ShutdownTimeout)
		defer cancel()

		if err := w.server.Shutdown(shutdownCtx); err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			return w.server.Close()
		}
	}
	return nil
}
