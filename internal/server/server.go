// Package server exposes the trip planner over HTTP for the form and other
// clients.
package server

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"time"

	"air-trip-planner/internal/metrics"
	"air-trip-planner/internal/planner"
	"air-trip-planner/internal/shared"
	"air-trip-planner/internal/trip"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// WelcomeMessage is returned by GET /.
const WelcomeMessage = "A.I.R 여행 플래너 서버가 정상 작동 중입니다! ✈️"

// PlanGenerator produces an itinerary for a request.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, req trip.PlanRequest) (trip.Itinerary, []shared.AgentMeta, error)
}

type Config struct {
	Addr            string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

type Server struct {
	engine  *gin.Engine
	planner PlanGenerator
	logger  zerolog.Logger
	server  *http.Server
	cfg     Config
}

func New(logger zerolog.Logger, cfg Config, planner PlanGenerator) *Server {
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(logger))
	engine.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	s := &Server{
		engine:  engine,
		planner: planner,
		logger:  logger,
		cfg:     cfg,
	}

	engine.GET("/", s.handleRoot)
	engine.GET("/health", s.handleHealth)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	engine.POST("/generate-trip-plan", s.handleGenerate)

	s.server = &http.Server{
		Addr:    cfg.Addr,
		Handler: engine,
	}
	return s
}

// Handler returns the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.server.Addr).Msg("starting planning service")
		serverErrors <- s.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info().Msg("shutdown initiated")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error().Err(err).Msg("graceful shutdown failed")
			return s.server.Close()
		}
	}
	return nil
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": WelcomeMessage})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"system": metrics.GetSysHealth(),
	})
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req trip.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		var verr *trip.ValidationError
		errors.As(err, &verr)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": verr.Message, "field": verr.Field})
		return
	}

	logger := zerolog.Ctx(c.Request.Context())
	logger.Info().Str("destination", req.Destination).Str("duration", req.Duration).Msg("plan requested")

	itinerary, metas, err := s.planner.GeneratePlan(c.Request.Context(), req)
	if err != nil {
		logger.Error().Err(err).Int("attempts", len(metas)).Msg("no generator produced a plan")
		c.JSON(http.StatusOK, planner.UnavailableItinerary())
		return
	}
	c.JSON(http.StatusOK, itinerary)
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
