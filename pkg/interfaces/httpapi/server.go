// Package httpapi exposes the planning engine over HTTP. Read endpoints are
// open; policy mutation requires a bearer token.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/cwaltman/replen/pkg/application/services/planning"
	"github.com/cwaltman/replen/pkg/domain/repositories"
	"github.com/cwaltman/replen/pkg/infrastructure/runlog"
)

// Config holds the server surface settings
type Config struct {
	// JWTSecret signs and verifies mutation tokens. Empty disables the
	// mutating endpoints entirely.
	JWTSecret string
	// DefaultHorizonWeeks applies when a projection request names no horizon
	DefaultHorizonWeeks int
	Production          bool
}

// Server wires the planning service and policy store into HTTP handlers
type Server struct {
	planner    *planning.Service
	policyRepo repositories.PolicyRepository
	runs       *runlog.Store
	logger     zerolog.Logger
	config     Config
}

// NewServer creates the HTTP surface over a planning service
func NewServer(
	planner *planning.Service,
	policyRepo repositories.PolicyRepository,
	runs *runlog.Store,
	logger zerolog.Logger,
	config Config,
) *Server {
	return &Server{
		planner:    planner,
		policyRepo: policyRepo,
		runs:       runs,
		logger:     logger,
		config:     config,
	}
}

// Handler builds the full routing tree wrapped in CORS
func (s *Server) Handler() http.Handler {
	if s.config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.requestLogger())

	router.GET("/health", s.handleHealth)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/projection", s.handleProjection)
		v1.GET("/suggestions", s.handleSuggestions)
		v1.GET("/policies", s.handleGetPolicies)
		v1.GET("/runs", s.handleRuns)
		v1.PUT("/policies/:cell", s.requireAuth(), s.handleUpdatePolicy)
	}

	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler(router)
}
