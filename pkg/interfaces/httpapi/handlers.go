package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cwaltman/replen/pkg/application/services/planning"
	"github.com/cwaltman/replen/pkg/domain/entities"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// handleProjection runs a full planning batch and returns the result.
// The horizon defaults from configuration and is overridable per request.
func (s *Server) handleProjection(c *gin.Context) {
	horizon := s.config.DefaultHorizonWeeks
	if raw := c.Query("horizon"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "horizon must be an integer"})
			return
		}
		horizon = parsed
	}

	result, err := s.planner.Run(c.Request.Context(), horizon)
	if err != nil {
		var invalid *planning.InvalidHorizonError
		if errors.As(err, &invalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error()})
			return
		}
		s.logger.Error().Err(err).Msg("projection run failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "projection run failed"})
		return
	}

	s.runs.Record(result)
	c.JSON(http.StatusOK, result)
}

// handleSuggestions runs a batch and returns just the ranked order
// suggestions, optionally filtered by urgency
func (s *Server) handleSuggestions(c *gin.Context) {
	result, err := s.planner.Run(c.Request.Context(), s.config.DefaultHorizonWeeks)
	if err != nil {
		s.logger.Error().Err(err).Msg("projection run failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "projection run failed"})
		return
	}
	s.runs.Record(result)

	suggestions := result.Suggestions
	if raw := c.Query("urgency"); raw != "" {
		var want entities.Urgency
		switch strings.ToLower(raw) {
		case "critical":
			want = entities.UrgencyCritical
		case "warning":
			want = entities.UrgencyWarning
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "urgency must be 'critical' or 'warning'"})
			return
		}

		filtered := make([]entities.ReplenishmentSuggestion, 0, len(suggestions))
		for _, suggestion := range suggestions {
			if suggestion.Urgency == want {
				filtered = append(filtered, suggestion)
			}
		}
		suggestions = filtered
	}

	c.JSON(http.StatusOK, gin.H{
		"runId":       result.RunID,
		"currentWeek": result.CurrentWeek,
		"suggestions": suggestions,
	})
}

func (s *Server) handleGetPolicies(c *gin.Context) {
	policies, err := s.policyRepo.GetAllPolicies(c.Request.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load policies")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load policies"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"policies": policies})
}

// handleRuns lists recent projection runs, newest first
func (s *Server) handleRuns(c *gin.Context) {
	limit := -1
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	c.JSON(http.StatusOK, gin.H{"runs": s.runs.Recent(limit)})
}

type updatePolicyRequest struct {
	ServiceLevel          float64 `json:"serviceLevel" binding:"required"`
	TargetWOH             float64 `json:"targetWoh" binding:"required"`
	ReviewFrequency       string  `json:"reviewFrequency"`
	ReplenishmentMethod   string  `json:"replenishmentMethod"`
	SafetyStockMultiplier float64 `json:"safetyStockMultiplier"`
	Notes                 string  `json:"notes"`
}

// handleUpdatePolicy replaces the policy for one matrix cell
func (s *Server) handleUpdatePolicy(c *gin.Context) {
	cell := entities.ParseMatrixCell(c.Param("cell"))
	if cell == entities.CellUnknown {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown matrix cell: " + c.Param("cell")})
		return
	}

	var req updatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	if req.SafetyStockMultiplier == 0 {
		req.SafetyStockMultiplier = 1.0
	}

	policy, err := entities.NewClassificationPolicy(
		cell,
		req.ServiceLevel,
		req.TargetWOH,
		entities.ParseReviewFrequency(req.ReviewFrequency),
		entities.ParseReplenishmentMethod(req.ReplenishmentMethod),
		req.SafetyStockMultiplier,
		req.Notes,
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.policyRepo.UpsertPolicy(c.Request.Context(), policy); err != nil {
		s.logger.Error().Err(err).Str("cell", cell.String()).Msg("failed to upsert policy")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store policy"})
		return
	}

	s.logger.Info().Str("cell", cell.String()).Msg("policy updated")
	c.JSON(http.StatusOK, gin.H{"policy": policy})
}
