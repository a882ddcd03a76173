package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/cwaltman/replen/pkg/domain/entities"
)

// WarningKind classifies the non-fatal conditions a run can surface
type WarningKind string

const (
	WarnUnknownPolicy       WarningKind = "unknown_policy"
	WarnUnknownSKUReference WarningKind = "unknown_sku_reference"
	WarnMissingForecast     WarningKind = "missing_forecast"
	WarnSKUSkipped          WarningKind = "sku_skipped"
)

// Warning records a non-fatal, per-SKU condition encountered during a run.
// Warnings never abort the batch; they ride along on the result.
type Warning struct {
	Kind    WarningKind      `json:"kind"`
	SKUCode entities.SKUCode `json:"skuCode,omitempty"`
	Message string           `json:"message"`
}

// ProjectionResult bundles one SKU's simulated horizon with the policy that
// governed it
type ProjectionResult struct {
	SKUCode           entities.SKUCode              `json:"skuCode"`
	SupplierCode      string                        `json:"supplierCode"`
	Policy            entities.ClassificationPolicy `json:"policy"`
	PolicyDefaulted   bool                          `json:"policyDefaulted"`
	AvgWeeklyForecast float64                       `json:"avgWeeklyForecast"`
	Rows              []entities.ProjectionRow      `json:"rows"`
}

// PlanningResult contains the complete output of one projection run.
// Nothing here is persisted by the engine; every run recomputes from the
// inputs supplied to it.
type PlanningResult struct {
	RunID        uuid.UUID                          `json:"runId"`
	GeneratedAt  time.Time                          `json:"generatedAt"`
	CurrentWeek  int                                `json:"currentWeek"`
	HorizonWeeks int                                `json:"horizonWeeks"`
	Projections  []ProjectionResult                 `json:"projections"`
	Suggestions  []entities.ReplenishmentSuggestion `json:"suggestions"`
	Summary      entities.ProjectionSummary         `json:"summary"`
	Warnings     []Warning                          `json:"warnings,omitempty"`
}
