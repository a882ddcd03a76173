package planning

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cwaltman/replen/pkg/application/dto"
	"github.com/cwaltman/replen/pkg/domain/entities"
	"github.com/cwaltman/replen/pkg/domain/repositories"
	"github.com/cwaltman/replen/pkg/domain/services"
)

// Config holds tunables for the planning service
type Config struct {
	// SnapshotLookbackWeeks bounds how far back the baseline search goes for
	// a SKU's most recent inventory snapshot
	SnapshotLookbackWeeks int
}

// Service orchestrates one projection run: it pulls a consistent snapshot of
// the collaborator-supplied inputs, builds the per-run lookup indexes once,
// and drives the pure per-SKU computations. It holds no state between runs
// and is safe for concurrent callers.
type Service struct {
	skuRepo       repositories.SKURepository
	policyRepo    repositories.PolicyRepository
	inventoryRepo repositories.InventoryRepository
	forecastRepo  repositories.ForecastRepository
	clock         services.Clock
	logger        zerolog.Logger
	config        Config
}

// NewService creates a planning service with the default configuration
func NewService(
	skuRepo repositories.SKURepository,
	policyRepo repositories.PolicyRepository,
	inventoryRepo repositories.InventoryRepository,
	forecastRepo repositories.ForecastRepository,
	clock services.Clock,
	logger zerolog.Logger,
) *Service {
	return NewServiceWithConfig(skuRepo, policyRepo, inventoryRepo, forecastRepo, clock, logger, Config{
		SnapshotLookbackWeeks: 8,
	})
}

// NewServiceWithConfig creates a planning service with custom configuration
func NewServiceWithConfig(
	skuRepo repositories.SKURepository,
	policyRepo repositories.PolicyRepository,
	inventoryRepo repositories.InventoryRepository,
	forecastRepo repositories.ForecastRepository,
	clock services.Clock,
	logger zerolog.Logger,
	config Config,
) *Service {
	return &Service{
		skuRepo:       skuRepo,
		policyRepo:    policyRepo,
		inventoryRepo: inventoryRepo,
		forecastRepo:  forecastRepo,
		clock:         clock,
		logger:        logger,
		config:        config,
	}
}

// Run executes one complete projection run over the supplied horizon.
// Per-SKU faults are isolated into warnings on the result; only structural
// violations (an invalid horizon, a failing repository) fail the call, and a
// failure never returns a partial batch.
func (s *Service) Run(ctx context.Context, horizonWeeks int) (*dto.PlanningResult, error) {
	if horizonWeeks <= 0 {
		return nil, &InvalidHorizonError{Horizon: horizonWeeks}
	}

	currentWeek := services.CurrentWeekOrdinal(s.clock)

	skus, err := s.skuRepo.GetAllSKUs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load SKU master: %w", err)
	}
	policies, err := s.policyRepo.GetAllPolicies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load classification policies: %w", err)
	}
	snapshots, err := s.inventoryRepo.GetAllSnapshots(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory snapshots: %w", err)
	}
	receipts, err := s.inventoryRepo.GetAllInTransit(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load in-transit schedule: %w", err)
	}
	forecasts, err := s.forecastRepo.GetAllForecasts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load demand forecasts: %w", err)
	}

	var warnings []dto.Warning

	skusByCode := make(map[entities.SKUCode]*entities.SKU, len(skus))
	for _, sku := range skus {
		skusByCode[sku.SKUCode] = sku
	}

	resolver := NewPolicyResolver(policies)
	baselines := s.indexBaselines(snapshots, skusByCode, currentWeek, &warnings)
	inTransitBySKU := indexInTransit(receipts, skusByCode, &warnings)
	forecastBySKU := indexForecasts(forecasts, skusByCode, &warnings)

	// Deterministic per-SKU order regardless of repository iteration order
	sorted := make([]*entities.SKU, len(skus))
	copy(sorted, skus)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].SKUCode < sorted[j].SKUCode })

	projections := make([]dto.ProjectionResult, 0, len(sorted))
	for _, sku := range sorted {
		policy, registered := resolver.Resolve(sku.MatrixCell)
		if !registered {
			warnings = append(warnings, dto.Warning{
				Kind:    dto.WarnUnknownPolicy,
				SKUCode: sku.SKUCode,
				Message: fmt.Sprintf("no policy registered for cell %s; default applied", sku.MatrixCell),
			})
		}

		forecastByWeek := forecastBySKU[sku.SKUCode]
		if forecastByWeek == nil {
			forecastByWeek = map[int]float64{}
			warnings = append(warnings, dto.Warning{
				Kind:    dto.WarnMissingForecast,
				SKUCode: sku.SKUCode,
				Message: "no forecast coverage; simulated as zero demand",
			})
		}

		rows, err := ComputeProjection(
			baselines[sku.SKUCode],
			currentWeek,
			forecastByWeek,
			inTransitBySKU[sku.SKUCode],
			horizonWeeks,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to project %s: %w", sku.SKUCode, err)
		}

		projections = append(projections, dto.ProjectionResult{
			SKUCode:           sku.SKUCode,
			SupplierCode:      sku.SupplierCode,
			Policy:            policy,
			PolicyDefaulted:   !registered,
			AvgWeeklyForecast: AverageWeeklyForecast(forecastByWeek, currentWeek, horizonWeeks),
			Rows:              rows,
		})
	}

	suggestions, suggestionWarnings := GenerateSuggestions(projections, currentWeek, skusByCode)
	warnings = append(warnings, suggestionWarnings...)

	for _, w := range warnings {
		s.logger.Warn().
			Str("kind", string(w.Kind)).
			Str("sku", string(w.SKUCode)).
			Msg(w.Message)
	}

	result := &dto.PlanningResult{
		RunID:        uuid.New(),
		GeneratedAt:  s.clock(),
		CurrentWeek:  currentWeek,
		HorizonWeeks: horizonWeeks,
		Projections:  projections,
		Suggestions:  suggestions,
		Summary:      ComputeProjectionSummary(projections, suggestions),
		Warnings:     warnings,
	}

	s.logger.Info().
		Str("runId", result.RunID.String()).
		Int("currentWeek", currentWeek).
		Int("skus", len(projections)).
		Int("suggestions", len(suggestions)).
		Int("critical", result.Summary.CriticalCount).
		Msg("projection run complete")

	return result, nil
}

// indexBaselines picks each SKU's most recent snapshot inside the lookback
// window. SKUs with no usable snapshot baseline at zero.
func (s *Service) indexBaselines(
	snapshots []*entities.InventorySnapshot,
	skusByCode map[entities.SKUCode]*entities.SKU,
	currentWeek int,
	warnings *[]dto.Warning,
) map[entities.SKUCode]float64 {
	earliest := currentWeek - s.config.SnapshotLookbackWeeks

	baselines := make(map[entities.SKUCode]float64)
	bestWeek := make(map[entities.SKUCode]int)
	for _, snap := range snapshots {
		if _, known := skusByCode[snap.SKUCode]; !known {
			*warnings = appendUnknownSKU(*warnings, snap.SKUCode, "inventory snapshot")
			continue
		}
		if snap.Week > currentWeek || snap.Week < earliest {
			continue
		}
		if week, seen := bestWeek[snap.SKUCode]; seen && week >= snap.Week {
			continue
		}
		bestWeek[snap.SKUCode] = snap.Week
		baselines[snap.SKUCode] = snap.QtyOnHand
	}
	return baselines
}

// indexInTransit sums receipts per SKU and arrival week
func indexInTransit(
	receipts []*entities.InTransitReceipt,
	skusByCode map[entities.SKUCode]*entities.SKU,
	warnings *[]dto.Warning,
) map[entities.SKUCode]map[int]float64 {
	byWeek := make(map[entities.SKUCode]map[int]float64)
	for _, r := range receipts {
		if _, known := skusByCode[r.SKUCode]; !known {
			*warnings = appendUnknownSKU(*warnings, r.SKUCode, "in-transit receipt")
			continue
		}
		if byWeek[r.SKUCode] == nil {
			byWeek[r.SKUCode] = make(map[int]float64)
		}
		byWeek[r.SKUCode][r.ArrivalWeek] += r.Quantity
	}
	return byWeek
}

// indexForecasts maps forecast rows per SKU and week
func indexForecasts(
	forecasts []*entities.DemandForecast,
	skusByCode map[entities.SKUCode]*entities.SKU,
	warnings *[]dto.Warning,
) map[entities.SKUCode]map[int]float64 {
	byWeek := make(map[entities.SKUCode]map[int]float64)
	for _, f := range forecasts {
		if _, known := skusByCode[f.SKUCode]; !known {
			*warnings = appendUnknownSKU(*warnings, f.SKUCode, "demand forecast")
			continue
		}
		if byWeek[f.SKUCode] == nil {
			byWeek[f.SKUCode] = make(map[int]float64)
		}
		byWeek[f.SKUCode][f.Week] = f.Quantity
	}
	return byWeek
}

// appendUnknownSKU records an unknown-SKU warning once per SKU and source
func appendUnknownSKU(warnings []dto.Warning, code entities.SKUCode, source string) []dto.Warning {
	msg := fmt.Sprintf("%s references unknown SKU; row skipped", source)
	for _, w := range warnings {
		if w.Kind == dto.WarnUnknownSKUReference && w.SKUCode == code && w.Message == msg {
			return warnings
		}
	}
	return append(warnings, dto.Warning{
		Kind:    dto.WarnUnknownSKUReference,
		SKUCode: code,
		Message: msg,
	})
}
