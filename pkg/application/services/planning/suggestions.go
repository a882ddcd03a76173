package planning

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cwaltman/replen/pkg/application/dto"
	"github.com/cwaltman/replen/pkg/domain/entities"
	"github.com/cwaltman/replen/pkg/domain/services"
)

// criticalWindowWeeks bounds the near-term window: a shortfall projected in
// the current or next week escalates a suggestion to CRITICAL
const criticalWindowWeeks = 2

// PolicyFloor computes the inventory level below which a SKU is considered
// in breach of its policy: target weeks-on-hand expressed in units of
// average weekly forecast, scaled by the safety-stock multiplier. The floor
// is monotonically increasing in all three factors.
func PolicyFloor(policy entities.ClassificationPolicy, avgWeeklyForecast float64) float64 {
	return policy.TargetWOH * avgWeeklyForecast * policy.SafetyStockMultiplier
}

// GenerateSuggestions scans every SKU's projection for its earliest
// actionable policy-floor breach and emits at most one sized, timed, and
// urgency-ranked reorder suggestion per SKU. SKUs whose projections never
// breach, or that recover on already-scheduled receipts, emit nothing.
// A SKU with no master record is skipped with a warning; it never aborts
// the batch.
func GenerateSuggestions(
	projections []dto.ProjectionResult,
	currentWeek int,
	skusByCode map[entities.SKUCode]*entities.SKU,
) ([]entities.ReplenishmentSuggestion, []dto.Warning) {
	var suggestions []entities.ReplenishmentSuggestion
	var warnings []dto.Warning

	// breach-week ending per SKU, kept aside for severity ordering
	severity := make(map[entities.SKUCode]float64)

	for _, proj := range projections {
		sku, ok := skusByCode[proj.SKUCode]
		if !ok {
			warnings = append(warnings, dto.Warning{
				Kind:    dto.WarnSKUSkipped,
				SKUCode: proj.SKUCode,
				Message: "projection references a SKU absent from the master map; skipped",
			})
			continue
		}
		if len(proj.Rows) == 0 {
			continue
		}

		suggestion, breachEnding, found := suggestForSKU(proj, sku, currentWeek)
		if !found {
			continue
		}

		severity[suggestion.SKUCode] = breachEnding
		suggestions = append(suggestions, suggestion)
	}

	sort.Slice(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.Urgency != b.Urgency {
			return a.Urgency > b.Urgency
		}
		if a.BreachWeek != b.BreachWeek {
			return a.BreachWeek < b.BreachWeek
		}
		if severity[a.SKUCode] != severity[b.SKUCode] {
			return severity[a.SKUCode] < severity[b.SKUCode]
		}
		return a.SKUCode < b.SKUCode
	})

	return suggestions, warnings
}

// suggestForSKU finds the earliest actionable breach in one SKU's projection.
// A breach is actionable when a new order is still needed once scheduled
// receipts through the order's arrival week are accounted for.
func suggestForSKU(
	proj dto.ProjectionResult,
	sku *entities.SKU,
	currentWeek int,
) (entities.ReplenishmentSuggestion, float64, bool) {
	floor := PolicyFloor(proj.Policy, proj.AvgWeeklyForecast)
	rows := proj.Rows

	for _, row := range rows {
		if row.Ending > floor {
			continue
		}

		// Order so the receipt lands in the breach week; when the lead time
		// has already elapsed, clamp to now and flag the suggestion late.
		orderWeek := row.Week - sku.LeadTimeWeeks
		timeConstrained := false
		if orderWeek < currentWeek {
			orderWeek = currentWeek
			timeConstrained = true
		}
		arrivalWeek := orderWeek + sku.LeadTimeWeeks

		projectedAtArrival := endingAt(rows, arrivalWeek)
		required := floor - projectedAtArrival
		if required <= 0 {
			// Scheduled receipts restore the floor by arrival; this breach
			// needs no new order. Keep scanning for a later one that does.
			continue
		}

		qty := roundUpToMOQ(required, sku.MOQ)

		var cost decimal.NullDecimal
		if sku.UnitCost.Valid {
			cost = decimal.NullDecimal{
				Valid:   true,
				Decimal: sku.UnitCost.Decimal.Mul(decimal.NewFromFloat(qty)),
			}
		}

		return entities.ReplenishmentSuggestion{
			SKUCode:            sku.SKUCode,
			SupplierCode:       sku.SupplierCode,
			Urgency:            classifyUrgency(rows, currentWeek, proj.AvgWeeklyForecast),
			SuggestedQty:       qty,
			MOQ:                sku.MOQ,
			OrderWeek:          orderWeek,
			OrderDate:          services.WeekStart(orderWeek),
			ArrivalWeek:        arrivalWeek,
			ArrivalDate:        services.WeekStart(arrivalWeek),
			ProjectedAtArrival: projectedAtArrival,
			CurrentInventory:   rows[0].Beginning,
			WeeksOfCover:       rows[0].WeeksOfCover,
			EstimatedCost:      cost,
			Method:             proj.Policy.Method,
			RequiresReview:     proj.Policy.Method.RequiresReview(),
			TimeConstrained:    timeConstrained,
			BreachWeek:         row.Week,
		}, row.Ending, true
	}

	return entities.ReplenishmentSuggestion{}, 0, false
}

// classifyUrgency escalates to CRITICAL when projected inventory inside the
// near-term window is negative or sits on the hard zero floor while demand
// continues; every other emitted suggestion is a WARNING.
func classifyUrgency(rows []entities.ProjectionRow, currentWeek int, avgWeeklyForecast float64) entities.Urgency {
	for _, row := range rows {
		if row.Week >= currentWeek+criticalWindowWeeks {
			break
		}
		if row.Ending < 0 {
			return entities.UrgencyCritical
		}
		if row.Ending == 0 && avgWeeklyForecast > 0 {
			return entities.UrgencyCritical
		}
	}
	return entities.UrgencyWarning
}

// endingAt returns the projected ending inventory for a week, falling back
// to the final projected week when the arrival lands past the horizon
func endingAt(rows []entities.ProjectionRow, week int) float64 {
	first := rows[0].Week
	idx := week - first
	if idx < 0 {
		idx = 0
	}
	if idx >= len(rows) {
		idx = len(rows) - 1
	}
	return rows[idx].Ending
}

// roundUpToMOQ rounds a required quantity up to the nearest multiple of the
// supplier's minimum order quantity. MOQ of one unit or less means the
// supplier accepts exact quantities.
func roundUpToMOQ(required, moq float64) float64 {
	if moq <= 1 {
		return required
	}
	return math.Ceil(required/moq) * moq
}
