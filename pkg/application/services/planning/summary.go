package planning

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cwaltman/replen/pkg/application/dto"
	"github.com/cwaltman/replen/pkg/domain/entities"
)

// ComputeProjectionSummary rolls all suggestions into global and
// per-supplier totals. Suggestions for the same supplier sharing an order
// week consolidate into one logical purchase order; each SKU line stays
// individually addressable inside its group. Costs unknown at the
// suggestion level count as zero at this aggregate level only.
func ComputeProjectionSummary(
	projections []dto.ProjectionResult,
	suggestions []entities.ReplenishmentSuggestion,
) entities.ProjectionSummary {
	summary := entities.ProjectionSummary{
		ProjectedSKUs:        len(projections),
		TotalSuggestedOrders: len(suggestions),
		TotalSuggestedValue:  decimal.Zero,
	}

	bySupplier := make(map[string][]entities.ReplenishmentSuggestion)
	for _, s := range suggestions {
		summary.TotalSuggestedValue = summary.TotalSuggestedValue.Add(costOrZero(s))
		if s.Urgency == entities.UrgencyCritical {
			summary.CriticalCount++
		}
		bySupplier[s.SupplierCode] = append(bySupplier[s.SupplierCode], s)
	}

	supplierCodes := make([]string, 0, len(bySupplier))
	for code := range bySupplier {
		supplierCodes = append(supplierCodes, code)
	}
	sort.Strings(supplierCodes)

	for _, code := range supplierCodes {
		lines := bySupplier[code]
		breakdown := entities.SupplierBreakdown{
			SupplierCode:   code,
			OrderCount:     len(lines),
			SuggestedValue: decimal.Zero,
			Orders:         consolidateOrders(code, lines),
		}
		for _, s := range lines {
			breakdown.SuggestedValue = breakdown.SuggestedValue.Add(costOrZero(s))
			if s.Urgency == entities.UrgencyCritical {
				breakdown.CriticalCount++
			}
		}
		summary.Suppliers = append(summary.Suppliers, breakdown)
	}

	return summary
}

// consolidateOrders buckets one supplier's suggestions by order week
func consolidateOrders(supplierCode string, lines []entities.ReplenishmentSuggestion) []entities.ConsolidatedOrder {
	byWeek := make(map[int][]entities.ReplenishmentSuggestion)
	for _, s := range lines {
		byWeek[s.OrderWeek] = append(byWeek[s.OrderWeek], s)
	}

	weeks := make([]int, 0, len(byWeek))
	for week := range byWeek {
		weeks = append(weeks, week)
	}
	sort.Ints(weeks)

	orders := make([]entities.ConsolidatedOrder, 0, len(weeks))
	for _, week := range weeks {
		order := entities.ConsolidatedOrder{
			SupplierCode: supplierCode,
			OrderWeek:    week,
			Lines:        byWeek[week],
			TotalValue:   decimal.Zero,
		}
		for _, s := range byWeek[week] {
			order.TotalValue = order.TotalValue.Add(costOrZero(s))
			if s.Urgency == entities.UrgencyCritical {
				order.CriticalCount++
			}
		}
		orders = append(orders, order)
	}

	return orders
}

func costOrZero(s entities.ReplenishmentSuggestion) decimal.Decimal {
	if !s.EstimatedCost.Valid {
		return decimal.Zero
	}
	return s.EstimatedCost.Decimal
}
