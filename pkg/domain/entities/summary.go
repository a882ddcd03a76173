package entities

import "github.com/shopspring/decimal"

// ConsolidatedOrder groups suggestions for one supplier that share an order
// week, so the dashboard can present them as a single logical purchase order
// while each SKU line stays individually addressable.
type ConsolidatedOrder struct {
	SupplierCode  string                    `json:"supplierCode"`
	OrderWeek     int                       `json:"orderWeek"`
	Lines         []ReplenishmentSuggestion `json:"lines"`
	TotalValue    decimal.Decimal           `json:"totalValue"`
	CriticalCount int                       `json:"criticalCount"`
}

// SupplierBreakdown rolls up all suggestions destined for one supplier
type SupplierBreakdown struct {
	SupplierCode   string              `json:"supplierCode"`
	OrderCount     int                 `json:"orderCount"`
	SuggestedValue decimal.Decimal     `json:"suggestedValue"`
	CriticalCount  int                 `json:"criticalCount"`
	Orders         []ConsolidatedOrder `json:"orders"`
}

// ProjectionSummary represents the global rollup of one projection run.
// Unknown per-suggestion costs count as zero here and only here.
type ProjectionSummary struct {
	ProjectedSKUs        int                 `json:"projectedSkus"`
	TotalSuggestedOrders int                 `json:"totalSuggestedOrders"`
	TotalSuggestedValue  decimal.Decimal     `json:"totalSuggestedValue"`
	CriticalCount        int                 `json:"criticalCount"`
	Suppliers            []SupplierBreakdown `json:"suppliers"`
}
