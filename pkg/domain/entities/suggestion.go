package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Urgency represents the severity of a projected shortfall
type Urgency int

const (
	UrgencyWarning Urgency = iota
	UrgencyCritical
)

// String method for Urgency enum
func (u Urgency) String() string {
	switch u {
	case UrgencyCritical:
		return "CRITICAL"
	case UrgencyWarning:
		return "WARNING"
	default:
		return "Unknown"
	}
}

// MarshalText makes urgencies serialize as their label
func (u Urgency) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// ReplenishmentSuggestion represents a recommended purchase for one SKU.
// At most one suggestion is emitted per SKU per run, sized and timed for the
// earliest actionable floor breach.
type ReplenishmentSuggestion struct {
	SKUCode            SKUCode             `json:"skuCode"`
	SupplierCode       string              `json:"supplierCode"`
	Urgency            Urgency             `json:"urgency"`
	SuggestedQty       float64             `json:"suggestedQty"`
	MOQ                float64             `json:"moq"`
	OrderWeek          int                 `json:"orderWeek"`
	OrderDate          time.Time           `json:"orderDate"`
	ArrivalWeek        int                 `json:"arrivalWeek"`
	ArrivalDate        time.Time           `json:"arrivalDate"`
	ProjectedAtArrival float64             `json:"projectedAtArrival"`
	CurrentInventory   float64             `json:"currentInventory"`
	WeeksOfCover       float64             `json:"weeksOfCover"`
	EstimatedCost      decimal.NullDecimal `json:"estimatedCost"`
	Method             ReplenishmentMethod `json:"replenishmentMethod"`
	RequiresReview     bool                `json:"requiresReview"`
	TimeConstrained    bool                `json:"timeConstrained"`
	BreachWeek         int                 `json:"breachWeek"`
}
