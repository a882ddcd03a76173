package entities

import "time"

// DefaultHorizonWeeks is the projection horizon used when the caller does
// not specify one
const DefaultHorizonWeeks = 20

// WeeksOfCoverSentinel stands in for "infinite cover" when the remaining
// forecast is zero, so weeks-of-cover never divides by zero
const WeeksOfCoverSentinel = 999.0

// WeekSlot represents one discrete business week of the horizon
type WeekSlot struct {
	Week      int       `json:"week"`
	StartDate time.Time `json:"startDate"`
}

// ProjectionRow represents the simulated inventory position for one SKU in
// one week. Ending inventory may be negative; that is a projected stockout,
// not an error.
type ProjectionRow struct {
	Week         int     `json:"week"`
	Beginning    float64 `json:"beginning"`
	Consumption  float64 `json:"consumption"`
	Receipts     float64 `json:"receipts"`
	Ending       float64 `json:"ending"`
	WeeksOfCover float64 `json:"weeksOfCover"`
}
