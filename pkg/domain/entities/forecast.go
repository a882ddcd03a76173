package entities

import "fmt"

// DemandForecast represents the forecast consumption for a SKU in one week.
// Weeks without a forecast row are simulated as zero demand; the engine does
// not extrapolate beyond supplied data.
type DemandForecast struct {
	SKUCode  SKUCode `json:"skuCode"`
	Week     int     `json:"week"`
	Quantity float64 `json:"quantity"`
}

// NewDemandForecast creates a validated DemandForecast
func NewDemandForecast(code SKUCode, week int, quantity float64) (*DemandForecast, error) {
	if string(code) == "" {
		return nil, fmt.Errorf("sku code cannot be empty")
	}
	if quantity < 0 {
		return nil, fmt.Errorf("forecast quantity cannot be negative, got %g", quantity)
	}

	return &DemandForecast{
		SKUCode:  code,
		Week:     week,
		Quantity: quantity,
	}, nil
}
