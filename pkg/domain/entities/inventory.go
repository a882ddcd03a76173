package entities

import "fmt"

// InventorySnapshot represents an observed quantity-on-hand for a SKU in a
// given week. Snapshots are optional per week; the simulator baselines from
// the most recent one inside its lookback window.
type InventorySnapshot struct {
	SKUCode   SKUCode `json:"skuCode"`
	Week      int     `json:"week"`
	QtyOnHand float64 `json:"qtyOnHand"`
}

// NewInventorySnapshot creates a validated InventorySnapshot
func NewInventorySnapshot(code SKUCode, week int, qtyOnHand float64) (*InventorySnapshot, error) {
	if string(code) == "" {
		return nil, fmt.Errorf("sku code cannot be empty")
	}
	if qtyOnHand < 0 {
		return nil, fmt.Errorf("quantity on hand cannot be negative, got %g", qtyOnHand)
	}

	return &InventorySnapshot{
		SKUCode:   code,
		Week:      week,
		QtyOnHand: qtyOnHand,
	}, nil
}

// InTransitReceipt represents quantity already ordered and expected to
// arrive in a given week. Multiple receipts for the same SKU and week are
// summed before simulation.
type InTransitReceipt struct {
	SKUCode     SKUCode `json:"skuCode"`
	ArrivalWeek int     `json:"arrivalWeek"`
	Quantity    float64 `json:"quantity"`
}

// NewInTransitReceipt creates a validated InTransitReceipt
func NewInTransitReceipt(code SKUCode, arrivalWeek int, quantity float64) (*InTransitReceipt, error) {
	if string(code) == "" {
		return nil, fmt.Errorf("sku code cannot be empty")
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("receipt quantity must be positive, got %g", quantity)
	}

	return &InTransitReceipt{
		SKUCode:     code,
		ArrivalWeek: arrivalWeek,
		Quantity:    quantity,
	}, nil
}
