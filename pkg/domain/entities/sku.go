package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SKUCode represents a unique stock-keeping-unit identifier
type SKUCode string

// SKU represents the immutable master record for a stock-keeping unit.
// UnitCost is NullDecimal because cost data comes from a separate WMS export
// and is genuinely unknown for some SKUs; it must never be coerced to zero
// on the per-SKU record.
type SKU struct {
	SKUCode       SKUCode             `json:"skuCode"`
	Description   string              `json:"description"`
	Category      string              `json:"category"`
	SupplierCode  string              `json:"supplierCode"`
	LeadTimeWeeks int                 `json:"leadTimeWeeks"`
	MOQ           float64             `json:"moq"`
	UnitCost      decimal.NullDecimal `json:"unitCost"`
	MatrixCell    MatrixCell          `json:"matrixCell"`
}

// NewSKU creates a validated SKU master record
func NewSKU(
	code SKUCode,
	description, category, supplierCode string,
	leadTimeWeeks int,
	moq float64,
	unitCost decimal.NullDecimal,
	cell MatrixCell,
) (*SKU, error) {
	if string(code) == "" {
		return nil, fmt.Errorf("sku code cannot be empty")
	}
	if leadTimeWeeks < 0 {
		return nil, fmt.Errorf("lead time cannot be negative, got %d", leadTimeWeeks)
	}
	if moq < 0 {
		return nil, fmt.Errorf("moq cannot be negative, got %g", moq)
	}
	if unitCost.Valid && unitCost.Decimal.IsNegative() {
		return nil, fmt.Errorf("unit cost cannot be negative, got %s", unitCost.Decimal)
	}

	return &SKU{
		SKUCode:       code,
		Description:   description,
		Category:      category,
		SupplierCode:  supplierCode,
		LeadTimeWeeks: leadTimeWeeks,
		MOQ:           moq,
		UnitCost:      unitCost,
		MatrixCell:    cell,
	}, nil
}
