package memory

import (
	"context"
	"fmt"

	"github.com/cwaltman/replen/pkg/domain/entities"
	"github.com/cwaltman/replen/pkg/domain/repositories"
)

// SKURepository provides in-memory SKU master storage. Repositories are
// loaded once per scenario and then only read, so access is not locked.
type SKURepository struct {
	skus    []entities.SKU
	skusMap map[entities.SKUCode]int
}

// NewSKURepository creates a new in-memory SKU repository
func NewSKURepository(expectedSKUs int) *SKURepository {
	return &SKURepository{
		skus:    make([]entities.SKU, 0, expectedSKUs),
		skusMap: make(map[entities.SKUCode]int, expectedSKUs),
	}
}

// Verify interface compliance
var _ repositories.SKURepository = (*SKURepository)(nil)

// LoadSKUs loads SKU master records into the repository
func (r *SKURepository) LoadSKUs(_ context.Context, skus []*entities.SKU) error {
	for _, sku := range skus {
		r.AddSKU(*sku)
	}
	return nil
}

// AddSKU adds a single SKU to the repository
func (r *SKURepository) AddSKU(sku entities.SKU) {
	if idx, exists := r.skusMap[sku.SKUCode]; exists {
		r.skus[idx] = sku
		return
	}
	r.skusMap[sku.SKUCode] = len(r.skus)
	r.skus = append(r.skus, sku)
}

// GetSKU returns the master record for a SKU code
func (r *SKURepository) GetSKU(_ context.Context, code entities.SKUCode) (*entities.SKU, error) {
	idx, exists := r.skusMap[code]
	if !exists {
		return nil, fmt.Errorf("sku not found: %s", code)
	}
	return &r.skus[idx], nil
}

// GetAllSKUs returns all SKU master records
func (r *SKURepository) GetAllSKUs(_ context.Context) ([]*entities.SKU, error) {
	skus := make([]*entities.SKU, 0, len(r.skus))
	for i := range r.skus {
		skus = append(skus, &r.skus[i])
	}
	return skus, nil
}
