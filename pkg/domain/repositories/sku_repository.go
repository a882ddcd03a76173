package repositories

import (
	"context"

	"github.com/cwaltman/replen/pkg/domain/entities"
)

// SKURepository provides access to SKU master data
type SKURepository interface {
	GetSKU(ctx context.Context, code entities.SKUCode) (*entities.SKU, error)
	GetAllSKUs(ctx context.Context) ([]*entities.SKU, error)
	LoadSKUs(ctx context.Context, skus []*entities.SKU) error
}
