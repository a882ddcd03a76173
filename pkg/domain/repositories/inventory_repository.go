package repositories

import (
	"context"

	"github.com/cwaltman/replen/pkg/domain/entities"
)

// InventoryRepository provides access to inventory snapshots and the
// in-transit schedule
type InventoryRepository interface {
	GetSnapshots(ctx context.Context, code entities.SKUCode) ([]*entities.InventorySnapshot, error)
	GetAllSnapshots(ctx context.Context) ([]*entities.InventorySnapshot, error)
	LoadSnapshots(ctx context.Context, snapshots []*entities.InventorySnapshot) error

	GetInTransit(ctx context.Context, code entities.SKUCode) ([]*entities.InTransitReceipt, error)
	GetAllInTransit(ctx context.Context) ([]*entities.InTransitReceipt, error)
	LoadInTransit(ctx context.Context, receipts []*entities.InTransitReceipt) error
}
