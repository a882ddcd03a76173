package memory

import (
	"context"

	"github.com/cwaltman/replen/pkg/domain/entities"
	"github.com/cwaltman/replen/pkg/domain/repositories"
)

// InventoryRepository provides in-memory storage for inventory snapshots and
// the in-transit schedule
type InventoryRepository struct {
	snapshots      []entities.InventorySnapshot
	snapshotsBySKU map[entities.SKUCode][]int
	receipts       []entities.InTransitReceipt
	receiptsBySKU  map[entities.SKUCode][]int
}

// NewInventoryRepository creates a new in-memory inventory repository
func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{
		snapshotsBySKU: make(map[entities.SKUCode][]int),
		receiptsBySKU:  make(map[entities.SKUCode][]int),
	}
}

// Verify interface compliance
var _ repositories.InventoryRepository = (*InventoryRepository)(nil)

// LoadSnapshots loads inventory snapshots into the repository
func (r *InventoryRepository) LoadSnapshots(_ context.Context, snapshots []*entities.InventorySnapshot) error {
	for _, snap := range snapshots {
		r.AddSnapshot(*snap)
	}
	return nil
}

// AddSnapshot adds a single snapshot
func (r *InventoryRepository) AddSnapshot(snap entities.InventorySnapshot) {
	r.snapshotsBySKU[snap.SKUCode] = append(r.snapshotsBySKU[snap.SKUCode], len(r.snapshots))
	r.snapshots = append(r.snapshots, snap)
}

// GetSnapshots returns all snapshots recorded for a SKU
func (r *InventoryRepository) GetSnapshots(_ context.Context, code entities.SKUCode) ([]*entities.InventorySnapshot, error) {
	indexes := r.snapshotsBySKU[code]
	snapshots := make([]*entities.InventorySnapshot, 0, len(indexes))
	for _, idx := range indexes {
		snapshots = append(snapshots, &r.snapshots[idx])
	}
	return snapshots, nil
}

// GetAllSnapshots returns every snapshot in load order
func (r *InventoryRepository) GetAllSnapshots(_ context.Context) ([]*entities.InventorySnapshot, error) {
	snapshots := make([]*entities.InventorySnapshot, 0, len(r.snapshots))
	for i := range r.snapshots {
		snapshots = append(snapshots, &r.snapshots[i])
	}
	return snapshots, nil
}

// LoadInTransit loads in-transit receipts into the repository
func (r *InventoryRepository) LoadInTransit(_ context.Context, receipts []*entities.InTransitReceipt) error {
	for _, receipt := range receipts {
		r.AddInTransit(*receipt)
	}
	return nil
}

// AddInTransit adds a single in-transit receipt
func (r *InventoryRepository) AddInTransit(receipt entities.InTransitReceipt) {
	r.receiptsBySKU[receipt.SKUCode] = append(r.receiptsBySKU[receipt.SKUCode], len(r.receipts))
	r.receipts = append(r.receipts, receipt)
}

// GetInTransit returns all in-transit receipts for a SKU
func (r *InventoryRepository) GetInTransit(_ context.Context, code entities.SKUCode) ([]*entities.InTransitReceipt, error) {
	indexes := r.receiptsBySKU[code]
	receipts := make([]*entities.InTransitReceipt, 0, len(indexes))
	for _, idx := range indexes {
		receipts = append(receipts, &r.receipts[idx])
	}
	return receipts, nil
}

// GetAllInTransit returns every in-transit receipt in load order
func (r *InventoryRepository) GetAllInTransit(_ context.Context) ([]*entities.InTransitReceipt, error) {
	receipts := make([]*entities.InTransitReceipt, 0, len(r.receipts))
	for i := range r.receipts {
		receipts = append(receipts, &r.receipts[i])
	}
	return receipts, nil
}
