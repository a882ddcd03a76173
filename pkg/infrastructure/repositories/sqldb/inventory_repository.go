package sqldb

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/cwaltman/replen/pkg/domain/entities"
	"github.com/cwaltman/replen/pkg/domain/repositories"
)

// InventoryRepository implements repositories.InventoryRepository over SQL
type InventoryRepository struct {
	db *sqlx.DB
}

// Verify interface compliance
var _ repositories.InventoryRepository = (*InventoryRepository)(nil)

type snapshotRow struct {
	SKUCode   string  `db:"sku_code"`
	Week      int     `db:"week"`
	QtyOnHand float64 `db:"qty_on_hand"`
}

type receiptRow struct {
	SKUCode     string  `db:"sku_code"`
	ArrivalWeek int     `db:"arrival_week"`
	Quantity    float64 `db:"quantity"`
}

// GetSnapshots returns all snapshots for a SKU ordered by week
func (r *InventoryRepository) GetSnapshots(ctx context.Context, code entities.SKUCode) ([]*entities.InventorySnapshot, error) {
	var rows []snapshotRow
	query := r.db.Rebind(`SELECT sku_code, week, qty_on_hand FROM inventory_snapshots WHERE sku_code = ? ORDER BY week`)
	if err := r.db.SelectContext(ctx, &rows, query, string(code)); err != nil {
		return nil, fmt.Errorf("failed to get snapshots for %s: %w", code, err)
	}
	return snapshotsFromRows(rows), nil
}

// GetAllSnapshots returns every stored snapshot
func (r *InventoryRepository) GetAllSnapshots(ctx context.Context) ([]*entities.InventorySnapshot, error) {
	var rows []snapshotRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT sku_code, week, qty_on_hand FROM inventory_snapshots ORDER BY sku_code, week`)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return snapshotsFromRows(rows), nil
}

// LoadSnapshots upserts quantity observations keyed by SKU and week
func (r *InventoryRepository) LoadSnapshots(ctx context.Context, snapshots []*entities.InventorySnapshot) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin snapshot load: %w", err)
	}
	defer tx.Rollback()

	query := tx.Rebind(`INSERT INTO inventory_snapshots (sku_code, week, qty_on_hand)
		VALUES (?, ?, ?)
		ON CONFLICT (sku_code, week) DO UPDATE SET qty_on_hand = EXCLUDED.qty_on_hand`)

	for _, snap := range snapshots {
		if _, err := tx.ExecContext(ctx, query, string(snap.SKUCode), snap.Week, snap.QtyOnHand); err != nil {
			return fmt.Errorf("failed to load snapshot for %s week %d: %w", snap.SKUCode, snap.Week, err)
		}
	}

	return tx.Commit()
}

// GetInTransit returns all scheduled receipts for a SKU ordered by arrival
func (r *InventoryRepository) GetInTransit(ctx context.Context, code entities.SKUCode) ([]*entities.InTransitReceipt, error) {
	var rows []receiptRow
	query := r.db.Rebind(`SELECT sku_code, arrival_week, quantity FROM in_transit_receipts WHERE sku_code = ? ORDER BY arrival_week`)
	if err := r.db.SelectContext(ctx, &rows, query, string(code)); err != nil {
		return nil, fmt.Errorf("failed to get in-transit for %s: %w", code, err)
	}
	return receiptsFromRows(rows), nil
}

// GetAllInTransit returns the full in-transit schedule
func (r *InventoryRepository) GetAllInTransit(ctx context.Context) ([]*entities.InTransitReceipt, error) {
	var rows []receiptRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT sku_code, arrival_week, quantity FROM in_transit_receipts ORDER BY sku_code, arrival_week`)
	if err != nil {
		return nil, fmt.Errorf("failed to list in-transit receipts: %w", err)
	}
	return receiptsFromRows(rows), nil
}

// LoadInTransit appends scheduled receipts. Receipts are kept as separate
// rows even for the same SKU and week; the simulator sums them.
func (r *InventoryRepository) LoadInTransit(ctx context.Context, receipts []*entities.InTransitReceipt) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin in-transit load: %w", err)
	}
	defer tx.Rollback()

	query := tx.Rebind(`INSERT INTO in_transit_receipts (sku_code, arrival_week, quantity) VALUES (?, ?, ?)`)

	for _, receipt := range receipts {
		if _, err := tx.ExecContext(ctx, query, string(receipt.SKUCode), receipt.ArrivalWeek, receipt.Quantity); err != nil {
			return fmt.Errorf("failed to load receipt for %s week %d: %w", receipt.SKUCode, receipt.ArrivalWeek, err)
		}
	}

	return tx.Commit()
}

func snapshotsFromRows(rows []snapshotRow) []*entities.InventorySnapshot {
	snapshots := make([]*entities.InventorySnapshot, 0, len(rows))
	for _, row := range rows {
		snapshots = append(snapshots, &entities.InventorySnapshot{
			SKUCode:   entities.SKUCode(row.SKUCode),
			Week:      row.Week,
			QtyOnHand: row.QtyOnHand,
		})
	}
	return snapshots
}

func receiptsFromRows(rows []receiptRow) []*entities.InTransitReceipt {
	receipts := make([]*entities.InTransitReceipt, 0, len(rows))
	for _, row := range rows {
		receipts = append(receipts, &entities.InTransitReceipt{
			SKUCode:     entities.SKUCode(row.SKUCode),
			ArrivalWeek: row.ArrivalWeek,
			Quantity:    row.Quantity,
		})
	}
	return receipts
}
