package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/cwaltman/replen/pkg/domain/entities"
	"github.com/cwaltman/replen/pkg/domain/repositories"
)

// SKURepository implements repositories.SKURepository over SQL
type SKURepository struct {
	db *sqlx.DB
}

// Verify interface compliance
var _ repositories.SKURepository = (*SKURepository)(nil)

type skuRow struct {
	SKUCode       string         `db:"sku_code"`
	Description   string         `db:"description"`
	Category      string         `db:"category"`
	SupplierCode  string         `db:"supplier_code"`
	LeadTimeWeeks int            `db:"lead_time_weeks"`
	MOQ           float64        `db:"moq"`
	UnitCost      sql.NullString `db:"unit_cost"`
	MatrixCell    string         `db:"matrix_cell"`
}

func (r skuRow) toEntity() (*entities.SKU, error) {
	var unitCost decimal.NullDecimal
	if r.UnitCost.Valid {
		parsed, err := decimal.NewFromString(r.UnitCost.String)
		if err != nil {
			return nil, fmt.Errorf("corrupt unit_cost for %s: %w", r.SKUCode, err)
		}
		unitCost = decimal.NullDecimal{Valid: true, Decimal: parsed}
	}

	return &entities.SKU{
		SKUCode:       entities.SKUCode(r.SKUCode),
		Description:   r.Description,
		Category:      r.Category,
		SupplierCode:  r.SupplierCode,
		LeadTimeWeeks: r.LeadTimeWeeks,
		MOQ:           r.MOQ,
		UnitCost:      unitCost,
		MatrixCell:    entities.ParseMatrixCell(r.MatrixCell),
	}, nil
}

// GetSKU returns the master record for a SKU code
func (r *SKURepository) GetSKU(ctx context.Context, code entities.SKUCode) (*entities.SKU, error) {
	var row skuRow
	query := r.db.Rebind(`SELECT sku_code, description, category, supplier_code, lead_time_weeks, moq, unit_cost, matrix_cell
		FROM skus WHERE sku_code = ?`)
	if err := r.db.GetContext(ctx, &row, query, string(code)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("sku not found: %s", code)
		}
		return nil, fmt.Errorf("failed to get sku %s: %w", code, err)
	}
	return row.toEntity()
}

// GetAllSKUs returns all SKU master records ordered by code
func (r *SKURepository) GetAllSKUs(ctx context.Context) ([]*entities.SKU, error) {
	var rows []skuRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT sku_code, description, category, supplier_code, lead_time_weeks, moq, unit_cost, matrix_cell
		FROM skus ORDER BY sku_code`)
	if err != nil {
		return nil, fmt.Errorf("failed to list skus: %w", err)
	}

	skus := make([]*entities.SKU, 0, len(rows))
	for _, row := range rows {
		sku, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		skus = append(skus, sku)
	}
	return skus, nil
}

// LoadSKUs replaces or inserts the given master records
func (r *SKURepository) LoadSKUs(ctx context.Context, skus []*entities.SKU) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin sku load: %w", err)
	}
	defer tx.Rollback()

	query := tx.Rebind(`INSERT INTO skus
		(sku_code, description, category, supplier_code, lead_time_weeks, moq, unit_cost, matrix_cell)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (sku_code) DO UPDATE SET
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			supplier_code = EXCLUDED.supplier_code,
			lead_time_weeks = EXCLUDED.lead_time_weeks,
			moq = EXCLUDED.moq,
			unit_cost = EXCLUDED.unit_cost,
			matrix_cell = EXCLUDED.matrix_cell`)

	for _, sku := range skus {
		var unitCost sql.NullString
		if sku.UnitCost.Valid {
			unitCost = sql.NullString{Valid: true, String: sku.UnitCost.Decimal.String()}
		}

		_, err := tx.ExecContext(ctx, query,
			string(sku.SKUCode),
			sku.Description,
			sku.Category,
			sku.SupplierCode,
			sku.LeadTimeWeeks,
			sku.MOQ,
			unitCost,
			sku.MatrixCell.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to load sku %s: %w", sku.SKUCode, err)
		}
	}

	return tx.Commit()
}
