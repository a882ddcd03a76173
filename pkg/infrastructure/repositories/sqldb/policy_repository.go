package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/cwaltman/replen/pkg/domain/entities"
	"github.com/cwaltman/replen/pkg/domain/repositories"
)

// PolicyRepository implements repositories.PolicyRepository over SQL
type PolicyRepository struct {
	db *sqlx.DB
}

// Verify interface compliance
var _ repositories.PolicyRepository = (*PolicyRepository)(nil)

type policyRow struct {
	MatrixCell            string  `db:"matrix_cell"`
	ServiceLevel          float64 `db:"service_level"`
	TargetWOH             float64 `db:"target_woh"`
	ReviewFrequency       string  `db:"review_frequency"`
	ReplenishmentMethod   string  `db:"replenishment_method"`
	SafetyStockMultiplier float64 `db:"safety_stock_multiplier"`
	Notes                 string  `db:"notes"`
}

func (r policyRow) toEntity() *entities.ClassificationPolicy {
	return &entities.ClassificationPolicy{
		MatrixCell:            entities.ParseMatrixCell(r.MatrixCell),
		ServiceLevel:          r.ServiceLevel,
		TargetWOH:             r.TargetWOH,
		ReviewFrequency:       entities.ParseReviewFrequency(r.ReviewFrequency),
		Method:                entities.ParseReplenishmentMethod(r.ReplenishmentMethod),
		SafetyStockMultiplier: r.SafetyStockMultiplier,
		Notes:                 r.Notes,
	}
}

// GetPolicy returns the active policy for a matrix cell
func (r *PolicyRepository) GetPolicy(ctx context.Context, cell entities.MatrixCell) (*entities.ClassificationPolicy, error) {
	var row policyRow
	query := r.db.Rebind(`SELECT matrix_cell, service_level, target_woh, review_frequency, replenishment_method, safety_stock_multiplier, notes
		FROM classification_policies WHERE matrix_cell = ?`)
	if err := r.db.GetContext(ctx, &row, query, cell.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no policy registered for cell %s", cell)
		}
		return nil, fmt.Errorf("failed to get policy for %s: %w", cell, err)
	}
	return row.toEntity(), nil
}

// GetAllPolicies returns every registered policy in grid order. The two
// letter cell labels happen to collate in grid order.
func (r *PolicyRepository) GetAllPolicies(ctx context.Context) ([]*entities.ClassificationPolicy, error) {
	var rows []policyRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT matrix_cell, service_level, target_woh, review_frequency, replenishment_method, safety_stock_multiplier, notes
		FROM classification_policies ORDER BY matrix_cell`)
	if err != nil {
		return nil, fmt.Errorf("failed to list policies: %w", err)
	}

	policies := make([]*entities.ClassificationPolicy, 0, len(rows))
	for _, row := range rows {
		policies = append(policies, row.toEntity())
	}
	return policies, nil
}

// UpsertPolicy registers or replaces the policy for a cell
func (r *PolicyRepository) UpsertPolicy(ctx context.Context, policy *entities.ClassificationPolicy) error {
	if policy.MatrixCell == entities.CellUnknown {
		return fmt.Errorf("cannot register a policy for an unknown cell")
	}

	query := r.db.Rebind(`INSERT INTO classification_policies
		(matrix_cell, service_level, target_woh, review_frequency, replenishment_method, safety_stock_multiplier, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (matrix_cell) DO UPDATE SET
			service_level = EXCLUDED.service_level,
			target_woh = EXCLUDED.target_woh,
			review_frequency = EXCLUDED.review_frequency,
			replenishment_method = EXCLUDED.replenishment_method,
			safety_stock_multiplier = EXCLUDED.safety_stock_multiplier,
			notes = EXCLUDED.notes`)

	_, err := r.db.ExecContext(ctx, query,
		policy.MatrixCell.String(),
		policy.ServiceLevel,
		policy.TargetWOH,
		policy.ReviewFrequency.String(),
		policy.Method.String(),
		policy.SafetyStockMultiplier,
		policy.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert policy for %s: %w", policy.MatrixCell, err)
	}
	return nil
}
