package sqldb

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/cwaltman/replen/pkg/domain/entities"
	"github.com/cwaltman/replen/pkg/domain/repositories"
)

// ForecastRepository implements repositories.ForecastRepository over SQL
type ForecastRepository struct {
	db *sqlx.DB
}

// Verify interface compliance
var _ repositories.ForecastRepository = (*ForecastRepository)(nil)

type forecastRow struct {
	SKUCode  string  `db:"sku_code"`
	Week     int     `db:"week"`
	Quantity float64 `db:"quantity"`
}

// GetForecasts returns all forecast rows for a SKU ordered by week
func (r *ForecastRepository) GetForecasts(ctx context.Context, code entities.SKUCode) ([]*entities.DemandForecast, error) {
	var rows []forecastRow
	query := r.db.Rebind(`SELECT sku_code, week, quantity FROM demand_forecasts WHERE sku_code = ? ORDER BY week`)
	if err := r.db.SelectContext(ctx, &rows, query, string(code)); err != nil {
		return nil, fmt.Errorf("failed to get forecasts for %s: %w", code, err)
	}
	return forecastsFromRows(rows), nil
}

// GetAllForecasts returns every stored forecast row
func (r *ForecastRepository) GetAllForecasts(ctx context.Context) ([]*entities.DemandForecast, error) {
	var rows []forecastRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT sku_code, week, quantity FROM demand_forecasts ORDER BY sku_code, week`)
	if err != nil {
		return nil, fmt.Errorf("failed to list forecasts: %w", err)
	}
	return forecastsFromRows(rows), nil
}

// LoadForecasts upserts forecast rows keyed by SKU and week
func (r *ForecastRepository) LoadForecasts(ctx context.Context, forecasts []*entities.DemandForecast) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin forecast load: %w", err)
	}
	defer tx.Rollback()

	query := tx.Rebind(`INSERT INTO demand_forecasts (sku_code, week, quantity)
		VALUES (?, ?, ?)
		ON CONFLICT (sku_code, week) DO UPDATE SET quantity = EXCLUDED.quantity`)

	for _, forecast := range forecasts {
		if _, err := tx.ExecContext(ctx, query, string(forecast.SKUCode), forecast.Week, forecast.Quantity); err != nil {
			return fmt.Errorf("failed to load forecast for %s week %d: %w", forecast.SKUCode, forecast.Week, err)
		}
	}

	return tx.Commit()
}

func forecastsFromRows(rows []forecastRow) []*entities.DemandForecast {
	forecasts := make([]*entities.DemandForecast, 0, len(rows))
	for _, row := range rows {
		forecasts = append(forecasts, &entities.DemandForecast{
			SKUCode:  entities.SKUCode(row.SKUCode),
			Week:     row.Week,
			Quantity: row.Quantity,
		})
	}
	return forecasts
}
