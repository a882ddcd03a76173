package memory

import (
	"context"

	"github.com/cwaltman/replen/pkg/domain/entities"
	"github.com/cwaltman/replen/pkg/domain/repositories"
)

// ForecastRepository provides in-memory demand forecast storage
type ForecastRepository struct {
	forecasts []entities.DemandForecast
	bySKU     map[entities.SKUCode][]int
}

// NewForecastRepository creates a new in-memory forecast repository
func NewForecastRepository() *ForecastRepository {
	return &ForecastRepository{
		bySKU: make(map[entities.SKUCode][]int),
	}
}

// Verify interface compliance
var _ repositories.ForecastRepository = (*ForecastRepository)(nil)

// LoadForecasts loads demand forecasts into the repository
func (r *ForecastRepository) LoadForecasts(_ context.Context, forecasts []*entities.DemandForecast) error {
	for _, forecast := range forecasts {
		r.AddForecast(*forecast)
	}
	return nil
}

// AddForecast adds a single forecast row
func (r *ForecastRepository) AddForecast(forecast entities.DemandForecast) {
	r.bySKU[forecast.SKUCode] = append(r.bySKU[forecast.SKUCode], len(r.forecasts))
	r.forecasts = append(r.forecasts, forecast)
}

// GetForecasts returns all forecast rows for a SKU
func (r *ForecastRepository) GetForecasts(_ context.Context, code entities.SKUCode) ([]*entities.DemandForecast, error) {
	indexes := r.bySKU[code]
	forecasts := make([]*entities.DemandForecast, 0, len(indexes))
	for _, idx := range indexes {
		forecasts = append(forecasts, &r.forecasts[idx])
	}
	return forecasts, nil
}

// GetAllForecasts returns every forecast row in load order
func (r *ForecastRepository) GetAllForecasts(_ context.Context) ([]*entities.DemandForecast, error) {
	forecasts := make([]*entities.DemandForecast, 0, len(r.forecasts))
	for i := range r.forecasts {
		forecasts = append(forecasts, &r.forecasts[i])
	}
	return forecasts, nil
}
