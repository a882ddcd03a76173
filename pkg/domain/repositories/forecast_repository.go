package repositories

import (
	"context"

	"github.com/cwaltman/replen/pkg/domain/entities"
)

// ForecastRepository provides access to externally supplied demand forecasts
type ForecastRepository interface {
	GetForecasts(ctx context.Context, code entities.SKUCode) ([]*entities.DemandForecast, error)
	GetAllForecasts(ctx context.Context) ([]*entities.DemandForecast, error)
	LoadForecasts(ctx context.Context, forecasts []*entities.DemandForecast) error
}
