package planning

import (
	"github.com/cwaltman/replen/pkg/domain/entities"
)

// ComputeProjection runs the week-by-week forward simulation for a single
// SKU. It is a pure function: identical inputs always produce the identical
// ordered sequence of exactly horizonWeeks rows.
//
// Weeks absent from forecastByWeek simulate as zero demand and weeks absent
// from inTransitByWeek as zero receipts. Ending inventory is allowed to go
// negative; a projected stockout is a state, not an error.
func ComputeProjection(
	currentInventory float64,
	currentWeek int,
	forecastByWeek map[int]float64,
	inTransitByWeek map[int]float64,
	horizonWeeks int,
) ([]entities.ProjectionRow, error) {
	if horizonWeeks <= 0 {
		return nil, &InvalidHorizonError{Horizon: horizonWeeks}
	}

	rows := make([]entities.ProjectionRow, 0, horizonWeeks)
	beginning := currentInventory

	for i := 0; i < horizonWeeks; i++ {
		week := currentWeek + i
		consumption := forecastByWeek[week]
		receipts := inTransitByWeek[week]
		ending := beginning + receipts - consumption

		rows = append(rows, entities.ProjectionRow{
			Week:         week,
			Beginning:    beginning,
			Consumption:  consumption,
			Receipts:     receipts,
			Ending:       ending,
			WeeksOfCover: weeksOfCover(ending, forecastByWeek, week, currentWeek+horizonWeeks),
		})

		beginning = ending
	}

	return rows, nil
}

// weeksOfCover expresses ending inventory as weeks of the average forecast
// over the remaining horizon [week, endWeek). When the remaining forecast
// averages zero the sentinel stands in for infinite cover.
func weeksOfCover(ending float64, forecastByWeek map[int]float64, week, endWeek int) float64 {
	remaining := endWeek - week
	if remaining <= 0 {
		return entities.WeeksOfCoverSentinel
	}

	var total float64
	for w := week; w < endWeek; w++ {
		total += forecastByWeek[w]
	}

	avg := total / float64(remaining)
	if avg <= 0 {
		return entities.WeeksOfCoverSentinel
	}
	return ending / avg
}

// AverageWeeklyForecast averages the forecast over the full horizon
// [currentWeek, currentWeek+horizonWeeks). Weeks without forecast coverage
// count as zero demand, matching the simulation.
func AverageWeeklyForecast(forecastByWeek map[int]float64, currentWeek, horizonWeeks int) float64 {
	if horizonWeeks <= 0 {
		return 0
	}

	var total float64
	for w := currentWeek; w < currentWeek+horizonWeeks; w++ {
		total += forecastByWeek[w]
	}
	return total / float64(horizonWeeks)
}
