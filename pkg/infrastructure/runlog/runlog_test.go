package runlog

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/cwaltman/replen/pkg/application/dto"
	"github.com/cwaltman/replen/pkg/domain/entities"
)

func resultWithWeek(week int) *dto.PlanningResult {
	return &dto.PlanningResult{
		RunID:        uuid.New(),
		GeneratedAt:  time.Now(),
		CurrentWeek:  week,
		HorizonWeeks: 20,
		Projections:  make([]dto.ProjectionResult, 3),
		Suggestions:  make([]entities.ReplenishmentSuggestion, 2),
		Warnings:     []dto.Warning{{Kind: dto.WarnMissingForecast, SKUCode: "X"}},
	}
}

func TestStore_RecordsNewestFirst(t *testing.T) {
	store := NewStore(10)
	store.Record(resultWithWeek(1))
	store.Record(resultWithWeek(2))
	store.Record(resultWithWeek(3))

	records := store.Recent(-1)
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	if records[0].CurrentWeek != 3 || records[2].CurrentWeek != 1 {
		t.Errorf("Expected newest first, got weeks %d..%d", records[0].CurrentWeek, records[2].CurrentWeek)
	}
	if records[0].ProjectedSKUs != 3 || records[0].Suggestions != 2 || records[0].Warnings != 1 {
		t.Errorf("Unexpected summary counts: %+v", records[0])
	}
}

func TestStore_EvictsAtCapacity(t *testing.T) {
	store := NewStore(2)
	for week := 1; week <= 5; week++ {
		store.Record(resultWithWeek(week))
	}

	records := store.Recent(-1)
	if len(records) != 2 {
		t.Fatalf("Expected capacity 2, got %d", len(records))
	}
	if records[0].CurrentWeek != 5 || records[1].CurrentWeek != 4 {
		t.Errorf("Expected the two newest runs, got %+v", records)
	}
}

func TestStore_RecentLimit(t *testing.T) {
	store := NewStore(10)
	for week := 1; week <= 4; week++ {
		store.Record(resultWithWeek(week))
	}

	if got := len(store.Recent(2)); got != 2 {
		t.Errorf("Expected 2 records, got %d", got)
	}
	if got := len(store.Recent(100)); got != 4 {
		t.Errorf("Expected all 4 records, got %d", got)
	}
}
