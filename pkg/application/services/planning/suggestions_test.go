package planning

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/cwaltman/replen/pkg/application/dto"
	"github.com/cwaltman/replen/pkg/domain/entities"
)

func autoPolicy(targetWOH float64) entities.ClassificationPolicy {
	return entities.ClassificationPolicy{
		MatrixCell:            entities.CellAX,
		ServiceLevel:          0.97,
		TargetWOH:             targetWOH,
		ReviewFrequency:       entities.ReviewWeekly,
		Method:                entities.MethodAuto,
		SafetyStockMultiplier: 1.0,
	}
}

func testSKU(code entities.SKUCode, supplier string, leadTimeWeeks int, moq float64, unitCost string) *entities.SKU {
	cost := decimal.NullDecimal{}
	if unitCost != "" {
		cost = decimal.NullDecimal{Valid: true, Decimal: decimal.RequireFromString(unitCost)}
	}
	return &entities.SKU{
		SKUCode:       code,
		SupplierCode:  supplier,
		LeadTimeWeeks: leadTimeWeeks,
		MOQ:           moq,
		UnitCost:      cost,
		MatrixCell:    entities.CellAX,
	}
}

func projectionFor(
	t *testing.T,
	sku *entities.SKU,
	policy entities.ClassificationPolicy,
	inventory float64,
	currentWeek int,
	forecast, inTransit map[int]float64,
	horizon int,
) dto.ProjectionResult {
	t.Helper()

	rows, err := ComputeProjection(inventory, currentWeek, forecast, inTransit, horizon)
	if err != nil {
		t.Fatalf("ComputeProjection failed: %v", err)
	}

	return dto.ProjectionResult{
		SKUCode:           sku.SKUCode,
		SupplierCode:      sku.SupplierCode,
		Policy:            policy,
		AvgWeeklyForecast: AverageWeeklyForecast(forecast, currentWeek, horizon),
		Rows:              rows,
	}
}

func constantForecast(currentWeek, horizon int, perWeek float64) map[int]float64 {
	forecast := make(map[int]float64, horizon)
	for w := currentWeek; w < currentWeek+horizon; w++ {
		forecast[w] = perWeek
	}
	return forecast
}

func TestGenerateSuggestions_HealthySKUEmitsNothing(t *testing.T) {
	sku := testSKU("HEALTHY", "AMC", 2, 1, "10.00")
	forecast := constantForecast(0, 5, 20)

	// Floor is 2 weeks of 20/week = 40; inventory never drops below 400.
	proj := projectionFor(t, sku, autoPolicy(2), 500, 0, forecast, nil, 5)

	suggestions, warnings := GenerateSuggestions(
		[]dto.ProjectionResult{proj}, 0,
		map[entities.SKUCode]*entities.SKU{sku.SKUCode: sku},
	)

	if len(suggestions) != 0 {
		t.Errorf("Expected no suggestions for healthy SKU, got %d", len(suggestions))
	}
	if len(warnings) != 0 {
		t.Errorf("Expected no warnings, got %d", len(warnings))
	}
}

func TestGenerateSuggestions_ZeroFloorNeverCritical(t *testing.T) {
	// 100 on hand draining 20/week reaches exactly zero in the final week.
	// Against a zero floor that is not an actionable shortfall.
	sku := testSKU("DRAIN", "AMC", 1, 1, "")
	forecast := constantForecast(0, 5, 20)
	proj := projectionFor(t, sku, autoPolicy(0), 100, 0, forecast, nil, 5)

	suggestions, _ := GenerateSuggestions(
		[]dto.ProjectionResult{proj}, 0,
		map[entities.SKUCode]*entities.SKU{sku.SKUCode: sku},
	)

	for _, s := range suggestions {
		if s.Urgency == entities.UrgencyCritical {
			t.Errorf("Expected no CRITICAL suggestion against a zero floor, got one for %s", s.SKUCode)
		}
	}
}

func TestGenerateSuggestions_FloorBreachIsWarning(t *testing.T) {
	// Same drain against a floor of 40: the projection crosses the floor
	// mid-horizon, far enough out to stay a WARNING.
	sku := testSKU("DRAIN", "AMC", 1, 1, "2.50")
	forecast := constantForecast(0, 5, 20)
	proj := projectionFor(t, sku, autoPolicy(2), 100, 0, forecast, nil, 5)

	suggestions, _ := GenerateSuggestions(
		[]dto.ProjectionResult{proj}, 0,
		map[entities.SKUCode]*entities.SKU{sku.SKUCode: sku},
	)

	if len(suggestions) != 1 {
		t.Fatalf("Expected one suggestion, got %d", len(suggestions))
	}
	s := suggestions[0]
	if s.Urgency != entities.UrgencyWarning {
		t.Errorf("Expected WARNING, got %s", s.Urgency)
	}
	if s.BreachWeek != 3 {
		t.Errorf("Expected actionable breach at week 3, got %d", s.BreachWeek)
	}
	if !s.EstimatedCost.Valid {
		t.Error("Expected estimated cost to be set")
	}
}

func TestGenerateSuggestions_ImmediateStockout(t *testing.T) {
	// 10 on hand, 15/week demand: the first week already ends at -5.
	// Lead time 2 weeks has elapsed, MOQ 50.
	sku := testSKU("SHORT", "HX", 2, 50, "4.00")
	currentWeek := 5
	forecast := constantForecast(currentWeek, 6, 15)
	proj := projectionFor(t, sku, autoPolicy(0), 10, currentWeek, forecast, nil, 6)

	suggestions, _ := GenerateSuggestions(
		[]dto.ProjectionResult{proj}, currentWeek,
		map[entities.SKUCode]*entities.SKU{sku.SKUCode: sku},
	)

	if len(suggestions) != 1 {
		t.Fatalf("Expected one suggestion, got %d", len(suggestions))
	}
	s := suggestions[0]

	if s.Urgency != entities.UrgencyCritical {
		t.Errorf("Expected CRITICAL, got %s", s.Urgency)
	}
	if s.SuggestedQty != 50 {
		t.Errorf("Expected quantity rounded up to MOQ 50, got %g", s.SuggestedQty)
	}
	if s.OrderWeek != currentWeek {
		t.Errorf("Expected order week clamped to current week %d, got %d", currentWeek, s.OrderWeek)
	}
	if !s.TimeConstrained {
		t.Error("Expected clamped suggestion to be flagged time-constrained")
	}
	if s.ArrivalWeek != currentWeek+sku.LeadTimeWeeks {
		t.Errorf("Expected arrival week %d, got %d", currentWeek+sku.LeadTimeWeeks, s.ArrivalWeek)
	}
	wantCost := decimal.RequireFromString("200.00")
	if !s.EstimatedCost.Valid || !s.EstimatedCost.Decimal.Equal(wantCost) {
		t.Errorf("Expected estimated cost %s, got %v", wantCost, s.EstimatedCost)
	}
}

func TestGenerateSuggestions_MOQRounding(t *testing.T) {
	tests := []struct {
		name string
		moq  float64
	}{
		{name: "moq_25", moq: 25},
		{name: "moq_12", moq: 12},
		{name: "moq_500", moq: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sku := testSKU("MOQ", "ZhongXing", 0, tt.moq, "")
			forecast := constantForecast(0, 8, 17)
			proj := projectionFor(t, sku, autoPolicy(3), 40, 0, forecast, nil, 8)

			suggestions, _ := GenerateSuggestions(
				[]dto.ProjectionResult{proj}, 0,
				map[entities.SKUCode]*entities.SKU{sku.SKUCode: sku},
			)

			if len(suggestions) != 1 {
				t.Fatalf("Expected one suggestion, got %d", len(suggestions))
			}
			qty := suggestions[0].SuggestedQty
			if qty <= 0 || math.Mod(qty, tt.moq) != 0 {
				t.Errorf("Expected quantity to be a positive multiple of %g, got %g", tt.moq, qty)
			}
		})
	}
}

func TestGenerateSuggestions_NoRoundingForUnitMOQ(t *testing.T) {
	sku := testSKU("UNIT", "TianJin", 0, 1, "")
	forecast := constantForecast(0, 4, 7.5)
	proj := projectionFor(t, sku, autoPolicy(2), 10, 0, forecast, nil, 4)

	suggestions, _ := GenerateSuggestions(
		[]dto.ProjectionResult{proj}, 0,
		map[entities.SKUCode]*entities.SKU{sku.SKUCode: sku},
	)

	if len(suggestions) != 1 {
		t.Fatalf("Expected one suggestion, got %d", len(suggestions))
	}
	// Floor 15 minus the first-week ending of 2.5: exact, unrounded need.
	if qty := suggestions[0].SuggestedQty; qty != 12.5 {
		t.Errorf("Expected exact quantity 12.5 with unit MOQ, got %g", qty)
	}
}

func TestGenerateSuggestions_ScheduledReceiptDefersOrder(t *testing.T) {
	// The first-week shortfall is covered by a receipt already in transit;
	// the actionable breach is the later drift back under the floor.
	sku := testSKU("RECOVER", "WINSCHEM", 1, 1, "")
	forecast := constantForecast(0, 10, 10)
	inTransit := map[int]float64{1: 100}
	proj := projectionFor(t, sku, autoPolicy(1), 5, 0, forecast, inTransit, 10)

	suggestions, _ := GenerateSuggestions(
		[]dto.ProjectionResult{proj}, 0,
		map[entities.SKUCode]*entities.SKU{sku.SKUCode: sku},
	)

	if len(suggestions) != 1 {
		t.Fatalf("Expected one suggestion, got %d", len(suggestions))
	}
	s := suggestions[0]
	if s.BreachWeek <= 1 {
		t.Errorf("Expected breach after the scheduled receipt, got week %d", s.BreachWeek)
	}
	// Week 0 still projects negative, so the run stays CRITICAL.
	if s.Urgency != entities.UrgencyCritical {
		t.Errorf("Expected CRITICAL from near-term negative inventory, got %s", s.Urgency)
	}
}

func TestGenerateSuggestions_ManualPolicyRequiresReview(t *testing.T) {
	policy := autoPolicy(2)
	policy.Method = entities.MethodManual

	sku := testSKU("MANUAL", "Nuode", 1, 1, "")
	forecast := constantForecast(0, 5, 20)
	proj := projectionFor(t, sku, policy, 50, 0, forecast, nil, 5)

	suggestions, _ := GenerateSuggestions(
		[]dto.ProjectionResult{proj}, 0,
		map[entities.SKUCode]*entities.SKU{sku.SKUCode: sku},
	)

	if len(suggestions) != 1 {
		t.Fatalf("Expected one suggestion, got %d", len(suggestions))
	}
	if !suggestions[0].RequiresReview {
		t.Error("Expected manual-method suggestion to require review")
	}
}

func TestGenerateSuggestions_MissingMasterSkipsSKU(t *testing.T) {
	known := testSKU("KNOWN", "AMC", 1, 1, "")
	forecast := constantForecast(0, 5, 20)

	projections := []dto.ProjectionResult{
		projectionFor(t, known, autoPolicy(2), 10, 0, forecast, nil, 5),
		{SKUCode: "GHOST", Rows: []entities.ProjectionRow{{Week: 0, Ending: -10}}},
	}

	suggestions, warnings := GenerateSuggestions(
		projections, 0,
		map[entities.SKUCode]*entities.SKU{known.SKUCode: known},
	)

	for _, s := range suggestions {
		if s.SKUCode == "GHOST" {
			t.Error("Expected GHOST to be skipped")
		}
	}
	found := false
	for _, w := range warnings {
		if w.Kind == dto.WarnSKUSkipped && w.SKUCode == "GHOST" {
			found = true
		}
	}
	if !found {
		t.Error("Expected a skip warning for GHOST")
	}
	if len(suggestions) != 1 {
		t.Errorf("Expected the batch to continue for the known SKU, got %d suggestions", len(suggestions))
	}
}

func TestGenerateSuggestions_UrgencyOrdering(t *testing.T) {
	forecast := constantForecast(0, 6, 10)

	deep := testSKU("DEEP", "AMC", 0, 1, "")
	shallow := testSKU("SHALLOW", "AMC", 0, 1, "")
	later := testSKU("LATER", "AMC", 0, 1, "")

	projections := []dto.ProjectionResult{
		projectionFor(t, later, autoPolicy(2), 55, 0, forecast, nil, 6),
		projectionFor(t, shallow, autoPolicy(0), 8, 0, forecast, nil, 6),
		projectionFor(t, deep, autoPolicy(0), -40, 0, forecast, nil, 6),
	}

	suggestions, _ := GenerateSuggestions(projections, 0, map[entities.SKUCode]*entities.SKU{
		deep.SKUCode:    deep,
		shallow.SKUCode: shallow,
		later.SKUCode:   later,
	})

	if len(suggestions) != 3 {
		t.Fatalf("Expected three suggestions, got %d", len(suggestions))
	}

	wantOrder := []entities.SKUCode{"DEEP", "SHALLOW", "LATER"}
	for i, want := range wantOrder {
		if suggestions[i].SKUCode != want {
			t.Errorf("Position %d: expected %s, got %s", i, want, suggestions[i].SKUCode)
		}
	}
	if suggestions[0].Urgency != entities.UrgencyCritical || suggestions[1].Urgency != entities.UrgencyCritical {
		t.Error("Expected the two near-term stockouts to rank CRITICAL")
	}
	if suggestions[2].Urgency != entities.UrgencyWarning {
		t.Errorf("Expected the later breach to rank WARNING, got %s", suggestions[2].Urgency)
	}
}

func TestGenerateSuggestions_Deterministic(t *testing.T) {
	sku := testSKU("DET", "AMC", 2, 10, "3.00")
	forecast := constantForecast(0, 8, 9)
	proj := projectionFor(t, sku, autoPolicy(2), 30, 0, forecast, nil, 8)
	masters := map[entities.SKUCode]*entities.SKU{sku.SKUCode: sku}

	first, _ := GenerateSuggestions([]dto.ProjectionResult{proj}, 0, masters)
	second, _ := GenerateSuggestions([]dto.ProjectionResult{proj}, 0, masters)

	if len(first) != len(second) {
		t.Fatalf("Run lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].SKUCode != second[i].SKUCode || first[i].SuggestedQty != second[i].SuggestedQty ||
			first[i].OrderWeek != second[i].OrderWeek || first[i].Urgency != second[i].Urgency {
			t.Errorf("Suggestion %d differs between identical runs", i)
		}
	}
}
