package csv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cwaltman/replen/pkg/domain/entities"
	"github.com/cwaltman/replen/pkg/domain/services"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadSKUs(t *testing.T) {
	path := writeFile(t, "skus.csv",
		"sku_code,description,category,supplier_code,lead_time_weeks,moq,unit_cost,matrix_cell\n"+
			"PLT-100,Steel plate,raw,AMC,6,500,12.50,AX\n"+
			"ROD-300,Threaded rod,raw,HX,4,1,,\n")

	skus, err := NewLoader().LoadSKUs(path)
	if err != nil {
		t.Fatalf("LoadSKUs failed: %v", err)
	}
	if len(skus) != 2 {
		t.Fatalf("Expected 2 SKUs, got %d", len(skus))
	}

	plt := skus[0]
	if plt.SKUCode != "PLT-100" || plt.LeadTimeWeeks != 6 || plt.MOQ != 500 {
		t.Errorf("Unexpected PLT-100 fields: %+v", plt)
	}
	if !plt.UnitCost.Valid || plt.UnitCost.Decimal.String() != "12.5" {
		t.Errorf("Expected cost 12.5, got %v", plt.UnitCost)
	}
	if plt.MatrixCell != entities.CellAX {
		t.Errorf("Expected AX, got %s", plt.MatrixCell)
	}

	// Empty cost and cell columns mean unknown, not zero
	rod := skus[1]
	if rod.UnitCost.Valid {
		t.Errorf("Expected unknown cost, got %v", rod.UnitCost)
	}
	if rod.MatrixCell != entities.CellUnknown {
		t.Errorf("Expected unclassified cell, got %s", rod.MatrixCell)
	}
}

func TestLoadSKUs_HeaderMismatch(t *testing.T) {
	path := writeFile(t, "skus.csv",
		"sku,desc\nPLT-100,Steel plate\n")

	_, err := NewLoader().LoadSKUs(path)
	if err == nil || !strings.Contains(err.Error(), "header mismatch") {
		t.Errorf("Expected header mismatch error, got %v", err)
	}
}

func TestLoadPolicies(t *testing.T) {
	path := writeFile(t, "policies.csv",
		"matrix_cell,service_level,target_woh,review_frequency,replenishment_method,safety_stock_multiplier,notes\n"+
			"AX,0.97,4,weekly,auto,1.0,tight control\n"+
			"CZ,0.85,10,monthly,on_demand,1.0,\n")

	policies, err := NewLoader().LoadPolicies(path)
	if err != nil {
		t.Fatalf("LoadPolicies failed: %v", err)
	}
	if len(policies) != 2 {
		t.Fatalf("Expected 2 policies, got %d", len(policies))
	}
	if policies[0].MatrixCell != entities.CellAX || policies[0].Method != entities.MethodAuto {
		t.Errorf("Unexpected AX policy: %+v", policies[0])
	}
	if policies[1].Method != entities.MethodOnDemand {
		t.Errorf("Expected on_demand for CZ, got %s", policies[1].Method)
	}
}

func TestLoadPolicies_RejectsUnknownCell(t *testing.T) {
	path := writeFile(t, "policies.csv",
		"matrix_cell,service_level,target_woh,review_frequency,replenishment_method,safety_stock_multiplier,notes\n"+
			"QQ,0.97,4,weekly,auto,1.0,\n")

	_, err := NewLoader().LoadPolicies(path)
	if err == nil || !strings.Contains(err.Error(), "invalid matrix_cell") {
		t.Errorf("Expected invalid cell error, got %v", err)
	}
}

func TestLoadInventorySnapshots_ConvertsDatesToWeeks(t *testing.T) {
	path := writeFile(t, "inventory.csv",
		"sku_code,snapshot_date,qty_on_hand\n"+
			"PLT-100,2024-01-01,120\n"+
			"PLT-100,2024-01-10,95.5\n")

	snapshots, err := NewLoader().LoadInventorySnapshots(path)
	if err != nil {
		t.Fatalf("LoadInventorySnapshots failed: %v", err)
	}
	if len(snapshots) != 2 {
		t.Fatalf("Expected 2 snapshots, got %d", len(snapshots))
	}
	if snapshots[0].Week != 0 {
		t.Errorf("Expected epoch date in week 0, got %d", snapshots[0].Week)
	}
	if snapshots[1].Week != 1 {
		t.Errorf("Expected 2024-01-10 in week 1, got %d", snapshots[1].Week)
	}
	if snapshots[1].QtyOnHand != 95.5 {
		t.Errorf("Expected fractional quantity preserved, got %g", snapshots[1].QtyOnHand)
	}
}

func TestLoadForecastsAndInTransit(t *testing.T) {
	forecastPath := writeFile(t, "forecasts.csv",
		"sku_code,week_date,quantity\n"+
			"PLT-100,2024-06-03,25\n")
	transitPath := writeFile(t, "intransit.csv",
		"sku_code,arrival_date,quantity\n"+
			"PLT-100,2024-06-10,500\n")

	loader := NewLoader()

	forecasts, err := loader.LoadForecasts(forecastPath)
	if err != nil {
		t.Fatalf("LoadForecasts failed: %v", err)
	}
	receipts, err := loader.LoadInTransit(transitPath)
	if err != nil {
		t.Fatalf("LoadInTransit failed: %v", err)
	}

	wantWeek := services.WeekOrdinal(mustDate(t, "2024-06-03"))
	if forecasts[0].Week != wantWeek {
		t.Errorf("Expected forecast week %d, got %d", wantWeek, forecasts[0].Week)
	}
	if receipts[0].ArrivalWeek != wantWeek+1 {
		t.Errorf("Expected arrival week %d, got %d", wantWeek+1, receipts[0].ArrivalWeek)
	}
}

func TestLoad_RejectsMalformedRows(t *testing.T) {
	tests := []struct {
		name    string
		content string
		load    func(*Loader, string) error
	}{
		{
			"bad snapshot date",
			"sku_code,snapshot_date,qty_on_hand\nPLT-100,Jan 1,120\n",
			func(l *Loader, p string) error { _, err := l.LoadInventorySnapshots(p); return err },
		},
		{
			"negative quantity",
			"sku_code,week_date,quantity\nPLT-100,2024-06-03,-5\n",
			func(l *Loader, p string) error { _, err := l.LoadForecasts(p); return err },
		},
		{
			"missing column",
			"sku_code,arrival_date,quantity\nPLT-100,2024-06-03\n",
			func(l *Loader, p string) error { _, err := l.LoadInTransit(p); return err },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "input.csv", tt.content)
			if err := tt.load(NewLoader(), path); err == nil {
				t.Error("Expected parse error")
			}
		})
	}
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	out, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("Bad date %s: %v", s, err)
	}
	return out
}
