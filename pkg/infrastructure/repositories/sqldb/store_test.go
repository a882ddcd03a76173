package sqldb

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/cwaltman/replen/pkg/domain/entities"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	return store
}

func TestBootstrap_SeedsNineGrid(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	policies, err := store.Policies().GetAllPolicies(ctx)
	if err != nil {
		t.Fatalf("GetAllPolicies failed: %v", err)
	}
	if len(policies) != 9 {
		t.Fatalf("Expected 9 seeded policies, got %d", len(policies))
	}
	if policies[0].MatrixCell != entities.CellAX {
		t.Errorf("Expected AX first in grid order, got %s", policies[0].MatrixCell)
	}

	ax, err := store.Policies().GetPolicy(ctx, entities.CellAX)
	if err != nil {
		t.Fatalf("GetPolicy failed: %v", err)
	}
	if ax.TargetWOH != 4 || ax.Method != entities.MethodAuto {
		t.Errorf("Unexpected seeded AX policy: %+v", ax)
	}
}

func TestBootstrap_PreservesExistingPolicies(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	custom, err := entities.NewClassificationPolicy(
		entities.CellAX, 0.99, 6, entities.ReviewWeekly, entities.MethodManual, 1.5, "tuned")
	if err != nil {
		t.Fatalf("NewClassificationPolicy failed: %v", err)
	}
	if err := store.Policies().UpsertPolicy(ctx, custom); err != nil {
		t.Fatalf("UpsertPolicy failed: %v", err)
	}

	// A second bootstrap must not clobber the tuned policy
	if err := store.Bootstrap(ctx); err != nil {
		t.Fatalf("Second Bootstrap failed: %v", err)
	}

	ax, err := store.Policies().GetPolicy(ctx, entities.CellAX)
	if err != nil {
		t.Fatalf("GetPolicy failed: %v", err)
	}
	if ax.TargetWOH != 6 || ax.SafetyStockMultiplier != 1.5 {
		t.Errorf("Expected tuned policy to survive reseeding, got %+v", ax)
	}
}

func TestSKURepository_RoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	skus := []*entities.SKU{
		{
			SKUCode:       "PLT-100",
			Description:   "Steel plate",
			SupplierCode:  "AMC",
			LeadTimeWeeks: 6,
			MOQ:           500,
			UnitCost:      decimal.NullDecimal{Valid: true, Decimal: decimal.RequireFromString("12.50")},
			MatrixCell:    entities.CellAX,
		},
		{SKUCode: "ROD-300", SupplierCode: "HX", LeadTimeWeeks: 4, MOQ: 1},
	}
	if err := store.SKUs().LoadSKUs(ctx, skus); err != nil {
		t.Fatalf("LoadSKUs failed: %v", err)
	}

	plt, err := store.SKUs().GetSKU(ctx, "PLT-100")
	if err != nil {
		t.Fatalf("GetSKU failed: %v", err)
	}
	if plt.LeadTimeWeeks != 6 || plt.MatrixCell != entities.CellAX {
		t.Errorf("Unexpected PLT-100: %+v", plt)
	}
	if !plt.UnitCost.Valid || !plt.UnitCost.Decimal.Equal(decimal.RequireFromString("12.50")) {
		t.Errorf("Expected cost 12.50, got %v", plt.UnitCost)
	}

	// Unknown cost stays unknown through the round trip
	rod, err := store.SKUs().GetSKU(ctx, "ROD-300")
	if err != nil {
		t.Fatalf("GetSKU failed: %v", err)
	}
	if rod.UnitCost.Valid {
		t.Errorf("Expected null cost, got %v", rod.UnitCost)
	}
	if rod.MatrixCell != entities.CellUnknown {
		t.Errorf("Expected unclassified cell, got %s", rod.MatrixCell)
	}

	// Reload replaces rather than duplicates
	skus[0].MOQ = 250
	if err := store.SKUs().LoadSKUs(ctx, skus); err != nil {
		t.Fatalf("Second LoadSKUs failed: %v", err)
	}
	all, err := store.SKUs().GetAllSKUs(ctx)
	if err != nil {
		t.Fatalf("GetAllSKUs failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 SKUs after reload, got %d", len(all))
	}
	if all[0].MOQ != 250 {
		t.Errorf("Expected reloaded MOQ 250, got %g", all[0].MOQ)
	}
}

func TestSKURepository_NotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SKUs().GetSKU(context.Background(), "NOPE")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("Expected not-found error, got %v", err)
	}
}

func TestInventoryRepository_SnapshotsAndReceipts(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	snapshots := []*entities.InventorySnapshot{
		{SKUCode: "PLT-100", Week: 10, QtyOnHand: 120},
		{SKUCode: "PLT-100", Week: 12, QtyOnHand: 95},
	}
	if err := store.Inventory().LoadSnapshots(ctx, snapshots); err != nil {
		t.Fatalf("LoadSnapshots failed: %v", err)
	}

	// Same SKU and week overwrites the observation
	if err := store.Inventory().LoadSnapshots(ctx, []*entities.InventorySnapshot{
		{SKUCode: "PLT-100", Week: 12, QtyOnHand: 90},
	}); err != nil {
		t.Fatalf("Snapshot upsert failed: %v", err)
	}

	got, err := store.Inventory().GetSnapshots(ctx, "PLT-100")
	if err != nil {
		t.Fatalf("GetSnapshots failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 snapshots, got %d", len(got))
	}
	if got[1].Week != 12 || got[1].QtyOnHand != 90 {
		t.Errorf("Expected corrected week 12 snapshot, got %+v", got[1])
	}

	// Two receipts in the same arrival week stay separate rows
	receipts := []*entities.InTransitReceipt{
		{SKUCode: "PLT-100", ArrivalWeek: 14, Quantity: 300},
		{SKUCode: "PLT-100", ArrivalWeek: 14, Quantity: 200},
	}
	if err := store.Inventory().LoadInTransit(ctx, receipts); err != nil {
		t.Fatalf("LoadInTransit failed: %v", err)
	}
	inTransit, err := store.Inventory().GetInTransit(ctx, "PLT-100")
	if err != nil {
		t.Fatalf("GetInTransit failed: %v", err)
	}
	if len(inTransit) != 2 {
		t.Errorf("Expected 2 receipt rows, got %d", len(inTransit))
	}
}

func TestForecastRepository_RoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	forecasts := []*entities.DemandForecast{
		{SKUCode: "PLT-100", Week: 10, Quantity: 25},
		{SKUCode: "PLT-100", Week: 11, Quantity: 30},
		{SKUCode: "ROD-300", Week: 10, Quantity: 5},
	}
	if err := store.Forecasts().LoadForecasts(ctx, forecasts); err != nil {
		t.Fatalf("LoadForecasts failed: %v", err)
	}

	plt, err := store.Forecasts().GetForecasts(ctx, "PLT-100")
	if err != nil {
		t.Fatalf("GetForecasts failed: %v", err)
	}
	if len(plt) != 2 || plt[0].Week != 10 || plt[1].Quantity != 30 {
		t.Errorf("Unexpected PLT-100 forecasts: %+v", plt)
	}

	all, err := store.Forecasts().GetAllForecasts(ctx)
	if err != nil {
		t.Fatalf("GetAllForecasts failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 forecast rows, got %d", len(all))
	}
}
