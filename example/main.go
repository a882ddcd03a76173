package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cwaltman/replen/pkg/application/services/planning"
	"github.com/cwaltman/replen/pkg/domain/entities"
	"github.com/cwaltman/replen/pkg/domain/services"
	"github.com/cwaltman/replen/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()

	// Create repositories
	skuRepo := memory.NewSKURepository(3)
	policyRepo := memory.NewSeededPolicyRepository()
	inventoryRepo := memory.NewInventoryRepository()
	forecastRepo := memory.NewForecastRepository()

	// Set up a small warehouse scenario
	setupWarehouseScenario(skuRepo, inventoryRepo, forecastRepo)

	// Create the planning service
	planner := planning.NewService(skuRepo, policyRepo, inventoryRepo, forecastRepo, services.Clock(time.Now), zerolog.Nop())

	fmt.Println("🚀 Running replenishment projection...")
	fmt.Printf("Current week: %d\n", services.CurrentWeekOrdinal(services.Clock(time.Now)))
	fmt.Println()

	// Execute a 20-week projection
	result, err := planner.Run(ctx, 20)
	if err != nil {
		fmt.Printf("❌ Projection failed: %v\n", err)
		return
	}

	// Display results
	fmt.Println("📊 Projection Results:")
	fmt.Printf("  SKUs Projected: %d\n", result.Summary.ProjectedSKUs)
	fmt.Printf("  Suggested Orders: %d\n", result.Summary.TotalSuggestedOrders)
	fmt.Printf("  Suggested Value: %s\n", result.Summary.TotalSuggestedValue.StringFixed(2))
	fmt.Printf("  Critical: %d\n", result.Summary.CriticalCount)
	fmt.Println()

	// Show order suggestions
	if len(result.Suggestions) > 0 {
		fmt.Println("📝 Order Suggestions:")
		for _, sug := range result.Suggestions {
			fmt.Printf("  %s: %.0f units (Order by: %s, arrives: %s)\n",
				sug.SKUCode,
				sug.SuggestedQty,
				sug.OrderDate.Format("2006-01-02"),
				sug.ArrivalDate.Format("2006-01-02"))
			fmt.Printf("    Urgency: %s | Supplier: %s | WOC: %.1f\n",
				sug.Urgency, sug.SupplierCode, sug.WeeksOfCover)
			if sug.TimeConstrained {
				fmt.Printf("    ⚠️  Lead time exceeds the runway to the breach week\n")
			}
		}
		fmt.Println()
	}

	// Show per-supplier consolidation
	if len(result.Summary.Suppliers) > 0 {
		fmt.Println("🏭 Supplier Breakdown:")
		for _, sup := range result.Summary.Suppliers {
			fmt.Printf("  %s: %d orders, value %s",
				sup.SupplierCode, sup.OrderCount, sup.SuggestedValue.StringFixed(2))
			if sup.CriticalCount > 0 {
				fmt.Printf(" (🚨 %d critical)", sup.CriticalCount)
			}
			fmt.Println()
		}
		fmt.Println()
	}

	// Show warnings
	if len(result.Warnings) > 0 {
		fmt.Println("⚠️  Warnings:")
		for _, warning := range result.Warnings {
			fmt.Printf("  [%s] %s\n", warning.Kind, warning.Message)
		}
		fmt.Println()
	}

	fmt.Println("✅ Projection complete!")
}

func setupWarehouseScenario(skuRepo *memory.SKURepository, inventoryRepo *memory.InventoryRepository, forecastRepo *memory.ForecastRepository) {
	currentWeek := services.CurrentWeekOrdinal(services.Clock(time.Now))

	// Add SKUs
	skuRepo.AddSKU(entities.SKU{
		SKUCode:       "PLT-100",
		Description:   "Steel plate 10mm",
		SupplierCode:  "AMC",
		LeadTimeWeeks: 3,
		MOQ:           50,
		UnitCost:      decimal.NullDecimal{Valid: true, Decimal: decimal.RequireFromString("12.50")},
		MatrixCell:    entities.CellAX,
	})

	skuRepo.AddSKU(entities.SKU{
		SKUCode:       "FLG-220",
		Description:   "Flange DN50",
		SupplierCode:  "ZhongXing",
		LeadTimeWeeks: 6,
		MOQ:           100,
		UnitCost:      decimal.NullDecimal{Valid: true, Decimal: decimal.RequireFromString("4.80")},
		MatrixCell:    entities.CellBY,
	})

	skuRepo.AddSKU(entities.SKU{
		SKUCode:       "CLP-900",
		Description:   "Spring clamp",
		SupplierCode:  "AMC",
		LeadTimeWeeks: 1,
		MOQ:           500,
		UnitCost:      decimal.NullDecimal{Valid: true, Decimal: decimal.RequireFromString("0.35")},
		MatrixCell:    entities.CellCX,
	})

	// Current stock positions
	inventoryRepo.AddSnapshot(entities.InventorySnapshot{
		SKUCode:   "PLT-100",
		Week:      currentWeek,
		QtyOnHand: 120,
	})
	inventoryRepo.AddSnapshot(entities.InventorySnapshot{
		SKUCode:   "FLG-220",
		Week:      currentWeek,
		QtyOnHand: 60,
	})
	inventoryRepo.AddSnapshot(entities.InventorySnapshot{
		SKUCode:   "CLP-900",
		Week:      currentWeek,
		QtyOnHand: 4000,
	})

	// A shipment already on the water
	inventoryRepo.AddInTransit(entities.InTransitReceipt{
		SKUCode:     "FLG-220",
		ArrivalWeek: currentWeek + 2,
		Quantity:    100,
	})

	// Flat weekly forecasts over the horizon
	for w := currentWeek; w < currentWeek+20; w++ {
		forecastRepo.AddForecast(entities.DemandForecast{SKUCode: "PLT-100", Week: w, Quantity: 25})
		forecastRepo.AddForecast(entities.DemandForecast{SKUCode: "FLG-220", Week: w, Quantity: 30})
		forecastRepo.AddForecast(entities.DemandForecast{SKUCode: "CLP-900", Week: w, Quantity: 150})
	}
}
