// Package output renders planning results for the CLI
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cwaltman/replen/pkg/application/dto"
	"github.com/cwaltman/replen/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	RunTime   time.Duration
}

// Generate creates output in the specified format
func Generate(result *dto.PlanningResult, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(result, config)
	case "json":
		return generateJSONOutput(result, config)
	case "csv":
		return generateCSVOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(result *dto.PlanningResult, config Config) error {
	fmt.Printf("📊 Replenishment Projection Summary\n")
	fmt.Printf("===================================\n\n")

	fmt.Printf("Run ID: %s\n", result.RunID)
	fmt.Printf("Current Week: %d  Horizon: %d weeks\n", result.CurrentWeek, result.HorizonWeeks)
	fmt.Printf("Projected SKUs: %d\n", result.Summary.ProjectedSKUs)
	fmt.Printf("Suggested Orders: %d (%d critical)\n",
		result.Summary.TotalSuggestedOrders, result.Summary.CriticalCount)
	fmt.Printf("Suggested Value: %s\n", result.Summary.TotalSuggestedValue)
	fmt.Printf("Run Time: %v\n\n", config.RunTime)

	if len(result.Suggestions) > 0 {
		fmt.Printf("📋 Order Suggestions:\n")
		fmt.Printf("%-15s %-10s %-9s %-10s %-11s %-12s %-8s\n",
			"SKU", "Supplier", "Urgency", "Qty", "Order Week", "Arrive Week", "Review")
		fmt.Printf("%-15s %-10s %-9s %-10s %-11s %-12s %-8s\n",
			"---------------", "----------", "---------", "----------", "-----------", "------------", "--------")

		for _, s := range result.Suggestions {
			review := ""
			if s.RequiresReview {
				review = "yes"
			}
			fmt.Printf("%-15s %-10s %-9s %-10g %-11d %-12d %-8s\n",
				s.SKUCode, s.SupplierCode, s.Urgency, s.SuggestedQty,
				s.OrderWeek, s.ArrivalWeek, review)
		}
		fmt.Println()
	}

	if len(result.Summary.Suppliers) > 0 {
		fmt.Printf("🏭 Supplier Breakdown:\n")
		fmt.Printf("%-12s %-8s %-10s %-14s\n", "Supplier", "Orders", "Critical", "Value")
		fmt.Printf("%-12s %-8s %-10s %-14s\n", "------------", "--------", "----------", "--------------")
		for _, supplier := range result.Summary.Suppliers {
			fmt.Printf("%-12s %-8d %-10d %-14s\n",
				supplier.SupplierCode, supplier.OrderCount, supplier.CriticalCount, supplier.SuggestedValue)
		}
		fmt.Println()
	}

	if len(result.Warnings) > 0 {
		fmt.Printf("⚠️  Warnings:\n")
		for _, warning := range result.Warnings {
			if warning.SKUCode != "" {
				fmt.Printf("  [%s] %s: %s\n", warning.Kind, warning.SKUCode, warning.Message)
			} else {
				fmt.Printf("  [%s] %s\n", warning.Kind, warning.Message)
			}
		}
		fmt.Println()
	}

	return nil
}

// generateJSONOutput creates JSON output
func generateJSONOutput(result *dto.PlanningResult, config Config) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Println(string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "projection.json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	if config.Verbose {
		fmt.Printf("💾 JSON results saved to: %s\n", filename)
	}

	return nil
}

// generateCSVOutput writes the suggestions and per-SKU projections as CSVs
func generateCSVOutput(result *dto.PlanningResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	suggestionsFile := filepath.Join(config.OutputDir, "suggestions.csv")
	if err := writeSuggestionsCSV(result.Suggestions, suggestionsFile); err != nil {
		return fmt.Errorf("failed to write suggestions CSV: %w", err)
	}

	projectionsFile := filepath.Join(config.OutputDir, "projections.csv")
	if err := writeProjectionsCSV(result.Projections, projectionsFile); err != nil {
		return fmt.Errorf("failed to write projections CSV: %w", err)
	}

	if config.Verbose {
		fmt.Printf("💾 CSV results saved to:\n")
		fmt.Printf("  Suggestions: %s\n", suggestionsFile)
		fmt.Printf("  Projections: %s\n", projectionsFile)
	}

	return nil
}

func writeSuggestionsCSV(suggestions []entities.ReplenishmentSuggestion, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"sku_code", "supplier_code", "urgency", "suggested_qty", "moq",
		"order_week", "order_date", "arrival_week", "arrival_date", "estimated_cost",
		"requires_review", "time_constrained", "breach_week"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, s := range suggestions {
		cost := ""
		if s.EstimatedCost.Valid {
			cost = s.EstimatedCost.Decimal.String()
		}
		row := []string{
			string(s.SKUCode),
			s.SupplierCode,
			s.Urgency.String(),
			strconv.FormatFloat(s.SuggestedQty, 'f', -1, 64),
			strconv.FormatFloat(s.MOQ, 'f', -1, 64),
			strconv.Itoa(s.OrderWeek),
			s.OrderDate.Format("2006-01-02"),
			strconv.Itoa(s.ArrivalWeek),
			s.ArrivalDate.Format("2006-01-02"),
			cost,
			strconv.FormatBool(s.RequiresReview),
			strconv.FormatBool(s.TimeConstrained),
			strconv.Itoa(s.BreachWeek),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return writer.Error()
}

func writeProjectionsCSV(projections []dto.ProjectionResult, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"sku_code", "week", "beginning", "consumption", "receipts", "ending", "weeks_of_cover"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, projection := range projections {
		for _, row := range projection.Rows {
			record := []string{
				string(projection.SKUCode),
				strconv.Itoa(row.Week),
				strconv.FormatFloat(row.Beginning, 'f', -1, 64),
				strconv.FormatFloat(row.Consumption, 'f', -1, 64),
				strconv.FormatFloat(row.Receipts, 'f', -1, 64),
				strconv.FormatFloat(row.Ending, 'f', -1, 64),
				strconv.FormatFloat(row.WeeksOfCover, 'f', -1, 64),
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}

	return writer.Error()
}
