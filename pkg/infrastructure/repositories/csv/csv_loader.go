// Package csv loads planning inputs from CSV exports. Each file carries a
// fixed header which is validated before any row is parsed; dates are
// calendar dates converted to week ordinals on load so the rest of the
// system never sees raw dates.
package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cwaltman/replen/pkg/domain/entities"
	"github.com/cwaltman/replen/pkg/domain/services"
)

// Loader handles loading planning data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadSKUs loads SKU master records from a CSV file
func (l *Loader) LoadSKUs(filename string) ([]*entities.SKU, error) {
	records, err := readAll(filename, "skus")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"sku_code", "description", "category", "supplier_code", "lead_time_weeks", "moq", "unit_cost", "matrix_cell"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("skus CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var skus []*entities.SKU
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("skus CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		sku, err := parseSKU(record)
		if err != nil {
			return nil, fmt.Errorf("skus CSV row %d: %w", i+2, err)
		}

		skus = append(skus, sku)
	}

	return skus, nil
}

// LoadPolicies loads classification policies from a CSV file
func (l *Loader) LoadPolicies(filename string) ([]*entities.ClassificationPolicy, error) {
	records, err := readAll(filename, "policies")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"matrix_cell", "service_level", "target_woh", "review_frequency", "replenishment_method", "safety_stock_multiplier", "notes"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("policies CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var policies []*entities.ClassificationPolicy
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("policies CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		policy, err := parsePolicy(record)
		if err != nil {
			return nil, fmt.Errorf("policies CSV row %d: %w", i+2, err)
		}

		policies = append(policies, policy)
	}

	return policies, nil
}

// LoadInventorySnapshots loads quantity-on-hand observations from a CSV file
func (l *Loader) LoadInventorySnapshots(filename string) ([]*entities.InventorySnapshot, error) {
	records, err := readAll(filename, "inventory")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"sku_code", "snapshot_date", "qty_on_hand"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("inventory CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var snapshots []*entities.InventorySnapshot
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("inventory CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		week, err := parseWeekDate(record[1], "snapshot_date")
		if err != nil {
			return nil, fmt.Errorf("inventory CSV row %d: %w", i+2, err)
		}
		qty, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("inventory CSV row %d: invalid qty_on_hand: %s", i+2, record[2])
		}

		snapshot, err := entities.NewInventorySnapshot(entities.SKUCode(record[0]), week, qty)
		if err != nil {
			return nil, fmt.Errorf("inventory CSV row %d: %w", i+2, err)
		}

		snapshots = append(snapshots, snapshot)
	}

	return snapshots, nil
}

// LoadInTransit loads the open purchase order schedule from a CSV file.
// Multiple rows for the same SKU and arrival week stay separate; the
// simulator sums them.
func (l *Loader) LoadInTransit(filename string) ([]*entities.InTransitReceipt, error) {
	records, err := readAll(filename, "in-transit")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"sku_code", "arrival_date", "quantity"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("in-transit CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var receipts []*entities.InTransitReceipt
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("in-transit CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		week, err := parseWeekDate(record[1], "arrival_date")
		if err != nil {
			return nil, fmt.Errorf("in-transit CSV row %d: %w", i+2, err)
		}
		qty, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("in-transit CSV row %d: invalid quantity: %s", i+2, record[2])
		}

		receipt, err := entities.NewInTransitReceipt(entities.SKUCode(record[0]), week, qty)
		if err != nil {
			return nil, fmt.Errorf("in-transit CSV row %d: %w", i+2, err)
		}

		receipts = append(receipts, receipt)
	}

	return receipts, nil
}

// LoadForecasts loads weekly demand forecasts from a CSV file
func (l *Loader) LoadForecasts(filename string) ([]*entities.DemandForecast, error) {
	records, err := readAll(filename, "forecasts")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"sku_code", "week_date", "quantity"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("forecasts CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var forecasts []*entities.DemandForecast
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("forecasts CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		week, err := parseWeekDate(record[1], "week_date")
		if err != nil {
			return nil, fmt.Errorf("forecasts CSV row %d: %w", i+2, err)
		}
		qty, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("forecasts CSV row %d: invalid quantity: %s", i+2, record[2])
		}

		forecast, err := entities.NewDemandForecast(entities.SKUCode(record[0]), week, qty)
		if err != nil {
			return nil, fmt.Errorf("forecasts CSV row %d: %w", i+2, err)
		}

		forecasts = append(forecasts, forecast)
	}

	return forecasts, nil
}

// Helper functions for parsing CSV records

func readAll(filename, label string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", label, filename, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", label, err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", label)
	}

	return records, nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

// parseWeekDate converts a calendar date to its planning week ordinal
func parseWeekDate(s, field string) (int, error) {
	date, err := time.Parse("2006-01-02", s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s format: %s (expected YYYY-MM-DD)", field, s)
	}
	return services.WeekOrdinal(date), nil
}

func parseSKU(record []string) (*entities.SKU, error) {
	leadTimeWeeks, err := strconv.Atoi(record[4])
	if err != nil {
		return nil, fmt.Errorf("invalid lead_time_weeks: %s", record[4])
	}

	moq, err := strconv.ParseFloat(record[5], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid moq: %s", record[5])
	}

	// Cost is optional: an empty cell means unknown, never zero
	var unitCost decimal.NullDecimal
	if costStr := strings.TrimSpace(record[6]); costStr != "" {
		parsed, err := decimal.NewFromString(costStr)
		if err != nil {
			return nil, fmt.Errorf("invalid unit_cost: %s", record[6])
		}
		unitCost = decimal.NullDecimal{Valid: true, Decimal: parsed}
	}

	return entities.NewSKU(
		entities.SKUCode(record[0]),
		record[1],
		record[2],
		record[3],
		leadTimeWeeks,
		moq,
		unitCost,
		entities.ParseMatrixCell(record[7]),
	)
}

func parsePolicy(record []string) (*entities.ClassificationPolicy, error) {
	cell := entities.ParseMatrixCell(record[0])
	if cell == entities.CellUnknown {
		return nil, fmt.Errorf("invalid matrix_cell: %s", record[0])
	}

	serviceLevel, err := strconv.ParseFloat(record[1], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid service_level: %s", record[1])
	}

	targetWOH, err := strconv.ParseFloat(record[2], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid target_woh: %s", record[2])
	}

	multiplier, err := strconv.ParseFloat(record[5], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid safety_stock_multiplier: %s", record[5])
	}

	return entities.NewClassificationPolicy(
		cell,
		serviceLevel,
		targetWOH,
		entities.ParseReviewFrequency(record[3]),
		entities.ParseReplenishmentMethod(record[4]),
		multiplier,
		record[6],
	)
}
