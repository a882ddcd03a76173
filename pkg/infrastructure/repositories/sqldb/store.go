// Package sqldb implements the domain repositories over a SQL database.
// The store speaks both sqlite and postgres; the driver is chosen from the
// DSN and every query is rebound to the driver's placeholder style, so the
// repositories themselves are written once with `?` placeholders.
package sqldb

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/cwaltman/replen/pkg/domain/entities"
)

// Store wraps the database handle shared by the repositories
type Store struct {
	db *sqlx.DB
}

// Open connects to the database named by the DSN. DSNs with a postgres
// scheme use lib/pq; everything else is treated as a sqlite path.
func Open(dsn string) (*Store, error) {
	driver := "sqlite3"
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		driver = "postgres"
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach %s database: %w", driver, err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle
func (s *Store) Close() error {
	return s.db.Close()
}

// SKUs returns the SKU master repository
func (s *Store) SKUs() *SKURepository {
	return &SKURepository{db: s.db}
}

// Policies returns the classification policy repository
func (s *Store) Policies() *PolicyRepository {
	return &PolicyRepository{db: s.db}
}

// Inventory returns the snapshot and in-transit repository
func (s *Store) Inventory() *InventoryRepository {
	return &InventoryRepository{db: s.db}
}

// Forecasts returns the demand forecast repository
func (s *Store) Forecasts() *ForecastRepository {
	return &ForecastRepository{db: s.db}
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS skus (
		sku_code        TEXT PRIMARY KEY,
		description     TEXT NOT NULL DEFAULT '',
		category        TEXT NOT NULL DEFAULT '',
		supplier_code   TEXT NOT NULL DEFAULT '',
		lead_time_weeks INTEGER NOT NULL DEFAULT 0,
		moq             REAL NOT NULL DEFAULT 0,
		unit_cost       TEXT,
		matrix_cell     TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS classification_policies (
		matrix_cell             TEXT PRIMARY KEY,
		service_level           REAL NOT NULL,
		target_woh              REAL NOT NULL,
		review_frequency        TEXT NOT NULL,
		replenishment_method    TEXT NOT NULL,
		safety_stock_multiplier REAL NOT NULL DEFAULT 1.0,
		notes                   TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS inventory_snapshots (
		sku_code    TEXT NOT NULL,
		week        INTEGER NOT NULL,
		qty_on_hand REAL NOT NULL,
		PRIMARY KEY (sku_code, week)
	)`,
	`CREATE TABLE IF NOT EXISTS in_transit_receipts (
		sku_code     TEXT NOT NULL,
		arrival_week INTEGER NOT NULL,
		quantity     REAL NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS demand_forecasts (
		sku_code TEXT NOT NULL,
		week     INTEGER NOT NULL,
		quantity REAL NOT NULL,
		PRIMARY KEY (sku_code, week)
	)`,
}

// Bootstrap applies the schema and seeds the nine-grid default policies for
// any cell that has no policy yet. Existing policies are never overwritten.
func (s *Store) Bootstrap(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	seed := s.db.Rebind(`INSERT INTO classification_policies
		(matrix_cell, service_level, target_woh, review_frequency, replenishment_method, safety_stock_multiplier, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (matrix_cell) DO NOTHING`)

	for _, policy := range entities.DefaultPolicies() {
		_, err := s.db.ExecContext(ctx, seed,
			policy.MatrixCell.String(),
			policy.ServiceLevel,
			policy.TargetWOH,
			policy.ReviewFrequency.String(),
			policy.Method.String(),
			policy.SafetyStockMultiplier,
			policy.Notes,
		)
		if err != nil {
			return fmt.Errorf("failed to seed policy for %s: %w", policy.MatrixCell, err)
		}
	}

	return nil
}
