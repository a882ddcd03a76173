// Package commands implements the CLI entry points
package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/cwaltman/replen/pkg/application/services/planning"
	"github.com/cwaltman/replen/pkg/domain/services"
	"github.com/cwaltman/replen/pkg/infrastructure/repositories/csv"
	"github.com/cwaltman/replen/pkg/infrastructure/repositories/memory"
	"github.com/cwaltman/replen/pkg/interfaces/cli/output"
)

// Config holds configuration for the projection command
type Config struct {
	ScenarioDir   string
	SKUsFile      string
	PoliciesFile  string
	InventoryFile string
	InTransitFile string
	ForecastsFile string
	OutputDir     string
	Format        string
	Horizon       int
	Verbose       bool
	Help          bool
}

// ProjectionCommand runs one projection batch over CSV inputs
type ProjectionCommand struct {
	config Config
}

// NewProjectionCommand creates a projection command with the given configuration
func NewProjectionCommand(config Config) *ProjectionCommand {
	return &ProjectionCommand{config: config}
}

// Execute runs the projection command
func (c *ProjectionCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	files, err := c.resolveInputFiles()
	if err != nil {
		return fmt.Errorf("failed to resolve input files: %w", err)
	}

	if c.config.Verbose {
		c.printHeader(files)
		fmt.Println("📂 Loading data from CSV files...")
	}

	csvLoader := csv.NewLoader()

	skus, err := csvLoader.LoadSKUs(files["SKUs"])
	if err != nil {
		return fmt.Errorf("error loading skus: %w", err)
	}

	snapshots, err := csvLoader.LoadInventorySnapshots(files["Inventory"])
	if err != nil {
		return fmt.Errorf("error loading inventory: %w", err)
	}

	forecasts, err := csvLoader.LoadForecasts(files["Forecasts"])
	if err != nil {
		return fmt.Errorf("error loading forecasts: %w", err)
	}

	// Policies and in-transit receipts are optional inputs
	policyRepo := memory.NewSeededPolicyRepository()
	if path, ok := files["Policies"]; ok {
		policies, err := csvLoader.LoadPolicies(path)
		if err != nil {
			return fmt.Errorf("error loading policies: %w", err)
		}
		for _, policy := range policies {
			if err := policyRepo.UpsertPolicy(ctx, policy); err != nil {
				return fmt.Errorf("failed to register policy for %s: %w", policy.MatrixCell, err)
			}
		}
	}

	inventoryRepo := memory.NewInventoryRepository()
	if err := inventoryRepo.LoadSnapshots(ctx, snapshots); err != nil {
		return fmt.Errorf("failed to load snapshots into repository: %w", err)
	}
	if path, ok := files["InTransit"]; ok {
		receipts, err := csvLoader.LoadInTransit(path)
		if err != nil {
			return fmt.Errorf("error loading in-transit receipts: %w", err)
		}
		if err := inventoryRepo.LoadInTransit(ctx, receipts); err != nil {
			return fmt.Errorf("failed to load receipts into repository: %w", err)
		}
	}

	skuRepo := memory.NewSKURepository(len(skus))
	if err := skuRepo.LoadSKUs(ctx, skus); err != nil {
		return fmt.Errorf("failed to load skus into repository: %w", err)
	}

	forecastRepo := memory.NewForecastRepository()
	if err := forecastRepo.LoadForecasts(ctx, forecasts); err != nil {
		return fmt.Errorf("failed to load forecasts into repository: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("✅ Data loaded successfully:\n")
		fmt.Printf("  SKUs: %d\n", len(skus))
		fmt.Printf("  Snapshots: %d\n", len(snapshots))
		fmt.Printf("  Forecast rows: %d\n", len(forecasts))
		fmt.Println()
		fmt.Println("🔄 Running projection...")
	}

	logger := zerolog.Nop()
	if c.config.Verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	planner := planning.NewService(skuRepo, policyRepo, inventoryRepo, forecastRepo, services.Clock(time.Now), logger)

	startTime := time.Now()
	result, err := planner.Run(ctx, c.config.Horizon)
	if err != nil {
		return fmt.Errorf("error running projection: %w", err)
	}
	runTime := time.Since(startTime)

	if c.config.Verbose {
		fmt.Printf("✅ Projection completed in %v\n\n", runTime)
	}

	return output.Generate(result, output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
		RunTime:   runTime,
	})
}

// validateInputs validates the command configuration
func (c *ProjectionCommand) validateInputs() error {
	if c.config.ScenarioDir == "" &&
		(c.config.SKUsFile == "" || c.config.InventoryFile == "" || c.config.ForecastsFile == "") {
		return fmt.Errorf("must specify either -scenario directory or the skus, inventory and forecasts CSV files")
	}
	return nil
}

// resolveInputFiles determines the actual file paths to use. SKUs, inventory
// and forecasts are required; policies and in-transit are optional and only
// included when present.
func (c *ProjectionCommand) resolveInputFiles() (map[string]string, error) {
	var skusPath, policiesPath, inventoryPath, inTransitPath, forecastsPath string

	if c.config.ScenarioDir != "" {
		skusPath = filepath.Join(c.config.ScenarioDir, "skus.csv")
		policiesPath = filepath.Join(c.config.ScenarioDir, "policies.csv")
		inventoryPath = filepath.Join(c.config.ScenarioDir, "inventory.csv")
		inTransitPath = filepath.Join(c.config.ScenarioDir, "intransit.csv")
		forecastsPath = filepath.Join(c.config.ScenarioDir, "forecasts.csv")
	} else {
		skusPath = c.config.SKUsFile
		policiesPath = c.config.PoliciesFile
		inventoryPath = c.config.InventoryFile
		inTransitPath = c.config.InTransitFile
		forecastsPath = c.config.ForecastsFile
	}

	files := map[string]string{
		"SKUs":      skusPath,
		"Inventory": inventoryPath,
		"Forecasts": forecastsPath,
	}
	for name, path := range files {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s file not found: %s", name, path)
		}
	}

	if policiesPath != "" {
		if _, err := os.Stat(policiesPath); err == nil {
			files["Policies"] = policiesPath
		} else if c.config.PoliciesFile != "" {
			return nil, fmt.Errorf("policies file not found: %s", policiesPath)
		}
	}
	if inTransitPath != "" {
		if _, err := os.Stat(inTransitPath); err == nil {
			files["InTransit"] = inTransitPath
		} else if c.config.InTransitFile != "" {
			return nil, fmt.Errorf("in-transit file not found: %s", inTransitPath)
		}
	}

	return files, nil
}

// printHeader prints the command header information
func (c *ProjectionCommand) printHeader(files map[string]string) {
	fmt.Printf("🚀 Replenishment Projection CLI\n")
	fmt.Printf("Input files:\n")
	for _, name := range []string{"SKUs", "Policies", "Inventory", "InTransit", "Forecasts"} {
		if path, ok := files[name]; ok {
			fmt.Printf("  %s: %s\n", name, path)
		}
	}
	fmt.Printf("Horizon: %d weeks\n", c.config.Horizon)
	fmt.Printf("Output format: %s\n", c.config.Format)
	if c.config.OutputDir != "" {
		fmt.Printf("Output directory: %s\n", c.config.OutputDir)
	}
	fmt.Println()
}

// showHelp displays the help message
func (c *ProjectionCommand) showHelp() {
	fmt.Printf(`Replenishment Projection CLI - week-by-week inventory projection and order suggestions

USAGE:
    replen -scenario <directory>              # Use scenario directory with CSV files
    replen -skus <file> -inventory <file> -forecasts <file>

OPTIONS:
    -scenario <dir>     Path to scenario directory containing CSV files
    -skus <file>        Path to SKU master CSV file
    -policies <file>    Path to classification policies CSV file (optional, defaults to the nine-grid seed)
    -inventory <file>   Path to inventory snapshots CSV file
    -intransit <file>   Path to in-transit receipts CSV file (optional)
    -forecasts <file>   Path to demand forecasts CSV file
    -horizon <weeks>    Projection horizon in weeks (default 20)
    -output <dir>       Output directory for results (optional)
    -format <fmt>       Output format: text, json, csv
    -verbose            Enable verbose output
    -help               Show this help message

SCENARIO DIRECTORY LAYOUT:
    scenario_name/
        skus.csv
        policies.csv    (optional)
        inventory.csv
        intransit.csv   (optional)
        forecasts.csv

EXAMPLES:
    # Run a scenario with verbose output
    replen -scenario examples/warehouse_basic -verbose

    # JSON output into a results directory
    replen -scenario examples/warehouse_basic -format json -output results/

    # Short horizon over individual files
    replen -skus skus.csv -inventory inv.csv -forecasts fc.csv -horizon 8
`)
}
