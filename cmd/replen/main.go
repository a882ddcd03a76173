package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/cwaltman/replen/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		scenarioDir = flag.String(
			"scenario",
			"",
			"Path to scenario directory containing CSV files",
		)
		skusFile      = flag.String("skus", "", "Path to SKU master CSV file")
		policiesFile  = flag.String("policies", "", "Path to classification policies CSV file")
		inventoryFile = flag.String("inventory", "", "Path to inventory snapshots CSV file")
		inTransitFile = flag.String("intransit", "", "Path to in-transit receipts CSV file")
		forecastsFile = flag.String("forecasts", "", "Path to demand forecasts CSV file")
		outputDir     = flag.String("output", "", "Output directory for results (optional)")
		format        = flag.String("format", "text", "Output format: text, json, csv")
		horizon       = flag.Int("horizon", 20, "Projection horizon in weeks")
		verbose       = flag.Bool("verbose", false, "Enable verbose output")
		help          = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	// Create command configuration
	config := commands.Config{
		ScenarioDir:   *scenarioDir,
		SKUsFile:      *skusFile,
		PoliciesFile:  *policiesFile,
		InventoryFile: *inventoryFile,
		InTransitFile: *inTransitFile,
		ForecastsFile: *forecastsFile,
		OutputDir:     *outputDir,
		Format:        *format,
		Horizon:       *horizon,
		Verbose:       *verbose,
		Help:          *help,
	}

	// Create and execute command
	cmd := commands.NewProjectionCommand(config)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
