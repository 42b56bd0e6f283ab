package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/wisteria0793/scorpion/internal/app/setup"
)

var rootCmd = &cobra.Command{
	Use:   "pricingctl",
	Short: "Operator tooling for the stay pricing service",
	Long:  "pricingctl runs calendar sync, CSV import/export and seeding against the pricing database directly.",
}

func mustUsecases() (*setup.Dependencies, *setup.Usecases) {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}

	deps, err := setup.InitializeDependencies()
	if err != nil {
		log.Fatalf("failed to init dependencies: %v", err)
	}

	// CLI runs record no prometheus metrics.
	return deps, setup.InitializeUsecases(deps, nil)
}

func main() {
	rootCmd.AddCommand(syncCmd, exportCmd, importCmd, seedCmd, migrateCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
