package main

import (
	"github.com/spf13/cobra"
	"github.com/wisteria0793/scorpion/internal/infrastructure/migrate"
)

var migrationsPath string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending SQL migrations to the pricing database",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, _ := mustUsecases()
		return migrate.RunMigrations(deps.DB, migrationsPath)
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrationsPath, "path", "migrations", "directory holding the SQL migration files")
}
