package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/wisteria0793/scorpion/internal/domain"
)

var (
	syncScope   string
	syncTimeout time.Duration
)

// Mirrors the dashboard's scheduled rate sync: pull the remote
// calendar for one property, or for every property that has an
// external key.
var syncCmd = &cobra.Command{
	Use:   "sync [propertyID]",
	Short: "Sync rates and availability from the external calendar service",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, usecases := mustUsecases()

		scope, err := domain.ParseSyncScope(syncScope)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()

		properties, err := targetProperties(ctx, usecases.Properties, args)
		if err != nil {
			return err
		}

		var failures int
		for _, property := range properties {
			if property.ExternalKey == "" {
				fmt.Printf("%s: no external key, skipping\n", property.Name)
				continue
			}

			report, err := usecases.Reconciler.Run(ctx, property.ID, property.ExternalKey, scope)
			if err != nil {
				failures++
				fmt.Printf("%s: sync failed: %v\n", property.Name, err)
				continue
			}
			fmt.Printf("%s: %s\n", property.Name, report)
		}

		if failures > 0 {
			return fmt.Errorf("%d properties failed to sync", failures)
		}
		return nil
	},
}

func init() {
	syncCmd.Flags().StringVar(&syncScope, "scope", "basic", "sync scope: basic, calendar or all")
	syncCmd.Flags().DurationVar(&syncTimeout, "timeout", 5*time.Minute, "overall sync timeout")
}
