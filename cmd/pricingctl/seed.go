package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/wisteria0793/scorpion/internal/domain"
	pricingdto "github.com/wisteria0793/scorpion/internal/usecase/dto/pricing"
)

var seedDays int

// Generates sample overrides for demos and local development:
// weekends cost more and require two nights.
var seedCmd = &cobra.Command{
	Use:   "seed <propertyID>",
	Short: "Seed sample weekend rates into a property's calendar",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, usecases := mustUsecases()
		ctx := context.Background()

		property, err := usecases.Properties.GetProperty(ctx, args[0])
		if err != nil {
			return err
		}

		twoNights := 2
		rows := make([]pricingdto.UpdateRow, 0, seedDays)
		day := domain.Today()
		for i := 0; i < seedDays; i++ {
			weekday := day.Time().Weekday()
			if weekday == time.Friday || weekday == time.Saturday {
				price := property.Settings.BasePrice * 13 / 10
				rows = append(rows, pricingdto.UpdateRow{
					Date:      day.String(),
					Price:     &price,
					MinNights: &twoNights,
				})
			}
			day = day.Next()
		}

		result, err := usecases.Editor.ApplyUpdates(ctx, property.ID, rows, domain.SourceManual)
		if err != nil {
			return err
		}

		fmt.Printf("seeded %d weekend overrides for %s\n", result.Applied, property.Name)
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedDays, "days", 90, "how many days ahead to seed")
}
