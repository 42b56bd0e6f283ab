package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wisteria0793/scorpion/internal/domain"
	"github.com/wisteria0793/scorpion/internal/usecase"
)

var (
	exportStart string
	exportEnd   string
	exportOut   string
)

var exportCmd = &cobra.Command{
	Use:   "export <propertyID>",
	Short: "Export a property's effective calendar as CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, usecases := mustUsecases()

		start, err := domain.ParseDay(exportStart)
		if err != nil {
			return err
		}
		end, err := domain.ParseDay(exportEnd)
		if err != nil {
			return err
		}

		text, err := usecases.Codec.Serialize(context.Background(), args[0], start, end)
		if err != nil {
			return err
		}

		if exportOut == "-" {
			fmt.Print(text)
			return nil
		}
		return os.WriteFile(exportOut, []byte(text), 0o644)
	},
}

var importCmd = &cobra.Command{
	Use:   "import <propertyID> <file.csv>",
	Short: "Import a pricing CSV into a property's calendar",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, usecases := mustUsecases()

		data, err := os.ReadFile(args[1])
		if err != nil {
			return err
		}

		result, err := usecases.Codec.Import(context.Background(), args[0], string(data))
		if err != nil {
			return err
		}

		fmt.Printf("applied %d rows\n", result.Applied)
		for _, rejected := range result.Rejected {
			fmt.Printf("line %d rejected: %s\n", rejected.Index, rejected.Reason)
		}
		if result.Applied == 0 && len(result.Rejected) > 0 {
			return fmt.Errorf("import rejected")
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportStart, "start", domain.Today().String(), "range start (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportEnd, "end", domain.Today().AddDays(364).String(), "range end (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportOut, "out", "-", "output file, - for stdout")
}

func targetProperties(ctx context.Context, properties usecase.PropertyUsecase, args []string) ([]*domain.Property, error) {
	if len(args) == 1 {
		property, err := properties.GetProperty(ctx, args[0])
		if err != nil {
			return nil, err
		}
		return []*domain.Property{property}, nil
	}
	return properties.ListProperties(ctx)
}
