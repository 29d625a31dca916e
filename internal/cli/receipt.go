package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/access"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/dto"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/invoice"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/infrastructure/postgres"
)

type invoiceBuilder interface {
	Build(ctx context.Context, saleID string) (*dto.InvoiceResponse, error)
}

// writeReceipt prints the sale as the thermal receipt or, for json, the invoice view.
func writeReceipt(ctx context.Context, b invoiceBuilder, saleID, format string, w io.Writer) error {
	inv, err := b.Build(ctx, saleID)
	if err != nil {
		return err
	}
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(inv)
	}
	_, err = io.WriteString(w, invoice.RenderReceipt(*inv))
	return err
}

// NewReceiptCommand creates the receipt command.
func NewReceiptCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "receipt <sale-id>",
		Short:        "Print the receipt of a sale",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pool, _, err := connect(ctx, rootOpts)
			if err != nil {
				return err
			}
			defer pool.Close()

			roles := postgres.NewRoleRepository(pool)
			stores := postgres.NewStoreRepository(pool)
			uc := invoice.NewInvoiceUseCase(postgres.NewSaleRepository(pool), stores, access.NewGuard(roles, stores), nil)
			if err := writeReceipt(ctx, uc, args[0], rootOpts.Format, cmd.OutOrStdout()); err != nil {
				return fmt.Errorf("receipt %s: %w", args[0], err)
			}
			return nil
		},
	}
}
