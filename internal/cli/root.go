// Package cli implements kiranactl, the operator tool for schema migrations,
// admin bootstrap and receipt printing.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/infrastructure/postgres"
	"github.com/AppHatchery-01/kirana-pos-easy/pkg/config"
	"github.com/AppHatchery-01/kirana-pos-easy/pkg/logger"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose     bool
	Format      string // "json" | "text"
	DatabaseURL string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for kiranactl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "kiranactl",
		Short: "Kirana POS operator tool",
		Long:  "Operator commands for the Kirana POS backend: apply migrations, bootstrap the first admin and print receipts.",
		// main prints the error once
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.DatabaseURL, "database-url", "", "PostgreSQL URL (defaults to DATABASE_URL / DB_* settings)")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewCreateAdminCommand(opts))
	cmd.AddCommand(NewReceiptCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// connect loads configuration and opens the pool; --database-url wins over the environment.
func connect(ctx context.Context, opts *RootOptions) (*pgxpool.Pool, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}
	if opts.DatabaseURL != "" {
		cfg.DB.DatabaseURL = opts.DatabaseURL
	}
	level := "warn"
	if opts.Verbose {
		level = "debug"
	}
	log := logger.NewWithWriter(logger.Config{Env: "development", Level: level, Service: "kiranactl"}, os.Stderr)

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	return pool, log, nil
}
