// Package cli implements blogctl, the operator command line for the site.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"folio/internal/config"
	"folio/internal/database"
	"folio/internal/logger"

	"github.com/spf13/cobra"
)

var (
	flagLogLevel  string
	flagLogFormat string

	cfg *config.Config
)

// NewRootCmd creates the root cobra command for blogctl.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "blogctl",
		Short: "Manage the folio site",
		Long:  "blogctl applies the schema, seeds sample content, manages admin users and issues tokens.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.Load()
			if !cmd.Flags().Changed("log-level") && cfg.LogLevel != "" {
				flagLogLevel = cfg.LogLevel
			}
			logger.SetDefault(logger.NewWithWriter(flagLogLevel, flagLogFormat, cmd.ErrOrStderr()))
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newMigrateCmd(),
		newSeedCmd(),
		newAdminCmd(),
		newTokenCmd(),
	)

	return root
}

// openDB connects using DATABASE_URL.
func openDB(ctx context.Context) (database.Service, error) {
	if err := config.ValidateEnv([]string{"DATABASE_URL"}); err != nil {
		return nil, err
	}
	db, err := database.New(ctx, database.Config{URL: cfg.DatabaseURL, MaxConns: 2})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}

// Execute runs blogctl and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		slog.Debug("blogctl failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
