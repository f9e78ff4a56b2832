package main

import (
	"context"
	"time"

	"github.com/deppfellow/mipp-portal/internal/database"
	"github.com/spf13/cobra"
)

var (
	migrateTimeout time.Duration
	migrateStatus  bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Long: `migrate applies the migrations embedded in the binary. Applied versions
are tracked in the schema_version table. With --status it only reports how
many migrations are pending.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, loggerService, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer loggerService.Shutdown()

		ctx, cancel := context.WithTimeout(cmd.Context(), migrateTimeout)
		defer cancel()

		if migrateStatus {
			status, err := database.Status(ctx, cfg)
			if err != nil {
				return err
			}
			log.Info().
				Int32("current", status.Current).
				Int32("latest", status.Latest).
				Int32("pending", status.Pending()).
				Msg("database schema status")
			return nil
		}

		return database.Migrate(ctx, &log, cfg)
	},
}

func init() {
	migrateCmd.Flags().DurationVar(&migrateTimeout, "timeout", 2*time.Minute, "Migration timeout")
	migrateCmd.Flags().BoolVar(&migrateStatus, "status", false, "Report the schema version without migrating")
}
