// Command mipp runs the MIPP+ portal API and its schema migrations.
package main

import (
	"fmt"
	"os"

	"github.com/deppfellow/mipp-portal/internal/config"
	"github.com/deppfellow/mipp-portal/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	_ "time/tzdata"
)

var rootCmd = &cobra.Command{
	Use:   "mipp",
	Short: "MIPP+ staff request portal",
	Long: `mipp serves the HR workflow portal of CTP Mercedes Norte: leave
requests, absence justifications, missed clock-in reports and
infrastructure reports, with their manager queues and PDF reports.

Configuration is read from MIPP_* environment variables and an optional
.env file.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads configuration and builds the application logger.
func bootstrap() (*config.Config, *logger.LoggerService, zerolog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, zerolog.Nop(), fmt.Errorf("failed to load config: %w", err)
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return cfg, loggerService, log, nil
}
