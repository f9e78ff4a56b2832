package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/mipp-portal/internal/database"
	"github.com/deppfellow/mipp-portal/internal/handler"
	"github.com/deppfellow/mipp-portal/internal/lib/email"
	"github.com/deppfellow/mipp-portal/internal/repository"
	"github.com/deppfellow/mipp-portal/internal/router"
	"github.com/deppfellow/mipp-portal/internal/server"
	"github.com/deppfellow/mipp-portal/internal/service"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and the background workers",
	Long: `serve applies pending migrations (skipped when primary.env is local),
starts the asynq workers and scheduler, then serves HTTP until SIGINT or
SIGTERM.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, loggerService, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer loggerService.Shutdown()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !cfg.IsLocal() {
		if err := database.Migrate(ctx, &log, cfg); err != nil {
			log.Error().Err(err).Msg("failed to migrate database")
			return err
		}
	}

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize server")
		return err
	}

	repos := repository.NewRepositories(srv)

	services, err := service.NewServices(srv, repos)
	if err != nil {
		log.Error().Err(err).Msg("could not create services")
		return err
	}

	srv.Job.InitHandlers(email.NewClient(cfg, &log), repos.Users, cfg.Portal.Institution, cfg.Session.PurgeAfter)
	if err := srv.Job.Start(); err != nil {
		log.Error().Err(err).Msg("failed to start background jobs")
		return err
	}

	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(srv, handlers, services)

	srv.SetupHTTPServer(r)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	runErr := awaitServer(ctx, errCh)
	if runErr != nil {
		log.Error().Err(runErr).Msg("server stopped unexpectedly")
		stop()
	} else {
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	if runErr != nil {
		return runErr
	}

	log.Info().Msg("server exited properly")
	return nil
}

// awaitServer blocks until ctx is done or the server fails to run, and
// returns that failure.
func awaitServer(ctx context.Context, errCh <-chan error) error {
	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}
