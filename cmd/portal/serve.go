package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"customer-portal/internal/audit"
	"customer-portal/internal/config"
	"customer-portal/internal/database"
	"customer-portal/internal/events"
	"customer-portal/internal/handlers"
	"customer-portal/internal/logger"
	"customer-portal/internal/operations"
	"customer-portal/internal/session"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the portal HTTP API",
	Long: `Starts the HTTP API, the session sweeper and, when NATS_URL is set, the
call event publisher. The server shuts down gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (overrides APP_PORT)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if servePort > 0 {
		cfg.App.Port = servePort
	}

	logPtr, err := logger.New(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialise logger: %w", err)
	}
	log := *logPtr

	db, err := database.Connect(cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}()

	catalog, err := loadCatalog(cfg.Backend)
	if err != nil {
		return err
	}

	publisher, err := events.New(cfg.Events.NATSURL, log)
	if err != nil {
		return err
	}
	defer publisher.Close()

	recorder := audit.NewRecorder(db, publisher, cfg.Events.Subject, log)
	exec := operations.NewExecutor(catalog, newSOAPClient(cfg.Backend), log, recorder)

	store := session.NewStore(db, cfg.Session.TTL())
	sweeper := session.NewSweeper(store, cfg.Session.SweepSchedule, log)
	if err := sweeper.Start(); err != nil {
		return err
	}
	defer sweeper.Stop()

	if !cfg.App.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handlers.NewRouter(cfg.App, handlers.NewAPI(exec, store, log), log)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Int("port", cfg.App.Port).
			Str("backend", cfg.Backend.BaseURL).
			Strs("operations", catalog.Names()).
			Msg("customer portal listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info().Msg("server exited")
	return nil
}
