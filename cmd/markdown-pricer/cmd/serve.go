package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/donaldgifford/markdown-pricer/internal/engine"
	"github.com/donaldgifford/markdown-pricer/internal/store"
	"github.com/donaldgifford/markdown-pricer/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

var serveMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server and scheduler",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "run database migrations before serving")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	shutdownTelemetry, err := telemetry.Setup(ctx, telemetryConfig(&cfg.Telemetry))
	if err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(sctx); err != nil {
			log.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	st, err := store.NewPostgresStore(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer st.Close()

	if serveMigrate {
		if err := st.Migrate(ctx); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		log.Info("migrations complete")
	}

	pred, err := newPredictor(&cfg.Model, log)
	if err != nil {
		return err
	}

	src, err := newSource(&cfg.Source)
	if err != nil {
		return err
	}

	eng := newEngine(cfg, st, pred, src, log)
	if err := eng.SyncInventoryMetrics(ctx); err != nil {
		log.Warn("initial inventory metrics sync failed", "error", err)
	}

	sched, err := engine.NewScheduler(eng,
		cfg.Schedule.ImportInterval,
		cfg.Schedule.ExpiryRefreshInterval,
		cfg.Schedule.DigestInterval,
		log,
	)
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}

	e := newServer(&cfg.Server, eng, st, log)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting server", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving http: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")

		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		jobsDone := sched.Stop()
		if err := e.Shutdown(sctx); err != nil {
			return fmt.Errorf("shutting down server: %w", err)
		}

		select {
		case <-jobsDone.Done():
		case <-sctx.Done():
			log.Warn("scheduled jobs still running at shutdown")
		}
		return nil
	})

	sched.Start()

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}
