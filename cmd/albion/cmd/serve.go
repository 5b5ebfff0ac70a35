package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cgarciahasapromotion-pixel/calculateur-albion/api"
	"github.com/cgarciahasapromotion-pixel/calculateur-albion/config"
	"github.com/cgarciahasapromotion-pixel/calculateur-albion/factory"
	"github.com/cgarciahasapromotion-pixel/calculateur-albion/generic"
	"github.com/cgarciahasapromotion-pixel/calculateur-albion/generic/store"
	"github.com/cgarciahasapromotion-pixel/calculateur-albion/store/sqlite"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API with the configured store and the periodic
overdue-rent check.

An empty database path keeps dossiers in memory; ":memory:" uses an
in-memory SQLite database. On SIGINT/SIGTERM the server stops accepting
connections and waits up to 30 seconds for active requests.

Examples:
  albion serve
  albion serve --port 3000 --db ./data/albion.db
  albion serve --db "" --scenario albion-portfolio`,
	RunE: runServe,
}

var (
	servePort     int
	serveDB       string
	serveScenario string
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "HTTP port (overrides server.port)")
	serveCmd.Flags().StringVar(&serveDB, "db", "", "SQLite database path (overrides server.db_path)")
	serveCmd.Flags().StringVar(&serveScenario, "scenario", "", "load a demo scenario at startup (resets the store)")
}

// server bundles what runServe starts and stops.
type server struct {
	http      *http.Server
	handler   *api.Handler
	scheduler *api.OverdueScheduler
	closer    io.Closer
}

// newServer wires the store, the dossier factory, the API and the scheduler.
func newServer(ctx context.Context, c *config.Config) (*server, error) {
	defaults, err := c.Defaults()
	if err != nil {
		return nil, err
	}

	st, closer, err := openStore(c.Server.DBPath)
	if err != nil {
		return nil, err
	}

	handler := api.NewHandler(st, factory.NewDossierFactory(defaults))
	if c.Server.LoadScenarios {
		if err := handler.LoadScenarioByID(ctx, "albion-portfolio"); err != nil {
			closer.Close()
			return nil, fmt.Errorf("load scenarios: %w", err)
		}
	}

	interval, err := c.Scheduler.ParseInterval()
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("scheduler.interval: %w", err)
	}
	scheduler := api.NewOverdueScheduler(handler)
	scheduler.Enabled = c.Scheduler.Enabled
	if interval > 0 {
		scheduler.CheckInterval = interval
	}

	return &server{
		http: &http.Server{
			Addr:         fmt.Sprintf(":%d", c.Server.Port),
			Handler:      api.NewRouter(handler, c.Server.AllowedOrigins),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		handler:   handler,
		scheduler: scheduler,
		closer:    closer,
	}, nil
}

func openStore(path string) (generic.Store, io.Closer, error) {
	if path == "" {
		log.Info("using in-memory store")
		return store.NewMemory(), io.NopCloser(nil), nil
	}
	s, err := sqlite.New(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	log.WithFields(log.Fields{"path": path}).Info("using SQLite store")
	return s, s, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}
	if cmd.Flags().Changed("db") {
		cfg.Server.DBPath = serveDB
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := newServer(ctx, cfg)
	if err != nil {
		return err
	}
	defer srv.closer.Close()

	if serveScenario != "" {
		if err := srv.handler.LoadScenarioByID(ctx, serveScenario); err != nil {
			return err
		}
	}

	srv.scheduler.Start()
	defer srv.scheduler.Stop()

	errc := make(chan error, 1)
	go func() {
		log.WithFields(log.Fields{"addr": srv.http.Addr}).Info("server starting")
		if err := srv.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
