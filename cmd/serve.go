package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/carebell/carebell/internal/bus"
	"github.com/carebell/carebell/internal/engine"
	"github.com/carebell/carebell/internal/httpapi"
	"github.com/carebell/carebell/internal/logging"
	"github.com/carebell/carebell/internal/notify"
)

// shutdownTimeout bounds how long in-flight requests may linger once a
// stop signal arrives.
const shutdownTimeout = 10 * time.Second

var flagServePort int

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the headless display service",
	Long: `Run the schedule engine with the HTTP API, the SSE event stream, and
Prometheus metrics. Family apps and remote displays connect to this service.

Examples:
  carebell serve
  carebell serve --port 9090`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&flagServePort, "port", 0, "Listen port (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := ctx.Config
	if flagServePort != 0 {
		cfg.Server.Port = flagServePort
	}

	eventBus := bus.New()
	eng := engine.New(ctx.Store, eventBus, cfg.Alerts.DefaultCount)

	dispatcher, err := notify.FromConfig(cfg.Notify)
	if err != nil {
		return err
	}
	if dispatcher.HasSinks() {
		dispatcher.Bind(eventBus)
	}

	broker := httpapi.NewBroker()
	defer broker.Close()
	broker.Bind(eventBus)

	if err := eng.Start(); err != nil {
		return err
	}
	defer eng.Stop()

	handler := httpapi.NewHandler(eng, ctx.Store)
	httpServer := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           httpapi.NewRouter(handler, broker, cfg.Server),
		ReadHeaderTimeout: 10 * time.Second,
	}

	runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		logging.Info("http server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logging.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
