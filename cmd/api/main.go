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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"truemeter-client/internal/application/check"
	"truemeter-client/internal/infrastructure/http/router"
	"truemeter-client/internal/infrastructure/scoring"
	"truemeter-client/internal/interfaces/http/handler"
	"truemeter-client/internal/pkg/config"
	"truemeter-client/internal/pkg/logger"
)

const version = "1.0.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "truemeter-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse command line flags
	flags := pflag.NewFlagSet("truemeter-api", pflag.ExitOnError)
	configPath := flags.String("config", "", "Path to config file")
	flags.String("api-url", "", "Scoring service base URL")
	flags.String("host", "", "Listen host")
	flags.Int("port", 0, "Listen port")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("log-format", "", "Log format (json, console)")
	flags.Bool("tracing", false, "Trace scoring calls and API requests with OpenTelemetry")
	flags.Parse(os.Args[1:])

	// Load configuration
	cfg, err := config.Load(*configPath, flags)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer log.Sync()

	log.Info("starting truemeter API",
		zap.String("version", version),
		zap.String("scoring_url", cfg.API.BaseURL),
		zap.Bool("tracing", cfg.API.Tracing),
	)

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Scoring client
	client := scoring.NewClient(scoring.Config{
		BaseURL: cfg.API.BaseURL,
		Tracing: cfg.API.Tracing,
	}, log, scoring.NewMetrics(reg))

	// Sessions
	sessions := check.NewSessions(func() *check.Orchestrator {
		return check.NewOrchestrator(client, log.Named("check"), time.Now)
	})

	// Initialize handlers
	sessionHandler := handler.NewSessionHandler(sessions)
	healthHandler := handler.NewHealthHandler(client, sessions, client.BaseURL(), version)

	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		metricsHandler = handler.MetricsHandler(reg)
	}

	// Create router
	r := router.NewRouter(sessionHandler, healthHandler, cfg.Metrics.Path, metricsHandler)

	var h http.Handler = r
	if cfg.API.Tracing {
		h = otelhttp.NewHandler(r, "truemeter-api")
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      h,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")

		// Graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("server stopped", zap.Int("open_sessions", sessions.Len()))
	return nil
}
