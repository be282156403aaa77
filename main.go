package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	appLogger "github.com/FACorreiaa/go-trip-itinerary/app/logger"
	"github.com/FACorreiaa/go-trip-itinerary/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-itinerary/app/tracer"
	"github.com/FACorreiaa/go-trip-itinerary/config"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/itinerary"
	"github.com/FACorreiaa/go-trip-itinerary/internal/container"
	"github.com/FACorreiaa/go-trip-itinerary/internal/render"
	"github.com/FACorreiaa/go-trip-itinerary/internal/router"
)

const serviceName = "TripItinerary"

func main() {
	// Use standard log until slog is configured, in case godotenv fails
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "itinerary",
		Short:        "Day-by-day travel plans for a city",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd.Context())
		},
	}

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd.Context())
		},
	})
	root.AddCommand(newPlanCmd())
	return root
}

func newPlanCmd() *cobra.Command {
	var (
		city string
		days int
		mode string
	)
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print a travel plan to the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.InitConfig()
			if err != nil {
				return err
			}
			if mode != "" {
				cfg.Allocator.Mode = mode
			}
			// keep stdout for the plan itself
			logger := appLogger.NewWithWriter(cfg.Mode, os.Stderr)
			slog.SetDefault(logger)

			c, err := container.NewContainer(cmd.Context(), &cfg, logger)
			if err != nil {
				return err
			}
			defer c.Close()

			plan, err := c.ItineraryService.BuildPlan(cmd.Context(), city, days)
			if err != nil {
				if itinerary.IsValidationError(err) || errors.Is(err, itinerary.ErrNoSpots) {
					return err
				}
				return itinerary.ErrSourceFailed
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), render.Text(plan))
			return err
		},
	}
	cmd.Flags().StringVar(&city, "city", "", "city to travel to")
	cmd.Flags().IntVar(&days, "days", 3, "number of days (1-10)")
	cmd.Flags().StringVar(&mode, "mode", "", "allocation mode: even or category")
	_ = cmd.MarkFlagRequired("city")
	return cmd
}

func runServer(parent context.Context) error {
	cfg, err := config.InitConfig()
	if err != nil {
		return fmt.Errorf("error initializing config: %w", err)
	}

	logger := appLogger.New(cfg.Mode)
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	telemetry, err := tracer.InitTracingAndMetrics(serviceName)
	if err != nil {
		return err
	}
	metrics.InitAppMetrics()

	c, err := container.NewContainer(ctx, &cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize container", slog.Any("error", err))
		return err
	}
	defer c.Close()

	handler := router.SetupRouter(&router.Config{
		SpotsHandler:     c.SpotsHandler,
		ItineraryHandler: c.ItineraryHandler,
		Logger:           logger,
		RequestTimeout:   cfg.Server.Timeout,
		SessionCookie:    cfg.Session.CookieName,
		SessionTTL:       cfg.Session.TTL,
		PlanRateLimit:    cfg.Server.PlanRateLimit,
		AllowedOrigins:   cfg.Server.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      otelhttp.NewHandler(handler, serviceName),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
	metricsSrv := telemetry.MetricsServer(fmt.Sprintf(":%s", cfg.Metrics.Port))

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		logger.Info("Starting metrics server", slog.String("address", metricsSrv.Addr))
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutdown signal received, starting graceful shutdown...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		return errors.Join(
			srv.Shutdown(shutdownCtx),
			metricsSrv.Shutdown(shutdownCtx),
			telemetry.Shutdown(shutdownCtx),
		)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", slog.Any("error", err))
		return err
	}
	logger.Info("Application shut down complete.")
	return nil
}
