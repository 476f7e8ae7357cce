package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/M1doriya/Analysis-PRO/internal/config"
	"github.com/M1doriya/Analysis-PRO/internal/handlers"
	appmiddleware "github.com/M1doriya/Analysis-PRO/internal/middleware"
	"github.com/M1doriya/Analysis-PRO/internal/services"
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the statement analysis HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}

	return cmd
}

func runServe() error {
	cfg := config.Load()
	setupLogger(cfg.Logging, os.Stdout)

	recorder := services.NewPrometheusMetrics()
	analysis := buildAnalysisService(&cfg.Engine, recorder)

	e := newServer(cfg, analysis, recorder)
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)

	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			slog.Error("Server stopped", "error", err.Error())
		}
	}()
	slog.Info("Server started", "addr", addr, "environment", cfg.Server.Environment)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}

func newServer(cfg *config.Config, analysis services.AnalysisServiceInterface, recorder services.MetricsRecorderInterface) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.HTTPErrorHandler = appmiddleware.CustomHTTPErrorHandler
	e.Validator = handlers.NewValidator()

	e.Use(appmiddleware.RequestID())
	e.Use(appmiddleware.PanicRecovery())
	e.Use(appmiddleware.SecurityHeaders())
	e.Use(appmiddleware.HTTPMetrics(recorder))
	e.Use(echomiddleware.BodyLimit(cfg.Server.BodyLimit))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
	}))
	e.Use(appmiddleware.RateLimiterWithConfig(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, recorder))

	healthHandler := handlers.NewHealthCheckHandler()
	analysisHandler := handlers.NewAnalysisHandler(analysis)

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	api.POST("/analyze", analysisHandler.Analyze)

	return e
}

// buildAnalysisService wires the engine pipeline behind its single entry point.
func buildAnalysisService(engine *config.EngineConfig, recorder services.MetricsRecorderInterface) services.AnalysisServiceInterface {
	pool := services.NewTransactionPoolService()
	detector := services.NewBankDetectorService()
	matcher := services.NewTransferMatcherService(engine)
	classifier := services.NewClassificationService(engine)
	metrics := services.NewStatementMetricsService(engine)
	integrity := services.NewIntegrityService(engine, metrics)
	builder := services.NewReportBuilderService(engine, metrics, integrity)

	return services.NewAnalysisService(engine, pool, detector, matcher, classifier, metrics, builder, recorder)
}

func setupLogger(cfg config.LoggingConfig, w io.Writer) {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
}
