package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/seu-repo/brace-tracker/internal/adapter/http/fiber/handlers"
	"github.com/seu-repo/brace-tracker/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/brace-tracker/internal/service/ingest"
	"github.com/seu-repo/brace-tracker/internal/service/usage"
	"github.com/seu-repo/brace-tracker/pkg/config"
)

const serviceName = "brace-tracker-report-server"

var (
	configPath = flag.String("config", "", "Path to TOML config file")
	dataDir    = flag.String("data-dir", "", "Directory containing device CSV logs (overrides config)")
)

func main() {
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}

	// Ingest once at startup; the record set is immutable afterwards and
	// every report is computed from it on demand.
	ingestService := ingest.NewService(logger)
	result, err := ingestService.IngestDirectory(context.Background(), cfg.DataDir)
	if err != nil {
		logger.Fatal("Ingestion failed", zap.Error(err))
	}

	usageService, err := usage.NewService(cfg.Analysis, logger)
	if err != nil {
		logger.Fatal("Invalid analysis configuration", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		ServerHeader:          serviceName,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())

	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	// Metrics endpoint for Prometheus
	app.Get("/metrics", func(c *fiber.Ctx) error {
		handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
		handler(c.Context())
		return nil
	})

	reportHandler := handlers.NewReportHandler(usageService, result, cfg.Analysis, logger)

	v1 := app.Group("/api/v1")
	v1.Get("/devices", reportHandler.ListDevices)
	v1.Get("/devices/:id/report", reportHandler.GetReport)
	v1.Get("/warnings", reportHandler.ListWarnings)

	go func() {
		logger.Info("Starting HTTP server",
			zap.Int("port", cfg.HTTP.Port),
			zap.String("run_id", result.RunID),
			zap.Int("devices", len(result.Records)),
		)
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}
