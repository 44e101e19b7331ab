package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"reportapi/docs"
	"reportapi/internal/awsclient"
	"reportapi/internal/config"
	"reportapi/internal/database"
	handlers "reportapi/internal/http/handler"
	"reportapi/internal/http/middleware"
	"reportapi/internal/logging"
	"reportapi/internal/otel"
	"reportapi/internal/queryengine"
	"reportapi/internal/repository/dynamo"
	"reportapi/internal/repository/postgres"
	"reportapi/internal/service"
	"reportapi/internal/storage"
)

const (
	shutdownTimeout = 10 * time.Second
	// Report cursors travel in the query string.
	readBufferSize = 16 * 1024
)

// @title Report API
// @version 1.0
// @description Query engine, key-value store and document ingestion facade.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	logger := logging.New(os.Stdout, cfg.Location(), logging.ParseLevel(cfg.LogLevel))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server_exit", "error_message", err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) error {
	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	// PostgreSQL holds the ingested document catalogue; the schema is created on first start.
	db, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	objStore, err := storage.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		return err
	}
	snapshots, err := storage.NewFileSnapshots(cfg.Snapshot.Dir)
	if err != nil {
		return err
	}

	clients, err := awsclient.New(cfg.AWS)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	queryMetrics, err := queryengine.NewMetrics(reg)
	if err != nil {
		return err
	}
	httpMetrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return err
	}

	queries := queryengine.NewClient(clients.Athena, queryengine.Options{
		Database:            cfg.Athena.Database,
		OutputLocation:      cfg.Athena.OutputLocation,
		Workgroup:           cfg.Athena.Workgroup,
		PollInitialInterval: cfg.Athena.PollInitialInterval,
		PollMaxInterval:     cfg.Athena.PollMaxInterval,
		PollMaxWait:         cfg.Athena.PollMaxWait,
	}, queryMetrics, logger)

	lakeSvc, err := service.NewLakeService(queries, snapshots, service.LakeOptions{
		Table:       cfg.Athena.Table,
		OrderBy:     cfg.Athena.OrderBy,
		MaxPageSize: cfg.Athena.MaxPageSize,
	})
	if err != nil {
		return err
	}

	reports := dynamo.NewReportDynamo(clients.DynamoDB, cfg.DynamoDB.Table, cfg.DynamoDB.SearchPagesPerSecond, logger)
	reportSvc := service.NewReportService(reports, service.ReportOptions{
		DefaultLimit:     cfg.DynamoDB.PageSize,
		SearchMaxResults: cfg.DynamoDB.SearchMaxResults,
	})

	docSvc := service.NewDocumentService(objStore, postgres.NewDocumentPostgres(db), cfg.MinIO.SignedURLExpiry)

	app := fiber.New(fiber.Config{
		ErrorHandler:   handlers.ErrorHandler(),
		ReadBufferSize: readBufferSize,
		// Query endpoints block while the engine runs.
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.Athena.PollMaxWait + 30*time.Second,
	})

	// Register global middleware
	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(logger))
	app.Use(httpMetrics.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, handlers.Services{
		DB:        db,
		Documents: docSvc,
		Lake:      lakeSvc,
		Reports:   reportSvc,
		Snapshots: service.NewSnapshotService(snapshots),
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		logger.Info("server_start", "addr", addr)
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("server_shutdown", "status", "in_progress")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	logger.Info("server_shutdown", "status", "success")
	return nil
}
