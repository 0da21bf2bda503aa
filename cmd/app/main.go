package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fulfillment/cmd"
	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres/migrations"

	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// @title						Fulfillment API
// @version					1.0
// @description				Order fulfillment tracking and printer settlement.
// @BasePath					/
// @securityDefinitions.apikey	AdminKey
// @in							header
// @name						Authorization
// @securityDefinitions.apikey	PrinterSecret
// @in							header
// @name						x-printer-secret
func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := newLogger(configs.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB := mustGormOpen(configs.DSN())
	if configs.MigrateOnStart {
		mustMigrate(ctx, gormDB)
	}

	if configs.PrinterWebhookSecret == "" {
		logger.Warn("PRINTER_WEBHOOK_SECRET is not set, printer webhooks accept any caller")
	}

	app, err := cmd.NewCompositionRoot(ctx, configs, gormDB, logger)
	if err != nil {
		log.Fatalf("composition root: %v", err)
	}
	defer app.Close()

	jobManager, err := app.CreateJobManager()
	if err != nil {
		log.Fatalf("jobs: %v", err)
	}
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, app, configs.HTTPPort, logger)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func mustGormOpen(dsn string) *gorm.DB {
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatalf("connection to postgres through gorm: %v", err)
	}
	return gormDB
}

func mustMigrate(ctx context.Context, gormDB *gorm.DB) {
	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("sql database: %v", err)
	}
	if err := migrations.Up(ctx, sqlDB); err != nil {
		log.Fatalf("migrations: %v", err)
	}
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, logger *slog.Logger) {
	e := httpadapter.NewEcho(logger)
	app.CreateHTTPServer().Register(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
}
