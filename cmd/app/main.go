package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vendorportal/cmd"
	httpin "vendorportal/internal/adapters/in/http"
	"vendorportal/internal/adapters/out/postgres/migrations"
	"vendorportal/internal/jobs"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.SlogLevel()}))

	// goose runs on the lib/pq pool, which then serves the read side
	sqlDB, err := migrations.Open(configs.DSN())
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
	defer sqlDB.Close()
	readDB := sqlx.NewDb(sqlDB, "postgres")

	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, readDB, logger)

	jobManager := jobs.NewJobManager(
		app.CreateProcessImportBatchesCommandHandler(),
		configs.ImportPollInterval,
		configs.ImportMaxBatchesPerTick,
		logger,
	)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	e, err := newWebServer(&app, logger)
	if err != nil {
		log.Fatalf("Failed to build web server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)
		logger.Info("Web server started", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Web server shutdown failed", "error", err)
	}
	jobManager.StopAll()
}

func newWebServer(app *cmd.CompositionRoot, logger *slog.Logger) (*echo.Echo, error) {
	server := httpin.NewServer(httpin.Handlers{
		Companies:         app.CreateCompanyCommandHandler(),
		CreateOrder:       app.CreateCreateOrderCommandHandler(),
		Orders:            app.CreateOrderCommandHandler(),
		Tenders:           app.CreateTenderCommandHandler(),
		ApproveBid:        app.CreateApproveBidCommandHandler(),
		ImportOrders:      app.CreateImportOrdersCommandHandler(),
		SubmitImportBatch: app.CreateSubmitImportBatchCommandHandler(),
		ListOrders:        app.CreateListOrdersQueryHandler(),
		GetOrderHistory:   app.CreateGetOrderHistoryQueryHandler(),
		GetImportBatch:    app.CreateGetImportBatchQueryHandler(),
	})

	e, err := httpin.NewRouter(server, logger)
	if err != nil {
		return nil, err
	}
	e.Logger.SetLevel(log.INFO)
	return e, nil
}
