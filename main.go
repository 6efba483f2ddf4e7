package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"structdetect/internal"
	"structdetect/internal/config"
	"structdetect/internal/container"
	"structdetect/internal/errors"
	"structdetect/internal/migration"
	"structdetect/ui"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// initDatabase opens the PostgreSQL connection and brings the schema up to date
func initDatabase(ctx context.Context, appConfig *config.Config, logger *internal.Logger) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.WithCode(errors.CodeDatabaseError, errors.Wrap(err, "failed to connect to database"))
	}

	// Run migrations
	migrator := migration.NewRunner().WithLogger(logger)
	if err := migrator.Run(ctx, db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "database migration failed")
	}

	logger.Info("[Main] Database migrations at version %s", migrator.Version())
	return db, nil
}

func main() {
	os.Exit(run())
}

// run starts the server and returns the process exit code. Deferred cleanup
// runs before main exits.
func run() int {
	logger := internal.NewDefaultLogger()
	defer logger.Sync()

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Debug("[Main] No .env file found, using system environment variables")
	}

	// Load application configuration
	appConfig, err := config.Load()
	if err != nil {
		logger.Error("[Main] Failed to load configuration: %v", err)
		return 1
	}
	gin.SetMode(appConfig.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create dependency injection container
	appContainer, err := container.New(appConfig, logger)
	if err != nil {
		logger.Error("[Main] Failed to create application container: %v", err)
		return 1
	}
	defer appContainer.Close()

	// Initialize database when configured; history stays in memory otherwise
	if appConfig.Database.Enabled() {
		db, err := initDatabase(ctx, appConfig, logger)
		if err != nil {
			logger.Error("[Main] Failed to initialize database: %v", err)
			return 1
		}
		if err := appContainer.InitWithDatabase(db); err != nil {
			db.Close()
			logger.Error("[Main] Failed to initialize container: %v", err)
			return 1
		}
	} else {
		logger.Info("[Main] DATABASE_URL not set, keeping the last %d detections in memory", appConfig.Detection.HistoryCapacity)
	}

	// Initialize web server
	server, err := ui.NewServer(appContainer.DetectionService, appConfig, logger)
	if err != nil {
		logger.Error("[Main] Failed to initialize server: %v", err)
		return 1
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(":" + appConfig.Server.Port)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("[Main] Server failed: %v", err)
			return 1
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("[Main] Graceful shutdown failed: %v", err)
			return 1
		}
	}
	return 0
}
