package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"structdetect/internal"
	"structdetect/internal/migration"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// resetTables lists the tables dropped by -reset, in dependency order
var resetTables = []string{"detections"}

func main() {
	_ = godotenv.Load()
	logger := internal.NewDefaultLogger()
	defer logger.Sync()

	args := os.Args[1:]
	reset := false
	if len(args) > 0 && args[0] == "-reset" {
		reset = true
		args = args[1:]
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if len(args) > 0 {
		databaseURL = args[0]
	}
	if databaseURL == "" {
		fmt.Fprintln(os.Stderr, "Usage: migrate [-reset] [database_url]  (or set DATABASE_URL)")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// Connect to database
	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		logger.Error("[Migrate] Failed to connect to database: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	if reset {
		for _, table := range resetTables {
			if _, err := db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)); err != nil {
				logger.Warn("[Migrate] failed to drop table %s: %v", table, err)
			}
		}
		logger.Info("[Migrate] Dropped %d tables", len(resetTables))
	}

	runner := migration.NewRunner().WithLogger(logger)
	if err := runner.Run(ctx, db); err != nil {
		logger.Error("[Migrate] Migration failed: %v", err)
		os.Exit(1)
	}

	logger.Info("[Migrate] Schema is at version %s", runner.Version())
}
