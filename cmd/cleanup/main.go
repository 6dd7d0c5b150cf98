// Command cleanup removes finished import batches, and their logs, older than
// the configured retention period. It is intended to be invoked by an
// external cron job, not as an in-process goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/wordbook-admin/internal/adapter/postgres"
	"github.com/heartmarshall/wordbook-admin/internal/adapter/postgres/importlog"
	"github.com/heartmarshall/wordbook-admin/internal/app"
	"github.com/heartmarshall/wordbook-admin/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database, "wordbook-cleanup")
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	threshold := time.Now().AddDate(0, 0, -cfg.Import.BatchRetentionDays)

	deleted, err := importlog.New(pool).DeleteFinishedBefore(ctx, threshold)
	if err != nil {
		logger.Error("import batch cleanup failed",
			slog.String("error", err.Error()),
			slog.Time("threshold", threshold),
		)
		os.Exit(1)
	}

	logger.Info("import batch cleanup completed",
		slog.Int64("deleted", deleted),
		slog.Time("threshold", threshold),
	)
}
