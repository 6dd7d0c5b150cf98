package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/wordbook-admin/internal/adapter/postgres"
	"github.com/heartmarshall/wordbook-admin/internal/adapter/postgres/book"
	"github.com/heartmarshall/wordbook-admin/internal/adapter/postgres/importlog"
	"github.com/heartmarshall/wordbook-admin/internal/adapter/postgres/word"
	"github.com/heartmarshall/wordbook-admin/internal/config"
	wordsvc "github.com/heartmarshall/wordbook-admin/internal/service/word"
	"github.com/heartmarshall/wordbook-admin/internal/service/wordimport"
	"github.com/heartmarshall/wordbook-admin/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires repositories, services and handlers, and serves HTTP
// until ctx is cancelled, then shuts the server down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database, "wordbook-admin")
	if err != nil {
		return err
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool, cfg.Database.TxTimeout)
	words := word.New(pool)
	books := book.New(pool)
	audit := importlog.New(pool)

	importSvc := wordimport.NewService(logger, words, books, audit, txm, cfg.Import)
	wordSvc := wordsvc.NewService(logger, words, books, txm)

	handler := NewRouter(logger, Handlers{
		Health: rest.NewHealthHandler(pool, audit, BuildVersion()),
		Import: rest.NewImportHandler(importSvc, cfg.Server.MaxBodyBytes, logger),
		Word:   rest.NewWordHandler(wordSvc, cfg.Server.MaxBodyBytes, logger),
		Book:   rest.NewBookHandler(books, logger),
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("application stopped")
	return nil
}
