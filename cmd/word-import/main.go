// Command word-import loads dictionary entries from a JSON file into the
// database. The file holds either an array of entries or an object with an
// "entries" array. The import summary is printed to stdout as JSON.
//
// Flags:
//
//	--file           path to the JSON file with entries
//	--dry-run        validate and report without writing to DB
//	--source         source name recorded on the import batch
//	--import-config  path to word-import YAML config file
//
// Exit codes: 0 = success, 1 = error or at least one failed entry.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/heartmarshall/wordbook-admin/internal/adapter/postgres"
	"github.com/heartmarshall/wordbook-admin/internal/adapter/postgres/book"
	"github.com/heartmarshall/wordbook-admin/internal/adapter/postgres/importlog"
	"github.com/heartmarshall/wordbook-admin/internal/adapter/postgres/word"
	"github.com/heartmarshall/wordbook-admin/internal/app"
	"github.com/heartmarshall/wordbook-admin/internal/config"
	"github.com/heartmarshall/wordbook-admin/internal/service/wordimport"
)

func main() {
	flags := newCLIFlags(flag.CommandLine)
	flag.Parse()

	// Load app config (for DB connection and import limits).
	appCfg, err := config.Load()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}

	logger := app.NewLogger(appCfg.Log)

	cliCfg, err := wordimport.LoadCLIConfig(*flags.importConfig)
	if err != nil {
		logger.Error("load word-import config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// CLI flags override config.
	flags.apply(cliCfg)

	if cliCfg.File == "" {
		logger.Error("no input file: set --file or WORD_IMPORT_FILE")
		os.Exit(1)
	}

	data, err := os.ReadFile(cliCfg.File)
	if err != nil {
		logger.Error("read input file", slog.String("file", cliCfg.File), slog.String("error", err.Error()))
		os.Exit(1)
	}

	entries, err := wordimport.ParseEntries(data)
	if err != nil {
		logger.Error("parse input file", slog.String("file", cliCfg.File), slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cliCfg.Timeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, appCfg.Database, "word-import")
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool, appCfg.Database.TxTimeout)

	// The CLI is bounded by its own config, not the HTTP entry cap.
	importCfg := appCfg.Import
	importCfg.MaxEntries = 0

	svc := wordimport.NewService(
		logger,
		word.New(pool),
		book.New(pool),
		importlog.New(pool),
		txm,
		importCfg,
	)

	summary, err := svc.ImportWords(ctx, entries, cliCfg.Options())
	if err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		logger.Error("write summary", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if summary.Failed > 0 {
		logger.Warn("import completed with failures", slog.Int("failed", summary.Failed))
		os.Exit(1)
	}

	logger.Info("import completed successfully")
}
