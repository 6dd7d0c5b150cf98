package app

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/wordbook-admin/internal/transport/middleware"
	"github.com/heartmarshall/wordbook-admin/internal/transport/rest"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Health *rest.HealthHandler
	Import *rest.ImportHandler
	Word   *rest.WordHandler
	Book   *rest.BookHandler
}

// NewRouter mounts every endpoint behind the admin middleware stack.
func NewRouter(logger *slog.Logger, h Handlers) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("POST /admin/import", h.Import.Import)
	mux.HandleFunc("GET /admin/import/batches/{id}", h.Import.Batch)

	mux.HandleFunc("POST /admin/words", h.Word.Create)
	mux.HandleFunc("PUT /admin/words/{id}", h.Word.Update)
	mux.HandleFunc("DELETE /admin/words/{id}", h.Word.Delete)

	mux.HandleFunc("GET /admin/books", h.Book.List)
	mux.HandleFunc("GET /admin/books/{id}", h.Book.Get)

	return middleware.Admin(logger)(mux)
}
