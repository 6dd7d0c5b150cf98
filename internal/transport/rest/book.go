package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/wordbook-admin/internal/domain"
)

type bookReader interface {
	GetByID(ctx context.Context, id string) (*domain.Book, error)
	List(ctx context.Context) ([]domain.Book, error)
}

// BookHandler serves the read-only book endpoints. Books are created by
// imports and word edits, never directly.
type BookHandler struct {
	books bookReader
	log   *slog.Logger
}

// NewBookHandler creates a BookHandler.
func NewBookHandler(books bookReader, logger *slog.Logger) *BookHandler {
	return &BookHandler{books: books, log: logger.With("handler", "book")}
}

type bookResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// List handles GET /admin/books.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.books.List(r.Context())
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	resp := make([]bookResponse, len(books))
	for i, b := range books {
		resp[i] = toBookResponse(b)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /admin/books/{id}.
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	book, err := h.books.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toBookResponse(*book))
}

func toBookResponse(b domain.Book) bookResponse {
	return bookResponse{ID: b.ID, Name: b.Name, CreatedAt: b.CreatedAt}
}
