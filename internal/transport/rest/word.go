package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordbook-admin/internal/domain"
)

type wordService interface {
	Create(ctx context.Context, raw json.RawMessage) (*domain.Word, error)
	Update(ctx context.Context, id uuid.UUID, raw json.RawMessage) (*domain.Word, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// WordHandler serves single-word admin endpoints.
type WordHandler struct {
	svc          wordService
	maxBodyBytes int64
	log          *slog.Logger
}

// NewWordHandler creates a WordHandler.
func NewWordHandler(svc wordService, maxBodyBytes int64, logger *slog.Logger) *WordHandler {
	return &WordHandler{
		svc:          svc,
		maxBodyBytes: maxBodyBytes,
		log:          logger.With("handler", "word"),
	}
}

type wordResponse struct {
	ID          string    `json:"id"`
	Headword    string    `json:"headword"`
	Rank        *int      `json:"rank"`
	BookID      *string   `json:"bookId"`
	PhoneticUS  *string   `json:"phoneticUs"`
	PhoneticUK  *string   `json:"phoneticUk"`
	AudioUS     string    `json:"audioUs"`
	AudioUK     string    `json:"audioUk"`
	MemoryTip   *string   `json:"memoryTip"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Create handles POST /admin/words.
func (h *WordHandler) Create(w http.ResponseWriter, r *http.Request) {
	raw, ok := h.readBody(w, r)
	if !ok {
		return
	}

	word, err := h.svc.Create(r.Context(), raw)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toWordResponse(word))
}

// Update handles PUT /admin/words/{id}.
func (h *WordHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid word id")
		return
	}

	raw, ok := h.readBody(w, r)
	if !ok {
		return
	}

	word, err := h.svc.Update(r.Context(), id, raw)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toWordResponse(word))
}

// Delete handles DELETE /admin/words/{id}.
func (h *WordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid word id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *WordHandler) readBody(w http.ResponseWriter, r *http.Request) (json.RawMessage, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return nil, false
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	return json.RawMessage(body), true
}

func toWordResponse(w *domain.Word) wordResponse {
	return wordResponse{
		ID:          w.ID.String(),
		Headword:    w.Headword,
		Rank:        w.Rank,
		BookID:      w.BookID,
		PhoneticUS:  w.PhoneticUS,
		PhoneticUK:  w.PhoneticUK,
		AudioUS:     w.AudioUS,
		AudioUK:     w.AudioUK,
		MemoryTip:   w.MemoryTip,
		Description: w.Description,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}
