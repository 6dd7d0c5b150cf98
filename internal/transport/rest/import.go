package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordbook-admin/internal/domain"
	"github.com/heartmarshall/wordbook-admin/internal/service/wordimport"
)

type importService interface {
	ImportWords(ctx context.Context, entries []json.RawMessage, opts wordimport.Options) (*wordimport.Summary, error)
	GetBatch(ctx context.Context, id uuid.UUID) (*wordimport.BatchReport, error)
}

// ImportHandler serves the bulk import endpoints.
type ImportHandler struct {
	svc          importService
	maxBodyBytes int64
	log          *slog.Logger
}

// NewImportHandler creates an ImportHandler. Request bodies above
// maxBodyBytes are rejected with 413.
func NewImportHandler(svc importService, maxBodyBytes int64, logger *slog.Logger) *ImportHandler {
	return &ImportHandler{
		svc:          svc,
		maxBodyBytes: maxBodyBytes,
		log:          logger.With("handler", "import"),
	}
}

type batchResponse struct {
	ID         string                     `json:"id"`
	SourceName *string                    `json:"sourceName"`
	Total      int                        `json:"total"`
	Success    int                        `json:"success"`
	Skipped    int                        `json:"skipped"`
	Failed     int                        `json:"failed"`
	Errors     []domain.ImportErrorDetail `json:"errors"`
	CreatedAt  time.Time                  `json:"createdAt"`
	FinishedAt *time.Time                 `json:"finishedAt"`
	Logs       []logResponse              `json:"logs"`
}

type logResponse struct {
	EntryIndex int     `json:"entryIndex"`
	Headword   string  `json:"headword"`
	Status     string  `json:"status"`
	Message    *string `json:"message,omitempty"`
	WordID     *string `json:"wordId,omitempty"`
}

// Import handles POST /admin/import?dry_run=true&source=<label>.
// The body is a JSON array of entries or {"entries": [...]}.
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	opts, err := importOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entries, err := wordimport.ParseEntries(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.svc.ImportWords(r.Context(), entries, opts)
	if err != nil {
		if errors.Is(err, wordimport.ErrTooManyEntries) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeDomainError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// Batch handles GET /admin/import/batches/{id}.
func (h *ImportHandler) Batch(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid batch id")
		return
	}

	report, err := h.svc.GetBatch(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toBatchResponse(report))
}

func importOptions(r *http.Request) (wordimport.Options, error) {
	var opts wordimport.Options
	q := r.URL.Query()

	if v := q.Get("dry_run"); v != "" {
		dry, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New("dry_run must be a boolean")
		}
		opts.DryRun = dry
	}
	if v := q.Get("source"); v != "" {
		opts.SourceName = &v
	}

	return opts, nil
}

func toBatchResponse(rep *wordimport.BatchReport) batchResponse {
	b := rep.Batch
	resp := batchResponse{
		ID:         b.ID.String(),
		SourceName: b.SourceName,
		Total:      b.Total,
		Success:    b.Success,
		Skipped:    b.Skipped,
		Failed:     b.Failed,
		Errors:     b.Errors,
		CreatedAt:  b.CreatedAt,
		FinishedAt: b.FinishedAt,
		Logs:       make([]logResponse, 0, len(rep.Logs)),
	}
	if resp.Errors == nil {
		resp.Errors = []domain.ImportErrorDetail{}
	}

	for _, l := range rep.Logs {
		lr := logResponse{
			EntryIndex: l.EntryIndex,
			Headword:   l.Headword,
			Status:     l.Status.String(),
			Message:    l.Message,
		}
		if l.WordID != nil {
			id := l.WordID.String()
			lr.WordID = &id
		}
		resp.Logs = append(resp.Logs, lr)
	}

	return resp
}
