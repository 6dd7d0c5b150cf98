package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordbook-admin/internal/domain"
)

type bookReaderMock struct {
	GetByIDFunc func(ctx context.Context, id string) (*domain.Book, error)
	books       []domain.Book
	err         error
}

func (m *bookReaderMock) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
}

func (m *bookReaderMock) List(context.Context) ([]domain.Book, error) { return m.books, m.err }

func TestBookList(t *testing.T) {
	t.Parallel()

	h := NewBookHandler(&bookReaderMock{books: []domain.Book{{ID: "CET4", Name: "CET4"}}}, slog.Default())

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/admin/books", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []bookResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "CET4", resp[0].ID)
}

func TestBookList_StoreError(t *testing.T) {
	t.Parallel()

	h := NewBookHandler(&bookReaderMock{err: errors.New("connection refused")}, slog.Default())

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/admin/books", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestBookGet(t *testing.T) {
	t.Parallel()

	var gotID string
	h := NewBookHandler(&bookReaderMock{
		GetByIDFunc: func(_ context.Context, id string) (*domain.Book, error) {
			gotID = id
			return &domain.Book{ID: id, Name: id}, nil
		},
	}, slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/admin/books/CET4_1", nil)
	req.SetPathValue("id", "CET4_1")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "CET4_1", gotID)
	var resp bookResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "CET4_1", resp.Name)
}

func TestBookGet_NotFound(t *testing.T) {
	t.Parallel()

	h := NewBookHandler(&bookReaderMock{}, slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/admin/books/missing", nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
