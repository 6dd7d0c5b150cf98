package wordimport

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordbook-admin/internal/config"
	"github.com/heartmarshall/wordbook-admin/internal/domain"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

type mockWordRepo struct {
	FindExistingFunc func(ctx context.Context, keys []domain.WordKey) (map[domain.WordKey]struct{}, error)
	CreateFunc       func(ctx context.Context, w domain.NormalizedWord) (uuid.UUID, error)

	mu      sync.Mutex
	created []domain.NormalizedWord
	lookups int
}

func (m *mockWordRepo) FindExisting(ctx context.Context, keys []domain.WordKey) (map[domain.WordKey]struct{}, error) {
	m.mu.Lock()
	m.lookups++
	m.mu.Unlock()
	if m.FindExistingFunc != nil {
		return m.FindExistingFunc(ctx, keys)
	}
	return map[domain.WordKey]struct{}{}, nil
}

func (m *mockWordRepo) Create(ctx context.Context, w domain.NormalizedWord) (uuid.UUID, error) {
	if m.CreateFunc != nil {
		id, err := m.CreateFunc(ctx, w)
		if err == nil {
			m.record(w)
		}
		return id, err
	}
	m.record(w)
	return uuid.New(), nil
}

func (m *mockWordRepo) record(w domain.NormalizedWord) {
	m.mu.Lock()
	m.created = append(m.created, w)
	m.mu.Unlock()
}

func (m *mockWordRepo) Created() []domain.NormalizedWord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.NormalizedWord(nil), m.created...)
}

type mockBookRepo struct {
	FindExistingFunc  func(ctx context.Context, ids []string) (map[string]struct{}, error)
	CreateMissingFunc func(ctx context.Context, ids []string) (int, error)

	createCalls [][]string
}

func (m *mockBookRepo) FindExisting(ctx context.Context, ids []string) (map[string]struct{}, error) {
	if m.FindExistingFunc != nil {
		return m.FindExistingFunc(ctx, ids)
	}
	return map[string]struct{}{}, nil
}

func (m *mockBookRepo) CreateMissing(ctx context.Context, ids []string) (int, error) {
	m.createCalls = append(m.createCalls, ids)
	if m.CreateMissingFunc != nil {
		return m.CreateMissingFunc(ctx, ids)
	}
	return len(ids), nil
}

type mockImportLogRepo struct {
	CreateBatchFunc func(ctx context.Context, b domain.ImportBatch) error
	FinishBatchFunc func(ctx context.Context, b domain.ImportBatch) error
	GetBatchFunc    func(ctx context.Context, id uuid.UUID) (*domain.ImportBatch, error)
	CreateLogFunc   func(ctx context.Context, l domain.ImportLog) error
	CreateLogsFunc  func(ctx context.Context, logs []domain.ImportLog) error
	ListLogsFunc    func(ctx context.Context, batchID uuid.UUID) ([]domain.ImportLog, error)

	mu       sync.Mutex
	batches  []domain.ImportBatch
	finished []domain.ImportBatch
	logs     []domain.ImportLog
}

func (m *mockImportLogRepo) CreateBatch(ctx context.Context, b domain.ImportBatch) error {
	m.mu.Lock()
	m.batches = append(m.batches, b)
	m.mu.Unlock()
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, b)
	}
	return nil
}

func (m *mockImportLogRepo) FinishBatch(ctx context.Context, b domain.ImportBatch) error {
	m.mu.Lock()
	m.finished = append(m.finished, b)
	m.mu.Unlock()
	if m.FinishBatchFunc != nil {
		return m.FinishBatchFunc(ctx, b)
	}
	return nil
}

func (m *mockImportLogRepo) GetBatch(ctx context.Context, id uuid.UUID) (*domain.ImportBatch, error) {
	if m.GetBatchFunc != nil {
		return m.GetBatchFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockImportLogRepo) CreateLog(ctx context.Context, l domain.ImportLog) error {
	if m.CreateLogFunc != nil {
		if err := m.CreateLogFunc(ctx, l); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.logs = append(m.logs, l)
	m.mu.Unlock()
	return nil
}

func (m *mockImportLogRepo) CreateLogs(ctx context.Context, logs []domain.ImportLog) error {
	if m.CreateLogsFunc != nil {
		if err := m.CreateLogsFunc(ctx, logs); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.logs = append(m.logs, logs...)
	m.mu.Unlock()
	return nil
}

func (m *mockImportLogRepo) ListLogs(ctx context.Context, batchID uuid.UUID) ([]domain.ImportLog, error) {
	if m.ListLogsFunc != nil {
		return m.ListLogsFunc(ctx, batchID)
	}
	return nil, nil
}

// Logs returns the logs written so far, keyed by entry index.
func (m *mockImportLogRepo) Logs() map[int]domain.ImportLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[int]domain.ImportLog, len(m.logs))
	for _, l := range m.logs {
		out[l.EntryIndex] = l
	}
	return out
}

type mockTxManager struct {
	RunInTxFunc func(ctx context.Context, fn func(context.Context) error) error
	calls       int
}

func (m *mockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	if m.RunInTxFunc != nil {
		return m.RunInTxFunc(ctx, fn)
	}
	return fn(ctx)
}

// ===========================================================================
// Helpers
// ===========================================================================

type testDeps struct {
	words *mockWordRepo
	books *mockBookRepo
	audit *mockImportLogRepo
	tx    *mockTxManager
}

func defaultCfg() config.ImportConfig {
	return config.ImportConfig{MaxEntries: 100}
}

func newTestService(cfg config.ImportConfig) (*Service, *testDeps) {
	deps := &testDeps{
		words: &mockWordRepo{},
		books: &mockBookRepo{},
		audit: &mockImportLogRepo{},
		tx:    &mockTxManager{},
	}
	svc := NewService(slog.Default(), deps.words, deps.books, deps.audit, deps.tx, cfg)
	return svc, deps
}

func ptrString(s string) *string { return &s }
func ptrInt(i int) *int          { return &i }
