// Package importlog persists the audit trail of imports: one batch row per
// non-dry-run invocation and one log row per processed entry.
package importlog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/wordbook-admin/internal/adapter/postgres"
	"github.com/heartmarshall/wordbook-admin/internal/domain"
)

// Repo provides import batch/log persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new import log repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Batches
// ---------------------------------------------------------------------------

// CreateBatch inserts the batch row. ID and Errors are taken from b; the
// final counters are written by FinishBatch.
func (r *Repo) CreateBatch(ctx context.Context, b domain.ImportBatch) error {
	errs, err := marshalErrors(b.Errors)
	if err != nil {
		return err
	}

	sql, args, err := postgres.Builder().
		Insert("import_batches").
		Columns("id", "source_name", "total", "success", "skipped", "failed", "errors").
		Values(b.ID, b.SourceName, b.Total, b.Success, b.Skipped, b.Failed, errs).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert import_batch: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "import_batch", b.ID)
	}
	return nil
}

// FinishBatch stores the final counters and error list and stamps finished_at.
// Returns domain.ErrNotFound if the batch does not exist.
func (r *Repo) FinishBatch(ctx context.Context, b domain.ImportBatch) error {
	errs, err := marshalErrors(b.Errors)
	if err != nil {
		return err
	}

	sql, args, err := postgres.Builder().
		Update("import_batches").
		Set("total", b.Total).
		Set("success", b.Success).
		Set("skipped", b.Skipped).
		Set("failed", b.Failed).
		Set("errors", errs).
		Set("finished_at", time.Now().UTC()).
		Where("id = ?", b.ID).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update import_batch: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "import_batch", b.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("import_batch %s: %w", b.ID, domain.ErrNotFound)
	}
	return nil
}

type batchRow struct {
	ID         uuid.UUID  `db:"id"`
	SourceName *string    `db:"source_name"`
	Total      int        `db:"total"`
	Success    int        `db:"success"`
	Skipped    int        `db:"skipped"`
	Failed     int        `db:"failed"`
	Errors     []byte     `db:"errors"`
	CreatedAt  time.Time  `db:"created_at"`
	FinishedAt *time.Time `db:"finished_at"`
}

// GetBatch returns a batch by id.
// Returns domain.ErrNotFound if the batch does not exist.
func (r *Repo) GetBatch(ctx context.Context, id uuid.UUID) (*domain.ImportBatch, error) {
	var row batchRow
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row,
		`SELECT id, source_name, total, success, skipped, failed, errors, created_at, finished_at
		 FROM import_batches WHERE id = $1`, id)
	if err != nil {
		return nil, postgres.MapError(err, "import_batch", id)
	}

	b := domain.ImportBatch{
		ID:         row.ID,
		SourceName: row.SourceName,
		Total:      row.Total,
		Success:    row.Success,
		Skipped:    row.Skipped,
		Failed:     row.Failed,
		CreatedAt:  row.CreatedAt,
		FinishedAt: row.FinishedAt,
	}
	if len(row.Errors) > 0 {
		if err := json.Unmarshal(row.Errors, &b.Errors); err != nil {
			return nil, fmt.Errorf("decode import_batch %s errors: %w", id, err)
		}
	}

	return &b, nil
}

// DeleteFinishedBefore removes batches finished before threshold together
// with their logs. Unfinished batches are never removed.
func (r *Repo) DeleteFinishedBefore(ctx context.Context, threshold time.Time) (int64, error) {
	sql, args, err := postgres.Builder().
		Delete("import_batches").
		Where(sq.Lt{"finished_at": threshold}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete import_batches: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("delete import_batches: %w", err)
	}
	return tag.RowsAffected(), nil
}

// CountOpen returns the number of batches that were never finished.
func (r *Repo) CountOpen(ctx context.Context) (int, error) {
	sql, args, err := postgres.Builder().
		Select("count(*)").
		From("import_batches").
		Where(sq.Eq{"finished_at": nil}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count open import_batches: %w", err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count open import_batches: %w", err)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Logs
// ---------------------------------------------------------------------------

const insertLogSQL = `INSERT INTO import_logs (id, batch_id, entry_index, headword, status, message, word_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

// CreateLog inserts one log row. A zero ID is replaced by a fresh one.
func (r *Repo) CreateLog(ctx context.Context, l domain.ImportLog) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}

	_, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, insertLogSQL,
		l.ID, l.BatchID, l.EntryIndex, l.Headword, string(l.Status), l.Message, l.WordID,
	)
	if err != nil {
		return postgres.MapError(err, "import_log", l.ID)
	}
	return nil
}

// CreateLogs inserts many log rows in one round trip using pgx.Batch.
func (r *Repo) CreateLogs(ctx context.Context, logs []domain.ImportLog) error {
	if len(logs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, l := range logs {
		if l.ID == uuid.Nil {
			l.ID = uuid.New()
		}
		batch.Queue(insertLogSQL,
			l.ID, l.BatchID, l.EntryIndex, l.Headword, string(l.Status), l.Message, l.WordID,
		)
	}

	results := postgres.QuerierFromCtx(ctx, r.db).SendBatch(ctx, batch)
	defer results.Close()

	for range logs {
		if _, err := results.Exec(); err != nil {
			return postgres.MapError(err, "import_log", logs[0].BatchID)
		}
	}

	return nil
}

type logRow struct {
	ID         uuid.UUID  `db:"id"`
	BatchID    uuid.UUID  `db:"batch_id"`
	EntryIndex int        `db:"entry_index"`
	Headword   string     `db:"headword"`
	Status     string     `db:"status"`
	Message    *string    `db:"message"`
	WordID     *uuid.UUID `db:"word_id"`
	CreatedAt  time.Time  `db:"created_at"`
}

// ListLogs returns the logs of a batch ordered by entry index.
// Returns an empty slice (not nil) when the batch has no logs.
func (r *Repo) ListLogs(ctx context.Context, batchID uuid.UUID) ([]domain.ImportLog, error) {
	var rows []logRow
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows,
		`SELECT id, batch_id, entry_index, headword, status, message, word_id, created_at
		 FROM import_logs WHERE batch_id = $1 ORDER BY entry_index, created_at`, batchID)
	if err != nil {
		return nil, fmt.Errorf("list import_logs: %w", err)
	}

	logs := make([]domain.ImportLog, len(rows))
	for i, row := range rows {
		logs[i] = domain.ImportLog{
			ID:         row.ID,
			BatchID:    row.BatchID,
			EntryIndex: row.EntryIndex,
			Headword:   row.Headword,
			Status:     domain.ImportStatus(row.Status),
			Message:    row.Message,
			WordID:     row.WordID,
			CreatedAt:  row.CreatedAt,
		}
	}

	return logs, nil
}

func marshalErrors(errs []domain.ImportErrorDetail) ([]byte, error) {
	if errs == nil {
		errs = []domain.ImportErrorDetail{}
	}
	b, err := json.Marshal(errs)
	if err != nil {
		return nil, fmt.Errorf("encode import errors: %w", err)
	}
	return b, nil
}
