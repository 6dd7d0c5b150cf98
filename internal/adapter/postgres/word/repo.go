// Package word implements the Word Writer: persistence of one normalized word
// together with its nested graph (definitions, examples, synonym groups,
// phrases, related words, antonyms, exam sentences and exam questions).
//
// Writes never open their own transaction. Callers wrap them in
// postgres.TxManager.RunInTx so a word's graph becomes visible atomically.
package word

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/wordbook-admin/internal/adapter/postgres"
	"github.com/heartmarshall/wordbook-admin/internal/domain"
)

// Repo provides word persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new word repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

const findExistingSQL = `
SELECT w.headword, COALESCE(w.book_id, '')
FROM words w
JOIN unnest($1::text[], $2::text[]) AS k(headword, book_id)
  ON w.headword = k.headword AND COALESCE(w.book_id, '') = k.book_id`

// FindExisting returns the subset of keys already stored, in one query.
func (r *Repo) FindExisting(ctx context.Context, keys []domain.WordKey) (map[domain.WordKey]struct{}, error) {
	if len(keys) == 0 {
		return map[domain.WordKey]struct{}{}, nil
	}

	headwords := make([]string, len(keys))
	books := make([]string, len(keys))
	for i, k := range keys {
		headwords[i] = k.Headword
		books[i] = k.BookID
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, findExistingSQL, headwords, books)
	if err != nil {
		return nil, fmt.Errorf("find existing words: %w", err)
	}
	defer rows.Close()

	found := make(map[domain.WordKey]struct{})
	for rows.Next() {
		var k domain.WordKey
		if err := rows.Scan(&k.Headword, &k.BookID); err != nil {
			return nil, fmt.Errorf("scan word key: %w", err)
		}
		found[k] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find existing words: %w", err)
	}

	return found, nil
}

type wordRow struct {
	ID          uuid.UUID `db:"id"`
	Headword    string    `db:"headword"`
	Rank        *int      `db:"rank"`
	BookID      *string   `db:"book_id"`
	PhoneticUS  *string   `db:"phonetic_us"`
	PhoneticUK  *string   `db:"phonetic_uk"`
	AudioUS     string    `db:"audio_us"`
	AudioUK     string    `db:"audio_uk"`
	MemoryTip   *string   `db:"memory_tip"`
	Description *string   `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// GetByID returns the scalar fields of a word.
// Returns domain.ErrNotFound if the word does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	var row wordRow
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row,
		`SELECT id, headword, rank, book_id, phonetic_us, phonetic_uk, audio_us, audio_uk,
		        memory_tip, description, created_at, updated_at
		 FROM words WHERE id = $1`, id)
	if err != nil {
		return nil, postgres.MapError(err, "word", id)
	}

	return &domain.Word{
		ID:          row.ID,
		Headword:    row.Headword,
		Rank:        row.Rank,
		BookID:      row.BookID,
		PhoneticUS:  row.PhoneticUS,
		PhoneticUK:  row.PhoneticUK,
		AudioUS:     row.AudioUS,
		AudioUK:     row.AudioUK,
		MemoryTip:   row.MemoryTip,
		Description: row.Description,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts the word and its full nested graph and returns the new id.
func (r *Repo) Create(ctx context.Context, w domain.NormalizedWord) (uuid.UUID, error) {
	id := uuid.New()
	now := time.Now().UTC()
	audio := audioURLs(w)

	sql, args, err := postgres.Builder().
		Insert("words").
		Columns("id", "headword", "rank", "book_id", "phonetic_us", "phonetic_uk",
			"audio_us", "audio_uk", "memory_tip", "description", "created_at", "updated_at").
		Values(id, w.Headword, w.Rank, w.BookID, w.PhoneticUS, w.PhoneticUK,
			audio.US, audio.UK, w.MemoryTip, w.Description, now, now).
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("build insert word: %w", err)
	}

	batch := &pgx.Batch{}
	batch.Queue(sql, args...)
	queueGraph(batch, id, w)

	if err := r.sendBatch(ctx, batch, id); err != nil {
		return uuid.Nil, err
	}

	return id, nil
}

// Replace overwrites the word's scalar fields and swaps its nested graph for
// the one in w. Returns domain.ErrNotFound if the word does not exist.
func (r *Repo) Replace(ctx context.Context, id uuid.UUID, w domain.NormalizedWord) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var locked uuid.UUID
	if err := q.QueryRow(ctx, `SELECT id FROM words WHERE id = $1 FOR UPDATE`, id).Scan(&locked); err != nil {
		return postgres.MapError(err, "word", id)
	}

	audio := audioURLs(w)
	sql, args, err := postgres.Builder().
		Update("words").
		SetMap(map[string]any{
			"headword":    w.Headword,
			"rank":        w.Rank,
			"book_id":     w.BookID,
			"phonetic_us": w.PhoneticUS,
			"phonetic_uk": w.PhoneticUK,
			"audio_us":    audio.US,
			"audio_uk":    audio.UK,
			"memory_tip":  w.MemoryTip,
			"description": w.Description,
			"updated_at":  time.Now().UTC(),
		}).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update word: %w", err)
	}

	batch := &pgx.Batch{}
	for _, del := range deleteGraphSQL {
		batch.Queue(del, id)
	}
	batch.Queue(sql, args...)
	queueGraph(batch, id, w)

	return r.sendBatch(ctx, batch, id)
}

// Delete removes the word; nested rows go with it via ON DELETE CASCADE.
// Returns domain.ErrNotFound if the word does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := postgres.Builder().
		Delete("words").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete word: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "word", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("word %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// sendBatch executes every queued statement and stops at the first error.
func (r *Repo) sendBatch(ctx context.Context, batch *pgx.Batch, id uuid.UUID) error {
	results := postgres.QuerierFromCtx(ctx, r.db).SendBatch(ctx, batch)
	defer results.Close()

	for range batch.Len() {
		if _, err := results.Exec(); err != nil {
			return postgres.MapError(err, "word", id)
		}
	}

	return nil
}

func audioURLs(w domain.NormalizedWord) domain.AudioURLs {
	derived := domain.DeriveAudioURLs(w.Headword)
	if w.AudioUS != nil {
		derived.US = *w.AudioUS
	}
	if w.AudioUK != nil {
		derived.UK = *w.AudioUK
	}
	return derived
}
