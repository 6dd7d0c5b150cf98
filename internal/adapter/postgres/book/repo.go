// Package book implements the Book repository using PostgreSQL.
// Books are provisioned on demand by imports; the id doubles as display name.
package book

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/heartmarshall/wordbook-admin/internal/adapter/postgres"
	"github.com/heartmarshall/wordbook-admin/internal/domain"
)

// Repo provides book persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new book repository. db is usually the pool; a transaction
// carried in ctx takes precedence.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type bookRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

func (r bookRow) toDomain() domain.Book {
	return domain.Book{ID: r.ID, Name: r.Name, CreatedAt: r.CreatedAt}
}

// FindExisting returns the subset of ids that already exist as books.
func (r *Repo) FindExisting(ctx context.Context, ids []string) (map[string]struct{}, error) {
	if len(ids) == 0 {
		return map[string]struct{}{}, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.db)
	rows, err := q.Query(ctx, `SELECT id FROM books WHERE id = ANY($1::text[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("find existing books: %w", err)
	}
	defer rows.Close()

	found := make(map[string]struct{}, len(ids))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan book id: %w", err)
		}
		found[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find existing books: %w", err)
	}

	return found, nil
}

// CreateMissing inserts one book per id (name = id). Ids that already exist,
// including ones created concurrently, are skipped via ON CONFLICT DO NOTHING.
// Returns the number of actually inserted rows.
func (r *Repo) CreateMissing(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	insert := postgres.Builder().
		Insert("books").
		Columns("id", "name")
	for _, id := range ids {
		insert = insert.Values(id, id)
	}
	insert = insert.Suffix("ON CONFLICT (id) DO NOTHING")

	sql, args, err := insert.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert books: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "book", ids[0])
	}

	return int(tag.RowsAffected()), nil
}

// GetByID returns a book by id.
// Returns domain.ErrNotFound if the book does not exist.
func (r *Repo) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	var row bookRow
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row,
		`SELECT id, name, created_at FROM books WHERE id = $1`, id)
	if err != nil {
		return nil, postgres.MapError(err, "book", id)
	}

	b := row.toDomain()
	return &b, nil
}

// List returns all books ordered by id.
// Returns an empty slice (not nil) when there are no books.
func (r *Repo) List(ctx context.Context) ([]domain.Book, error) {
	var rows []bookRow
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows,
		`SELECT id, name, created_at FROM books ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	books := make([]domain.Book, len(rows))
	for i, row := range rows {
		books[i] = row.toDomain()
	}

	return books, nil
}
