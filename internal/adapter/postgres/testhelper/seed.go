package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/wordbook-admin/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// UniqueHeadword returns a headword that does not collide with other tests
// sharing the container.
func UniqueHeadword(prefix string) string {
	return prefix + "-" + uniqueSuffix()
}

// SeedBook creates a book with a unique id. Name equals the id, as in import
// provisioning.
func SeedBook(t *testing.T, pool *pgxpool.Pool) domain.Book {
	t.Helper()

	id := "book-" + uniqueSuffix()
	book := domain.Book{
		ID:        id,
		Name:      id,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO books (id, name, created_at) VALUES ($1, $2, $3)`,
		book.ID, book.Name, book.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedBook: %v", err)
	}

	return book
}

// SeedWord inserts a bare word row (no nested graph) and returns it.
// bookID may be nil.
func SeedWord(t *testing.T, pool *pgxpool.Pool, headword string, bookID *string) domain.Word {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	audio := domain.DeriveAudioURLs(headword)
	word := domain.Word{
		ID:        uuid.New(),
		Headword:  headword,
		BookID:    bookID,
		AudioUS:   audio.US,
		AudioUK:   audio.UK,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO words (id, headword, book_id, audio_us, audio_uk, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		word.ID, word.Headword, word.BookID, word.AudioUS, word.AudioUK, word.CreatedAt, word.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedWord: %v", err)
	}

	return word
}

// CountRows returns the number of rows in table matching the given word id.
// table must be a nested word table carrying a word_id column.
func CountRows(t *testing.T, pool *pgxpool.Pool, table string, wordID uuid.UUID) int {
	t.Helper()

	var n int
	err := pool.QueryRow(context.Background(),
		`SELECT count(*) FROM `+table+` WHERE word_id = $1`, wordID,
	).Scan(&n)
	if err != nil {
		t.Fatalf("testhelper: CountRows %s: %v", table, err)
	}
	return n
}
