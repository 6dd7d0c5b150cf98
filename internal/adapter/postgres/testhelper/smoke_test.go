package testhelper

import (
	"context"
	"testing"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	book := SeedBook(t, pool)
	word := SeedWord(t, pool, UniqueHeadword("smoke"), &book.ID)

	var headword string
	err := pool.QueryRow(
		context.Background(),
		`SELECT headword FROM words WHERE id = $1 AND book_id = $2`,
		word.ID, book.ID,
	).Scan(&headword)
	if err != nil {
		t.Fatalf("expected word in DB, got error: %v", err)
	}

	if headword != word.Headword {
		t.Fatalf("expected headword %q, got %q", word.Headword, headword)
	}
}
