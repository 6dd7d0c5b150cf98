package word

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordbook-admin/internal/domain"
	"github.com/heartmarshall/wordbook-admin/internal/service/wordimport"
)

// Create validates raw and stores it as a new word. It returns the stored row.
func (s *Service) Create(ctx context.Context, raw json.RawMessage) (*domain.Word, error) {
	w, err := normalize(raw)
	if err != nil {
		return nil, err
	}

	var created *domain.Word
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.ensureBook(ctx, w.BookID); err != nil {
			return err
		}

		id, err := s.words.Create(ctx, w)
		if err != nil {
			return fmt.Errorf("create word: %w", err)
		}

		created, err = s.words.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "word created",
		slog.String("word_id", created.ID.String()),
		slog.String("headword", created.Headword),
	)
	return created, nil
}

// Update replaces the word id with raw, nested graph included.
func (s *Service) Update(ctx context.Context, id uuid.UUID, raw json.RawMessage) (*domain.Word, error) {
	w, err := normalize(raw)
	if err != nil {
		return nil, err
	}

	var updated *domain.Word
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.ensureBook(ctx, w.BookID); err != nil {
			return err
		}

		if err := s.words.Replace(ctx, id, w); err != nil {
			return fmt.Errorf("replace word: %w", err)
		}

		updated, err = s.words.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "word updated", slog.String("word_id", id.String()))
	return updated, nil
}

// Delete removes the word with its nested graph.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.words.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete word: %w", err)
	}

	s.log.InfoContext(ctx, "word deleted", slog.String("word_id", id.String()))
	return nil
}

func (s *Service) ensureBook(ctx context.Context, bookID *string) error {
	if bookID == nil {
		return nil
	}
	if _, err := s.books.CreateMissing(ctx, []string{*bookID}); err != nil {
		return fmt.Errorf("provision book %s: %w", *bookID, err)
	}
	return nil
}

// normalize accepts both the canonical and the legacy export shape. When both
// reject raw, the strict field issues are returned as *domain.ValidationError.
func normalize(raw json.RawMessage) (domain.NormalizedWord, error) {
	w, issues := wordimport.Validate(raw)
	if len(issues) == 0 {
		return w, nil
	}

	if lw, err := wordimport.NormalizeLegacy(raw); err == nil {
		return lw, nil
	}

	return domain.NormalizedWord{}, domain.NewValidationErrors(issues)
}
