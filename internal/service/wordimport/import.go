package wordimport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordbook-admin/internal/domain"
	"github.com/heartmarshall/wordbook-admin/pkg/ctxutil"
)

const reasonExists = "already exists in database, skipped"

// ImportWords runs the whole pipeline over entries, strictly in input order.
// Data problems are reported in the summary. An error is returned only for
// caller-contract violations (ErrTooManyEntries) and for store failures
// outside a single word's write, which would leave the audit trail
// incomplete.
func (s *Service) ImportWords(ctx context.Context, entries []json.RawMessage, opts Options) (*Summary, error) {
	if s.cfg.MaxEntries > 0 && len(entries) > s.cfg.MaxEntries {
		return nil, fmt.Errorf("%w: got %d, max %d", ErrTooManyEntries, len(entries), s.cfg.MaxEntries)
	}

	source := opts.SourceName
	if source == nil && s.cfg.DefaultSource != "" {
		source = &s.cfg.DefaultSource
	}

	summary := &Summary{
		Total:    len(entries),
		NewBooks: []string{},
		Errors:   []domain.ImportErrorDetail{},
	}

	// 1. Validate, falling back to the legacy shape.
	cands, skipped := s.normalizeAll(entries)

	// 2. Deduplicate within the payload.
	cands, dups := Deduplicate(cands)
	skipped = append(skipped, dups...)

	// 3. Provision referenced books.
	newBooks, err := s.provisionBooks(ctx, cands, opts.DryRun)
	if err != nil {
		return nil, err
	}
	summary.NewBooks = newBooks

	// 4. Drop words already stored.
	cands, existing, err := s.filterExisting(ctx, cands)
	if err != nil {
		return nil, err
	}
	skipped = append(skipped, existing...)

	summary.Skipped = len(skipped)
	summary.Errors = append(summary.Errors, skipped...)

	// 5. Open the batch and log every skip up front.
	var batchID uuid.UUID
	if !opts.DryRun {
		batchID = uuid.New()
		if err := s.audit.CreateBatch(ctx, domain.ImportBatch{
			ID:         batchID,
			SourceName: source,
			Total:      summary.Total,
			Skipped:    summary.Skipped,
		}); err != nil {
			return nil, fmt.Errorf("open import batch: %w", err)
		}
		if err := s.audit.CreateLogs(ctx, skipLogs(batchID, skipped)); err != nil {
			return nil, fmt.Errorf("write skip logs: %w", err)
		}
		summary.BatchID = &batchID
		ctx = ctxutil.WithBatchID(ctx, batchID)
	}

	// 6. Write phase, one transaction per word.
	failed := 0
	for _, c := range cands {
		if opts.DryRun {
			summary.Success++
			continue
		}

		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("import interrupted at entry %d: %w", c.Index, err)
		}

		wordID, err := s.writeOne(ctx, batchID, c)
		if err == nil {
			summary.Success++
			s.log.DebugContext(ctx, "entry imported",
				slog.Int("index", c.Index),
				slog.String("headword", c.Label),
				slog.String("word_id", wordID.String()),
			)
			continue
		}

		failed++
		reason := failureMessage(err)
		summary.Errors = append(summary.Errors, domain.ImportErrorDetail{
			Index:    c.Index,
			Headword: c.Label,
			Reason:   reason,
			Status:   domain.ImportStatusFailed,
		})
		s.log.DebugContext(ctx, "entry failed",
			slog.Int("index", c.Index),
			slog.String("headword", c.Label),
			slog.String("error", err.Error()),
		)

		if err := s.audit.CreateLog(ctx, domain.ImportLog{
			BatchID:    batchID,
			EntryIndex: c.Index,
			Headword:   c.Label,
			Status:     domain.ImportStatusFailed,
			Message:    &reason,
		}); err != nil {
			return nil, fmt.Errorf("write failure log for entry %d: %w", c.Index, err)
		}
	}

	// 7. Finalize.
	summary.Failed = summary.Total - summary.Success - summary.Skipped
	if summary.Failed != failed {
		s.log.WarnContext(ctx, "import counters diverged",
			slog.Int("tracked_failed", failed),
			slog.Int("recomputed_failed", summary.Failed),
		)
	}
	slices.SortStableFunc(summary.Errors, func(a, b domain.ImportErrorDetail) int { return a.Index - b.Index })

	if !opts.DryRun {
		if err := s.audit.FinishBatch(ctx, domain.ImportBatch{
			ID:         batchID,
			SourceName: source,
			Total:      summary.Total,
			Success:    summary.Success,
			Skipped:    summary.Skipped,
			Failed:     summary.Failed,
			Errors:     summary.Errors,
		}); err != nil {
			return nil, fmt.Errorf("finish import batch: %w", err)
		}
	}

	s.log.InfoContext(ctx, "import finished",
		slog.Bool("dry_run", opts.DryRun),
		slog.Int("total", summary.Total),
		slog.Int("success", summary.Success),
		slog.Int("skipped", summary.Skipped),
		slog.Int("failed", summary.Failed),
		slog.Int("new_books", len(summary.NewBooks)),
	)

	return summary, nil
}

// normalizeAll validates every entry, falling back to the legacy shape.
// Entries rejected by both are returned as skipped with the union of reasons.
func (s *Service) normalizeAll(entries []json.RawMessage) ([]Candidate, []domain.ImportErrorDetail) {
	var (
		cands    []Candidate
		rejected []domain.ImportErrorDetail
	)

	for i, raw := range entries {
		w, err := Normalize(raw)
		if err == nil {
			cands = append(cands, Candidate{Index: i, Label: w.Headword, Word: w})
			continue
		}
		rejected = append(rejected, domain.ImportErrorDetail{
			Index:    i,
			Headword: entryLabel(raw, i),
			Reason:   err.Error(),
			Status:   domain.ImportStatusSkipped,
		})
	}

	return cands, rejected
}

// Normalize runs Validate and, when it fails, NormalizeLegacy. If both fail
// the returned *RejectionError holds the de-duplicated union of reasons.
func Normalize(raw json.RawMessage) (domain.NormalizedWord, error) {
	w, issues := Validate(raw)
	if len(issues) == 0 {
		return w, nil
	}

	lw, err := NormalizeLegacy(raw)
	if err == nil {
		return lw, nil
	}

	reasons := formatIssues(issues)
	var rej *RejectionError
	if errors.As(err, &rej) {
		reasons = append(reasons, rej.Reasons...)
	} else {
		reasons = append(reasons, err.Error())
	}
	return domain.NormalizedWord{}, reject(uniqueStrings(reasons)...)
}

// provisionBooks makes sure every book referenced by cands exists. It
// returns the ids that were missing. A dry run only reports them.
func (s *Service) provisionBooks(ctx context.Context, cands []Candidate, dryRun bool) ([]string, error) {
	var ids []string
	seen := make(map[string]struct{})
	for _, c := range cands {
		if c.Word.BookID == nil {
			continue
		}
		id := *c.Word.BookID
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return []string{}, nil
	}

	existing, err := s.books.FindExisting(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("find existing books: %w", err)
	}

	missing := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := existing[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 || dryRun {
		return missing, nil
	}

	created, err := s.books.CreateMissing(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("provision books: %w", err)
	}
	s.log.InfoContext(ctx, "books provisioned",
		slog.Int("missing", len(missing)),
		slog.Int("created", created),
	)

	return missing, nil
}

// filterExisting drops candidates whose composite key is already stored,
// using a single lookup for the whole set.
func (s *Service) filterExisting(ctx context.Context, cands []Candidate) ([]Candidate, []domain.ImportErrorDetail, error) {
	if len(cands) == 0 {
		return nil, nil, nil
	}

	keys := make([]domain.WordKey, len(cands))
	for i, c := range cands {
		keys[i] = c.Word.Key()
	}

	existing, err := s.words.FindExisting(ctx, keys)
	if err != nil {
		return nil, nil, fmt.Errorf("find existing words: %w", err)
	}

	var (
		kept     []Candidate
		rejected []domain.ImportErrorDetail
	)
	for _, c := range cands {
		if _, ok := existing[c.Word.Key()]; ok {
			rejected = append(rejected, domain.ImportErrorDetail{
				Index:    c.Index,
				Headword: c.Label,
				Reason:   reasonExists,
				Status:   domain.ImportStatusSkipped,
			})
			continue
		}
		kept = append(kept, c)
	}

	return kept, rejected, nil
}

// writeOne stores one word and its success log in a single transaction.
func (s *Service) writeOne(ctx context.Context, batchID uuid.UUID, c Candidate) (uuid.UUID, error) {
	var wordID uuid.UUID
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		id, err := s.words.Create(ctx, c.Word)
		if err != nil {
			return err
		}
		wordID = id

		return s.audit.CreateLog(ctx, domain.ImportLog{
			BatchID:    batchID,
			EntryIndex: c.Index,
			Headword:   c.Label,
			Status:     domain.ImportStatusSuccess,
			WordID:     &id,
		})
	})
	return wordID, err
}

func skipLogs(batchID uuid.UUID, skipped []domain.ImportErrorDetail) []domain.ImportLog {
	logs := make([]domain.ImportLog, len(skipped))
	for i, d := range skipped {
		reason := d.Reason
		logs[i] = domain.ImportLog{
			BatchID:    batchID,
			EntryIndex: d.Index,
			Headword:   d.Headword,
			Status:     domain.ImportStatusSkipped,
			Message:    &reason,
		}
	}
	slices.SortStableFunc(logs, func(a, b domain.ImportLog) int { return a.EntryIndex - b.EntryIndex })
	return logs
}

// failureMessage turns a write error into the reason stored for the entry.
func failureMessage(err error) string {
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	var coded interface{ SQLState() string }
	if errors.As(err, &coded) && coded.SQLState() != "" {
		return fmt.Sprintf("database error (%s)", coded.SQLState())
	}
	return "unknown error"
}

func uniqueStrings(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
