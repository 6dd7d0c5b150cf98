package wordimport

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// GetBatch returns a stored batch with its per-entry logs ordered by entry index.
func (s *Service) GetBatch(ctx context.Context, id uuid.UUID) (*BatchReport, error) {
	batch, err := s.audit.GetBatch(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get import batch: %w", err)
	}

	logs, err := s.audit.ListLogs(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list import logs: %w", err)
	}

	return &BatchReport{Batch: *batch, Logs: logs}, nil
}
