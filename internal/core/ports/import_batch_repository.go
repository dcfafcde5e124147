package ports

import (
	"context"

	"vendorportal/internal/core/domain/model/importbatch"
	"vendorportal/internal/core/domain/model/kernel"
)

// ImportBatchRepository stores submitted import batches and their progress.
type ImportBatchRepository interface {
	Add(ctx context.Context, aggregate *importbatch.Batch) error

	// Update stores the cursor, counters and failures of a batch.
	Update(ctx context.Context, aggregate *importbatch.Batch) error

	// Get loads and locks a batch.
	Get(ctx context.Context, id kernel.UUID) (*importbatch.Batch, error)

	// ListPending returns ids of at most limit Pending batches, oldest first.
	ListPending(ctx context.Context, limit int) ([]kernel.UUID, error)
}
