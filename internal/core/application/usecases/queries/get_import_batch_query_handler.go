package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"vendorportal/internal/core/domain/model/importbatch"
	"vendorportal/internal/pkg/errs"
	"vendorportal/internal/pkg/result"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ImportFailureResponse struct {
	Index  int    `json:"recordIndex"`
	Kind   string `json:"kind"`
	Reason string `json:"reason"`
}

type ImportBatchResponse struct {
	ID             string                  `json:"id"`
	SubmittedBy    string                  `json:"submittedBy"`
	Status         string                  `json:"status"`
	Total          int                     `json:"total"`
	Processed      int                     `json:"processed"`
	SucceededCount int                     `json:"succeededCount"`
	Failures       []ImportFailureResponse `json:"failures"`
	SubmittedAt    time.Time               `json:"submittedAt"`
	CompletedAt    *time.Time              `json:"completedAt,omitempty"`
}

type batchRow struct {
	ID          uuid.UUID    `db:"id"`
	SubmittedBy uuid.UUID    `db:"submitted_by"`
	Status      int          `db:"status"`
	Total       int          `db:"total"`
	NextRecord  int          `db:"next_record"`
	Succeeded   int          `db:"succeeded"`
	SubmittedAt time.Time    `db:"submitted_at"`
	CompletedAt sql.NullTime `db:"completed_at"`
}

type failureRow struct {
	Index  int    `db:"record_index"`
	Kind   string `db:"kind"`
	Reason string `db:"reason"`
}

type GetImportBatchQueryHandler struct {
	db *sqlx.DB
}

func NewGetImportBatchQueryHandler(db *sqlx.DB) GetImportBatchQueryHandler {
	return GetImportBatchQueryHandler{db: db}
}

// Handle reports progress of a queued import. A batch still being processed
// shows the records handled so far.
func (h GetImportBatchQueryHandler) Handle(
	ctx context.Context,
	query GetImportBatchQuery,
) (result.Envelope[ImportBatchResponse], error) {
	if err := query.Validate(); err != nil {
		return result.Envelope[ImportBatchResponse]{}, err
	}

	batch, err := h.batch(ctx, query)
	return result.Wrap("import batch", batch, err)
}

func (h GetImportBatchQueryHandler) batch(ctx context.Context, query GetImportBatchQuery) (ImportBatchResponse, error) {
	batchID := query.BatchID().String()

	var row batchRow
	err := h.db.GetContext(ctx, &row, `
		SELECT id, submitted_by, status, total, next_record, succeeded, submitted_at, completed_at
		FROM import_batches
		WHERE id = $1`, batchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ImportBatchResponse{}, errs.NewObjectNotFoundError("batchID", batchID)
		}
		return ImportBatchResponse{}, err
	}

	failures := make([]failureRow, 0)
	err = h.db.SelectContext(ctx, &failures, `
		SELECT record_index, kind, reason
		FROM import_failures
		WHERE batch_id = $1
		ORDER BY record_index`, batchID)
	if err != nil {
		return ImportBatchResponse{}, err
	}

	resp := ImportBatchResponse{
		ID:             row.ID.String(),
		SubmittedBy:    row.SubmittedBy.String(),
		Status:         importbatch.Status(row.Status).String(),
		Total:          row.Total,
		Processed:      row.NextRecord,
		SucceededCount: row.Succeeded,
		Failures:       make([]ImportFailureResponse, 0, len(failures)),
		SubmittedAt:    row.SubmittedAt.UTC(),
	}
	if row.CompletedAt.Valid {
		at := row.CompletedAt.Time.UTC()
		resp.CompletedAt = &at
	}
	for _, f := range failures {
		resp.Failures = append(resp.Failures, ImportFailureResponse{Index: f.Index, Kind: f.Kind, Reason: f.Reason})
	}

	return resp, nil
}
