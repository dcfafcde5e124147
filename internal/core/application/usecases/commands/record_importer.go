package commands

import (
	"context"
	"log/slog"

	"vendorportal/internal/core/domain/model/importbatch"
	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/pkg/errs"
)

// recordImporter is the per-record algorithm shared by synchronous imports
// and the background processor: decode the record at the batch cursor,
// create its order, and on failure log it and count it against that index
// only.
type recordImporter struct {
	logger *slog.Logger
}

func newRecordImporter(logger *slog.Logger) recordImporter {
	return recordImporter{logger: logger.With("component", "order_import")}
}

// importNext creates the order for the record at the cursor through repos.
// It does not move the cursor; the returned error belongs to that record.
func (i recordImporter) importNext(ctx context.Context, repos tradeRepos, batch *importbatch.Batch) (int, error) {
	idx, rec, err := batch.Next()
	if err != nil {
		return idx, err
	}

	lines := make([]LineInput, 0, len(rec.Lines))
	for _, l := range rec.Lines {
		lines = append(lines, LineInput{MaterialID: l.MaterialID, Quantity: l.Quantity, Price: l.Price})
	}

	_, err = createOrder(ctx, repos, orderDraft{
		orderID:    kernel.NewUUID(),
		actor:      kernel.SystemActor(batch.SubmittedBy()),
		kind:       rec.Type,
		customerID: rec.CustomerID,
		supplierID: rec.SupplierID,
		lines:      lines,
	})
	return idx, err
}

// fail records cause against the record at the cursor. Faults outside the
// domain family are logged with full context.
func (i recordImporter) fail(ctx context.Context, batch *importbatch.Batch, idx int, cause error) error {
	kind := errs.KindOf(cause)
	if kind == errs.KindUnexpectedFailure {
		i.logger.ErrorContext(ctx, "Import record failed unexpectedly",
			"batch_id", batch.ID().String(),
			"record_index", idx,
			"submitted_by", batch.SubmittedBy().String(),
			"error", cause,
		)
	} else {
		i.logger.DebugContext(ctx, "Import record rejected",
			"batch_id", batch.ID().String(),
			"record_index", idx,
			"kind", string(kind),
			"error", cause,
		)
	}
	return batch.Fail(cause)
}
