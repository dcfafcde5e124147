package commands

import (
	"context"
	"log/slog"

	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/pkg/errs"
)

// ProcessImportBatchesCommandHandler is the background side of imports. It
// takes pending batches oldest first and advances each one record at a
// time: the created order and the moved cursor commit together, so a batch
// interrupted between records resumes without duplicating orders.
//
// A record the domain rejects is counted in a second transaction after the
// first one is rolled back. Storage faults are returned instead, whether they
// hit the record or the batch; the batch then stays at its cursor and the
// next tick retries it.
type ProcessImportBatchesCommandHandler struct {
	uowFactory ImportUoWFactory
	importer   recordImporter
	logger     *slog.Logger
}

func NewProcessImportBatchesCommandHandler(uowFactory ImportUoWFactory, logger *slog.Logger) ProcessImportBatchesCommandHandler {
	return ProcessImportBatchesCommandHandler{
		uowFactory: uowFactory,
		importer:   newRecordImporter(logger),
		logger:     logger.With("component", "import_processor"),
	}
}

func (h ProcessImportBatchesCommandHandler) Handle(ctx context.Context, cmd ProcessImportBatchesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	ids, err := h.uowFactory.Create().ImportBatchRepository().ListPending(ctx, cmd.Limit())
	if err != nil {
		return err
	}

	for _, id := range ids {
		if err = h.processBatch(ctx, id); err != nil {
			return err
		}
	}

	return nil
}

func (h ProcessImportBatchesCommandHandler) processBatch(ctx context.Context, batchID kernel.UUID) error {
	for {
		// records are never interrupted; a stop request is honoured between them
		if err := ctx.Err(); err != nil {
			return err
		}

		st, err := h.next(ctx, batchID)
		if err != nil {
			return err
		}

		if st.failure != nil {
			if err = h.recordFailure(ctx, batchID, st.index, st.failure); err != nil {
				return err
			}
			continue
		}

		if st.done {
			h.logger.InfoContext(ctx, "Import batch completed", "batch_id", batchID.String())
			return nil
		}
	}
}

// step is the outcome of one attempt on a batch.
type step struct {
	index   int
	failure error
	done    bool
}

func (h ProcessImportBatchesCommandHandler) next(ctx context.Context, batchID kernel.UUID) (step, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return step{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	batchRepo := uow.ImportBatchRepository()

	batch, err := batchRepo.Get(ctx, batchID)
	if err != nil {
		return step{}, err
	}

	if !batch.HasNext() {
		return step{index: batch.Cursor(), done: true}, nil
	}

	idx, recordErr := h.importer.importNext(ctx, uow, batch)
	if recordErr != nil {
		if !errs.IsDomain(recordErr) {
			return step{}, recordErr
		}
		return step{index: idx, failure: recordErr}, nil
	}

	if err = batch.Succeed(); err != nil {
		return step{}, err
	}

	if err = batchRepo.Update(ctx, batch); err != nil {
		return step{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return step{}, err
	}

	return step{index: idx, done: !batch.HasNext()}, nil
}

func (h ProcessImportBatchesCommandHandler) recordFailure(
	ctx context.Context,
	batchID kernel.UUID,
	idx int,
	cause error,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	batchRepo := uow.ImportBatchRepository()

	batch, err := batchRepo.Get(ctx, batchID)
	if err != nil {
		return err
	}

	// another worker got here first
	if batch.Cursor() != idx {
		return nil
	}

	if err = h.importer.fail(ctx, batch, idx, cause); err != nil {
		return err
	}

	if err = batchRepo.Update(ctx, batch); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
