package commands

import (
	"context"
	"log/slog"

	"vendorportal/internal/core/domain/model/importbatch"
	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/pkg/result"
)

// ImportOrdersCommandHandler runs an import payload to completion within the
// request. Each record gets its own transaction, so an order created for one
// record is never rolled back because a later record failed.
type ImportOrdersCommandHandler struct {
	uowFactory TradeUoWFactory
	importer   recordImporter
}

func NewImportOrdersCommandHandler(uowFactory TradeUoWFactory, logger *slog.Logger) ImportOrdersCommandHandler {
	return ImportOrdersCommandHandler{
		uowFactory: uowFactory,
		importer:   newRecordImporter(logger),
	}
}

func (h ImportOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd ImportOrdersCommand,
) (result.Envelope[BatchResultResponse], error) {
	if err := cmd.Validate(); err != nil {
		return result.Envelope[BatchResultResponse]{}, err
	}

	res, err := h.run(ctx, cmd)
	return reply("import finished", res, err, newBatchResultResponse)
}

func (h ImportOrdersCommandHandler) run(ctx context.Context, cmd ImportOrdersCommand) (importbatch.Result, error) {
	batch, err := importbatch.NewBatch(kernel.NewUUID(), cmd.SubmittedBy(), cmd.Payload())
	if err != nil {
		return importbatch.Result{}, err
	}

	for batch.HasNext() {
		if err = ctx.Err(); err != nil {
			return importbatch.Result{}, err
		}

		idx, recordErr := h.importOne(ctx, batch)
		if recordErr != nil {
			if err = h.importer.fail(ctx, batch, idx, recordErr); err != nil {
				return importbatch.Result{}, err
			}
			continue
		}

		if err = batch.Succeed(); err != nil {
			return importbatch.Result{}, err
		}
	}

	return batch.Result(), nil
}

func (h ImportOrdersCommandHandler) importOne(ctx context.Context, batch *importbatch.Batch) (int, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return batch.Cursor(), err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	idx, err := h.importer.importNext(ctx, uow, batch)
	if err != nil {
		return idx, err
	}

	return idx, uow.Commit(ctx)
}
