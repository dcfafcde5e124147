package commands

import (
	"context"

	"vendorportal/internal/core/domain/model/importbatch"
	"vendorportal/internal/pkg/result"
)

// SubmitImportBatchCommandHandler validates a payload as a whole and queues
// it as a Pending batch. Records are not looked at until the processor runs.
type SubmitImportBatchCommandHandler struct {
	uowFactory ImportUoWFactory
}

func NewSubmitImportBatchCommandHandler(uowFactory ImportUoWFactory) SubmitImportBatchCommandHandler {
	return SubmitImportBatchCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h SubmitImportBatchCommandHandler) Handle(
	ctx context.Context,
	cmd SubmitImportBatchCommand,
) (result.Envelope[BatchResponse], error) {
	if err := cmd.Validate(); err != nil {
		return result.Envelope[BatchResponse]{}, err
	}

	b, err := h.submit(ctx, cmd)
	return reply("import batch queued", b, err, newBatchResponse)
}

func (h SubmitImportBatchCommandHandler) submit(ctx context.Context, cmd SubmitImportBatchCommand) (*importbatch.Batch, error) {
	batch, err := importbatch.NewBatch(cmd.BatchID(), cmd.SubmittedBy(), cmd.Payload())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ImportBatchRepository().Add(ctx, batch); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return batch, nil
}
