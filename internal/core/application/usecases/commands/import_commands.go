package commands

import (
	"errors"
	"slices"

	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/pkg/errs"
	"vendorportal/internal/pkg/guard"
)

var (
	ErrImportCommandIsNotConstructed = errors.New("import command must be created via its New...Command constructor")
	ErrPayloadIsRequired             = errs.NewValueIsRequiredError("payload")
)

// ImportOrdersCommand imports a payload synchronously and reports the
// BatchResult to the caller.
type ImportOrdersCommand struct {
	submittedBy kernel.UUID
	payload     []byte

	guard guard.ConstructorGuard
}

func NewImportOrdersCommand(submittedBy kernel.UUID, payload []byte) (ImportOrdersCommand, error) {
	if err := errors.Join(requiredID("submittedBy", submittedBy), requiredPayload(payload)); err != nil {
		return ImportOrdersCommand{}, err
	}
	return ImportOrdersCommand{
		submittedBy: submittedBy,
		payload:     slices.Clone(payload),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ImportOrdersCommand) Validate() error {
	return c.guard.Validate(ErrImportCommandIsNotConstructed)
}

func (c ImportOrdersCommand) SubmittedBy() kernel.UUID {
	return c.submittedBy
}

func (c ImportOrdersCommand) Payload() []byte {
	return slices.Clone(c.payload)
}

// SubmitImportBatchCommand queues a payload for the background processor.
type SubmitImportBatchCommand struct {
	ImportOrdersCommand
	batchID kernel.UUID
}

func NewSubmitImportBatchCommand(batchID, submittedBy kernel.UUID, payload []byte) (SubmitImportBatchCommand, error) {
	base, err := NewImportOrdersCommand(submittedBy, payload)
	if err = errors.Join(err, requiredID("batchID", batchID)); err != nil {
		return SubmitImportBatchCommand{}, err
	}
	return SubmitImportBatchCommand{ImportOrdersCommand: base, batchID: batchID}, nil
}

func (c SubmitImportBatchCommand) BatchID() kernel.UUID {
	return c.batchID
}

// ProcessImportBatchesCommand is one poller tick: work through at most
// limit pending batches.
type ProcessImportBatchesCommand struct {
	limit int

	guard guard.ConstructorGuard
}

func NewProcessImportBatchesCommand(limit int) (ProcessImportBatchesCommand, error) {
	if limit <= 0 {
		return ProcessImportBatchesCommand{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}
	return ProcessImportBatchesCommand{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (c ProcessImportBatchesCommand) Validate() error {
	return c.guard.Validate(ErrImportCommandIsNotConstructed)
}

func (c ProcessImportBatchesCommand) Limit() int {
	return c.limit
}

func requiredPayload(payload []byte) error {
	if len(payload) == 0 {
		return ErrPayloadIsRequired
	}
	return nil
}
