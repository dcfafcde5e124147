package importbatch

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/pkg/errs"
	"vendorportal/internal/pkg/guard"
)

var ErrBatchIsNotConstructed = errors.New("Batch must be created via NewBatch constructor")

// Failure is the outcome of one record that did not become an order.
type Failure struct {
	Index  int
	Kind   errs.Kind
	Reason string
}

// Result summarizes a batch: how many records became orders and which did not.
type Result struct {
	Total          int
	SucceededCount int
	Failures       []Failure
}

// Batch is a submitted import payload and the progress made on it.
//
// Records are processed strictly in order; cursor is the index of the next
// one. Every record before the cursor is counted either as a success or as
// exactly one Failure, so a batch resumed after an interruption continues
// where it stopped.
type Batch struct {
	id          kernel.UUID
	submittedBy kernel.UUID
	payload     []byte
	records     []json.RawMessage
	status      Status
	cursor      int
	succeeded   int
	failures    []Failure
	submittedAt time.Time
	completedAt *time.Time
	guard       guard.ConstructorGuard
}

// NewBatch parses payload and creates a Pending batch. A payload that cannot
// be split into records is rejected as a whole with MalformedPayload.
func NewBatch(id, submittedBy kernel.UUID, payload []byte) (*Batch, error) {
	if err := errors.Join(
		wrapRequired("batchID", id.Validate()),
		wrapRequired("submittedBy", submittedBy.Validate()),
	); err != nil {
		return nil, err
	}

	records, err := SplitPayload(payload)
	if err != nil {
		return nil, err
	}

	return &Batch{
		id:          id,
		submittedBy: submittedBy,
		payload:     slices.Clone(payload),
		records:     records,
		status:      Pending,
		submittedAt: time.Now().UTC(),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreBatch rebuilds a stored batch, re-splitting its payload.
func RestoreBatch(
	id, submittedBy kernel.UUID,
	payload []byte,
	status Status,
	cursor, succeeded int,
	failures []Failure,
	submittedAt time.Time,
	completedAt *time.Time,
) (*Batch, error) {
	if err := errors.Join(
		wrapRequired("batchID", id.Validate()),
		wrapRequired("submittedBy", submittedBy.Validate()),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	records, err := SplitPayload(payload)
	if err != nil {
		return nil, err
	}

	if cursor < 0 || cursor > len(records) {
		return nil, errs.NewValueIsOutOfRangeError("cursor", cursor, 0, len(records))
	}
	if succeeded+len(failures) != cursor {
		return nil, errs.NewValueIsInvalidErrorWithCause("cursor",
			fmt.Errorf("%d succeeded and %d failed records do not add up to cursor %d", succeeded, len(failures), cursor))
	}
	if (status == Completed) != (cursor == len(records)) {
		return nil, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s batch has processed %d of %d records", status, cursor, len(records)))
	}

	return &Batch{
		id:          id,
		submittedBy: submittedBy,
		payload:     slices.Clone(payload),
		records:     records,
		status:      status,
		cursor:      cursor,
		succeeded:   succeeded,
		failures:    slices.Clone(failures),
		submittedAt: submittedAt,
		completedAt: completedAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (b *Batch) Validate() error {
	if b == nil {
		return ErrBatchIsNotConstructed
	}
	return b.guard.Validate(ErrBatchIsNotConstructed)
}

func (b *Batch) ID() kernel.UUID {
	return b.id
}

func (b *Batch) SubmittedBy() kernel.UUID {
	return b.submittedBy
}

func (b *Batch) Payload() []byte {
	return slices.Clone(b.payload)
}

func (b *Batch) Status() Status {
	return b.status
}

func (b *Batch) Cursor() int {
	return b.cursor
}

func (b *Batch) Total() int {
	return len(b.records)
}

func (b *Batch) SubmittedAt() time.Time {
	return b.submittedAt
}

func (b *Batch) CompletedAt() *time.Time {
	if b.completedAt == nil {
		return nil
	}
	at := *b.completedAt
	return &at
}

// HasNext reports whether records remain to be processed.
func (b *Batch) HasNext() bool {
	return b.cursor < len(b.records)
}

// Next decodes the record at the cursor. A decoding error belongs to that
// record only and is reported back through Fail.
func (b *Batch) Next() (int, OrderRecord, error) {
	if !b.HasNext() {
		return b.cursor, OrderRecord{}, errs.NewInvalidTransitionError("import batch", b.status.String(), "Next", kernel.System.String())
	}
	rec, err := DecodeRecord(b.records[b.cursor])
	return b.cursor, rec, err
}

// Succeed counts the record at the cursor as a created order.
func (b *Batch) Succeed() error {
	if err := b.advance(); err != nil {
		return err
	}
	b.succeeded++
	b.completeIfDone()
	return nil
}

// Fail records the reason the record at the cursor did not become an order.
func (b *Batch) Fail(cause error) error {
	if cause == nil {
		return errs.NewValueIsRequiredError("cause")
	}
	if err := b.advance(); err != nil {
		return err
	}
	b.failures = append(b.failures, Failure{
		Index:  b.cursor - 1,
		Kind:   errs.KindOf(cause),
		Reason: reason(cause),
	})
	b.completeIfDone()
	return nil
}

func (b *Batch) Result() Result {
	return Result{
		Total:          len(b.records),
		SucceededCount: b.succeeded,
		Failures:       slices.Clone(b.failures),
	}
}

func (b *Batch) advance() error {
	if !b.HasNext() {
		return errs.NewInvalidTransitionError("import batch", b.status.String(), "Advance", kernel.System.String())
	}
	b.cursor++
	return nil
}

func (b *Batch) completeIfDone() {
	if b.HasNext() {
		return
	}
	now := time.Now().UTC()
	b.status = Completed
	b.completedAt = &now
}

// reason joins every independent fault of cause into one line.
func reason(cause error) string {
	leaves := errs.Leaves(cause)
	parts := make([]string, 0, len(leaves))
	for _, l := range leaves {
		parts = append(parts, l.Error())
	}
	return strings.Join(parts, "; ")
}

func wrapRequired(param string, err error) error {
	if err == nil {
		return nil
	}
	return errs.NewValueIsRequiredErrorWithCause(param, err)
}
