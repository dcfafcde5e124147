package tender

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/core/domain/model/statemachine"
	"vendorportal/internal/pkg/errs"
	"vendorportal/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrBidIsNotConstructed     = errors.New("Bid must be created via NewBid constructor")
	ErrBidLineIsNotConstructed = errors.New("BidLine must be created via NewBidLine constructor")
	ErrBidLinesAreRequired     = errs.NewValueIsRequiredError("bid lines")
)

// BidLine is a supplier's offer for one material.
type BidLine struct {
	id         kernel.UUID
	materialID kernel.UUID
	quantity   decimal.Decimal
	price      decimal.Decimal
	status     BidLineStatus
	guard      guard.ConstructorGuard
}

// NewBidLine creates a Pending bid line.
func NewBidLine(id, materialID kernel.UUID, quantity, price decimal.Decimal) (*BidLine, error) {
	return RestoreBidLine(id, materialID, quantity, price, BidLinePending)
}

// RestoreBidLine rebuilds a bid line loaded from storage.
func RestoreBidLine(id, materialID kernel.UUID, quantity, price decimal.Decimal, status BidLineStatus) (*BidLine, error) {
	var quantityErr, priceErr, materialErr error
	if !quantity.IsPositive() {
		quantityErr = errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%s is not greater than 0", quantity))
	}
	if price.IsNegative() {
		priceErr = errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", price))
	}
	if err := materialID.Validate(); err != nil {
		materialErr = errs.NewValueIsRequiredErrorWithCause("materialID", err)
	}

	if err := errors.Join(id.Validate(), materialErr, quantityErr, priceErr, status.Validate()); err != nil {
		return nil, err
	}

	return &BidLine{
		id:         id,
		materialID: materialID,
		quantity:   quantity,
		price:      price,
		status:     status,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (l *BidLine) Validate() error {
	if l == nil {
		return ErrBidLineIsNotConstructed
	}
	return l.guard.Validate(ErrBidLineIsNotConstructed)
}

func (l *BidLine) ID() kernel.UUID {
	return l.id
}

func (l *BidLine) MaterialID() kernel.UUID {
	return l.materialID
}

func (l *BidLine) Quantity() decimal.Decimal {
	return l.quantity
}

func (l *BidLine) Price() decimal.Decimal {
	return l.price
}

func (l *BidLine) Status() BidLineStatus {
	return l.status
}

func (l *BidLine) review(approve bool) error {
	action := statemachine.Reject
	if approve {
		action = statemachine.Approve
	}

	next, err := bidLineStatusTable.Next(l.status, action, kernel.Customer)
	if err != nil {
		return err
	}

	l.status = next
	return nil
}

// Bid is a supplier's answer to a tender. Bids are owned by their Tender
// and change only through it.
type Bid struct {
	id          kernel.UUID
	tenderID    kernel.UUID
	supplierID  kernel.UUID
	status      BidStatus
	lines       []*BidLine
	submittedAt time.Time
	guard       guard.ConstructorGuard
}

// NewBid creates a Draft bid.
func NewBid(id, tenderID, supplierID kernel.UUID, lines []*BidLine) (*Bid, error) {
	return RestoreBid(id, tenderID, supplierID, BidDraft, lines, time.Time{})
}

// RestoreBid rebuilds a bid loaded from storage.
func RestoreBid(
	id, tenderID, supplierID kernel.UUID,
	status BidStatus,
	lines []*BidLine,
	submittedAt time.Time,
) (*Bid, error) {
	var supplierErr error
	if err := supplierID.Validate(); err != nil {
		supplierErr = errs.NewValueIsRequiredErrorWithCause("supplierID", err)
	}

	if err := errors.Join(id.Validate(), tenderID.Validate(), supplierErr, status.Validate(), validateBidLines(lines)); err != nil {
		return nil, err
	}

	return &Bid{
		id:          id,
		tenderID:    tenderID,
		supplierID:  supplierID,
		status:      status,
		lines:       slices.Clone(lines),
		submittedAt: submittedAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func validateBidLines(lines []*BidLine) error {
	if len(lines) == 0 {
		return ErrBidLinesAreRequired
	}
	seen := make(map[kernel.UUID]struct{}, len(lines))
	for i, l := range lines {
		if err := l.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("bid lines[%d]", i), err)
		}
		if _, dup := seen[l.id]; dup {
			return errs.NewValueIsInvalidErrorWithCause("bid lines", fmt.Errorf("line %s appears twice", l.id))
		}
		seen[l.id] = struct{}{}
	}
	return nil
}

func (b *Bid) Validate() error {
	if b == nil {
		return ErrBidIsNotConstructed
	}
	return b.guard.Validate(ErrBidIsNotConstructed)
}

func (b *Bid) ID() kernel.UUID {
	return b.id
}

func (b *Bid) TenderID() kernel.UUID {
	return b.tenderID
}

func (b *Bid) SupplierID() kernel.UUID {
	return b.supplierID
}

func (b *Bid) Status() BidStatus {
	return b.status
}

// SubmittedAt is zero for Draft bids.
func (b *Bid) SubmittedAt() time.Time {
	return b.submittedAt
}

// Lines returns a copy of the bid lines in submission order.
func (b *Bid) Lines() []*BidLine {
	return slices.Clone(b.lines)
}

// AcceptedLines returns the lines the customer has not rejected.
func (b *Bid) AcceptedLines() []*BidLine {
	var out []*BidLine
	for _, l := range b.lines {
		if l.status != BidLineCustomerRejected {
			out = append(out, l)
		}
	}
	return out
}

func (b *Bid) line(lineID kernel.UUID) (*BidLine, error) {
	for _, l := range b.lines {
		if l.id.IsEqual(lineID) {
			return l, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("bidLineID", lineID.String())
}

func (b *Bid) transition(action statemachine.Action, role kernel.Role) error {
	next, err := bidStatusTable.Next(b.status, action, role)
	if err != nil {
		return err
	}
	b.status = next
	return nil
}
