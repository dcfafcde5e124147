package order

import (
	"fmt"
	"strings"

	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/core/domain/model/statemachine"
	"vendorportal/internal/pkg/errs"
)

// Status is the order-level state. Its integer values are wire-stable.
//
// Apart from Closed, the status is never set directly: it is derived from
// the lines by Fold after every line mutation. Approved orders are closed by
// either party; the System role archives Rejected orders as Closed.
type Status int

const (
	// Draft is reported for an order without lines. NewOrder never produces it.
	Draft Status = iota
	Created
	PendingApproval
	// SupplierApproved is a reserved wire code; Fold does not produce it.
	SupplierApproved
	Revised
	Approved
	Rejected
	Closed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Draft:            "Draft",
		Created:          "Created",
		PendingApproval:  "PendingApproval",
		SupplierApproved: "SupplierApproved",
		Revised:          "Revised",
		Approved:         "Approved",
		Rejected:         "Rejected",
		Closed:           "Closed",
	}
}

// Statuses lists every order status in wire order.
func Statuses() []Status {
	return []Status{Draft, Created, PendingApproval, SupplierApproved, Revised, Approved, Rejected, Closed}
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

var statusTable = statemachine.NewTable("order",
	statemachine.Rule[Status]{From: Approved, Action: statemachine.Close, Role: kernel.Customer, To: Closed},
	statemachine.Rule[Status]{From: Approved, Action: statemachine.Close, Role: kernel.Supplier, To: Closed},
	statemachine.Rule[Status]{From: Rejected, Action: statemachine.Close, Role: kernel.System, To: Closed},
)

// StatusTable returns the transitions an order status takes directly, which
// is closing. Every other change comes from Fold.
func StatusTable() *statemachine.Table[Status] {
	return statusTable
}

// Fold derives the order status from the current state of its lines:
//   - no lines: Draft
//   - any line Rejected: Rejected
//   - every line Approved: Approved
//   - any line revised at least once: Revised
//   - some lines Approved, the rest untouched: PendingApproval
//   - otherwise: Created
func Fold(lines []*Line) Status {
	if len(lines) == 0 {
		return Draft
	}

	approved, revised := 0, false
	for _, l := range lines {
		switch l.status {
		case LineRejected:
			return Rejected
		case LineApproved:
			approved++
		}
		if l.revisionCount > 0 {
			revised = true
		}
	}

	switch {
	case approved == len(lines):
		return Approved
	case revised:
		return Revised
	case approved > 0:
		return PendingApproval
	default:
		return Created
	}
}

// Type distinguishes purchase orders from sale orders.
type Type int

const (
	TypeUnknown Type = iota
	Purchase
	Sale
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown: "Unknown",
		Purchase:    "Purchase",
		Sale:        "Sale",
	}
}

func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "Unknown"
}

func (t Type) Validate() error {
	if t != Purchase && t != Sale {
		return errs.NewValueIsInvalidErrorWithCause("order type is invalid", fmt.Errorf("%d is not a valid order type", t))
	}
	return nil
}

// TypeFromString parses "Purchase" or "Sale", ignoring case.
func TypeFromString(s string) (Type, error) {
	switch {
	case strings.EqualFold(s, Purchase.String()):
		return Purchase, nil
	case strings.EqualFold(s, Sale.String()):
		return Sale, nil
	default:
		return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("order type is invalid", fmt.Errorf("%q is not Purchase or Sale", s))
	}
}
