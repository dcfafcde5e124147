package order

import (
	"fmt"

	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/core/domain/model/statemachine"
	"vendorportal/internal/pkg/errs"
)

// LineStatus is the negotiation state of one order line. Values are wire-stable.
type LineStatus int

const (
	LinePending LineStatus = iota
	LineCustomerRevised
	LineSupplierRevised
	LineApproved
	LineRejected
)

func getLineStatusStrings() map[LineStatus]string {
	return map[LineStatus]string{
		LinePending:         "Pending",
		LineCustomerRevised: "CustomerRevised",
		LineSupplierRevised: "SupplierRevised",
		LineApproved:        "Approved",
		LineRejected:        "Rejected",
	}
}

// LineStatuses lists every line status in wire order.
func LineStatuses() []LineStatus {
	return []LineStatus{LinePending, LineCustomerRevised, LineSupplierRevised, LineApproved, LineRejected}
}

func (s LineStatus) Validate() error {
	if _, ok := getLineStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("line status is invalid", fmt.Errorf("%d is not a valid line status", s))
	}
	return nil
}

func (s LineStatus) String() string {
	if str, ok := getLineStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

type lineRule = statemachine.Rule[LineStatus]

// A fresh line is decided by the supplier. After a revision the counter-party
// decides. Rejected lines go back into negotiation through a revision.
var lineStatusTable = statemachine.NewTable("order line",
	lineRule{From: LinePending, Action: statemachine.Revise, Role: kernel.Customer, To: LineCustomerRevised},
	lineRule{From: LinePending, Action: statemachine.Revise, Role: kernel.Supplier, To: LineSupplierRevised},
	lineRule{From: LinePending, Action: statemachine.Approve, Role: kernel.Supplier, To: LineApproved},
	lineRule{From: LinePending, Action: statemachine.Reject, Role: kernel.Supplier, To: LineRejected},

	lineRule{From: LineCustomerRevised, Action: statemachine.Revise, Role: kernel.Supplier, To: LineSupplierRevised},
	lineRule{From: LineCustomerRevised, Action: statemachine.Approve, Role: kernel.Supplier, To: LineApproved},
	lineRule{From: LineCustomerRevised, Action: statemachine.Reject, Role: kernel.Supplier, To: LineRejected},

	lineRule{From: LineSupplierRevised, Action: statemachine.Revise, Role: kernel.Customer, To: LineCustomerRevised},
	lineRule{From: LineSupplierRevised, Action: statemachine.Approve, Role: kernel.Customer, To: LineApproved},
	lineRule{From: LineSupplierRevised, Action: statemachine.Reject, Role: kernel.Customer, To: LineRejected},

	lineRule{From: LineRejected, Action: statemachine.Revise, Role: kernel.Customer, To: LineCustomerRevised},
	lineRule{From: LineRejected, Action: statemachine.Revise, Role: kernel.Supplier, To: LineSupplierRevised},
)

// LineStatusTable returns the order line transition table.
func LineStatusTable() *statemachine.Table[LineStatus] {
	return lineStatusTable
}
