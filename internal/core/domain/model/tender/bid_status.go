package tender

import (
	"fmt"

	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/core/domain/model/statemachine"
	"vendorportal/internal/pkg/errs"
)

// BidStatus is the state of a bid. Values are wire-stable.
type BidStatus int

const (
	BidDraft BidStatus = iota
	BidSubmitted
	BidRejected
	BidApproved
)

func getBidStatusStrings() map[BidStatus]string {
	return map[BidStatus]string{
		BidDraft:     "Draft",
		BidSubmitted: "Submitted",
		BidRejected:  "Rejected",
		BidApproved:  "Approved",
	}
}

// BidStatuses lists every bid status in wire order.
func BidStatuses() []BidStatus {
	return []BidStatus{BidDraft, BidSubmitted, BidRejected, BidApproved}
}

func (s BidStatus) Validate() error {
	if _, ok := getBidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("bid status is invalid", fmt.Errorf("%d is not a valid bid status", s))
	}
	return nil
}

func (s BidStatus) String() string {
	if str, ok := getBidStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsOpen reports whether the bid still waits for a decision.
func (s BidStatus) IsOpen() bool {
	return s == BidDraft || s == BidSubmitted
}

type bidRule = statemachine.Rule[BidStatus]

// System rejections are the forced ones: tender cancelled or awarded to a sibling.
var bidStatusTable = statemachine.NewTable("bid",
	bidRule{From: BidDraft, Action: statemachine.Submit, Role: kernel.Supplier, To: BidSubmitted},
	bidRule{From: BidDraft, Action: statemachine.Reject, Role: kernel.System, To: BidRejected},
	bidRule{From: BidSubmitted, Action: statemachine.Reject, Role: kernel.System, To: BidRejected},
	bidRule{From: BidSubmitted, Action: statemachine.Reject, Role: kernel.Customer, To: BidRejected},
	bidRule{From: BidSubmitted, Action: statemachine.Approve, Role: kernel.Customer, To: BidApproved},
)

// BidStatusTable returns the bid transition table.
func BidStatusTable() *statemachine.Table[BidStatus] {
	return bidStatusTable
}

// BidLineStatus is the customer's verdict on one bid line. Values are wire-stable.
type BidLineStatus int

const (
	BidLinePending BidLineStatus = iota
	BidLineCustomerApproved
	BidLineCustomerRejected
)

func getBidLineStatusStrings() map[BidLineStatus]string {
	return map[BidLineStatus]string{
		BidLinePending:          "Pending",
		BidLineCustomerApproved: "CustomerApproved",
		BidLineCustomerRejected: "CustomerRejected",
	}
}

// BidLineStatuses lists every bid line status in wire order.
func BidLineStatuses() []BidLineStatus {
	return []BidLineStatus{BidLinePending, BidLineCustomerApproved, BidLineCustomerRejected}
}

func (s BidLineStatus) Validate() error {
	if _, ok := getBidLineStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("bid line status is invalid", fmt.Errorf("%d is not a valid bid line status", s))
	}
	return nil
}

func (s BidLineStatus) String() string {
	if str, ok := getBidLineStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

type bidLineRule = statemachine.Rule[BidLineStatus]

var bidLineStatusTable = statemachine.NewTable("bid line",
	bidLineRule{From: BidLinePending, Action: statemachine.Approve, Role: kernel.Customer, To: BidLineCustomerApproved},
	bidLineRule{From: BidLinePending, Action: statemachine.Reject, Role: kernel.Customer, To: BidLineCustomerRejected},
	bidLineRule{From: BidLineCustomerApproved, Action: statemachine.Reject, Role: kernel.Customer, To: BidLineCustomerRejected},
	bidLineRule{From: BidLineCustomerRejected, Action: statemachine.Approve, Role: kernel.Customer, To: BidLineCustomerApproved},
)

// BidLineStatusTable returns the bid line transition table.
func BidLineStatusTable() *statemachine.Table[BidLineStatus] {
	return bidLineStatusTable
}
