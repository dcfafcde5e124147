package company

import (
	"fmt"
	"strings"

	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/core/domain/model/statemachine"
	"vendorportal/internal/pkg/errs"
)

// Approval is the portal's verdict on a company. Values are wire-stable.
type Approval int

const (
	Pending Approval = iota
	Approved
	Rejected
	Inactive
)

func getApprovalStrings() map[Approval]string {
	return map[Approval]string{
		Pending:  "Pending",
		Approved: "Approved",
		Rejected: "Rejected",
		Inactive: "Inactive",
	}
}

// Approvals lists every approval state in wire order.
func Approvals() []Approval {
	return []Approval{Pending, Approved, Rejected, Inactive}
}

func (a Approval) Validate() error {
	if _, ok := getApprovalStrings()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("approval is invalid", fmt.Errorf("%d is not a valid approval state", a))
	}
	return nil
}

func (a Approval) String() string {
	if str, ok := getApprovalStrings()[a]; ok {
		return str
	}
	return "Unknown"
}

type approvalRule = statemachine.Rule[Approval]

var approvalTable = statemachine.NewTable("company",
	approvalRule{From: Pending, Action: statemachine.Approve, Role: kernel.System, To: Approved},
	approvalRule{From: Pending, Action: statemachine.Reject, Role: kernel.System, To: Rejected},
	approvalRule{From: Approved, Action: statemachine.Deactivate, Role: kernel.System, To: Inactive},
	approvalRule{From: Inactive, Action: statemachine.Approve, Role: kernel.System, To: Approved},
)

// ApprovalTable returns the company approval transition table.
func ApprovalTable() *statemachine.Table[Approval] {
	return approvalTable
}

// Classification is the side of the market a company trades on.
type Classification int

const (
	ClassificationUnknown Classification = iota
	ClassCustomer
	ClassSupplier
	ClassBoth
)

func getClassificationStrings() map[Classification]string {
	return map[Classification]string{
		ClassificationUnknown: "Unknown",
		ClassCustomer:         "Customer",
		ClassSupplier:         "Supplier",
		ClassBoth:             "Both",
	}
}

func (c Classification) String() string {
	if str, ok := getClassificationStrings()[c]; ok {
		return str
	}
	return "Unknown"
}

func (c Classification) Validate() error {
	if _, ok := getClassificationStrings()[c]; !ok || c == ClassificationUnknown {
		return errs.NewValueIsInvalidErrorWithCause("classification is invalid", fmt.Errorf("%d is not a valid classification", c))
	}
	return nil
}

// ClassificationFromString parses a classification name, ignoring case.
func ClassificationFromString(s string) (Classification, error) {
	for c, name := range getClassificationStrings() {
		if c != ClassificationUnknown && strings.EqualFold(name, s) {
			return c, nil
		}
	}
	return ClassificationUnknown, errs.NewValueIsInvalidErrorWithCause("classification is invalid",
		fmt.Errorf("%q is not Customer, Supplier or Both", s))
}

// Covers reports whether a company classified c may act in role.
func (c Classification) Covers(role kernel.Role) bool {
	switch role {
	case kernel.Customer:
		return c == ClassCustomer || c == ClassBoth
	case kernel.Supplier:
		return c == ClassSupplier || c == ClassBoth
	default:
		return false
	}
}
