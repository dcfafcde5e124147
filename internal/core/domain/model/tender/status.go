package tender

import (
	"fmt"
	"strings"

	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/core/domain/model/statemachine"
	"vendorportal/internal/pkg/errs"
)

// Status is the tender lifecycle state. Values are wire-stable.
//
//	Draft -> Published -> Evaluating -> Completed
//	Draft | Published | Evaluating -> Cancelled
type Status int

const (
	Draft Status = iota
	Published
	Evaluating
	Completed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Draft:      "Draft",
		Published:  "Published",
		Evaluating: "Evaluating",
		Completed:  "Completed",
		Cancelled:  "Cancelled",
	}
}

// Statuses lists every tender status in wire order.
func Statuses() []Status {
	return []Status{Draft, Published, Evaluating, Completed, Cancelled}
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid tender status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

type tenderRule = statemachine.Rule[Status]

var statusTable = statemachine.NewTable("tender",
	tenderRule{From: Draft, Action: statemachine.Publish, Role: kernel.Customer, To: Published},
	tenderRule{From: Draft, Action: statemachine.Cancel, Role: kernel.Customer, To: Cancelled},
	tenderRule{From: Published, Action: statemachine.Cancel, Role: kernel.Customer, To: Cancelled},
	tenderRule{From: Published, Action: statemachine.Evaluate, Role: kernel.Customer, To: Evaluating},
	tenderRule{From: Published, Action: statemachine.Evaluate, Role: kernel.System, To: Evaluating},
	tenderRule{From: Evaluating, Action: statemachine.Cancel, Role: kernel.Customer, To: Cancelled},
	tenderRule{From: Evaluating, Action: statemachine.Award, Role: kernel.Customer, To: Completed},
)

// StatusTable returns the tender transition table.
func StatusTable() *statemachine.Table[Status] {
	return statusTable
}

// Type selects who may bid. Open and Closed tenders accept bids from any
// supplier; Invited tenders only from their invitees.
type Type int

const (
	TypeUnknown Type = iota
	TypeOpen
	TypeInvited
	TypeClosed
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown: "Unknown",
		TypeOpen:    "Open",
		TypeInvited: "Invited",
		TypeClosed:  "Closed",
	}
}

func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "Unknown"
}

func (t Type) Validate() error {
	if _, ok := getTypeStrings()[t]; !ok || t == TypeUnknown {
		return errs.NewValueIsInvalidErrorWithCause("tender type is invalid", fmt.Errorf("%d is not a valid tender type", t))
	}
	return nil
}

// TypeFromString parses a tender type name, ignoring case.
func TypeFromString(s string) (Type, error) {
	for t, name := range getTypeStrings() {
		if t != TypeUnknown && strings.EqualFold(name, s) {
			return t, nil
		}
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("tender type is invalid", fmt.Errorf("%q is not Open, Invited or Closed", s))
}
