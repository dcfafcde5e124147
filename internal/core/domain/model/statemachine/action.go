package statemachine

import (
	"fmt"
	"strings"

	"vendorportal/internal/pkg/errs"
)

// Action is a requested change of state, independent of the entity it targets.
type Action int

const (
	Submit Action = iota + 1
	Revise
	Approve
	Reject
	Close
	Publish
	Evaluate
	Award
	Cancel
	Deactivate
)

func getActionStrings() map[Action]string {
	return map[Action]string{
		Submit:     "Submit",
		Revise:     "Revise",
		Approve:    "Approve",
		Reject:     "Reject",
		Close:      "Close",
		Publish:    "Publish",
		Evaluate:   "Evaluate",
		Award:      "Award",
		Cancel:     "Cancel",
		Deactivate: "Deactivate",
	}
}

func (a Action) String() string {
	if s, ok := getActionStrings()[a]; ok {
		return s
	}
	return "Unknown"
}

// ActionFromString parses an action name, ignoring case.
func ActionFromString(s string) (Action, error) {
	for a, name := range getActionStrings() {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return a, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not a known action", s))
}
