package importbatch

import (
	"fmt"

	"vendorportal/internal/pkg/errs"
)

type Status int

const (
	Pending Status = iota
	Completed
)

func (s Status) Validate() error {
	if s != Pending && s != Completed {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid import batch status", s))
	}
	return nil
}

func (s Status) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Completed:
		return "Completed"
	default:
		return "Unknown"
	}
}
