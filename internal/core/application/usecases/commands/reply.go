package commands

import (
	"vendorportal/internal/pkg/result"
)

// reply wraps a handler outcome into its envelope, rendering aggregate with
// view only on success.
func reply[A, R any](message string, aggregate A, err error, view func(A) R) (result.Envelope[R], error) {
	if err != nil {
		var zero R
		return result.Wrap(message, zero, err)
	}
	return result.OK(message, view(aggregate)), nil
}
