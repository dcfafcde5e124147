// Package result is the envelope every workflow operation answers with.
//
// Domain faults never escape as errors: Wrap turns them into a failed
// envelope whose Errors carry the fault kind as a prefix. Anything errs
// cannot classify is an infrastructure fault and is returned to the caller
// unchanged.
package result

import (
	"fmt"
	"strings"

	"vendorportal/internal/pkg/errs"
)

type Envelope[T any] struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    T        `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func OK[T any](message string, data T) Envelope[T] {
	return Envelope[T]{Success: true, Message: message, Data: data}
}

// Fail builds a failed envelope from a domain error, one entry per
// independent fault joined into err.
func Fail[T any](err error) Envelope[T] {
	leaves := errs.Leaves(err)
	entries := make([]string, 0, len(leaves))
	for _, l := range leaves {
		entries = append(entries, fmt.Sprintf("%s: %s", errs.KindOf(l), l.Error()))
	}
	return Envelope[T]{
		Success: false,
		Message: message(err),
		Errors:  entries,
	}
}

// Wrap is the boundary every handler returns through.
func Wrap[T any](message string, data T, err error) (Envelope[T], error) {
	switch {
	case err == nil:
		return OK(message, data), nil
	case errs.IsDomain(err):
		return Fail[T](err), nil
	default:
		return Envelope[T]{}, err
	}
}

// HasError reports whether a failed envelope carries a fault of kind.
func (e Envelope[T]) HasError(kind errs.Kind) bool {
	prefix := string(kind) + ":"
	for _, entry := range e.Errors {
		if strings.HasPrefix(entry, prefix) {
			return true
		}
	}
	return false
}

func message(err error) string {
	leaves := errs.Leaves(err)
	switch len(leaves) {
	case 0:
		return ""
	case 1:
		return leaves[0].Error()
	}
	return fmt.Sprintf("%d problems found, the first is: %s", len(leaves), leaves[0].Error())
}
