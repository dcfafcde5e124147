package errs

import "errors"

// Kind is the machine-checkable classification of a domain fault.
type Kind string

const (
	KindValidation        Kind = "ValidationError"
	KindInvalidTransition Kind = "InvalidTransition"
	KindNotYourTurn       Kind = "NotYourTurn"
	KindAlreadyAwarded    Kind = "AlreadyAwarded"
	KindNotFound          Kind = "NotFound"
	KindMalformedPayload  Kind = "MalformedPayload"
	KindUnexpectedFailure Kind = "UnexpectedFailure"
)

// kindOrder lists sentinels from the most to the least specific so a joined
// error carrying several faults is reported by its strongest one.
var kindOrder = []struct {
	sentinel error
	kind     Kind
}{
	{ErrMalformedPayload, KindMalformedPayload},
	{ErrAlreadyAwarded, KindAlreadyAwarded},
	{ErrNotYourTurn, KindNotYourTurn},
	{ErrInvalidTransition, KindInvalidTransition},
	{ErrObjectNotFound, KindNotFound},
	{ErrValueIsRequired, KindValidation},
	{ErrValueIsInvalid, KindValidation},
	{ErrValueIsOutOfRange, KindValidation},
}

// KindOf classifies err. Errors outside the domain family, such as storage
// failures, are reported as KindUnexpectedFailure.
func KindOf(err error) Kind {
	for _, k := range kindOrder {
		if errors.Is(err, k.sentinel) {
			return k.kind
		}
	}
	return KindUnexpectedFailure
}

// IsDomain reports whether err is a business rule declining the operation
// rather than the system being unable to perform it.
func IsDomain(err error) bool {
	return err != nil && KindOf(err) != KindUnexpectedFailure
}

// JoinChecks joins the results of independent checks. The first fault outside
// the domain family is returned alone so a rejection next to it cannot hide
// it from KindOf.
func JoinChecks(checks ...error) error {
	for _, err := range checks {
		if err != nil && !IsDomain(err) {
			return err
		}
	}
	return errors.Join(checks...)
}

// Leaves flattens an errors.Join tree into its individual failures, in order.
func Leaves(err error) []error {
	if err == nil {
		return nil
	}
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []error{err}
	}
	var out []error
	for _, e := range joined.Unwrap() {
		out = append(out, Leaves(e)...)
	}
	return out
}
