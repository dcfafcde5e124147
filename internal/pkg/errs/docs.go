// Package errs provides the error types shared by the procurement core.
//
// The package includes:
//   - ObjectNotFoundError: a referenced order, tender, bid, company or batch is absent
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: input validation
//   - InvalidTransitionError: a status table rejected (status, action, role)
//   - NotYourTurnError: order line turn-taking was violated
//   - AlreadyAwardedError: a tender already holds its single approved bid
//   - MalformedPayloadError: an import payload could not be parsed as a whole
//
// Each error type follows the same pattern: a sentinel error variable, a
// struct with the details, constructors with and without cause, Error() for
// formatting and Unwrap() returning the sentinel so errors.Is works.
//
// KindOf maps any error, including errors.Join trees, onto the error kinds
// exposed in result envelopes. Errors outside this family are infrastructure
// faults and classify as KindUnexpectedFailure.
package errs
