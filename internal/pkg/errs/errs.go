package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrAlreadyAwarded    = errors.New("tender already awarded")
	ErrMalformedPayload  = errors.New("malformed payload")
)

// ObjectNotFoundError reports a referenced aggregate or entity that does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports an input that failed a business validation rule.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a numeric or ordinal value outside its bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing mandatory input.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// InvalidTransitionError is returned by status tables for a
// (status, action, role) combination they do not list.
type InvalidTransitionError struct {
	Entity string
	From   string
	Action string
	Role   string
}

func NewInvalidTransitionError(entity, from, action, role string) *InvalidTransitionError {
	return &InvalidTransitionError{Entity: entity, From: from, Action: action, Role: role}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s cannot %s from %s as %s", ErrInvalidTransition, e.Entity, e.Action, e.From, e.Role)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// NotYourTurnError is returned when a party revises a line it revised last.
type NotYourTurnError struct {
	Entity string
	ID     string
	Role   string
}

func NewNotYourTurnError(entity, id, role string) *NotYourTurnError {
	return &NotYourTurnError{Entity: entity, ID: id, Role: role}
}

func (e *NotYourTurnError) Error() string {
	return fmt.Sprintf("%s: %s %s was last revised by %s", ErrNotYourTurn, e.Entity, e.ID, e.Role)
}

func (e *NotYourTurnError) Unwrap() error {
	return ErrNotYourTurn
}

// AlreadyAwardedError is returned when a tender already holds an approved bid.
type AlreadyAwardedError struct {
	TenderID string
	BidID    string
}

func NewAlreadyAwardedError(tenderID, bidID string) *AlreadyAwardedError {
	return &AlreadyAwardedError{TenderID: tenderID, BidID: bidID}
}

func (e *AlreadyAwardedError) Error() string {
	return fmt.Sprintf("%s: tender %s was awarded to bid %s", ErrAlreadyAwarded, e.TenderID, e.BidID)
}

func (e *AlreadyAwardedError) Unwrap() error {
	return ErrAlreadyAwarded
}

// MalformedPayloadError rejects a whole import payload before any record runs.
type MalformedPayloadError struct {
	Reason string
	Cause  error
}

func NewMalformedPayloadError(reason string) *MalformedPayloadError {
	return &MalformedPayloadError{Reason: reason}
}

func NewMalformedPayloadErrorWithCause(reason string, cause error) *MalformedPayloadError {
	return &MalformedPayloadError{Reason: reason, Cause: cause}
}

func (e *MalformedPayloadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrMalformedPayload, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrMalformedPayload, e.Reason)
}

func (e *MalformedPayloadError) Unwrap() error {
	return ErrMalformedPayload
}

func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}
