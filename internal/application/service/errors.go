package service

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a service failure so transports can map it to a status
// code deterministically. No kind in this core is transient or retryable.
type ErrorKind string

const (
	KindNotFound          ErrorKind = "not_found"
	KindInvalidTransition ErrorKind = "invalid_transition"
	KindMissingField      ErrorKind = "missing_field"
	KindDuplicatePayment  ErrorKind = "duplicate_payment"
)

// Error is a kinded service failure
type Error struct {
	Kind    ErrorKind
	Field   string // set for KindMissingField
	Message string
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// NotFoundError reports a referenced entity that does not resolve
func NotFoundError(what string, id int64) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s %d not found", what, id),
	}
}

// InvalidTransitionError reports an illegal status change, either a stale
// client view or a lost race
func InvalidTransitionError(from, trigger string) *Error {
	return &Error{
		Kind:    KindInvalidTransition,
		Message: fmt.Sprintf("cannot %s from status %q", trigger, from),
	}
}

// MissingFieldError reports a required input the caller omitted
func MissingFieldError(field string) *Error {
	return &Error{
		Kind:    KindMissingField,
		Field:   field,
		Message: fmt.Sprintf("required field %q is missing or empty", field),
	}
}

// DuplicatePaymentError reports a (lawyer, case) pair that already has a
// ledger entry
func DuplicatePaymentError(lawyerID, caseID int64) *Error {
	return &Error{
		Kind:    KindDuplicatePayment,
		Message: fmt.Sprintf("lawyer %d has already been paid for case %d", lawyerID, caseID),
	}
}

// KindOf extracts the error kind, if err is a service error
func KindOf(err error) (ErrorKind, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return "", false
}
