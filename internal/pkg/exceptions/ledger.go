package exceptions

import (
	"errors"
	"fmt"
)

// Failures reported by the ledger collaborator.
var (
	ErrLedgerUnavailable = errors.New("ledger unavailable")
	ErrUserRejected      = errors.New("user rejected the transaction")
	ErrInsufficientFunds = errors.New("insufficient funds for amount and fee")
	ErrNetwork           = errors.New("network error")
)

// Guards raised by the booking/purchase workflow itself.
var (
	ErrSubmissionInFlight    = errors.New("a submission is already in flight")
	ErrSelectionRequired     = errors.New("a selection is required before entering details")
	ErrInvalidStep           = errors.New("action not allowed at the current step")
	ErrStepValidation        = errors.New("step has field errors")
	ErrReadOnlyResolver      = errors.New("resolver does not accept new content")
	ErrUnsupportedContentRef = errors.New("unsupported content ref")
)

// PreconditionFailedError is a domain-rule rejection returned by the ledger at
// write time, for example exhausted stock or an unapproved doctor.
type PreconditionFailedError struct {
	Reason string
}

func (e *PreconditionFailedError) Error() string {
	return fmt.Sprintf("precondition failed: %s", e.Reason)
}

func NewPreconditionFailed(reason string) error {
	return &PreconditionFailedError{Reason: reason}
}

// ResolutionError wraps any failure to turn a content ref into a document:
// transport, missing object or malformed JSON.
type ResolutionError struct {
	ContentRef string
	Err        error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve %s: %v", e.ContentRef, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

func NewResolutionError(contentRef string, err error) error {
	return &ResolutionError{ContentRef: contentRef, Err: err}
}

// UploadError is returned when publishing a new content document fails.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload content: %v", e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

func NewUploadError(err error) error {
	return &UploadError{Err: err}
}
