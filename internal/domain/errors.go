package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies pipeline failures.
type ErrorKind string

const (
	ErrSourceUnavailable     ErrorKind = "source-unavailable"
	ErrConfiguration         ErrorKind = "configuration-error"
	ErrNoRelevantCandidates  ErrorKind = "no-relevant-candidates"
	ErrSelectionMalformed    ErrorKind = "selection-malformed"
	ErrSelectionHallucinated ErrorKind = "selection-hallucinated"
	ErrInvalidRequest        ErrorKind = "invalid-request"
)

// PipelineError is the typed failure surfaced at the pipeline boundary.
type PipelineError struct {
	Kind    ErrorKind `json:"type"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

// NewError builds a PipelineError; cause may be nil.
func NewError(kind ErrorKind, message string, cause error) *PipelineError {
	return &PipelineError{Kind: kind, Message: message, Err: cause}
}

// Errorf builds a PipelineError with a formatted message and no cause.
func Errorf(kind ErrorKind, format string, args ...any) *PipelineError {
	return &PipelineError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *PipelineError) Unwrap() error { return e.Err }

// KindOf extracts the kind of a wrapped PipelineError, or "" when err is not one.
func KindOf(err error) ErrorKind {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

// AsPipelineError returns the PipelineError inside err. Unclassified errors are
// reported as source-unavailable, the only kind that describes an unknown upstream fault.
func AsPipelineError(err error) *PipelineError {
	if err == nil {
		return nil
	}
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe
	}
	return NewError(ErrSourceUnavailable, err.Error(), err)
}
