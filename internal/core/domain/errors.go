package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingID    = errors.New("missing identifier")
	ErrInvalidID    = errors.New("invalid identifier")
	ErrInProgress   = errors.New("submission in progress")
	ErrNotNumeric   = errors.New("not a number")
	ErrNotInteger   = errors.New("not an integer")
	ErrNoProducts   = errors.New("no products found")
	ErrUnknownField = errors.New("unknown field")
)

// A GuardError stops a submission before any network call.
type GuardError struct {
	Op      Operation
	Reason  error
	Message string
}

func (e *GuardError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *GuardError) Unwrap() error {
	return e.Reason
}

func NewMissingIDError(op Operation) *GuardError {
	return &GuardError{Op: op, Reason: ErrMissingID, Message: op.MissingIDMessage()}
}

func NewInvalidIDError(op Operation) *GuardError {
	return &GuardError{
		Op:      op,
		Reason:  ErrInvalidID,
		Message: "Identifier is not valid.",
	}
}

// CheckID guards the identifier of an operation that addresses a record.
// A dot segment would address the collection or the API root instead.
func CheckID(op Operation, id string) error {
	switch id {
	case "":
		return NewMissingIDError(op)
	case ".", "..":
		return NewInvalidIDError(op)
	}
	return nil
}

func NewInProgressError(op Operation) *GuardError {
	return &GuardError{
		Op:      op,
		Reason:  ErrInProgress,
		Message: "A submission is already in progress.",
	}
}

type Reason string

const (
	ReasonRequired     Reason = "required"
	ReasonWrongType    Reason = "wrong-type"
	ReasonBelowMinimum Reason = "below-minimum"
	ReasonMalformedURL Reason = "malformed-url"
	ReasonOutOfRange   Reason = "out-of-range"
)

type FieldError struct {
	Field   string
	Reason  Reason
	Message string
}

func (e FieldError) String() string {
	return e.Field + ": " + e.Message
}

// A ValidationError enumerates every violated field of a record.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return strings.Join(parts, "; ")
}

// Has reports whether field was violated for any reason.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// A TransportError is a request that failed to complete or completed with
// a non-success status. StatusCode is zero when no response arrived.
type TransportError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("status %d", e.StatusCode)
	case e.Err != nil:
		return e.Err.Error()
	}
	return "transport failure"
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
