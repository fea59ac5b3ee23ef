package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidData is returned by decode when the payload fails validation.
// It carries no detail; parse the payload to get the offending fields.
var ErrInvalidData = errors.New("the provided data is not valid")

// InvalidField is a single schema violation
type InvalidField struct {
	Argument string `json:"argument"`
	Message  string `json:"message"`
}

func (f InvalidField) String() string {
	return fmt.Sprintf("%s: %s", f.Argument, f.Message)
}

// ParseError is returned when the payload does not match the QR schema.
// InvalidFields lists every violation, in key order.
type ParseError struct {
	InvalidFields []InvalidField
}

func (e *ParseError) Error() string {
	if len(e.InvalidFields) == 0 {
		return "failed to parse document data"
	}
	parts := make([]string, len(e.InvalidFields))
	for i, f := range e.InvalidFields {
		parts[i] = f.String()
	}
	return fmt.Sprintf("failed to parse document data: %s", strings.Join(parts, "; "))
}

// NewParseError creates a new parse error
func NewParseError(fields []InvalidField) *ParseError {
	return &ParseError{InvalidFields: fields}
}

// DecodeError is returned when validated fields cannot be assembled into a
// Document. It means the validator let through something the decoder cannot
// handle, not that the input was bad.
type DecodeError struct {
	Cause error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to decode document data (%v)", e.Cause)
	}
	return "failed to decode document data"
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// NewDecodeError creates a new decode error
func NewDecodeError(cause error) *DecodeError {
	return &DecodeError{Cause: cause}
}
