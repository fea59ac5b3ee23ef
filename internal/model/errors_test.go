package model_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/atcud-qr/internal/model"
)

func TestParseError(t *testing.T) {
	err := model.NewParseError([]model.InvalidField{
		{Argument: "A", Message: "Required"},
		{Argument: "Q", Message: "String must contain exactly 4 character(s)"},
	})

	assert.Equal(t,
		"failed to parse document data: A: Required; Q: String must contain exactly 4 character(s)",
		err.Error())

	wrapped := fmt.Errorf("parse: %w", err)
	var parseErr *model.ParseError
	require.True(t, errors.As(wrapped, &parseErr))
	assert.Len(t, parseErr.InvalidFields, 2)

	assert.Equal(t, "failed to parse document data", model.NewParseError(nil).Error())
}

func TestDecodeError(t *testing.T) {
	cause := errors.New("unknown document type code \"XX\"")
	err := model.NewDecodeError(cause)

	assert.Contains(t, err.Error(), "failed to decode document data")
	assert.Contains(t, err.Error(), "XX")
	assert.ErrorIs(t, err, cause)

	assert.Equal(t, "failed to decode document data", model.NewDecodeError(nil).Error())
}

func TestErrorKindsAreDistinct(t *testing.T) {
	var parseErr *model.ParseError
	var decodeErr *model.DecodeError

	assert.False(t, errors.As(model.ErrInvalidData, &parseErr))
	assert.False(t, errors.As(model.ErrInvalidData, &decodeErr))
	assert.False(t, errors.Is(model.NewDecodeError(nil), model.ErrInvalidData))
	assert.False(t, errors.Is(model.NewParseError(nil), model.ErrInvalidData))
}

func TestErrInvalidData_Message(t *testing.T) {
	assert.Equal(t, "the provided data is not valid", model.ErrInvalidData.Error())
}
