package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_WrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStorageError(cause)

	assert.True(t, IsStorage(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestAppError_TypeChecks(t *testing.T) {
	assert.True(t, IsMalformedInput(NewMalformedInputError("bad")))
	assert.True(t, IsRestrictedWindow(NewRestrictedWindowError(23)))

	assert.False(t, IsMalformedInput(NewRestrictedWindowError(23)))
	assert.False(t, IsRestrictedWindow(errors.New("plain")))
	assert.False(t, IsStorage(nil))
}

func TestAppError_SurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", NewRestrictedWindowError(22))
	assert.True(t, IsRestrictedWindow(err))
}

func TestAppError_LogFieldsIncludeContext(t *testing.T) {
	err := NewRestrictedWindowError(23)

	fields := err.LogFields()
	require.NotEmpty(t, fields)
	assert.Contains(t, fields, "hour")
	assert.Contains(t, fields, 23)
}
