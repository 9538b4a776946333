package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_MessageAndUnwrap(t *testing.T) {
	err := NewValidationError("subject is required")

	assert.Equal(t, "subject is required", err.Error())
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, CodeValidation, err.Code)
}

func TestNewInvalidReplyError(t *testing.T) {
	err := NewInvalidReplyError("thread mismatch")

	assert.ErrorIs(t, err, ErrInvalidReply)
	assert.Equal(t, CodeInvalidReply, err.Code)
	assert.True(t, IsInvalidReply(err))
}

func TestIsNotFound_CoversAllVariants(t *testing.T) {
	assert.True(t, IsNotFound(ErrNotFound))
	assert.True(t, IsNotFound(ErrMailboxNotFound))
	assert.True(t, IsNotFound(ErrMessageNotFound))
	assert.True(t, IsNotFound(ErrThreadNotFound))
	assert.True(t, IsNotFound(fmt.Errorf("thread abc: %w", ErrThreadNotFound)))
	assert.False(t, IsNotFound(ErrValidation))
}

func TestGetErrorCode_WrappedErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"not found", fmt.Errorf("mailbox x: %w", ErrMailboxNotFound), CodeNotFound},
		{"configuration", fmt.Errorf("platform inbox: %w", ErrConfiguration), CodeConfiguration},
		{"invalid reply", ErrInvalidReply, CodeInvalidReply},
		{"validation", ErrValidation, CodeValidation},
		{"duplicate", ErrDuplicateEntry, CodeDuplicateEntry},
		{"unauthorized", ErrUnauthorized, CodeUnauthorized},
		{"forbidden", fmt.Errorf("actor x: %w", ErrForbidden), CodeForbidden},
		{"unknown", fmt.Errorf("boom"), CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, GetErrorCode(tt.err))
		})
	}
}

func TestGetErrorCode_AppErrorCodeWins(t *testing.T) {
	err := NewAppError(ErrValidation, "custom", CodeInvalidReply)

	assert.Equal(t, CodeInvalidReply, GetErrorCode(err))
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))

	wrapped := Wrap(ErrThreadNotFound, "deleting")
	assert.ErrorIs(t, wrapped, ErrThreadNotFound)
	assert.Contains(t, wrapped.Error(), "deleting")
}
