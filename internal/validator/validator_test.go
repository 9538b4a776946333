package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSubject(t *testing.T) {
	assert.NoError(t, ValidateSubject("Site down"))
	assert.ErrorIs(t, ValidateSubject(""), ErrEmptyInput)
	assert.ErrorIs(t, ValidateSubject("   \t  "), ErrEmptyInput)
	assert.ErrorIs(t, ValidateSubject(strings.Repeat("a", MaxSubjectLength+1)), ErrInputTooLong)
	assert.NoError(t, ValidateSubject(strings.Repeat("a", MaxSubjectLength)))
}

func TestValidateBody(t *testing.T) {
	assert.NoError(t, ValidateBody("some body"))
	assert.ErrorIs(t, ValidateBody(""), ErrEmptyInput)
	assert.ErrorIs(t, ValidateBody(strings.Repeat("b", MaxBodyLength+1)), ErrInputTooLong)
}

func TestValidatePriority(t *testing.T) {
	for _, p := range []string{"low", "normal", "high", "urgent"} {
		assert.NoError(t, ValidatePriority(p))
	}
	// Empty means "use the default"
	assert.NoError(t, ValidatePriority(""))
	assert.ErrorIs(t, ValidatePriority("critical"), ErrInvalidPriority)
	assert.ErrorIs(t, ValidatePriority("URGENT"), ErrInvalidPriority)
}

func TestValidateStatus(t *testing.T) {
	for _, s := range []string{"open", "in_progress", "resolved", "closed"} {
		assert.NoError(t, ValidateStatus(s))
	}
	assert.ErrorIs(t, ValidateStatus(""), ErrInvalidStatus)
	assert.ErrorIs(t, ValidateStatus("done"), ErrInvalidStatus)
}

func TestValidateCategory(t *testing.T) {
	assert.NoError(t, ValidateCategory(""))
	assert.NoError(t, ValidateCategory("support"))
	assert.ErrorIs(t, ValidateCategory(strings.Repeat("c", MaxCategoryLength+1)), ErrInputTooLong)
}

func TestValidateSendFields_FirstFailureWins(t *testing.T) {
	assert.NoError(t, ValidateSendFields("s", "b", "high", "support"))
	assert.ErrorIs(t, ValidateSendFields("", "b", "high", ""), ErrEmptyInput)
	assert.ErrorIs(t, ValidateSendFields("s", "", "high", ""), ErrEmptyInput)
	assert.ErrorIs(t, ValidateSendFields("s", "b", "nope", ""), ErrInvalidPriority)
}

func TestValidatePagination(t *testing.T) {
	limit, offset := ValidatePagination(0, 0)
	assert.Equal(t, DefaultLimit, limit)
	assert.Equal(t, 0, offset)

	limit, offset = ValidatePagination(-5, -10)
	assert.Equal(t, DefaultLimit, limit)
	assert.Equal(t, 0, offset)

	limit, _ = ValidatePagination(1000, 0)
	assert.Equal(t, MaxLimit, limit)

	limit, offset = ValidatePagination(25, 50)
	assert.Equal(t, 25, limit)
	assert.Equal(t, 50, offset)
}
