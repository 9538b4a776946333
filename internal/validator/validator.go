// Package validator provides input validation and sanitization for the
// messaging API boundary.
package validator

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Validation errors
var (
	ErrEmptyInput      = errors.New("input cannot be empty")
	ErrInputTooLong    = errors.New("input exceeds maximum length")
	ErrInvalidPriority = errors.New("invalid priority value")
	ErrInvalidStatus   = errors.New("invalid status value")
)

// Field length limits
const (
	MaxSubjectLength  = 500
	MaxBodyLength     = 65535
	MaxCategoryLength = 100
)

var priorities = map[string]bool{
	"low":    true,
	"normal": true,
	"high":   true,
	"urgent": true,
}

var statuses = map[string]bool{
	"open":        true,
	"in_progress": true,
	"resolved":    true,
	"closed":      true,
}

// ValidateSubject checks a message subject. Whitespace-only subjects are
// rejected.
func ValidateSubject(subject string) error {
	if strings.TrimSpace(subject) == "" {
		return fmt.Errorf("subject: %w", ErrEmptyInput)
	}
	if utf8.RuneCountInString(subject) > MaxSubjectLength {
		return fmt.Errorf("subject: %w", ErrInputTooLong)
	}
	return nil
}

// ValidateBody checks a message body.
func ValidateBody(body string) error {
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("message: %w", ErrEmptyInput)
	}
	if utf8.RuneCountInString(body) > MaxBodyLength {
		return fmt.Errorf("message: %w", ErrInputTooLong)
	}
	return nil
}

// ValidatePriority checks a priority enum value. The empty string is
// allowed; the service defaults it to normal.
func ValidatePriority(priority string) error {
	if priority == "" {
		return nil
	}
	if !priorities[priority] {
		return fmt.Errorf("%q: %w", priority, ErrInvalidPriority)
	}
	return nil
}

// ValidateStatus checks a workflow status enum value.
func ValidateStatus(status string) error {
	if !statuses[status] {
		return fmt.Errorf("%q: %w", status, ErrInvalidStatus)
	}
	return nil
}

// ValidateCategory checks the free-form classification tag.
func ValidateCategory(category string) error {
	if utf8.RuneCountInString(category) > MaxCategoryLength {
		return fmt.Errorf("category: %w", ErrInputTooLong)
	}
	return nil
}

// ValidateSendFields checks every writable field of a send/reply request
// before any write occurs.
func ValidateSendFields(subject, body, priority, category string) error {
	if err := ValidateSubject(subject); err != nil {
		return err
	}
	if err := ValidateBody(body); err != nil {
		return err
	}
	if err := ValidatePriority(priority); err != nil {
		return err
	}
	return ValidateCategory(category)
}

// Pagination constants
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ValidatePagination validates and sanitizes pagination parameters.
// Returns sanitized limit and offset values.
func ValidatePagination(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
