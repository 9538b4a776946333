package repository

import (
	"errors"
	"strings"
)

// Sentinel errors shared by both repositories. Callers translate these to
// the API error taxonomy; the repositories never import it.
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// isDuplicateKeyError matches unique-constraint violations from postgres
// (error code 23505) and from the sqlite driver used in tests.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint")
}
