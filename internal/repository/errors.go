// Package repository implements data access over MySQL.  This file defines
// error types reused across the repositories.  These sentinel values let
// handlers distinguish failure scenarios: ErrNotFound maps to HTTP 404,
// ErrConflict to a duplicate-unique-field rejection.
package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert or update would violate a unique
// constraint, such as registering an already-taken username or email.
var ErrConflict = errors.New("conflict")

// isDuplicate reports whether a MySQL error is a duplicate-key violation
// (error 1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
