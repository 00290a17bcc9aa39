package store

import "errors"

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrEmailTaken is returned when an insert would violate the unique
// constraint on users.email.
var ErrEmailTaken = errors.New("email already registered")
