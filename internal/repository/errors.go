package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert loses a unique-key race.
var ErrDuplicate = errors.New("duplicate key")
