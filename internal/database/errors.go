package database

import "errors"

var (
	// ErrShortCodeExists is returned when an insert is rejected by the
	// uniqueness constraint on the short code.
	ErrShortCodeExists = errors.New("short code exists")
	// ErrURLNotFound is returned when no record matches the given
	// short code or original URL.
	ErrURLNotFound = errors.New("url not found")
)
