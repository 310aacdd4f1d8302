package service

import "errors"

var (
	// ErrNotFound is returned by update/delete operations referencing a
	// missing record, so handlers can answer 404 instead of a generic 500.
	ErrNotFound = errors.New("not found")

	// ErrNotConfigured means the AI gateway has no base URL or key.
	ErrNotConfigured = errors.New("ai gateway not configured")
)
