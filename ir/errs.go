package ir

import "errors"

var (
	// ErrParse covers malformed source text and key-path traversal
	// through a node that is not a mapping.
	ErrParse = errors.New("parse error")

	// ErrMissingKey covers lookups and deletes of keys or paths that
	// are not present, and structurally invalid (empty) keys.
	ErrMissingKey = errors.New("missing key")
)
