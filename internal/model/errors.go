package model

import "errors"

// Sentinel errors callers match with errors.Is. Storage failures are not
// sentinels; they wrap the underlying I/O error and must always be surfaced.
var (
	ErrAlreadyExists = errors.New("username already exists")
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("not the owner")
	ErrInvalidItem   = errors.New("invalid item")
)
