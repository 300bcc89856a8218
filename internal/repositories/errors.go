package repositories

import "errors"

// Sentinel errors shared by the repositories. Handlers translate these to
// HTTP status codes; everything else is treated as an internal error.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)
