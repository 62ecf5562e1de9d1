package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// record does not exist in the store.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing name, group size below one, unknown meal type).
// Handlers should map this to HTTP 400 Bad Request.
var ErrValidation = errors.New("validation error")
