package tasks

import "errors"

// ErrInvalidQuery is returned for unknown sort fields or directions.
// It is a client error and must not be retried.
var ErrInvalidQuery = errors.New("invalid query")
