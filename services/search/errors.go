package search

import (
	"errors"
	"fmt"
)

// ErrInvalidQuery is wrapped by every query validation failure.
var ErrInvalidQuery = errors.New("invalid search query")

// QueryError names the offending field of a rejected query.
type QueryError struct {
	Field   string
	Message string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *QueryError) Unwrap() error {
	return ErrInvalidQuery
}

func invalidQuery(field, msg string) error {
	return &QueryError{Field: field, Message: msg}
}
