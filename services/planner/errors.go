package planner

import (
	"errors"
	"fmt"
)

// Error codes surfaced to API clients.
const (
	CodeValidation           = "validationError"
	CodeInvalidQuery         = "invalidQuery"
	CodeSearchFailure        = "searchFailure"
	CodeInvalidRecipient     = "invalidRecipient"
	CodeSubmissionFailure    = "submissionFailure"
	CodeSubmissionInProgress = "submissionInProgress"
	CodeSessionLocked        = "sessionLocked"
	CodeSessionNotFound      = "sessionNotFound"
	CodeSessionEnded         = "sessionEnded"
)

// PlannerError is the error type of every planner operation. None of them are
// fatal; Retryable marks the ones the visitor can simply try again.
type PlannerError struct {
	Code      string
	Message   string
	Field     string
	Retryable bool
	Err       error
}

func (e *PlannerError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *PlannerError) Unwrap() error {
	return e.Err
}

// ErrorCode returns the planner code carried by err, or "" if there is none.
func ErrorCode(err error) string {
	var pe *PlannerError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// IsCode reports whether err carries the given planner code.
func IsCode(err error, code string) bool {
	return ErrorCode(err) == code
}

func NewValidationError(field, msg string) error {
	return &PlannerError{Code: CodeValidation, Field: field, Message: msg}
}

func newInvalidQueryError(field, msg string, cause error) error {
	return &PlannerError{Code: CodeInvalidQuery, Field: field, Message: msg, Retryable: true, Err: cause}
}

func searchFailureMessage(category string) string {
	return fmt.Sprintf("could not search for %s, please try again", category)
}

func newSearchFailure(category string, cause error) error {
	return &PlannerError{
		Code:      CodeSearchFailure,
		Message:   searchFailureMessage(category),
		Retryable: true,
		Err:       cause,
	}
}

func newSubmissionFailure(msg string, cause error) error {
	return &PlannerError{Code: CodeSubmissionFailure, Message: msg, Retryable: true, Err: cause}
}

func newInvalidRecipient(cause error) error {
	return &PlannerError{Code: CodeInvalidRecipient, Field: "email", Message: "the itinerary cannot be delivered to this address", Err: cause}
}

func newSessionLocked(msg string) error {
	return &PlannerError{Code: CodeSessionLocked, Message: msg}
}

func newSubmissionInProgress() error {
	return &PlannerError{Code: CodeSubmissionInProgress, Message: "your itinerary is already being sent", Retryable: true}
}

func newSessionNotFound(id string, cause error) error {
	return &PlannerError{Code: CodeSessionNotFound, Message: fmt.Sprintf("planner session %s not found or expired", id), Err: cause}
}

func newSessionEnded(id string) error {
	return &PlannerError{Code: CodeSessionEnded, Message: fmt.Sprintf("planner session %s ended before the operation completed", id), Err: ErrSessionNotFound}
}
