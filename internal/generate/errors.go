package generate

import (
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// Kind classifies a failed attempt for the frontend.
type Kind string

const (
	// KindValidation marks missing or insufficient inputs, caught before any
	// collaborator call.
	KindValidation Kind = "validation"

	// KindEmptyResult marks a well-formed collaborator response that lacked
	// the expected payload.
	KindEmptyResult Kind = "empty_result"

	// KindService marks transport and service failures from the
	// collaborator.
	KindService Kind = "service"
)

// Error is the terminal outcome of a failed generation attempt. Attempts are
// never retried; the user triggers again manually.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func validationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func emptyResultError(message string) *Error {
	return &Error{Kind: KindEmptyResult, Message: message}
}

// serviceError wraps a collaborator failure, surfacing the hosted API's own
// message when one is available.
func serviceError(err error) *Error {
	message := "the image service could not complete the request"
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		message = apiErr.Message
	}
	return &Error{Kind: KindService, Message: message, Err: err}
}
