package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// ValidationErrorType categorizes API key validation failures.
type ValidationErrorType int

const (
	// ErrTypeNoKey indicates no API key was found.
	ErrTypeNoKey ValidationErrorType = iota
	// ErrTypeInvalidKey indicates the key is malformed, revoked, or lacks
	// permissions.
	ErrTypeInvalidKey
	// ErrTypeNetworkError indicates the validation call never reached a
	// healthy API.
	ErrTypeNetworkError
	// ErrTypeQuotaExceeded indicates the key works but is out of quota.
	ErrTypeQuotaExceeded
	// ErrTypeUnknown covers everything else.
	ErrTypeUnknown
)

// ValidationError is a classified API key validation failure.
type ValidationError struct {
	Type    ValidationErrorType
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidateAPIKey proves the configured key works by making a minimal
// generation request against the given model, so the operator learns about a
// bad credential before the first user does.
func ValidateAPIKey(ctx context.Context, client *genai.Client, model string) error {
	log.Debug().Str("model", model).Msg("Validating API key")
	start := time.Now()

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text("hi"), nil)
	if err != nil {
		ve := classifyError(err)
		log.Error().Err(err).Str("reason", ve.Message).Msg("API key validation failed")
		return ve
	}
	if resp == nil || len(resp.Candidates) == 0 {
		log.Warn().Msg("API key validation returned an empty response")
		return &ValidationError{Type: ErrTypeUnknown, Message: "API returned empty response"}
	}

	log.Info().Dur("duration", time.Since(start)).Msg("API key validated")
	return nil
}

// messagePatterns maps error-text needles to validation outcomes, checked in
// order. Transport failures often arrive as plain errors rather than typed
// API errors, so text matching is the fallback classification.
var messagePatterns = []struct {
	needles []string
	errType ValidationErrorType
	message string
}{
	{
		needles: []string{"api key not valid", "invalid api key", "api_key_invalid", "permission denied"},
		errType: ErrTypeInvalidKey,
		message: "API key is invalid or has been revoked",
	},
	{
		needles: []string{"quota", "resource exhausted", "rate limit"},
		errType: ErrTypeQuotaExceeded,
		message: "API quota exceeded or rate limited",
	},
	{
		needles: []string{"connection", "network", "timeout", "dial", "no such host", "unreachable"},
		errType: ErrTypeNetworkError,
		message: "network error - check your internet connection",
	},
}

// classifyError turns an arbitrary validation failure into a ValidationError.
func classifyError(err error) *ValidationError {
	if err == nil {
		return nil
	}

	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		return classifyAPIError(apiErr)
	}

	text := strings.ToLower(err.Error())
	for _, p := range messagePatterns {
		for _, needle := range p.needles {
			if strings.Contains(text, needle) {
				return &ValidationError{Type: p.errType, Message: p.message, Err: err}
			}
		}
	}
	return &ValidationError{Type: ErrTypeUnknown, Message: "failed to validate API key", Err: err}
}

// classifyAPIError maps the API's HTTP status codes to validation outcomes.
func classifyAPIError(err *genai.APIError) *ValidationError {
	switch err.Code {
	case 400, 401, 403:
		return &ValidationError{
			Type:    ErrTypeInvalidKey,
			Message: "API key is invalid, malformed, or lacks permissions",
			Err:     err,
		}
	case 429:
		return &ValidationError{
			Type:    ErrTypeQuotaExceeded,
			Message: "API rate limit exceeded - try again later",
			Err:     err,
		}
	case 500, 502, 503, 504:
		return &ValidationError{
			Type:    ErrTypeNetworkError,
			Message: "Gemini API server error - try again later",
			Err:     err,
		}
	default:
		return &ValidationError{Type: ErrTypeUnknown, Message: err.Message, Err: err}
	}
}
