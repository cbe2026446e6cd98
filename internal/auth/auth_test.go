package auth

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"google.golang.org/genai"
)

// --- API Key Lookup Tests ---

func TestGetAPIKeyFromEnv(t *testing.T) {
	const testKey = "test-api-key-12345"

	originalKey := os.Getenv("GEMINI_API_KEY")
	defer os.Setenv("GEMINI_API_KEY", originalKey)

	os.Setenv("GEMINI_API_KEY", testKey)

	key, err := GetAPIKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if key != testKey {
		t.Errorf("expected key %q, got %q", testKey, key)
	}
}

func TestGetAPIKeyNoSource(t *testing.T) {
	originalKey := os.Getenv("GEMINI_API_KEY")
	defer os.Setenv("GEMINI_API_KEY", originalKey)

	os.Unsetenv("GEMINI_API_KEY")

	_, err := GetAPIKey()
	if err == nil {
		t.Error("expected error when no API key source available")
	}
}

// --- Error Classification Tests ---

func TestClassifyErrorNil(t *testing.T) {
	if got := classifyError(nil); got != nil {
		t.Errorf("expected nil for nil error, got %v", got)
	}
}

func TestClassifyErrorPatterns(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantType ValidationErrorType
	}{
		{"invalid key phrase", errors.New("API key not valid. Please pass a valid API key."), ErrTypeInvalidKey},
		{"permission denied", errors.New("rpc error: permission denied"), ErrTypeInvalidKey},
		{"quota", errors.New("quota exceeded for quota metric"), ErrTypeQuotaExceeded},
		{"rate limit", errors.New("rate limit hit"), ErrTypeQuotaExceeded},
		{"dial failure", errors.New("dial tcp: lookup generativelanguage.googleapis.com: no such host"), ErrTypeNetworkError},
		{"timeout", errors.New("context deadline exceeded (Client.Timeout exceeded)"), ErrTypeNetworkError},
		{"unknown", errors.New("something baffling"), ErrTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyError(tt.err)
			if got == nil {
				t.Fatal("expected a ValidationError, got nil")
			}
			if got.Type != tt.wantType {
				t.Errorf("expected type %d, got %d", tt.wantType, got.Type)
			}
			if !errors.Is(got, tt.err) {
				t.Error("expected classified error to wrap the original")
			}
		})
	}
}

func TestClassifyAPIErrorCodes(t *testing.T) {
	tests := []struct {
		code     int
		wantType ValidationErrorType
	}{
		{400, ErrTypeInvalidKey},
		{401, ErrTypeInvalidKey},
		{403, ErrTypeInvalidKey},
		{429, ErrTypeQuotaExceeded},
		{500, ErrTypeNetworkError},
		{503, ErrTypeNetworkError},
		{418, ErrTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("code_%d", tt.code), func(t *testing.T) {
			apiErr := &genai.APIError{Code: tt.code, Message: "boom"}
			got := classifyError(apiErr)
			if got == nil {
				t.Fatal("expected a ValidationError, got nil")
			}
			if got.Type != tt.wantType {
				t.Errorf("expected type %d for code %d, got %d", tt.wantType, tt.code, got.Type)
			}
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	inner := errors.New("inner detail")
	ve := &ValidationError{Type: ErrTypeInvalidKey, Message: "bad key", Err: inner}

	if ve.Error() != "bad key: inner detail" {
		t.Errorf("unexpected error string: %q", ve.Error())
	}
	if !errors.Is(ve, inner) {
		t.Error("expected Unwrap to expose the inner error")
	}

	bare := &ValidationError{Type: ErrTypeUnknown, Message: "just a message"}
	if bare.Error() != "just a message" {
		t.Errorf("unexpected error string: %q", bare.Error())
	}
}
