// Package gemini adapts the hosted Gemini API to the three capabilities the
// studio workflows consume: describing images as text, generating an image
// from text, and editing an image with a reference.
//
// Emptiness is data, not failure: a describe call may yield an empty string
// and an image call may yield a zero imaging.EmbeddedImage, both with a nil
// error. Callers decide what an empty result means for their workflow. Errors
// are reserved for transport and service failures.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Client wraps the Gemini SDK client.
type Client struct {
	genai *genai.Client
}

// NewClient creates a Gemini API client using the provided API key.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	return &Client{genai: c}, nil
}

// Raw exposes the underlying SDK client for startup key validation.
func (c *Client) Raw() *genai.Client {
	return c.genai
}

// truncateString shortens a string for log output.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
