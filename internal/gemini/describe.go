package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/pixelforge/fusion-studio/internal/assets"
	"github.com/pixelforge/fusion-studio/internal/imaging"
)

// Describe sends the images as inline parts followed by the prompt text and
// returns the model's textual answer. Image order is preserved on the wire.
// An empty answer returns ("", nil); the caller decides whether that is fatal.
func (c *Client) Describe(ctx context.Context, prompt string, images []imaging.EmbeddedImage) (string, error) {
	model := DescribeModel()
	log.Debug().
		Str("model", model).
		Int("imageCount", len(images)).
		Str("prompt", truncateString(prompt, 100)).
		Msg("Sending describe request")

	parts := make([]*genai.Part, 0, len(images)+1)
	for _, img := range images {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: img.MIMEType,
				Data:     img.Data,
			},
		})
	}
	parts = append(parts, &genai.Part{Text: prompt})

	contents := []*genai.Content{{Role: "user", Parts: parts}}
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: assets.DescribeSystemPrompt}},
		},
	}

	start := time.Now()
	resp, err := c.genai.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return "", fmt.Errorf("describe call failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	log.Debug().
		Str("model", model).
		Dur("duration", time.Since(start)).
		Int("responseLength", len(text)).
		Msg("Describe response received")
	return text, nil
}
