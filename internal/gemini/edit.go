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

// EditImage sends the scene, the face reference, and the instruction in a
// single multimodal call and returns the first image part of the response,
// keeping the MIME type the service declared for it. Text parts are logged
// and otherwise ignored. A response with no image part returns a zero
// EmbeddedImage with a nil error.
func (c *Client) EditImage(ctx context.Context, scene, face imaging.EmbeddedImage, instruction, model string) (imaging.EmbeddedImage, error) {
	log.Debug().
		Str("model", model).
		Str("instruction", truncateString(instruction, 100)).
		Msg("Sending image edit request")

	parts := []*genai.Part{
		{InlineData: &genai.Blob{MIMEType: scene.MIMEType, Data: scene.Data}},
		{InlineData: &genai.Blob{MIMEType: face.MIMEType, Data: face.Data}},
		{Text: instruction},
	}

	contents := []*genai.Content{{Role: "user", Parts: parts}}
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: assets.SwapSystemPrompt}},
		},
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}

	start := time.Now()
	resp, err := c.genai.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return imaging.EmbeddedImage{}, fmt.Errorf("image edit call failed: %w", err)
	}

	var result imaging.EmbeddedImage
	var commentary []string
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 && result.IsZero() {
				result = imaging.EmbeddedImage{
					MIMEType: part.InlineData.MIMEType,
					Data:     part.InlineData.Data,
				}
				continue
			}
			if part.Text != "" {
				commentary = append(commentary, part.Text)
			}
		}
	}

	if len(commentary) > 0 {
		log.Debug().
			Str("model", model).
			Str("text", truncateString(strings.Join(commentary, " "), 200)).
			Msg("Edit response included text")
	}

	if result.IsZero() {
		log.Warn().Str("model", model).Msg("Edit response carried no image part")
		return imaging.EmbeddedImage{}, nil
	}

	log.Info().
		Str("model", model).
		Dur("duration", time.Since(start)).
		Str("mimeType", result.MIMEType).
		Int("imageBytes", len(result.Data)).
		Msg("Image edited")
	return result, nil
}
