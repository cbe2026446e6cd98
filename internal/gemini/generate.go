package gemini

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/pixelforge/fusion-studio/internal/imaging"
)

// GenerateImage renders a single JPEG image from the prompt at the requested
// aspect ratio. A response carrying zero images returns a zero EmbeddedImage
// with a nil error.
func (c *Client) GenerateImage(ctx context.Context, prompt, model, aspectRatio string) (imaging.EmbeddedImage, error) {
	log.Debug().
		Str("model", model).
		Str("aspectRatio", aspectRatio).
		Str("prompt", truncateString(prompt, 100)).
		Msg("Sending image generation request")

	config := &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		OutputMIMEType: "image/jpeg",
		AspectRatio:    aspectRatio,
	}

	start := time.Now()
	resp, err := c.genai.Models.GenerateImages(ctx, model, prompt, config)
	if err != nil {
		return imaging.EmbeddedImage{}, fmt.Errorf("image generation call failed: %w", err)
	}

	if resp == nil || len(resp.GeneratedImages) == 0 {
		log.Warn().Str("model", model).Msg("Image generation returned zero images")
		return imaging.EmbeddedImage{}, nil
	}

	generated := resp.GeneratedImages[0]
	if generated.Image == nil || len(generated.Image.ImageBytes) == 0 {
		log.Warn().Str("model", model).Msg("Image generation returned an empty image")
		return imaging.EmbeddedImage{}, nil
	}

	log.Info().
		Str("model", model).
		Dur("duration", time.Since(start)).
		Int("imageBytes", len(generated.Image.ImageBytes)).
		Msg("Image generated")

	return imaging.EmbeddedImage{
		MIMEType: "image/jpeg",
		Data:     generated.Image.ImageBytes,
	}, nil
}
