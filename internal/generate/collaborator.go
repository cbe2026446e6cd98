// Package generate runs the two generation workflows, blend and swap, as
// asynchronous attempts against a workspace. The hosted service is injected
// behind the Collaborator interface so tests substitute a fake.
package generate

import (
	"context"

	"github.com/pixelforge/fusion-studio/internal/imaging"
)

// Collaborator is the generative service surface the workflows consume.
// Emptiness is data, not failure: Describe may return an empty string and the
// image calls may return a zero EmbeddedImage, each with a nil error, when
// the service answered without the expected payload. Errors are reserved for
// transport and service failures.
type Collaborator interface {
	// Describe answers a text prompt about the given images, which are sent
	// as inline parts in order.
	Describe(ctx context.Context, prompt string, images []imaging.EmbeddedImage) (string, error)

	// GenerateImage renders one JPEG image from the prompt at the given
	// aspect ratio using the named model.
	GenerateImage(ctx context.Context, prompt, model, aspectRatio string) (imaging.EmbeddedImage, error)

	// EditImage performs a multimodal edit with parts ordered [scene, face,
	// instruction] and returns the first image part of the response with its
	// declared MIME type.
	EditImage(ctx context.Context, scene, face imaging.EmbeddedImage, instruction, model string) (imaging.EmbeddedImage, error)
}
