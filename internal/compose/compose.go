// Package compose builds the natural-language instructions sent to the
// generation service. Everything here is pure string construction:
// deterministic, no I/O, never fails. Guidance text is inserted verbatim; the
// trust boundary is the hosted API, not this composer.
package compose

import (
	"fmt"
	"strings"
)

// DefaultGuidance is the creative direction used when the user supplies none.
const DefaultGuidance = "a seamless, visually striking composition"

// Guidance returns the trimmed user guidance, or DefaultGuidance when the
// input is empty or whitespace.
func Guidance(raw string) string {
	if trimmed := strings.TrimSpace(raw); trimmed != "" {
		return trimmed
	}
	return DefaultGuidance
}

// BlendDescribeRequest creates the user prompt for the describe step of the
// blend workflow: it asks the captioning capability to synthesize one
// generation-ready prompt fusing all attached images in the named style.
func BlendDescribeRequest(styleName, guidance string, imageCount int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(
		"Study the %d attached images and write one image generation prompt that fuses them into a single new picture.\n\n",
		imageCount,
	))

	sb.WriteString("### Style\n\n")
	sb.WriteString(styleName)
	sb.WriteString("\n\n")

	sb.WriteString("### Creative Direction\n\n")
	sb.WriteString(Guidance(guidance))
	sb.WriteString("\n")

	return sb.String()
}

// SwapInstruction creates the instruction for the face swap edit call. The
// part order is fixed by the caller: scene image first, face reference
// second, then this text.
func SwapInstruction(guidance string) string {
	var sb strings.Builder

	sb.WriteString("The first image is the scene. The second image is the face reference. ")
	sb.WriteString("Replace the face of the person in the scene with the face from the reference, ")
	sb.WriteString("keeping the scene's lighting, pose, and surroundings intact. ")
	sb.WriteString("Creative direction: ")
	sb.WriteString(Guidance(guidance))

	return sb.String()
}
