// Package assets provides embedded static assets for the application.
//
// Prompt text is stored as files under prompts/ and embedded at compile time,
// keeping model-facing wording reviewable without touching Go code.
package assets

import (
	_ "embed"
)

// DescribeSystemPrompt instructs the describe step to study the uploaded
// images and answer with a single generation-ready prompt that fuses them.
//
//go:embed prompts/describe-system.txt
var DescribeSystemPrompt string

// SwapSystemPrompt instructs the multimodal edit step to replace the face in
// the scene image with the face from the reference image.
//
//go:embed prompts/swap-system.txt
var SwapSystemPrompt string
