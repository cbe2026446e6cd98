package gemini

import "os"

// Model IDs
//
// | Capability        | API Model ID                    | Notes                          |
// |-------------------|---------------------------------|--------------------------------|
// | Describe (vision) | gemini-3-flash-preview          | Fast multimodal understanding  |
// | Describe fallback | gemini-2.5-flash                | Stable, balanced performance   |
// | Image generation  | imagen-3.0-generate-002         | Text-to-image, aspect control  |
// | Multimodal edit   | gemini-2.5-flash-image-preview  | Image in, image out            |
// | Multimodal edit+  | gemini-3-pro-image-preview      | Higher fidelity edits          |
const (
	// ModelGemini3FlashPreview is best for speed + intelligence.
	ModelGemini3FlashPreview = "gemini-3-flash-preview"

	// ModelGemini25Flash is stable, balanced performance.
	ModelGemini25Flash = "gemini-2.5-flash"

	// ModelImagen3 generates images from text with aspect ratio control.
	ModelImagen3 = "imagen-3.0-generate-002"

	// ModelGemini25FlashImage edits images and returns image output.
	ModelGemini25FlashImage = "gemini-2.5-flash-image-preview"

	// ModelGemini3ProImage is the higher-fidelity image generation/edit variant.
	ModelGemini3ProImage = "gemini-3-pro-image-preview"
)

// DescribeModel returns the model used for the describe step, resolved from
// the STUDIO_MODEL_DESCRIBE environment variable with a sensible default.
func DescribeModel() string {
	if env := os.Getenv("STUDIO_MODEL_DESCRIBE"); env != "" {
		return env
	}
	return ModelGemini3FlashPreview
}

// EditModel returns the image-capable model used for the face swap edit call.
// Overridable via STUDIO_MODEL_EDIT. Deliberately distinct from the blend
// workflow's generation model.
func EditModel() string {
	if env := os.Getenv("STUDIO_MODEL_EDIT"); env != "" {
		return env
	}
	return ModelGemini25FlashImage
}

// ImageModelChoices returns the fixed allowed set of text-to-image models the
// blend workflow may select from. Currently a single entry; the UI still
// renders a selector.
func ImageModelChoices() []string {
	return []string{ModelImagen3}
}

// DefaultImageModel is applied to a fresh workspace and restored on reset.
func DefaultImageModel() string {
	return ImageModelChoices()[0]
}

// IsValidImageModel reports membership in the allowed image model set.
func IsValidImageModel(id string) bool {
	for _, m := range ImageModelChoices() {
		if m == id {
			return true
		}
	}
	return false
}
