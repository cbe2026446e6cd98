// Package catalog holds the fixed option sets the UI offers: blend styles and
// aspect ratios. Keys are stable API identifiers; names and descriptions are
// display text, with the style name also inserted verbatim into composed
// prompts.
package catalog

// BlendStyle is a named stylistic preset guiding how multiple images are
// merged into one descriptive prompt.
type BlendStyle struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var blendStyles = []BlendStyle{
	{
		Key:         "fusion",
		Name:        "Fusion",
		Description: "Merge the subjects and settings into one seamless scene.",
	},
	{
		Key:         "surreal_collage",
		Name:        "Surreal Collage",
		Description: "Dreamlike juxtaposition with impossible scale and placement.",
	},
	{
		Key:         "painterly_blend",
		Name:        "Painterly Blend",
		Description: "Unify the sources with visible brushwork and a shared palette.",
	},
	{
		Key:         "photorealistic_composite",
		Name:        "Photorealistic Composite",
		Description: "A single believable photograph, consistent light and shadow.",
	},
	{
		Key:         "graphic_mashup",
		Name:        "Graphic Mashup",
		Description: "Bold flat shapes and poster-style composition.",
	},
}

// BlendStyles returns the fixed set of blend styles in presentation order.
func BlendStyles() []BlendStyle {
	out := make([]BlendStyle, len(blendStyles))
	copy(out, blendStyles)
	return out
}

// BlendStyleByKey looks up a style by its stable key.
func BlendStyleByKey(key string) (BlendStyle, bool) {
	for _, s := range blendStyles {
		if s.Key == key {
			return s, true
		}
	}
	return BlendStyle{}, false
}

// DefaultAspectRatio is applied to a fresh workspace and restored on reset.
// Blend style and guidance have no default; they start empty.
const DefaultAspectRatio = "1:1"

var aspectRatios = []string{"1:1", "16:9", "9:16", "4:3", "3:4"}

// AspectRatios returns the fixed set of aspect ratios offered for generation.
func AspectRatios() []string {
	out := make([]string, len(aspectRatios))
	copy(out, aspectRatios)
	return out
}

// IsValidAspectRatio reports membership in the fixed aspect ratio set.
func IsValidAspectRatio(ratio string) bool {
	for _, r := range aspectRatios {
		if r == ratio {
			return true
		}
	}
	return false
}
