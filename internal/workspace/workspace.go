// Package workspace holds the per-session editing state: blend slots, swap
// slots, workflow settings, the attempt lifecycle, and the gallery. A
// workspace lives for one page load; reloading the page starts a fresh one.
//
// Every field is guarded by the workspace mutex. Generation goroutines mutate
// state only through the methods here, never directly.
package workspace

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pixelforge/fusion-studio/internal/catalog"
	"github.com/pixelforge/fusion-studio/internal/gemini"
	"github.com/pixelforge/fusion-studio/internal/imaging"
)

const (
	initialBlendSlots = 2
	maxBlendSlots     = 5
)

// Swap slot roles.
const (
	RoleScene = "scene"
	RoleFace  = "face"
)

var (
	// ErrSlotOutOfRange is returned for a blend slot index outside the
	// current slot sequence.
	ErrSlotOutOfRange = errors.New("slot index out of range")

	// ErrUnknownRole is returned for a swap role other than scene or face.
	ErrUnknownRole = errors.New("unknown swap role")

	// ErrAttemptInFlight is returned when a generation trigger arrives while
	// a previous attempt is still running.
	ErrAttemptInFlight = errors.New("a generation attempt is already running")
)

// slot is one uploaded image with its display affordances, which are computed
// once at upload time so state polls stay cheap.
type slot struct {
	image   imaging.EmbeddedImage
	preview string // thumbnail data URL
	info    imaging.Info
}

func newSlot(img imaging.EmbeddedImage) slot {
	s := slot{image: img, preview: previewDataURL(img)}
	if info, err := imaging.Inspect(img); err == nil {
		s.info = info
	} else {
		log.Debug().Err(err).Msg("Could not inspect uploaded image")
	}
	return s
}

// galleryItem is one kept result with its thumbnail, computed once at save.
type galleryItem struct {
	image   imaging.EmbeddedImage
	preview string
}

func previewDataURL(img imaging.EmbeddedImage) string {
	thumb, err := imaging.Thumbnail(img, imaging.DefaultThumbnailMaxDimension)
	if err != nil {
		return img.DataURL()
	}
	return thumb.DataURL()
}

type blendState struct {
	slots       []slot
	styleKey    string
	guidance    string
	aspectRatio string
	model       string
}

func freshBlendState() blendState {
	return blendState{
		slots:       make([]slot, initialBlendSlots),
		aspectRatio: catalog.DefaultAspectRatio,
		model:       gemini.DefaultImageModel(),
	}
}

type swapState struct {
	scene    slot
	face     slot
	guidance string
}

// Failure is the published error of a finished attempt: a stable kind for the
// frontend to branch on and a human-readable message.
type Failure struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type attemptState struct {
	loading bool
	phase   string
	failure *Failure
	result  imaging.EmbeddedImage
}

// Workspace is the complete server-side state for one browser session.
type Workspace struct {
	mu sync.Mutex

	id       string
	lastSeen time.Time

	blend   blendState
	swap    swapState
	attempt attemptState
	gallery []galleryItem
}

// New creates a workspace with two empty blend slots, no style, empty
// guidance, and default aspect ratio and model.
func New(id string) *Workspace {
	return &Workspace{
		id:       id,
		lastSeen: time.Now(),
		blend:    freshBlendState(),
	}
}

// ID returns the workspace identifier.
func (w *Workspace) ID() string {
	return w.id
}

func (w *Workspace) touch() {
	w.mu.Lock()
	w.lastSeen = time.Now()
	w.mu.Unlock()
}

func (w *Workspace) idleSince() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastSeen
}

// --- Upload Manager ---

// UploadBlendImage stores the image at the given slot, replacing any prior
// value there.
func (w *Workspace) UploadBlendImage(index int, img imaging.EmbeddedImage) error {
	s := newSlot(img)
	w.mu.Lock()
	defer w.mu.Unlock()
	if index < 0 || index >= len(w.blend.slots) {
		return fmt.Errorf("%w: %d of %d", ErrSlotOutOfRange, index, len(w.blend.slots))
	}
	w.blend.slots[index] = s
	return nil
}

// RemoveBlendImage clears the slot back to empty. Other slots keep their
// positions; the sequence stays sparse rather than compacting.
func (w *Workspace) RemoveBlendImage(index int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if index < 0 || index >= len(w.blend.slots) {
		return fmt.Errorf("%w: %d of %d", ErrSlotOutOfRange, index, len(w.blend.slots))
	}
	w.blend.slots[index] = slot{}
	return nil
}

// AddBlendSlot appends one empty slot and returns the new slot count. At the
// five-slot capacity the count is returned unchanged.
func (w *Workspace) AddBlendSlot() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.blend.slots) < maxBlendSlots {
		w.blend.slots = append(w.blend.slots, slot{})
	}
	return len(w.blend.slots)
}

// SetSwapImage stores the image in the named singleton slot.
func (w *Workspace) SetSwapImage(role string, img imaging.EmbeddedImage) error {
	s := newSlot(img)
	w.mu.Lock()
	defer w.mu.Unlock()
	switch role {
	case RoleScene:
		w.swap.scene = s
	case RoleFace:
		w.swap.face = s
	default:
		return fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	return nil
}

// RemoveSwapImage clears the named singleton slot.
func (w *Workspace) RemoveSwapImage(role string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch role {
	case RoleScene:
		w.swap.scene = slot{}
	case RoleFace:
		w.swap.face = slot{}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	return nil
}

// --- Workflow settings ---

// SetBlendStyle selects a blend style by key.
func (w *Workspace) SetBlendStyle(key string) error {
	if _, ok := catalog.BlendStyleByKey(key); !ok {
		return fmt.Errorf("unknown blend style %q", key)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.blend.styleKey = key
	return nil
}

// SetBlendGuidance stores the free-form creative direction text.
func (w *Workspace) SetBlendGuidance(text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.blend.guidance = text
}

// SetBlendAspectRatio selects the output aspect ratio.
func (w *Workspace) SetBlendAspectRatio(ratio string) error {
	if !catalog.IsValidAspectRatio(ratio) {
		return fmt.Errorf("unknown aspect ratio %q", ratio)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.blend.aspectRatio = ratio
	return nil
}

// SetBlendModel selects the generation model from the allowed set.
func (w *Workspace) SetBlendModel(model string) error {
	if !gemini.IsValidImageModel(model) {
		return fmt.Errorf("unknown image model %q", model)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.blend.model = model
	return nil
}

// SetSwapGuidance stores the free-form creative direction text for the swap.
func (w *Workspace) SetSwapGuidance(text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.swap.guidance = text
}

// ResetBlend restores the blend workflow to its initial values: two empty
// slots, no style, empty guidance, default aspect ratio and model. Swap
// fields, the attempt lifecycle, and the gallery are untouched.
func (w *Workspace) ResetBlend() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.blend = freshBlendState()
}

// --- Attempt input snapshots ---

// BlendInputs is a point-in-time copy of everything a blend attempt needs.
// Later edits to the workspace do not affect an attempt already running.
type BlendInputs struct {
	Images      []imaging.EmbeddedImage // non-empty slots, in slot order
	Style       catalog.BlendStyle
	StyleSet    bool
	Guidance    string
	AspectRatio string
	Model       string
}

// BlendInputs snapshots the blend inputs under the lock.
func (w *Workspace) BlendInputs() BlendInputs {
	w.mu.Lock()
	defer w.mu.Unlock()
	in := BlendInputs{
		Guidance:    w.blend.guidance,
		AspectRatio: w.blend.aspectRatio,
		Model:       w.blend.model,
	}
	for _, s := range w.blend.slots {
		if !s.image.IsZero() {
			in.Images = append(in.Images, s.image)
		}
	}
	if style, ok := catalog.BlendStyleByKey(w.blend.styleKey); ok {
		in.Style = style
		in.StyleSet = true
	}
	return in
}

// SwapInputs is a point-in-time copy of everything a swap attempt needs.
type SwapInputs struct {
	Scene    imaging.EmbeddedImage
	Face     imaging.EmbeddedImage
	Guidance string
}

// SwapInputs snapshots the swap inputs under the lock.
func (w *Workspace) SwapInputs() SwapInputs {
	w.mu.Lock()
	defer w.mu.Unlock()
	return SwapInputs{
		Scene:    w.swap.scene.image,
		Face:     w.swap.face.image,
		Guidance: w.swap.guidance,
	}
}
