package workspace

import "strings"

// View is the full workspace snapshot the frontend renders from. Slot and
// gallery previews are thumbnail data URLs computed when the image entered
// the workspace; only the current result is inlined at full size.
type View struct {
	ID      string            `json:"id"`
	Loading bool              `json:"loading"`
	Phase   string            `json:"phase,omitempty"`
	Error   *Failure          `json:"error,omitempty"`
	Result  *ImageView        `json:"result,omitempty"`
	Blend   BlendView         `json:"blend"`
	Swap    SwapView          `json:"swap"`
	Gallery []GalleryItemView `json:"gallery"`
}

// ImageView inlines an image as a data URL.
type ImageView struct {
	MIMEType string `json:"mimeType"`
	DataURL  string `json:"dataUrl"`
}

// SlotView describes one upload slot.
type SlotView struct {
	Filled  bool   `json:"filled"`
	Preview string `json:"preview,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	Camera  string `json:"camera,omitempty"`
}

// BlendView is the blend workflow sub-state.
type BlendView struct {
	Slots       []SlotView `json:"slots"`
	StyleKey    string     `json:"styleKey"`
	Guidance    string     `json:"guidance"`
	AspectRatio string     `json:"aspectRatio"`
	Model       string     `json:"model"`
}

// SwapView is the swap workflow sub-state.
type SwapView struct {
	Scene    SlotView `json:"scene"`
	Face     SlotView `json:"face"`
	Guidance string   `json:"guidance"`
}

// GalleryItemView is one kept image, previewed as a thumbnail.
type GalleryItemView struct {
	MIMEType string `json:"mimeType"`
	Preview  string `json:"preview"`
}

// Snapshot renders the workspace under its lock.
func (w *Workspace) Snapshot() View {
	w.mu.Lock()
	defer w.mu.Unlock()

	v := View{
		ID:      w.id,
		Loading: w.attempt.loading,
		Phase:   w.attempt.phase,
		Blend: BlendView{
			Slots:       make([]SlotView, 0, len(w.blend.slots)),
			StyleKey:    w.blend.styleKey,
			Guidance:    w.blend.guidance,
			AspectRatio: w.blend.aspectRatio,
			Model:       w.blend.model,
		},
		Swap: SwapView{
			Scene:    slotView(w.swap.scene),
			Face:     slotView(w.swap.face),
			Guidance: w.swap.guidance,
		},
		Gallery: make([]GalleryItemView, 0, len(w.gallery)),
	}

	if w.attempt.failure != nil {
		f := *w.attempt.failure
		v.Error = &f
	}
	if !w.attempt.result.IsZero() {
		v.Result = &ImageView{
			MIMEType: w.attempt.result.MIMEType,
			DataURL:  w.attempt.result.DataURL(),
		}
	}
	for _, s := range w.blend.slots {
		v.Blend.Slots = append(v.Blend.Slots, slotView(s))
	}
	for _, item := range w.gallery {
		v.Gallery = append(v.Gallery, GalleryItemView{
			MIMEType: item.image.MIMEType,
			Preview:  item.preview,
		})
	}
	return v
}

func slotView(s slot) SlotView {
	if s.image.IsZero() {
		return SlotView{}
	}
	return SlotView{
		Filled:  true,
		Preview: s.preview,
		Width:   s.info.Width,
		Height:  s.info.Height,
		Camera:  strings.TrimSpace(strings.TrimSpace(s.info.CameraMake) + " " + strings.TrimSpace(s.info.CameraModel)),
	}
}
