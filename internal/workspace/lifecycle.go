package workspace

import (
	"github.com/google/uuid"

	"github.com/pixelforge/fusion-studio/internal/imaging"
)

// BeginAttempt is the reentrancy guard for generation. It rejects with
// ErrAttemptInFlight while a previous attempt is still loading; overlapping
// triggers are refused, never queued. On success it clears the displayed
// result and error, marks the workspace loading, and returns an attempt ID
// for log correlation.
func (w *Workspace) BeginAttempt() (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.attempt.loading {
		return "", ErrAttemptInFlight
	}
	w.attempt = attemptState{loading: true}
	return uuid.New().String(), nil
}

// SetPhase publishes a transient progress label for the running attempt.
func (w *Workspace) SetPhase(phase string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.attempt.phase = phase
}

// PublishResult stores the image as the current result and clears any error.
func (w *Workspace) PublishResult(img imaging.EmbeddedImage) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.attempt.result = img
	w.attempt.failure = nil
}

// PublishError stores the failure. The result field is left untouched; a
// failed attempt never overwrites it.
func (w *Workspace) PublishError(kind, message string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.attempt.failure = &Failure{Kind: kind, Message: message}
}

// FinishAttempt clears the loading flag and the phase label. Callers defer
// this so loading is cleared on every exit path.
func (w *Workspace) FinishAttempt() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.attempt.loading = false
	w.attempt.phase = ""
}

// Loading reports whether an attempt is currently running.
func (w *Workspace) Loading() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.attempt.loading
}

// Result returns the current result image, which is zero when none exists.
func (w *Workspace) Result() imaging.EmbeddedImage {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.attempt.result
}

// SaveToGallery prepends the current result to the gallery and reports
// whether anything changed. Saving is a no-op when there is no result or
// when an equal image is already in the gallery. The thumbnail is rendered
// outside the lock.
func (w *Workspace) SaveToGallery() bool {
	result := w.Result()
	if result.IsZero() {
		return false
	}
	preview := previewDataURL(result)

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, item := range w.gallery {
		if item.image.Equal(result) {
			return false
		}
	}
	w.gallery = append([]galleryItem{{image: result, preview: preview}}, w.gallery...)
	return true
}

// GalleryImages returns the kept images, most recent first.
func (w *Workspace) GalleryImages() []imaging.EmbeddedImage {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]imaging.EmbeddedImage, 0, len(w.gallery))
	for _, item := range w.gallery {
		out = append(out, item.image)
	}
	return out
}
