package workspace

import (
	"errors"
	"testing"
	"time"

	"github.com/pixelforge/fusion-studio/internal/catalog"
	"github.com/pixelforge/fusion-studio/internal/gemini"
	"github.com/pixelforge/fusion-studio/internal/imaging"
)

// testImage builds a distinct in-memory image. The payload does not need to
// decode; previews fall back to the original bytes.
func testImage(payload string) imaging.EmbeddedImage {
	return imaging.EmbeddedImage{MIMEType: "image/png", Data: []byte(payload)}
}

// --- Initial State Tests ---

func TestNewWorkspaceDefaults(t *testing.T) {
	ws := New("test-session")
	v := ws.Snapshot()

	if v.ID != "test-session" {
		t.Errorf("ID = %q, want %q", v.ID, "test-session")
	}
	if len(v.Blend.Slots) != 2 {
		t.Fatalf("fresh workspace has %d slots, want 2", len(v.Blend.Slots))
	}
	for i, s := range v.Blend.Slots {
		if s.Filled {
			t.Errorf("slot %d filled on fresh workspace", i)
		}
	}
	if v.Blend.StyleKey != "" {
		t.Errorf("StyleKey = %q, want empty", v.Blend.StyleKey)
	}
	if v.Blend.AspectRatio != catalog.DefaultAspectRatio {
		t.Errorf("AspectRatio = %q, want %q", v.Blend.AspectRatio, catalog.DefaultAspectRatio)
	}
	if v.Blend.Model != gemini.DefaultImageModel() {
		t.Errorf("Model = %q, want %q", v.Blend.Model, gemini.DefaultImageModel())
	}
	if v.Loading || v.Error != nil || v.Result != nil {
		t.Errorf("fresh workspace lifecycle not idle: loading=%v error=%v result=%v", v.Loading, v.Error, v.Result)
	}
	if len(v.Gallery) != 0 {
		t.Errorf("fresh workspace gallery has %d items", len(v.Gallery))
	}
}

// --- Upload Manager Tests ---

func TestUploadBlendImage(t *testing.T) {
	ws := New("s")
	if err := ws.UploadBlendImage(1, testImage("one")); err != nil {
		t.Fatalf("UploadBlendImage(1) error: %v", err)
	}

	v := ws.Snapshot()
	if v.Blend.Slots[0].Filled {
		t.Error("slot 0 filled, want empty")
	}
	if !v.Blend.Slots[1].Filled {
		t.Error("slot 1 empty, want filled")
	}
	if v.Blend.Slots[1].Preview == "" {
		t.Error("filled slot has no preview")
	}
}

func TestUploadBlendImageOutOfRange(t *testing.T) {
	ws := New("s")
	for _, index := range []int{-1, 2, 99} {
		if err := ws.UploadBlendImage(index, testImage("x")); !errors.Is(err, ErrSlotOutOfRange) {
			t.Errorf("UploadBlendImage(%d) error = %v, want ErrSlotOutOfRange", index, err)
		}
	}
}

func TestRemoveBlendImageKeepsPositions(t *testing.T) {
	ws := New("s")
	ws.AddBlendSlot()
	for i := 0; i < 3; i++ {
		if err := ws.UploadBlendImage(i, testImage(string(rune('a'+i)))); err != nil {
			t.Fatalf("upload %d: %v", i, err)
		}
	}

	if err := ws.RemoveBlendImage(1); err != nil {
		t.Fatalf("RemoveBlendImage(1) error: %v", err)
	}

	v := ws.Snapshot()
	want := []bool{true, false, true}
	for i, filled := range want {
		if v.Blend.Slots[i].Filled != filled {
			t.Errorf("slot %d filled = %v, want %v", i, v.Blend.Slots[i].Filled, filled)
		}
	}
}

func TestAddBlendSlotCapacity(t *testing.T) {
	ws := New("s")
	counts := []int{3, 4, 5, 5, 5}
	for i, want := range counts {
		if got := ws.AddBlendSlot(); got != want {
			t.Errorf("AddBlendSlot call %d = %d, want %d", i+1, got, want)
		}
	}
	if n := len(ws.Snapshot().Blend.Slots); n != 5 {
		t.Errorf("slot count = %d, want 5", n)
	}
}

func TestSwapImageRoles(t *testing.T) {
	ws := New("s")
	if err := ws.SetSwapImage(RoleScene, testImage("scene")); err != nil {
		t.Fatalf("SetSwapImage(scene) error: %v", err)
	}
	if err := ws.SetSwapImage(RoleFace, testImage("face")); err != nil {
		t.Fatalf("SetSwapImage(face) error: %v", err)
	}
	if err := ws.SetSwapImage("profile", testImage("x")); !errors.Is(err, ErrUnknownRole) {
		t.Errorf("SetSwapImage(profile) error = %v, want ErrUnknownRole", err)
	}

	v := ws.Snapshot()
	if !v.Swap.Scene.Filled || !v.Swap.Face.Filled {
		t.Errorf("swap slots not filled: scene=%v face=%v", v.Swap.Scene.Filled, v.Swap.Face.Filled)
	}

	if err := ws.RemoveSwapImage(RoleFace); err != nil {
		t.Fatalf("RemoveSwapImage(face) error: %v", err)
	}
	v = ws.Snapshot()
	if !v.Swap.Scene.Filled || v.Swap.Face.Filled {
		t.Errorf("after face removal: scene=%v face=%v", v.Swap.Scene.Filled, v.Swap.Face.Filled)
	}
}

// --- Settings Tests ---

func TestBlendSettingsValidation(t *testing.T) {
	ws := New("s")

	if err := ws.SetBlendStyle("surreal_collage"); err != nil {
		t.Errorf("SetBlendStyle(surreal_collage) error: %v", err)
	}
	if err := ws.SetBlendStyle("vaporwave"); err == nil {
		t.Error("SetBlendStyle(vaporwave) accepted an unknown style")
	}
	if err := ws.SetBlendAspectRatio("9:16"); err != nil {
		t.Errorf("SetBlendAspectRatio(9:16) error: %v", err)
	}
	if err := ws.SetBlendAspectRatio("2:1"); err == nil {
		t.Error("SetBlendAspectRatio(2:1) accepted an unknown ratio")
	}
	if err := ws.SetBlendModel(gemini.DefaultImageModel()); err != nil {
		t.Errorf("SetBlendModel(default) error: %v", err)
	}
	if err := ws.SetBlendModel("dall-e-2"); err == nil {
		t.Error("SetBlendModel(dall-e-2) accepted a model outside the allowed set")
	}

	ws.SetBlendGuidance("  neon skyline  ")
	v := ws.Snapshot()
	if v.Blend.StyleKey != "surreal_collage" || v.Blend.AspectRatio != "9:16" {
		t.Errorf("settings not applied: style=%q aspect=%q", v.Blend.StyleKey, v.Blend.AspectRatio)
	}
	if v.Blend.Guidance != "  neon skyline  " {
		t.Errorf("guidance stored = %q, want raw text preserved", v.Blend.Guidance)
	}
}

func TestResetBlendLeavesSwapAndLifecycle(t *testing.T) {
	ws := New("s")
	ws.AddBlendSlot()
	_ = ws.UploadBlendImage(0, testImage("a"))
	_ = ws.UploadBlendImage(2, testImage("b"))
	_ = ws.SetBlendStyle("fusion")
	ws.SetBlendGuidance("moody")
	_ = ws.SetBlendAspectRatio("16:9")
	_ = ws.SetSwapImage(RoleScene, testImage("scene"))
	ws.SetSwapGuidance("bright")
	ws.PublishResult(testImage("result"))

	ws.ResetBlend()

	v := ws.Snapshot()
	if len(v.Blend.Slots) != 2 {
		t.Errorf("slots after reset = %d, want 2", len(v.Blend.Slots))
	}
	for i, s := range v.Blend.Slots {
		if s.Filled {
			t.Errorf("slot %d still filled after reset", i)
		}
	}
	if v.Blend.StyleKey != "" || v.Blend.Guidance != "" {
		t.Errorf("style/guidance after reset = %q/%q, want empty", v.Blend.StyleKey, v.Blend.Guidance)
	}
	if v.Blend.AspectRatio != catalog.DefaultAspectRatio {
		t.Errorf("aspect after reset = %q, want %q", v.Blend.AspectRatio, catalog.DefaultAspectRatio)
	}
	if !v.Swap.Scene.Filled || v.Swap.Guidance != "bright" {
		t.Error("reset touched swap fields")
	}
	if v.Result == nil {
		t.Error("reset cleared the published result")
	}
}

// --- Attempt Lifecycle Tests ---

func TestBeginAttemptRejectsWhileLoading(t *testing.T) {
	ws := New("s")

	id, err := ws.BeginAttempt()
	if err != nil {
		t.Fatalf("first BeginAttempt error: %v", err)
	}
	if id == "" {
		t.Error("BeginAttempt returned an empty attempt ID")
	}
	if !ws.Loading() {
		t.Error("not loading after BeginAttempt")
	}

	if _, err := ws.BeginAttempt(); !errors.Is(err, ErrAttemptInFlight) {
		t.Errorf("second BeginAttempt error = %v, want ErrAttemptInFlight", err)
	}

	ws.FinishAttempt()
	if ws.Loading() {
		t.Error("still loading after FinishAttempt")
	}
	if _, err := ws.BeginAttempt(); err != nil {
		t.Errorf("BeginAttempt after finish error: %v", err)
	}
}

func TestBeginAttemptClearsPriorOutcome(t *testing.T) {
	ws := New("s")
	ws.PublishResult(testImage("old"))
	ws.PublishError("service", "boom")

	if _, err := ws.BeginAttempt(); err != nil {
		t.Fatalf("BeginAttempt error: %v", err)
	}
	v := ws.Snapshot()
	if v.Result != nil || v.Error != nil {
		t.Errorf("prior outcome survived BeginAttempt: result=%v error=%v", v.Result, v.Error)
	}
	if !v.Loading {
		t.Error("not loading after BeginAttempt")
	}
}

func TestPublishErrorLeavesResultField(t *testing.T) {
	ws := New("s")
	ws.PublishResult(testImage("keep"))
	ws.PublishError("service", "upstream unavailable")

	v := ws.Snapshot()
	if v.Error == nil || v.Error.Kind != "service" {
		t.Fatalf("error not published: %+v", v.Error)
	}
	if v.Result == nil {
		t.Error("PublishError cleared the result field")
	}

	ws.PublishResult(testImage("new"))
	if v := ws.Snapshot(); v.Error != nil {
		t.Error("PublishResult did not clear the error")
	}
}

func TestSetPhaseVisibleWhileLoading(t *testing.T) {
	ws := New("s")
	_, _ = ws.BeginAttempt()
	ws.SetPhase("describing")

	if got := ws.Snapshot().Phase; got != "describing" {
		t.Errorf("phase = %q, want %q", got, "describing")
	}

	ws.FinishAttempt()
	if got := ws.Snapshot().Phase; got != "" {
		t.Errorf("phase after finish = %q, want empty", got)
	}
}

// --- Gallery Tests ---

func TestSaveToGallery(t *testing.T) {
	ws := New("s")

	if ws.SaveToGallery() {
		t.Error("SaveToGallery succeeded with no result")
	}

	first := testImage("first")
	ws.PublishResult(first)
	if !ws.SaveToGallery() {
		t.Fatal("SaveToGallery failed with a fresh result")
	}
	if ws.SaveToGallery() {
		t.Error("SaveToGallery stored a duplicate")
	}

	second := testImage("second")
	ws.PublishResult(second)
	if !ws.SaveToGallery() {
		t.Fatal("SaveToGallery failed for a second result")
	}

	images := ws.GalleryImages()
	if len(images) != 2 {
		t.Fatalf("gallery size = %d, want 2", len(images))
	}
	if !images[0].Equal(second) || !images[1].Equal(first) {
		t.Error("gallery is not most-recent-first")
	}
}

// --- Input Snapshot Tests ---

func TestBlendInputsSkipEmptySlots(t *testing.T) {
	ws := New("s")
	ws.AddBlendSlot()
	_ = ws.UploadBlendImage(0, testImage("a"))
	_ = ws.UploadBlendImage(2, testImage("c"))
	_ = ws.SetBlendStyle("painterly_blend")
	ws.SetBlendGuidance("golden hour")

	in := ws.BlendInputs()
	if len(in.Images) != 2 {
		t.Fatalf("Images = %d, want 2", len(in.Images))
	}
	if string(in.Images[0].Data) != "a" || string(in.Images[1].Data) != "c" {
		t.Error("images not in slot order")
	}
	if !in.StyleSet || in.Style.Name != "Painterly Blend" {
		t.Errorf("style = %+v (set=%v), want Painterly Blend", in.Style, in.StyleSet)
	}
	if in.Guidance != "golden hour" {
		t.Errorf("guidance = %q", in.Guidance)
	}
}

func TestBlendInputsUnsetStyle(t *testing.T) {
	ws := New("s")
	if in := ws.BlendInputs(); in.StyleSet {
		t.Error("StyleSet true on a fresh workspace")
	}
}

func TestSwapInputsSnapshot(t *testing.T) {
	ws := New("s")
	_ = ws.SetSwapImage(RoleScene, testImage("scene"))
	_ = ws.SetSwapImage(RoleFace, testImage("face"))
	ws.SetSwapGuidance("subtle")

	in := ws.SwapInputs()
	if string(in.Scene.Data) != "scene" || string(in.Face.Data) != "face" {
		t.Error("swap inputs do not match uploads")
	}
	if in.Guidance != "subtle" {
		t.Errorf("guidance = %q", in.Guidance)
	}

	// Later edits must not leak into the taken snapshot.
	_ = ws.RemoveSwapImage(RoleScene)
	if in.Scene.IsZero() {
		t.Error("snapshot mutated by a later removal")
	}
}

// --- Store Tests ---

func TestStoreCreateAndGet(t *testing.T) {
	store := NewStore(time.Hour)

	ws := store.Create()
	got, ok := store.Get(ws.ID())
	if !ok || got != ws {
		t.Fatalf("Get(%q) = %v, %v", ws.ID(), got, ok)
	}
	if _, ok := store.Get("missing"); ok {
		t.Error("Get returned a workspace for an unknown ID")
	}
}

func TestStoreEvictsIdleWorkspaces(t *testing.T) {
	store := NewStore(time.Minute)

	stale := store.Create()
	stale.mu.Lock()
	stale.lastSeen = time.Now().Add(-2 * time.Minute)
	stale.mu.Unlock()

	fresh := store.Create()

	if _, ok := store.Get(stale.ID()); ok {
		t.Error("stale workspace survived eviction")
	}
	if _, ok := store.Get(fresh.ID()); !ok {
		t.Error("fresh workspace was evicted")
	}
	if store.Len() != 1 {
		t.Errorf("Len = %d, want 1", store.Len())
	}
}

func TestStoreGetRefreshesIdleTimer(t *testing.T) {
	store := NewStore(time.Minute)
	ws := store.Create()

	ws.mu.Lock()
	ws.lastSeen = time.Now().Add(-2 * time.Minute)
	ws.mu.Unlock()

	// Touch through Get, then trigger a sweep.
	if _, ok := store.Get(ws.ID()); !ok {
		t.Fatal("workspace disappeared before sweep")
	}
	store.Create()

	if _, ok := store.Get(ws.ID()); !ok {
		t.Error("touched workspace was evicted")
	}
}
