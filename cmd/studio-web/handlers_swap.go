package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pixelforge/fusion-studio/internal/workspace"
)

// POST /api/swap/{role}/image
func (a *app) handleSwapUpload(w http.ResponseWriter, r *http.Request) {
	ws, ok := a.session(w, r)
	if !ok {
		return
	}
	role := chi.URLParam(r, "role")
	img, ok := a.readUploadedImage(w, r)
	if !ok {
		return
	}
	if !img.IsZero() {
		if err := ws.SetSwapImage(role, img); err != nil {
			httpError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	respondJSON(w, http.StatusOK, ws.Snapshot())
}

// DELETE /api/swap/{role}/image
func (a *app) handleSwapClear(w http.ResponseWriter, r *http.Request) {
	ws, ok := a.session(w, r)
	if !ok {
		return
	}
	if err := ws.RemoveSwapImage(chi.URLParam(r, "role")); err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, ws.Snapshot())
}

// POST /api/swap/settings
func (a *app) handleSwapSettings(w http.ResponseWriter, r *http.Request) {
	ws, ok := a.session(w, r)
	if !ok {
		return
	}
	var req struct {
		Guidance *string `json:"guidance"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Guidance != nil {
		ws.SetSwapGuidance(*req.Guidance)
	}
	respondJSON(w, http.StatusOK, ws.Snapshot())
}

// POST /api/swap/generate
func (a *app) handleSwapGenerate(w http.ResponseWriter, r *http.Request) {
	ws, ok := a.session(w, r)
	if !ok {
		return
	}
	attemptID, err := a.orch.StartSwap(ws)
	if err != nil {
		if errors.Is(err, workspace.ErrAttemptInFlight) {
			httpError(w, http.StatusConflict, err.Error())
			return
		}
		httpError(w, http.StatusInternalServerError, "could not start the attempt")
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{"attemptId": attemptID})
}
