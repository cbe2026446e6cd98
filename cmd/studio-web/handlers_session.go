package main

import (
	"net/http"

	"github.com/pixelforge/fusion-studio/internal/catalog"
	"github.com/pixelforge/fusion-studio/internal/gemini"
)

// POST /api/session
func (a *app) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	ws := a.store.Create()
	respondJSON(w, http.StatusCreated, map[string]string{"sessionId": ws.ID()})
}

// GET /api/state
func (a *app) handleState(w http.ResponseWriter, r *http.Request) {
	ws, ok := a.session(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, ws.Snapshot())
}

// GET /api/options
func (a *app) handleOptions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"blendStyles":  catalog.BlendStyles(),
		"aspectRatios": catalog.AspectRatios(),
		"imageModels":  gemini.ImageModelChoices(),
	})
}

// GET /api/health
func (a *app) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"models": map[string]any{
			"describe": gemini.DescribeModel(),
			"edit":     gemini.EditModel(),
			"image":    gemini.ImageModelChoices(),
		},
	})
}
