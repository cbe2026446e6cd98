package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/pixelforge/fusion-studio/internal/workspace"
)

// POST /api/blend/slots
func (a *app) handleAddSlot(w http.ResponseWriter, r *http.Request) {
	ws, ok := a.session(w, r)
	if !ok {
		return
	}
	count := ws.AddBlendSlot()
	log.Debug().Str("sessionId", ws.ID()).Int("slots", count).Msg("Blend slot added")
	respondJSON(w, http.StatusOK, ws.Snapshot())
}

// DELETE /api/blend/slots/{index}
func (a *app) handleClearSlot(w http.ResponseWriter, r *http.Request) {
	ws, ok := a.session(w, r)
	if !ok {
		return
	}
	index, ok := slotIndex(w, r)
	if !ok {
		return
	}
	if err := ws.RemoveBlendImage(index); err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, ws.Snapshot())
}

// POST /api/blend/slots/{index}/image
func (a *app) handleBlendUpload(w http.ResponseWriter, r *http.Request) {
	ws, ok := a.session(w, r)
	if !ok {
		return
	}
	index, ok := slotIndex(w, r)
	if !ok {
		return
	}
	img, ok := a.readUploadedImage(w, r)
	if !ok {
		return
	}
	if !img.IsZero() {
		if err := ws.UploadBlendImage(index, img); err != nil {
			httpError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	respondJSON(w, http.StatusOK, ws.Snapshot())
}

// POST /api/blend/settings
//
// Fields are optional; only the ones present are applied.
func (a *app) handleBlendSettings(w http.ResponseWriter, r *http.Request) {
	ws, ok := a.session(w, r)
	if !ok {
		return
	}

	var req struct {
		Style       *string `json:"style"`
		Guidance    *string `json:"guidance"`
		AspectRatio *string `json:"aspectRatio"`
		Model       *string `json:"model"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Style != nil {
		if err := ws.SetBlendStyle(*req.Style); err != nil {
			httpError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.Guidance != nil {
		ws.SetBlendGuidance(*req.Guidance)
	}
	if req.AspectRatio != nil {
		if err := ws.SetBlendAspectRatio(*req.AspectRatio); err != nil {
			httpError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.Model != nil {
		if err := ws.SetBlendModel(*req.Model); err != nil {
			httpError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	respondJSON(w, http.StatusOK, ws.Snapshot())
}

// POST /api/blend/reset
func (a *app) handleBlendReset(w http.ResponseWriter, r *http.Request) {
	ws, ok := a.session(w, r)
	if !ok {
		return
	}
	ws.ResetBlend()
	log.Debug().Str("sessionId", ws.ID()).Msg("Blend workflow reset")
	respondJSON(w, http.StatusOK, ws.Snapshot())
}

// POST /api/blend/generate
func (a *app) handleBlendGenerate(w http.ResponseWriter, r *http.Request) {
	ws, ok := a.session(w, r)
	if !ok {
		return
	}
	attemptID, err := a.orch.StartBlend(ws)
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

func slotIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		httpError(w, http.StatusBadRequest, "slot index must be a number")
		return 0, false
	}
	return index, true
}
