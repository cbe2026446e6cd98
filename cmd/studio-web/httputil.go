package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/pixelforge/fusion-studio/internal/imaging"
	"github.com/pixelforge/fusion-studio/internal/workspace"
)

// sessionHeader carries the workspace ID the page received from
// POST /api/session. It lives in page memory only, so a reload starts over.
const sessionHeader = "X-Session-ID"

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Debug().Err(err).Msg("Failed to encode response")
	}
}

func httpError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// session resolves the request's workspace, writing the error response itself
// when the header is missing or no longer maps to a live workspace.
func (a *app) session(w http.ResponseWriter, r *http.Request) (*workspace.Workspace, bool) {
	id := r.Header.Get(sessionHeader)
	if id == "" {
		httpError(w, http.StatusBadRequest, "missing "+sessionHeader+" header")
		return nil, false
	}
	ws, ok := a.store.Get(id)
	if !ok {
		httpError(w, http.StatusNotFound, "unknown or expired session")
		return nil, false
	}
	return ws, true
}

// decodeJSON parses a small JSON request body into dst, answering the error
// response on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(dst); err != nil {
		httpError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// readUploadedImage extracts the "image" part of a multipart form under the
// server-wide size cap. ok=false means an error response was already written.
// A form without a file part yields a zero image with ok=true; callers treat
// that as a no-op, matching the file picker's cancel behavior.
func (a *app) readUploadedImage(w http.ResponseWriter, r *http.Request) (imaging.EmbeddedImage, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, a.maxUploadBytes)
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return imaging.EmbeddedImage{}, true
	}
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httpError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("image exceeds the %d-byte upload limit", maxErr.Limit))
			return imaging.EmbeddedImage{}, false
		}
		httpError(w, http.StatusBadRequest, "could not parse upload")
		return imaging.EmbeddedImage{}, false
	}
	defer file.Close()

	img, err := imaging.FromReader(file, header.Filename)
	if err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return imaging.EmbeddedImage{}, false
	}

	log.Info().
		Str("filename", header.Filename).
		Str("mimeType", img.MIMEType).
		Int("bytes", len(img.Data)).
		Msg("Image uploaded")
	return img, true
}
