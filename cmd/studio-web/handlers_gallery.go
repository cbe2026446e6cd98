package main

import (
	"archive/zip"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/rs/zerolog/log"

	"github.com/pixelforge/fusion-studio/internal/imaging"
)

// POST /api/gallery/save
func (a *app) handleGallerySave(w http.ResponseWriter, r *http.Request) {
	ws, ok := a.session(w, r)
	if !ok {
		return
	}
	saved := ws.SaveToGallery()
	log.Debug().Str("sessionId", ws.ID()).Bool("saved", saved).Msg("Gallery save requested")
	respondJSON(w, http.StatusOK, ws.Snapshot())
}

// GET /api/gallery/export
func (a *app) handleGalleryExport(w http.ResponseWriter, r *http.Request) {
	ws, ok := a.session(w, r)
	if !ok {
		return
	}
	images := ws.GalleryImages()
	if len(images) == 0 {
		httpError(w, http.StatusBadRequest, "gallery is empty")
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="fusion-gallery.zip"`)
	if err := writeGalleryZip(w, images); err != nil {
		// Headers are already on the wire; all we can do is log.
		log.Error().Err(err).Str("sessionId", ws.ID()).Msg("Gallery export failed")
		return
	}
	log.Info().Str("sessionId", ws.ID()).Int("images", len(images)).Msg("Gallery exported")
}

// writeGalleryZip streams the images as a ZIP archive. Entries use the
// standard Deflate method so any unzip tool opens them; the compressor itself
// is the faster klauspost implementation. Image payloads are already
// compressed, so BestSpeed is the right trade.
func writeGalleryZip(w io.Writer, images []imaging.EmbeddedImage) error {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestSpeed)
	})

	now := time.Now()
	for i, img := range images {
		header := &zip.FileHeader{
			Name:     fmt.Sprintf("fusion-%02d%s", i+1, img.Extension()),
			Method:   zip.Deflate,
			Modified: now,
		}
		entry, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("create ZIP entry %s: %w", header.Name, err)
		}
		if _, err := entry.Write(img.Data); err != nil {
			return fmt.Errorf("write ZIP entry %s: %w", header.Name, err)
		}
	}
	return zw.Close()
}
