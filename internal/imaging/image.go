// Package imaging defines the embedded image value used throughout the
// application: a self-describing payload carrying a MIME type and raw bytes.
// Images are decoded once at the upload boundary; nothing downstream ever
// re-derives the type by parsing a data URL or a filename.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// SupportedImageExtensions maps file extensions to their MIME types for
// uploads whose content sniffing is inconclusive.
var SupportedImageExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".heic": "image/heic",
	".heif": "image/heif",
}

// mimeExtensions maps supported MIME types back to a canonical file
// extension, used when naming exported files.
var mimeExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/heic": ".heic",
	"image/heif": ".heif",
}

// EmbeddedImage is an image payload carried as (MIME type, raw bytes).
// A non-zero value always has both fields set; the zero value means "empty".
type EmbeddedImage struct {
	MIMEType string
	Data     []byte
}

// FromBytes wraps raw bytes as an EmbeddedImage after verifying the payload
// looks like a supported image. The filename is only consulted when content
// sniffing cannot identify the format (HEIC, some camera formats).
func FromBytes(data []byte, filename string) (EmbeddedImage, error) {
	if len(data) == 0 {
		return EmbeddedImage{}, fmt.Errorf("empty image payload")
	}

	mimeType := sniffMIME(data, filename)
	if mimeType == "" {
		return EmbeddedImage{}, fmt.Errorf("unsupported image format for %q", filepath.Base(filename))
	}

	log.Debug().
		Str("mime_type", mimeType).
		Int("size_bytes", len(data)).
		Msg("Decoded uploaded image")

	return EmbeddedImage{MIMEType: mimeType, Data: data}, nil
}

// FromReader reads an image payload from r and wraps it as an EmbeddedImage.
// Callers cap the reader (http.MaxBytesReader) before passing it in.
func FromReader(r io.Reader, filename string) (EmbeddedImage, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return EmbeddedImage{}, fmt.Errorf("failed to read image payload: %w", err)
	}
	return FromBytes(data, filename)
}

// sniffMIME identifies a supported image MIME type from content, falling back
// to the filename extension. Returns "" when the payload is not a supported
// image.
func sniffMIME(data []byte, filename string) string {
	detected := http.DetectContentType(data)
	if _, ok := mimeExtensions[detected]; ok {
		return detected
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if mimeType, ok := SupportedImageExtensions[ext]; ok {
		return mimeType
	}

	return ""
}

// IsZero reports whether the image is empty (no payload set).
func (e EmbeddedImage) IsZero() bool {
	return len(e.Data) == 0
}

// Equal reports value equality: same MIME type and identical bytes.
func (e EmbeddedImage) Equal(other EmbeddedImage) bool {
	return e.MIMEType == other.MIMEType && bytes.Equal(e.Data, other.Data)
}

// DataURL renders the image as a data URL for in-browser display.
func (e EmbeddedImage) DataURL() string {
	if e.IsZero() {
		return ""
	}
	return "data:" + e.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(e.Data)
}

// Extension returns the canonical file extension for the image's MIME type,
// defaulting to ".img" for types outside the supported set.
func (e EmbeddedImage) Extension() string {
	if ext, ok := mimeExtensions[e.MIMEType]; ok {
		return ext
	}
	return ".img"
}
