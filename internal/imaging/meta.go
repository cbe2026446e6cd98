package imaging

import (
	"bytes"
	"fmt"
	"image"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/evanoberholster/imagemeta"
	"github.com/rs/zerolog/log"

	_ "golang.org/x/image/webp"
)

// Info holds what could be learned about an uploaded image. Every field is
// best-effort; missing data is left at its zero value.
type Info struct {
	Width  int
	Height int

	// Camera info from EXIF
	CameraMake  string
	CameraModel string
	TakenAt     time.Time
}

// Inspect probes an image for its pixel dimensions and EXIF camera details.
// Inspection failures are not upload failures: the caller logs and moves on.
func Inspect(img EmbeddedImage) (Info, error) {
	if img.IsZero() {
		return Info{}, fmt.Errorf("cannot inspect empty image")
	}

	var info Info

	cfg, _, err := image.DecodeConfig(bytes.NewReader(img.Data))
	if err == nil {
		info.Width = cfg.Width
		info.Height = cfg.Height
	}

	exifData, exifErr := imagemeta.Decode(bytes.NewReader(img.Data))
	if exifErr == nil {
		info.CameraMake = strings.TrimSpace(exifData.Make)
		info.CameraModel = strings.TrimSpace(exifData.Model)
		if !exifData.DateTimeOriginal().IsZero() {
			info.TakenAt = exifData.DateTimeOriginal()
		} else if !exifData.CreateDate().IsZero() {
			info.TakenAt = exifData.CreateDate()
		}
	}

	if err != nil && exifErr != nil {
		return info, fmt.Errorf("image inspection failed: %w", err)
	}

	log.Debug().
		Int("width", info.Width).
		Int("height", info.Height).
		Str("camera", strings.TrimSpace(info.CameraMake+" "+info.CameraModel)).
		Msg("Image inspected")

	return info, nil
}
