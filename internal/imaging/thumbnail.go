package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/draw"
)

// DefaultThumbnailMaxDimension is the maximum dimension (width or height) for
// preview thumbnails sent to the browser.
const DefaultThumbnailMaxDimension = 320

const thumbnailJPEGQuality = 80

// Thumbnail produces a downscaled JPEG preview of the image. Formats the
// decoder cannot handle (HEIC without a registered decoder, animated GIF)
// fall back to the original payload, which the browser can render directly.
func Thumbnail(img EmbeddedImage, maxDimension int) (EmbeddedImage, error) {
	if img.IsZero() {
		return EmbeddedImage{}, fmt.Errorf("cannot thumbnail empty image")
	}
	if maxDimension <= 0 {
		maxDimension = DefaultThumbnailMaxDimension
	}

	if img.MIMEType == "image/gif" {
		return img, nil
	}

	decoded, _, err := image.Decode(bytes.NewReader(img.Data))
	if err != nil {
		log.Warn().
			Err(err).
			Str("mime_type", img.MIMEType).
			Msg("Thumbnail decode failed, falling back to original image")
		return img, nil
	}

	bounds := decoded.Bounds()
	origWidth := bounds.Dx()
	origHeight := bounds.Dy()

	if origWidth <= maxDimension && origHeight <= maxDimension && img.MIMEType == "image/jpeg" {
		return img, nil
	}

	newWidth, newHeight := scaledDimensions(origWidth, origHeight, maxDimension)

	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(resized, resized.Bounds(), decoded, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: thumbnailJPEGQuality}); err != nil {
		return EmbeddedImage{}, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	log.Debug().
		Int("orig_width", origWidth).
		Int("orig_height", origHeight).
		Int("new_width", newWidth).
		Int("new_height", newHeight).
		Int("output_size", buf.Len()).
		Msg("Thumbnail generated")

	return EmbeddedImage{MIMEType: "image/jpeg", Data: buf.Bytes()}, nil
}

// scaledDimensions calculates downscaled dimensions maintaining aspect ratio.
func scaledDimensions(width, height, maxDimension int) (int, int) {
	if width <= maxDimension && height <= maxDimension {
		return width, height
	}

	if width > height {
		newWidth := maxDimension
		newHeight := int(float64(height) * float64(maxDimension) / float64(width))
		if newHeight < 1 {
			newHeight = 1
		}
		return newWidth, newHeight
	}

	newHeight := maxDimension
	newWidth := int(float64(width) * float64(maxDimension) / float64(height))
	if newWidth < 1 {
		newWidth = 1
	}
	return newWidth, newHeight
}
