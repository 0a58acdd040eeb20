// Package imaging validates uploaded report photos and renders the
// downscaled JPEG thumbnails stored next to them.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // register the PNG decoder
	"net/http"

	"golang.org/x/image/draw"
)

// ThumbDimension is the maximum width or height of a thumbnail.
const ThumbDimension = 320

// thumbQuality is the JPEG compression quality for thumbnails.
const thumbQuality = 80

// allowedMIME lists the accepted upload types.
var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Validate sniffs the MIME type from the leading bytes and rejects anything
// that is not a JPEG or PNG, regardless of the uploaded filename.
func Validate(content []byte) (string, error) {
	mime := http.DetectContentType(content)
	if !allowedMIME[mime] {
		return "", fmt.Errorf("unsupported image format %s (only JPEG and PNG accepted)", mime)
	}
	return mime, nil
}

// Thumbnail decodes content and re-encodes it as a JPEG no larger than
// ThumbDimension on either side, preserving the aspect ratio. Images already
// within bounds are re-encoded without resizing.
func Thumbnail(content []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	img = downscale(img, ThumbDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: thumbQuality}); err != nil {
		return nil, fmt.Errorf("encoding thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// downscale resizes img so neither side exceeds maxDim, using Catmull-Rom
// interpolation. Images already within bounds are returned unchanged.
func downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	scale := float64(maxDim) / float64(max(w, h))
	newW := max(int(float64(w)*scale), 1)
	newH := max(int(float64(h)*scale), 1)

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
