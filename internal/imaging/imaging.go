// Package imaging normalizes item photos uploaded at creation time.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	"golang.org/x/image/draw"

	"github.com/dg-does/Drag-Library/internal/lending"
)

const (
	// MaxUploadBytes is the largest accepted upload.
	MaxUploadBytes = 5 << 20
	// MaxDimension is the maximum width or height of a stored photo.
	MaxDimension = 1024
	// JPEGQuality is the quality stored photos are encoded with.
	JPEGQuality = 85
)

var (
	ErrUnsupportedFormat = errors.New("photo must be JPEG or PNG")
	ErrTooLarge          = errors.New("photo exceeds 5 MB")
)

var accepted = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Process reads an uploaded photo, checks its format from the bytes
// themselves, shrinks it to fit MaxDimension and re-encodes it as JPEG.
func Process(r io.Reader) (*lending.Photo, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading photo: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return nil, ErrTooLarge
	}

	if detected := http.DetectContentType(data); !accepted[detected] {
		return nil, fmt.Errorf("%w (got %s)", ErrUnsupportedFormat, detected)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding photo: %w", err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, shrink(img), &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding photo: %w", err)
	}
	return &lending.Photo{Data: buf.Bytes(), MIME: "image/jpeg"}, nil
}

// shrink scales img down with Catmull-Rom so it fits MaxDimension. Images
// already within bounds are returned as is.
func shrink(img image.Image) image.Image {
	b := img.Bounds()
	w, h, ok := fit(b.Dx(), b.Dy(), MaxDimension)
	if !ok {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// fit returns the size of a w×h box scaled so its longer side is limit,
// and false if no scaling is needed.
func fit(w, h, limit int) (int, int, bool) {
	if w <= limit && h <= limit {
		return w, h, false
	}
	if w >= h {
		return limit, clampMin(h * limit / w), true
	}
	return clampMin(w * limit / h), limit, true
}

func clampMin(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
