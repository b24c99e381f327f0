package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodeTestImage(t *testing.T, format string, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 128, 255})
		}
	}
	var buf bytes.Buffer
	var err error
	if format == "png" {
		err = png.Encode(&buf, img)
	} else {
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	}
	if err != nil {
		t.Fatalf("encoding %s: %v", format, err)
	}
	return buf.Bytes()
}

func decodedSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestProcessStoresJPEG(t *testing.T) {
	for _, format := range []string{"jpeg", "png"} {
		photo, err := Process(bytes.NewReader(encodeTestImage(t, format, 100, 80)))
		if err != nil {
			t.Fatalf("Process %s: %v", format, err)
		}
		if photo.MIME != "image/jpeg" {
			t.Errorf("%s: expected image/jpeg, got %s", format, photo.MIME)
		}
		if w, h := decodedSize(t, photo.Data); w != 100 || h != 80 {
			t.Errorf("%s: small photo should keep its size, got %dx%d", format, w, h)
		}
	}
}

func TestProcessDownscaleKeepsAspectRatio(t *testing.T) {
	photo, err := Process(bytes.NewReader(encodeTestImage(t, "jpeg", 2048, 1024)))
	if err != nil {
		t.Fatalf("Process large photo: %v", err)
	}

	if w, h := decodedSize(t, photo.Data); w != MaxDimension || h != MaxDimension/2 {
		t.Errorf("expected %dx%d, got %dx%d", MaxDimension, MaxDimension/2, w, h)
	}
}

func TestProcessRejectsOtherFormats(t *testing.T) {
	for name, data := range map[string][]byte{
		"text": []byte("not an image"),
		"gif":  []byte("GIF89a..."),
	} {
		_, err := Process(bytes.NewReader(data))
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("%s: expected ErrUnsupportedFormat, got %v", name, err)
		}
	}
}

func TestProcessRejectsOversizedUpload(t *testing.T) {
	data := make([]byte, MaxUploadBytes+1)
	copy(data, "\xff\xd8\xff")

	_, err := Process(bytes.NewReader(data))
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		w, h, wantW, wantH int
		scaled             bool
	}{
		{100, 100, 100, 100, false},
		{1024, 1024, 1024, 1024, false},
		{2048, 2048, 1024, 1024, true},
		{3000, 1500, 1024, 512, true},
		{1500, 3000, 512, 1024, true},
		{5000, 1, 1024, 1, true},
	}
	for _, tc := range tests {
		w, h, scaled := fit(tc.w, tc.h, 1024)
		if w != tc.wantW || h != tc.wantH || scaled != tc.scaled {
			t.Errorf("fit(%d, %d) = %d, %d, %v; want %d, %d, %v",
				tc.w, tc.h, w, h, scaled, tc.wantW, tc.wantH, tc.scaled)
		}
	}
}
