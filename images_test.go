package communitysite

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"
)

func encodeTestPNG(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return &buf
}

func TestProcessImageMetadata(t *testing.T) {
	meta, data, err := processImage(encodeTestPNG(t, 10, 8))
	if err != nil {
		t.Fatalf("processImage failed: %v", err)
	}
	if meta.Width != 10 || meta.Height != 8 {
		t.Errorf("dimensions = %dx%d, want 10x8", meta.Width, meta.Height)
	}
	if meta.Format != "jpeg" {
		t.Errorf("format = %q, want jpeg", meta.Format)
	}
	if meta.Size != int64(len(data)) {
		t.Errorf("size = %d, encoded %d bytes", meta.Size, len(data))
	}
	if meta.Size == 0 {
		t.Error("size is zero")
	}
}

func TestProcessImageResizesWideImages(t *testing.T) {
	meta, _, err := processImage(encodeTestPNG(t, 2000, 10))
	if err != nil {
		t.Fatalf("processImage failed: %v", err)
	}
	if meta.Width != maxImageWidth {
		t.Errorf("width = %d, want %d", meta.Width, maxImageWidth)
	}
	if meta.Height != 8 {
		t.Errorf("height = %d, want 8", meta.Height)
	}
}

func TestProcessImageRejectsNonImage(t *testing.T) {
	if _, _, err := processImage(strings.NewReader("not an image")); err == nil {
		t.Fatal("expected decode error")
	}
}
