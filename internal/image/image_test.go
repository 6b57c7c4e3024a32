package image

import (
	"bytes"
	gimage "image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngBytes renders a solid-color PNG of the given size.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := gimage.NewRGBA(gimage.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcessProfileCropsSquare(t *testing.T) {
	out, meta, err := Process(pngBytes(t, 800, 600), "profile")

	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.Equal(t, 400, meta.Width)
	assert.Equal(t, 400, meta.Height)
	assert.Equal(t, "webp", meta.Format)
	assert.Equal(t, len(out), meta.Size)
}

func TestProcessGeneralKeepsSmallImages(t *testing.T) {
	_, meta, err := Process(pngBytes(t, 640, 480), "general")

	require.NoError(t, err)
	assert.Equal(t, 640, meta.Width)
	assert.Equal(t, 480, meta.Height)
}

func TestProcessGeneralBoundsLargeImages(t *testing.T) {
	_, meta, err := Process(pngBytes(t, 3000, 1500), "general")

	require.NoError(t, err)
	assert.Equal(t, 1920, meta.Width)
	assert.Equal(t, 960, meta.Height)
}

func TestProcessRejectsTinyImage(t *testing.T) {
	_, _, err := Process(pngBytes(t, 99, 200), "general")
	assert.ErrorIs(t, err, ErrTooSmall)
}

func TestProcessRejectsHugeDimensions(t *testing.T) {
	_, _, err := Process(pngBytes(t, 4001, 200), "general")
	assert.ErrorIs(t, err, ErrOversized)
}

func TestProcessRejectsOversizedPayload(t *testing.T) {
	_, _, err := Process(make([]byte, MaxBytes+1), "general")
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestProcessRejectsNonImage(t *testing.T) {
	_, _, err := Process([]byte("definitely not pixels"), "general")
	assert.ErrorIs(t, err, ErrBadFormat)
}

func TestProcessRejectsUnknownVariant(t *testing.T) {
	_, _, err := Process(pngBytes(t, 200, 200), "banner")
	assert.ErrorIs(t, err, ErrBadVariant)
}
