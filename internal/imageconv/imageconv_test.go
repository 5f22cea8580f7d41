package imageconv

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quadrants returns a w x h image that is red in its top-right quadrant and
// blue elsewhere.
func quadrants(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{B: 255, A: 255}
			if x >= w/2 && y < h/2 {
				c = color.RGBA{R: 255, A: 255}
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}))
	return buf.Bytes()
}

func TestRotatePNGFormatAndSize(t *testing.T) {
	src := encodeJPEG(t, quadrants(32, 16))

	var out bytes.Buffer
	require.NoError(t, RotatePNG(bytes.NewReader(src), &out))

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 32, cfg.Width)
	assert.Equal(t, 16, cfg.Height)
}

func TestRotateCounterClockwise(t *testing.T) {
	src := encodeJPEG(t, quadrants(32, 32))

	var out bytes.Buffer
	require.NoError(t, RotatePNG(bytes.NewReader(src), &out))

	img, err := png.Decode(&out)
	require.NoError(t, err)

	// The red top-right quadrant ends up top-left.
	r, _, b, _ := img.At(4, 4).RGBA()
	assert.Greater(t, r>>8, uint32(200))
	assert.Less(t, b>>8, uint32(60))

	r, _, b, _ = img.At(28, 4).RGBA()
	assert.Less(t, r>>8, uint32(60))
	assert.Greater(t, b>>8, uint32(200))
}

func TestRotateNonSquareTransparentCorners(t *testing.T) {
	rotated := Rotate(quadrants(8, 4))

	assert.Equal(t, image.Rect(0, 0, 8, 4), rotated.Bounds())
	assert.Equal(t, uint8(0), rotated.NRGBAAt(0, 0).A)
	assert.Equal(t, uint8(0), rotated.NRGBAAt(7, 3).A)
	assert.Equal(t, uint8(255), rotated.NRGBAAt(4, 2).A)
}

func TestRotatePNGInvalidInput(t *testing.T) {
	var out bytes.Buffer
	err := RotatePNG(bytes.NewReader([]byte("not an image")), &out)
	assert.Error(t, err)
	assert.Zero(t, out.Len())
}
