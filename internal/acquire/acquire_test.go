package acquire

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/pokeframe/internal/device"
	"github.com/vbonduro/pokeframe/internal/photostore/local"
)

// stubDevice is a minimal device.Device for tests.
type stubDevice struct {
	photo      []byte
	captureErr error
	shown      []string
	opts       []device.CaptureOptions
}

func (d *stubDevice) Capture(_ context.Context, opts device.CaptureOptions) ([]byte, error) {
	d.opts = append(d.opts, opts)
	return d.photo, d.captureErr
}

func (d *stubDevice) ShowText(_ context.Context, text string) error {
	d.shown = append(d.shown, text)
	return nil
}

func (d *stubDevice) WaitForTap(_ context.Context) error { return nil }

func (d *stubDevice) Close() error { return nil }

func testJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: uint8(x), B: uint8(y), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func newTestAcquirer(t *testing.T, dev *stubDevice) *Acquirer {
	t.Helper()
	store, err := local.NewLocalPhotoStore(t.TempDir())
	require.NoError(t, err)
	return NewAcquirer(dev, store, DefaultQuality, slog.Default())
}

func TestAcquire(t *testing.T) {
	raw := testJPEG(t, 40, 30)
	dev := &stubDevice{photo: raw}

	photo, err := newTestAcquirer(t, dev).Acquire(context.Background(), "abc123")
	require.NoError(t, err)

	assert.Equal(t, "abc123", photo.ID)
	assert.Equal(t, "p/abc123/photo.png", photo.URL)
	assert.Equal(t, []string{"Taking photo...", "Photo taken"}, dev.shown)
	assert.Equal(t, []device.CaptureOptions{{Quality: 50, Autofocus: device.AutofocusCenterWeighted}}, dev.opts)

	original, err := os.ReadFile(photo.OriginalPath)
	require.NoError(t, err)
	assert.Equal(t, raw, original)

	origCfg, origFormat, err := image.DecodeConfig(bytes.NewReader(original))
	require.NoError(t, err)

	converted, err := os.ReadFile(photo.ConvertedPath)
	require.NoError(t, err)
	convCfg, convFormat, err := image.DecodeConfig(bytes.NewReader(converted))
	require.NoError(t, err)

	assert.Equal(t, "jpeg", origFormat)
	assert.Equal(t, "png", convFormat)
	assert.Equal(t, origCfg.Width, convCfg.Width)
	assert.Equal(t, origCfg.Height, convCfg.Height)
}

func TestAcquireCaptureError(t *testing.T) {
	dev := &stubDevice{captureErr: errors.New("camera unavailable")}

	_, err := newTestAcquirer(t, dev).Acquire(context.Background(), "abc123")
	assert.ErrorContains(t, err, "camera unavailable")
	assert.Equal(t, []string{"Taking photo..."}, dev.shown)
}

func TestAcquireUndecodablePhoto(t *testing.T) {
	dev := &stubDevice{photo: []byte("not a jpeg")}

	_, err := newTestAcquirer(t, dev).Acquire(context.Background(), "abc123")
	assert.Error(t, err)
}
