package console

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/disintegration/imaging"

	"github.com/vbonduro/pokeframe/internal/device"
)

// FileCamera stands in for the device camera by re-encoding a fixed source
// image on every capture.
type FileCamera struct {
	source string
	logger *slog.Logger
}

func NewFileCamera(source string, logger *slog.Logger) *FileCamera {
	return &FileCamera{source: source, logger: logger}
}

func (c *FileCamera) Capture(ctx context.Context, opts device.CaptureOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := imaging.Open(c.source)
	if err != nil {
		return nil, fmt.Errorf("failed to open camera source: %w", err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(opts.Quality)); err != nil {
		return nil, fmt.Errorf("failed to encode capture: %w", err)
	}

	c.logger.Debug("captured frame", "source", c.source, "quality", opts.Quality, "autofocus", opts.Autofocus, "bytes", buf.Len())
	return buf.Bytes(), nil
}
