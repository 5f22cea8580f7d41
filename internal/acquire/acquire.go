package acquire

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/vbonduro/pokeframe/internal/device"
	"github.com/vbonduro/pokeframe/internal/domain"
	"github.com/vbonduro/pokeframe/internal/imageconv"
	"github.com/vbonduro/pokeframe/internal/photostore"
)

const DefaultQuality = 50

type Acquirer struct {
	device  device.Device
	photos  photostore.PhotoStore
	quality int
	logger  *slog.Logger
}

func NewAcquirer(dev device.Device, photos photostore.PhotoStore, quality int, logger *slog.Logger) *Acquirer {
	return &Acquirer{
		device:  dev,
		photos:  photos,
		quality: quality,
		logger:  logger,
	}
}

// Acquire captures a photo for session id, stores the capture and a rotated
// PNG copy, and returns where they were written.
func (a *Acquirer) Acquire(ctx context.Context, id string) (*domain.Photo, error) {
	a.logger.Info("taking photo", "id", id)
	if err := a.device.ShowText(ctx, "Taking photo..."); err != nil {
		return nil, fmt.Errorf("failed to show text: %w", err)
	}

	data, err := a.device.Capture(ctx, device.CaptureOptions{
		Quality:   a.quality,
		Autofocus: device.AutofocusCenterWeighted,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to capture photo: %w", err)
	}

	original, err := a.photos.Save(ctx, id, photostore.OriginalName, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to save photo: %w", err)
	}

	var converted bytes.Buffer
	if err := imageconv.RotatePNG(bytes.NewReader(data), &converted); err != nil {
		return nil, fmt.Errorf("failed to convert photo: %w", err)
	}
	convertedPath, err := a.photos.Save(ctx, id, photostore.ConvertedName, &converted)
	if err != nil {
		return nil, fmt.Errorf("failed to save converted photo: %w", err)
	}

	if err := a.device.ShowText(ctx, "Photo taken"); err != nil {
		return nil, fmt.Errorf("failed to show text: %w", err)
	}
	a.logger.Debug("photo saved", "id", id, "original", original, "converted", convertedPath, "bytes", len(data))

	return &domain.Photo{
		ID:            id,
		OriginalPath:  original,
		ConvertedPath: convertedPath,
		URL:           a.photos.URL(id, photostore.ConvertedName),
	}, nil
}
