package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vbonduro/pokeframe/internal/device"
	"github.com/vbonduro/pokeframe/internal/domain"
	"github.com/vbonduro/pokeframe/internal/media"
	"github.com/vbonduro/pokeframe/internal/vision"
)

// photoAcquirer is the subset of acquire.Acquirer that Runner requires.
type photoAcquirer interface {
	Acquire(ctx context.Context, id string) (*domain.Photo, error)
}

// publisher is the subset of publish.ScriptPublisher that Runner requires.
type publisher interface {
	Publish(ctx context.Context, raw, photoURL string) error
}

type Runner struct {
	device    device.Device
	acquirer  photoAcquirer
	analyzer  vision.Analyzer
	publisher publisher
	newID     func() string
	logger    *slog.Logger
}

func NewRunner(
	dev device.Device,
	acquirer photoAcquirer,
	analyzer vision.Analyzer,
	pub publisher,
	logger *slog.Logger,
) *Runner {
	return &Runner{
		device:    dev,
		acquirer:  acquirer,
		analyzer:  analyzer,
		publisher: pub,
		newID:     uuid.NewString,
		logger:    logger,
	}
}

// Run waits for a tap, processes one iteration, and repeats. A failed
// iteration is logged and the loop goes back to waiting. Run returns nil
// when ctx is cancelled or the device is closed.
func (r *Runner) Run(ctx context.Context) error {
	for {
		if err := r.device.ShowText(ctx, "Tap to start"); err != nil {
			return fmt.Errorf("failed to show text: %w", err)
		}

		if err := r.device.WaitForTap(ctx); err != nil {
			if ctx.Err() != nil || errors.Is(err, device.ErrClosed) {
				r.logger.Info("session loop stopped")
				return nil
			}
			return fmt.Errorf("failed to wait for tap: %w", err)
		}

		if _, err := r.RunOnce(ctx); err != nil {
			if ctx.Err() != nil {
				r.logger.Info("session loop stopped")
				return nil
			}
			r.logger.Error("iteration failed", "error", err)
			if err := r.device.ShowText(ctx, "Try again"); err != nil {
				r.logger.Error("failed to show text", "error", err)
			}
		}
	}
}

// RunOnce captures, describes and publishes a single photo under a fresh
// session identifier. Nothing is published unless every earlier step
// succeeds.
func (r *Runner) RunOnce(ctx context.Context) (*domain.Iteration, error) {
	id := r.newID()
	r.logger.Info("iteration started", "id", id)

	photo, err := r.acquirer.Acquire(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire photo: %w", err)
	}

	encoded, err := media.EncodeFile(photo.ConvertedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to encode photo: %w", err)
	}

	desc, err := r.analyzer.Describe(ctx, vision.Image{Base64: encoded, MediaType: "image/png"})
	if err != nil {
		return nil, fmt.Errorf("failed to describe photo: %w", err)
	}

	if err := r.publisher.Publish(ctx, desc.Raw, photo.URL); err != nil {
		return nil, fmt.Errorf("failed to publish: %w", err)
	}

	r.logger.Info("iteration complete", "id", id, "photo_url", photo.URL)
	return &domain.Iteration{ID: id, Photo: photo, Description: desc.Raw}, nil
}
