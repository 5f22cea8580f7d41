// Package device describes the wearable camera the session loop drives.
package device

import (
	"context"
	"errors"
)

// ErrClosed is returned by WaitForTap once the device has gone away.
var ErrClosed = errors.New("device closed")

type Autofocus int

const (
	AutofocusAverage Autofocus = iota
	AutofocusSpot
	AutofocusCenterWeighted
)

func (a Autofocus) String() string {
	switch a {
	case AutofocusSpot:
		return "spot"
	case AutofocusCenterWeighted:
		return "center_weighted"
	default:
		return "average"
	}
}

type CaptureOptions struct {
	// Quality is the JPEG quality, 1 to 100.
	Quality   int
	Autofocus Autofocus
}

type Device interface {
	// Capture takes one photo and returns its JPEG bytes.
	Capture(ctx context.Context, opts CaptureOptions) ([]byte, error)
	// ShowText replaces the display contents with text, centred.
	ShowText(ctx context.Context, text string) error
	// WaitForTap blocks until the wearer taps the device.
	WaitForTap(ctx context.Context) error
	Close() error
}
