// Package console implements device.Device on a terminal: pressing Enter is
// a tap, the terminal is the display and a FileCamera takes the photos.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/chzyer/readline"

	"github.com/vbonduro/pokeframe/internal/device"
)

type Device struct {
	*FileCamera
	rl  *readline.Instance
	out io.Writer

	// lines receives one value per line read. It is closed when reading
	// fails, after readErr is set.
	lines     chan struct{}
	readErr   error
	done      chan struct{}
	closeOnce sync.Once
}

func New(cameraSource string, logger *slog.Logger) (*Device, error) {
	rl, err := readline.New("")
	if err != nil {
		return nil, fmt.Errorf("failed to open terminal: %w", err)
	}
	return newDevice(rl, NewFileCamera(cameraSource, logger)), nil
}

func newDevice(rl *readline.Instance, cam *FileCamera) *Device {
	d := &Device{
		FileCamera: cam,
		rl:         rl,
		out:        rl.Stdout(),
		lines:      make(chan struct{}),
		done:       make(chan struct{}),
	}
	go d.readLines()
	return d
}

// readLines is the only reader of the terminal, so a WaitForTap abandoned
// by cancellation never leaves a second reader competing for input.
func (d *Device) readLines() {
	for {
		if _, err := d.rl.Readline(); err != nil {
			d.readErr = err
			close(d.lines)
			return
		}
		select {
		case d.lines <- struct{}{}:
		case <-d.done:
			return
		}
	}
}

func (d *Device) ShowText(_ context.Context, text string) error {
	_, err := fmt.Fprintf(d.out, "[ %s ]\n", text)
	return err
}

// WaitForTap returns when a line is read. EOF and Ctrl-C are reported as
// device.ErrClosed.
func (d *Device) WaitForTap(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case _, ok := <-d.lines:
		if ok {
			return nil
		}
		if errors.Is(d.readErr, io.EOF) || errors.Is(d.readErr, readline.ErrInterrupt) {
			return device.ErrClosed
		}
		return fmt.Errorf("failed to read tap: %w", d.readErr)
	}
}

func (d *Device) Close() error {
	d.closeOnce.Do(func() { close(d.done) })
	return d.rl.Close()
}
