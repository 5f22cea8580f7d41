// Package imageconv turns camera captures into the upload format.
package imageconv

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
)

// RotatePNG decodes an image from r, rotates it 90 degrees counter-clockwise
// about its centre and writes it to w as an RGBA PNG. The output keeps the
// input's dimensions; for non-square images the corners that fall outside
// the rotated frame are transparent and the overhang is cropped.
func RotatePNG(r io.Reader, w io.Writer) error {
	src, err := imaging.Decode(r)
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}
	if err := imaging.Encode(w, Rotate(src), imaging.PNG); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// Rotate returns src rotated 90 degrees counter-clockwise on a canvas of the
// original size.
func Rotate(src image.Image) *image.NRGBA {
	b := src.Bounds()
	rotated := imaging.Rotate90(src)
	if b.Dx() == b.Dy() {
		return rotated
	}
	cropped := imaging.CropCenter(rotated, b.Dx(), b.Dy())
	return imaging.PasteCenter(imaging.New(b.Dx(), b.Dy(), color.Transparent), cropped)
}
