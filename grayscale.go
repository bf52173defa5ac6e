package paindetect

import (
	"image"

	"github.com/disintegration/imaging"
	pigo "github.com/esimov/pigo/core"
)

// Grayscale converts the image to an 8-bit luma plane with its min-point at (0, 0).
func Grayscale(src image.Image) *image.Gray {
	if src.Bounds().Min != (image.Point{}) {
		src = imaging.Clone(src)
	}
	b := src.Bounds()

	return &image.Gray{
		Pix:    pigo.RgbToGrayscale(src),
		Stride: b.Dx(),
		Rect:   image.Rect(0, 0, b.Dx(), b.Dy()),
	}
}
