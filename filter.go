package paindetect

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Key codes recognized by the capture loop.
const (
	KeyBlur   = 'b'
	KeyCanny  = 'c'
	KeyGray   = 'g'
	KeyShift  = 's'
	KeyRemove = 'r'
	Key3D     = 'd'
	KeyFlip   = 'f'
	KeyEscape = 27
	KeyNone   = -1
)

const keyCodeMask = 0xff

// Filter transforms a copy of the annotated frame for display.
// A filter never modifies its input.
type Filter func(src *image.RGBA) image.Image

const (
	blurSigma     = 1.5
	warpOffset    = 10
	warpChannelNo = 0 // red
)

// warpMatrix maps the source pixel (x, y) to (x-10, y).
var warpMatrix = f64.Aff3{
	1, 0, -warpOffset,
	0, 1, 0,
}

// FilterBank maps the normalized key codes to their filters.
type FilterBank map[int]Filter

// DefaultFilters returns the filters which need no native image library.
// The edge detector is provided by the OpenCV backend, see cv.Filters.
func DefaultFilters() FilterBank {
	return FilterBank{
		KeyBlur:   Blur,
		KeyGray:   Gray,
		KeyShift:  ShiftChannels,
		KeyRemove: RemoveBlue,
		Key3D:     Warp3D,
		KeyFlip:   Flip,
	}
}

// With returns a copy of the bank where key is bound to f.
func (fb FilterBank) With(key int, f Filter) FilterBank {
	bank := make(FilterBank, len(fb)+1)
	for k, v := range fb {
		bank[k] = v
	}
	bank[NormalizeKey(key)] = f
	return bank
}

// Lookup returns the filter bound to the key, if any.
func (fb FilterBank) Lookup(key int) (Filter, bool) {
	f, ok := fb[NormalizeKey(key)]
	return f, ok
}

// NormalizeKey strips the modifier bits some backends report with the key code
// and folds upper case letters to lower case. KeyNone is returned unchanged.
func NormalizeKey(key int) int {
	if key < 0 {
		return KeyNone
	}
	key &= keyCodeMask
	if key >= 'A' && key <= 'Z' {
		key += 'a' - 'A'
	}
	return key
}

// Blur smooths the image with a gaussian kernel.
func Blur(src *image.RGBA) image.Image {
	return imaging.Blur(src, blurSigma)
}

// Gray converts the image into a single channel image.
func Gray(src *image.RGBA) image.Image {
	img := imaging.Grayscale(src)
	b := img.Bounds()
	dst := image.NewGray(b)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		si := img.PixOffset(b.Min.X, y)
		di := dst.PixOffset(b.Min.X, y)
		for x := 0; x < b.Dx(); x++ {
			dst.Pix[di+x] = img.Pix[si+x*4]
		}
	}
	return dst
}

// ShiftChannels rotates the color channels: red takes the green values,
// green the blue ones and blue the red ones.
func ShiftChannels(src *image.RGBA) image.Image {
	return imaging.AdjustFunc(src, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{R: c.G, G: c.B, B: c.R, A: c.A}
	})
}

// RemoveBlue zeroes the blue channel.
func RemoveBlue(src *image.RGBA) image.Image {
	return imaging.AdjustFunc(src, func(c color.NRGBA) color.NRGBA {
		c.B = 0
		return c
	})
}

// Warp3D fakes an anaglyph effect by translating the red channel to the left.
// The uncovered pixels of the translated channel are set to zero.
func Warp3D(src *image.RGBA) image.Image {
	dst := imaging.Clone(src)
	b := dst.Bounds()

	channel := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		si := dst.PixOffset(b.Min.X, y)
		di := channel.PixOffset(b.Min.X, y)
		for x := 0; x < b.Dx(); x++ {
			channel.Pix[di+x] = dst.Pix[si+x*4+warpChannelNo]
		}
	}

	warped := image.NewGray(b)
	draw.NearestNeighbor.Transform(warped, warpMatrix, channel, b, draw.Src, nil)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		si := warped.PixOffset(b.Min.X, y)
		di := dst.PixOffset(b.Min.X, y)
		for x := 0; x < b.Dx(); x++ {
			dst.Pix[di+x*4+warpChannelNo] = warped.Pix[si+x]
		}
	}
	return dst
}

// Flip flips the image around both axes.
func Flip(src *image.RGBA) image.Image {
	// A 180° rotation is a horizontal flip followed by a vertical one.
	return imaging.Rotate180(src)
}
