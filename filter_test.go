package paindetect

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_NormalizeKey(t *testing.T) {
	tests := []struct {
		key  int
		want int
	}{
		{'b', 'b'},
		{'B', 'b'},
		{'F', 'f'},
		{KeyEscape, KeyEscape},
		{KeyEscape | 0x100000, KeyEscape},
		{'g' | 0x20000, 'g'},
		{KeyNone, KeyNone},
		{-42, KeyNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeKey(tt.key), "key %#x", tt.key)
	}
}

func TestFilter_Lookup(t *testing.T) {
	filters := DefaultFilters()
	for _, key := range []int{KeyBlur, KeyGray, KeyShift, KeyRemove, Key3D, KeyFlip, 'D', 'S'} {
		f, ok := filters.Lookup(key)
		assert.True(t, ok, "key %q", rune(key))
		assert.NotNil(t, f)
	}
	for _, key := range []int{KeyNone, KeyEscape, KeyCanny, 'x', ' ', '1'} {
		_, ok := filters.Lookup(key)
		assert.False(t, ok, "key %q", rune(key))
	}
}

func TestFilter_With(t *testing.T) {
	edges := func(src *image.RGBA) image.Image { return image.NewGray(src.Bounds()) }

	defaults := DefaultFilters()
	bank := defaults.With('C', edges)

	_, ok := bank.Lookup(KeyCanny)
	assert.True(t, ok)
	_, ok = bank.Lookup(KeyBlur)
	assert.True(t, ok)
	_, ok = defaults.Lookup(KeyCanny)
	assert.False(t, ok, "the source bank must not change")
}

func TestFilter_ShouldNotModifyInput(t *testing.T) {
	for key, filter := range DefaultFilters() {
		src := gradientFrame(24, 16)
		orig := cloneFrame(src)

		out := filter(src)
		assert.Equal(t, orig.Pix, src.Pix, "filter %q modified its input", rune(key))
		assert.Equal(t, src.Bounds(), out.Bounds(), "filter %q changed the bounds", rune(key))
	}
}

func TestFilter_GrayIsSingleChannel(t *testing.T) {
	src := newFrame(8, 8, color.RGBA{R: 200, G: 10, B: 10, A: 255})

	out := Gray(src)
	gray, ok := out.(*image.Gray)
	assert.True(t, ok)
	assert.Len(t, gray.Pix, 8*8)
}

func TestFilter_GrayIdempotent(t *testing.T) {
	src := gradientFrame(20, 20)

	once := Gray(src).(*image.Gray)
	twice := Gray(toRGBA(once)).(*image.Gray)

	assert.Equal(t, once.Pix, twice.Pix)
}

func TestFilter_FlipTwiceIsIdentity(t *testing.T) {
	src := gradientFrame(13, 7)

	once := toRGBA(Flip(src))
	assert.NotEqual(t, src.Pix, once.Pix)
	assert.Equal(t, src.RGBAAt(0, 0), once.RGBAAt(12, 6))
	assert.Equal(t, src.RGBAAt(12, 0), once.RGBAAt(0, 6))

	twice := toRGBA(Flip(once))
	assert.Equal(t, src.Pix, twice.Pix)
}

func TestFilter_RemoveBlue(t *testing.T) {
	src := gradientFrame(10, 10)
	out := toRGBA(RemoveBlue(src))

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := src.RGBAAt(x, y)
			got := out.RGBAAt(x, y)

			assert.Equal(t, want.R, got.R)
			assert.Equal(t, want.G, got.G)
			assert.Zero(t, got.B)
			assert.Equal(t, uint8(255), got.A)
		}
	}
}

func TestFilter_ShiftChannels(t *testing.T) {
	src := newFrame(4, 4, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	out := toRGBA(ShiftChannels(src))

	assert.Equal(t, color.RGBA{R: 20, G: 30, B: 10, A: 255}, out.RGBAAt(2, 1))
}

func TestFilter_Warp3D(t *testing.T) {
	const w, h = 30, 5
	src := gradientFrame(w, h)
	out := toRGBA(Warp3D(src))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			got := out.RGBAAt(x, y)
			want := src.RGBAAt(x, y)

			if x < w-warpOffset {
				assert.Equal(t, src.RGBAAt(x+warpOffset, y).R, got.R, "red at (%d, %d)", x, y)
			} else {
				assert.Zero(t, got.R, "red at (%d, %d)", x, y)
			}
			assert.Equal(t, want.G, got.G)
			assert.Equal(t, want.B, got.B)
		}
	}
}

func TestFilter_Blur(t *testing.T) {
	src := newFrame(16, 16, color.RGBA{A: 255})
	src.SetRGBA(8, 8, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	out := toRGBA(Blur(src))
	center := out.RGBAAt(8, 8)
	near := out.RGBAAt(9, 8)

	assert.Less(t, center.R, uint8(255))
	assert.Greater(t, near.R, uint8(0))
	assert.Zero(t, out.RGBAAt(0, 0).R)
}
