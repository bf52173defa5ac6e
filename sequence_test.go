package paindetect

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/bmp"
)

func writeImage(t *testing.T, path string, c color.RGBA, enc func(io.Writer, image.Image) error) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("could not create %s: %v", path, err)
	}
	defer f.Close()

	if err := enc(f, newFrame(6, 4, c)); err != nil {
		t.Fatalf("could not encode %s: %v", path, err)
	}
}

func TestSequenceSource(t *testing.T) {
	dir := t.TempDir()
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	green := color.RGBA{G: 255, A: 255}

	writeImage(t, filepath.Join(dir, "frame_002.bmp"), blue, bmp.Encode)
	writeImage(t, filepath.Join(dir, "frame_001.png"), red, png.Encode)
	assert.NoError(t, os.Mkdir(filepath.Join(dir, "more"), 0755))
	writeImage(t, filepath.Join(dir, "more", "frame_003.PNG"), green, png.Encode)
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a frame"), 0644))

	src, err := NewSequenceSource(dir)
	assert.NoError(t, err)
	assert.Equal(t, 3, src.Len())

	for _, want := range []color.RGBA{red, blue, green} {
		frame, err := src.Read()
		if assert.NoError(t, err) {
			assert.Equal(t, image.Rect(0, 0, 6, 4), frame.Bounds())
			assert.Equal(t, want, frame.RGBAAt(3, 2))
		}
	}
	_, err = src.Read()
	assert.ErrorIs(t, err, io.EOF)
	assert.NoError(t, src.Close())
}

func TestSequenceSource_Errors(t *testing.T) {
	_, err := NewSequenceSource(t.TempDir())
	assert.Error(t, err, "an empty directory has no frames")

	_, err = NewSequenceSource(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "broken.png"), []byte("garbage"), 0644))
	src, err := NewSequenceSource(dir)
	assert.NoError(t, err)
	_, err = src.Read()
	assert.Error(t, err)
}

func TestSequenceSource_Capture(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.png", "b.png", "c.png"} {
		writeImage(t, filepath.Join(dir, name), colorGray, png.Encode)
	}
	src, err := NewSequenceSource(dir)
	assert.NoError(t, err)

	proc, _, display := newTestProcessor(detectAlways(), detectAlways(), detectAlways())
	capture, logs := newTestCapture(src, proc)

	stats := capture.Run()
	assert.Equal(t, 3, stats.Frames)
	assert.Len(t, display.shown, 3)
	assert.Empty(t, logs.String())
}
