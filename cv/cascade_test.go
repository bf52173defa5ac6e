package cv

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/esimov/paindetect"
	"github.com/stretchr/testify/assert"
)

func TestCascade_Translate(t *testing.T) {
	rects := []image.Rectangle{image.Rect(0, 0, 10, 10), image.Rect(5, 7, 25, 27)}
	got := translate(rects, image.Pt(200, 100))

	assert.Equal(t, []image.Rectangle{
		image.Rect(200, 100, 210, 110),
		image.Rect(205, 107, 225, 127),
	}, got)
	assert.Empty(t, translate(nil, image.Pt(1, 1)))
}

func TestCascade_LoadError(t *testing.T) {
	_, err := LoadCascade(filepath.Join(t.TempDir(), "missing.xml"))
	assert.Error(t, err)

	_, err = CascadeLoader.Load(filepath.Join(t.TempDir(), "missing.xml"))
	assert.Error(t, err)
}

// OPENCV_CASCADE may point to a frontal face Haar cascade, e.g. one of the
// files shipped in the OpenCV data directory.
func TestCascade_Detect(t *testing.T) {
	path := os.Getenv("OPENCV_CASCADE")
	if path == "" {
		t.Skip("OPENCV_CASCADE is not set")
	}
	c, err := LoadCascade(path)
	if !assert.NoError(t, err) {
		return
	}
	defer c.Close()

	gray := image.NewGray(image.Rect(0, 0, 320, 240))
	roi := image.Rect(100, 50, 300, 200)

	for _, r := range c.Detect(gray, roi, paindetect.FaceParams) {
		assert.True(t, r.In(roi), "%v outside of %v", r, roi)
	}
	assert.Empty(t, c.Detect(gray, image.Rect(400, 400, 500, 500), paindetect.FaceParams))
}
