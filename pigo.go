package paindetect

import (
	"fmt"
	"image"
	"os"

	"github.com/esimov/paindetect/utils"
	pigo "github.com/esimov/pigo/core"
	"github.com/pkg/errors"
)

const (
	// pigoMinSize is the smallest detection window pigo can scale with a 1.1 factor.
	pigoMinSize = 20
	// pigoShiftFactor moves the detection window by 10% of its size.
	pigoShiftFactor = 0.1
	// pigoIoU is the intersection over union threshold used for clustering.
	pigoIoU = 0.2
)

// PigoClassifier runs a pigo binary cascade over the grayscale frame.
type PigoClassifier struct {
	detector *pigo.Pigo

	// Quality is the minimum cluster score a detection needs to be reported.
	// pigo has no notion of neighbor count, this is its closest equivalent.
	Quality float32
	// Angle is the in-plane rotation of the searched objects, in 0..1 turns.
	Angle float64
}

// UnpackPigo unpacks a pigo cascade file content.
func UnpackPigo(data []byte) (c *PigoClassifier, err error) {
	// The pigo unpacker indexes the raw buffer directly and panics on truncated input.
	defer func() {
		if r := recover(); r != nil {
			c, err = nil, fmt.Errorf("malformed cascade file: %v", r)
		}
	}()
	if len(data) < 16 {
		return nil, errors.New("cascade file too short")
	}

	// Unpack the binary file. This will return the number of cascade trees,
	// the tree depth, the threshold and the prediction from tree's leaf nodes.
	det, err := pigo.NewPigo().Unpack(data)
	if err != nil {
		return nil, errors.Wrap(err, "error unpacking the cascade file")
	}
	return &PigoClassifier{detector: det}, nil
}

// PigoLoader returns a Loader reading pigo cascade files from disk.
func PigoLoader(quality float32) Loader {
	return LoaderFunc(func(path string) (Classifier, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		c, err := UnpackPigo(data)
		if err != nil {
			return nil, err
		}
		c.Quality = quality
		return c, nil
	})
}

// Detect implements the Classifier interface.
func (c *PigoClassifier) Detect(gray *image.Gray, roi image.Rectangle, p Params) []image.Rectangle {
	roi = roi.Intersect(gray.Bounds())
	if roi.Empty() || p.ScaleFactor <= 1 {
		return nil
	}
	cols, rows := roi.Dx(), roi.Dy()

	minSize := utils.Max(p.MinSize, pigoMinSize)
	maxSize := utils.Min(cols, rows)
	if minSize > maxSize {
		return nil
	}

	pixels := make([]uint8, cols*rows)
	for y := 0; y < rows; y++ {
		i := gray.PixOffset(roi.Min.X, roi.Min.Y+y)
		copy(pixels[y*cols:(y+1)*cols], gray.Pix[i:i+cols])
	}

	cParams := pigo.CascadeParams{
		MinSize:     minSize,
		MaxSize:     maxSize,
		ShiftFactor: pigoShiftFactor,
		ScaleFactor: p.ScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: pixels,
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}
	dets := c.detector.RunCascade(cParams, c.Angle)
	dets = c.detector.ClusterDetections(dets, pigoIoU)

	var rects []image.Rectangle
	for _, det := range dets {
		if det.Q < c.Quality {
			continue
		}
		half := det.Scale / 2
		r := image.Rect(det.Col-half, det.Row-half, det.Col+half, det.Row+half)
		r = r.Add(roi.Min).Intersect(roi)
		if !r.Empty() {
			rects = append(rects, r)
		}
	}
	return rects
}
