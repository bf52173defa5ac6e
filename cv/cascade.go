package cv

import (
	"fmt"
	"image"

	"github.com/esimov/paindetect"
	"gocv.io/x/gocv"
)

// cascadeScaleImage is the CASCADE_SCALE_IMAGE detection flag.
const cascadeScaleImage = 2

// Cascade is a paindetect.Classifier backed by an OpenCV cascade classifier.
type Cascade struct {
	cc gocv.CascadeClassifier
}

var _ paindetect.Classifier = (*Cascade)(nil)

// CascadeLoader loads OpenCV XML cascade files.
var CascadeLoader = paindetect.LoaderFunc(func(path string) (paindetect.Classifier, error) {
	return LoadCascade(path)
})

// LoadCascade loads the cascade classifier stored at path.
func LoadCascade(path string) (*Cascade, error) {
	cc := gocv.NewCascadeClassifier()
	if !cc.Load(path) {
		cc.Close()
		return nil, fmt.Errorf("error reading cascade file: %s", path)
	}
	return &Cascade{cc: cc}, nil
}

// Detect implements the paindetect.Classifier interface.
func (c *Cascade) Detect(gray *image.Gray, roi image.Rectangle, p paindetect.Params) []image.Rectangle {
	roi = roi.Intersect(gray.Bounds())
	if roi.Empty() {
		return nil
	}

	mat, err := gocv.ImageGrayToMatGray(gray)
	if err != nil {
		return nil
	}
	defer mat.Close()

	// Region shares the pixel data of mat, it only narrows the search window.
	region := mat.Region(roi.Sub(gray.Bounds().Min))
	defer region.Close()

	minSize := image.Pt(p.MinSize, p.MinSize)
	rects := c.cc.DetectMultiScaleWithParams(region, p.ScaleFactor, p.MinNeighbors, cascadeScaleImage, minSize, image.Point{})

	return translate(rects, roi.Min)
}

// translate moves the rectangles found inside a region back to frame coordinates.
func translate(rects []image.Rectangle, origin image.Point) []image.Rectangle {
	for i := range rects {
		rects[i] = rects[i].Add(origin)
	}
	return rects
}

// Close releases the classifier.
func (c *Cascade) Close() error {
	return c.cc.Close()
}
