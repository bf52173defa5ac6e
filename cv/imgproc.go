package cv

import (
	"image"

	"github.com/esimov/paindetect"
	"gocv.io/x/gocv"
)

// Canny thresholds. OpenCV uses a 3x3 Sobel aperture by default.
const (
	cannyLow  = 0
	cannyHigh = 30
)

// Filters returns the default filter bank completed with the OpenCV edge detector.
func Filters() paindetect.FilterBank {
	return paindetect.DefaultFilters().With(paindetect.KeyCanny, Edges)
}

// EqualizeHist equalizes the histogram of the gray image.
// The source image is returned unchanged if OpenCV fails to process it.
func EqualizeHist(src *image.Gray) *image.Gray {
	mat, err := gocv.ImageGrayToMatGray(src)
	if err != nil {
		return src
	}
	defer mat.Close()

	dst := gocv.NewMat()
	defer dst.Close()

	gocv.EqualizeHist(mat, &dst)

	return matToGray(dst, src)
}

// Edges returns the Canny edge map of the frame.
func Edges(src *image.RGBA) image.Image {
	gray := paindetect.Grayscale(src)

	mat, err := gocv.ImageGrayToMatGray(gray)
	if err != nil {
		return gray
	}
	defer mat.Close()

	edges := gocv.NewMat()
	defer edges.Close()

	gocv.Canny(mat, &edges, cannyLow, cannyHigh)

	return matToGray(edges, gray)
}

// matToGray converts a single channel mat, falling back to fallback on failure.
func matToGray(mat gocv.Mat, fallback *image.Gray) *image.Gray {
	img, err := mat.ToImage()
	if err != nil {
		return fallback
	}
	if gray, ok := img.(*image.Gray); ok {
		return gray
	}
	return fallback
}
