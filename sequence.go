package paindetect

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "golang.org/x/image/bmp"
)

// validExtensions lists the supported still image files.
var validExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif"}

// SequenceSource plays back a directory of still images as a video stream,
// in lexical order of their file names.
type SequenceSource struct {
	paths []string
	next  int
}

// NewSequenceSource collects the supported image files found under dir.
func NewSequenceSource(dir string) (*SequenceSource, error) {
	paths, err := walkDir(dir, validExtensions)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no image files found in %s", dir)
	}
	return &SequenceSource{paths: paths}, nil
}

// Len returns the number of frames of the sequence.
func (s *SequenceSource) Len() int {
	return len(s.paths)
}

// Read decodes the next image. It returns io.EOF after the last one.
func (s *SequenceSource) Read() (*image.RGBA, error) {
	if s.next >= len(s.paths) {
		return nil, io.EOF
	}
	path := s.paths[s.next]
	s.next++

	img, err := decodeImg(path)
	if err != nil {
		return nil, err
	}
	return toRGBA(img), nil
}

// Close implements the Source interface.
func (s *SequenceSource) Close() error {
	s.next = len(s.paths)
	return nil
}

// walkDir walks the directory tree in recursive manner and
// returns the path of each regular file having a supported extension.
func walkDir(src string, srcExts []string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if isValidExtension(strings.ToLower(filepath.Ext(d.Name())), srcExts) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	return paths, nil
}

// isValidExtension checks for the supported extensions.
func isValidExtension(ext string, extensions []string) bool {
	for _, ex := range extensions {
		if ex == ext {
			return true
		}
	}
	return false
}

// decodeImg decodes an image file to type image.Image.
func decodeImg(src string) (image.Image, error) {
	file, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("could not open the frame file: %v", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("could not decode the frame file %s: %v", src, err)
	}
	return img, nil
}

// toRGBA converts any image type to *image.RGBA with min-point at (0, 0).
func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if src, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)

	return dst
}
