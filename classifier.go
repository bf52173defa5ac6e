package paindetect

import (
	"image"
	"io"

	"github.com/pkg/errors"
)

// Params holds the tuning of a single multi-scale detection pass.
type Params struct {
	ScaleFactor  float64
	MinNeighbors int
	MinSize      int
}

// The fixed tuning used for every frame.
var (
	FaceParams  = Params{ScaleFactor: 1.1, MinNeighbors: 2, MinSize: 30}
	PainParams  = Params{ScaleFactor: 1.1, MinNeighbors: 2, MinSize: 250}
	SmileParams = Params{ScaleFactor: 1.1, MinNeighbors: 2, MinSize: 70}
)

// Classifier detects the regions of interest of a pretrained model.
// The search is restricted to roi and the returned rectangles are expressed
// in the coordinate space of gray. No ordering is guaranteed.
type Classifier interface {
	Detect(gray *image.Gray, roi image.Rectangle, p Params) []image.Rectangle
}

// Loader loads a classifier model from the provided path.
type Loader interface {
	Load(path string) (Classifier, error)
}

// LoaderFunc is an adapter allowing the use of ordinary functions as a Loader.
type LoaderFunc func(path string) (Classifier, error)

// Load calls fn(path).
func (fn LoaderFunc) Load(path string) (Classifier, error) {
	return fn(path)
}

// Model names one of the three models of the bank.
type Model string

const (
	FaceModel  Model = "face"
	SmileModel Model = "smile"
	PainModel  Model = "pain"
)

// ModelPaths contains the location of each model file.
type ModelPaths struct {
	Face  string
	Smile string
	Pain  string
}

// DefaultModelPaths are the file names looked up in the working directory.
var DefaultModelPaths = ModelPaths{
	Face:  "haarcascade_frontalface_alt.xml",
	Smile: "haarcascade_smile.xml",
	Pain:  "pain.xml",
}

// Bank holds the loaded models. It is read-only once built.
type Bank struct {
	Face  Classifier
	Smile Classifier
	Pain  Classifier
}

// LoadError is returned when one of the bank models cannot be loaded.
type LoadError struct {
	Model Model
	Path  string
	Err   error
}

func (e *LoadError) Error() string {
	return "--(!)Error loading " + string(e.Model) + " cascade: " + e.Err.Error()
}

func (e *LoadError) Unwrap() error { return e.Err }

// LoadBank loads the face, smile and pain models in this order.
// It stops at the first model which fails to load and releases the ones already loaded.
func LoadBank(l Loader, paths ModelPaths) (*Bank, error) {
	bank := &Bank{}
	models := []struct {
		model Model
		path  string
		dst   *Classifier
	}{
		{FaceModel, paths.Face, &bank.Face},
		{SmileModel, paths.Smile, &bank.Smile},
		{PainModel, paths.Pain, &bank.Pain},
	}

	for _, m := range models {
		c, err := l.Load(m.path)
		if err != nil {
			bank.Close()
			return nil, &LoadError{
				Model: m.model,
				Path:  m.path,
				Err:   errors.Wrapf(err, "%q", m.path),
			}
		}
		*m.dst = c
	}
	return bank, nil
}

// Close releases the models which hold native resources.
func (b *Bank) Close() error {
	var firstErr error
	for _, c := range []Classifier{b.Face, b.Smile, b.Pain} {
		if closer, ok := c.(io.Closer); ok {
			if err := closer.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
