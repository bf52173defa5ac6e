package paindetect

import (
	"os"
	"strings"

	"github.com/esimov/paindetect/utils"
	"github.com/pkg/errors"
)

// AutoLoader picks the backend by sniffing the model file content:
// XML documents are handed to Cascade (OpenCV Haar/LBP models),
// anything else is treated as a pigo binary cascade.
// Remote models given as http(s) URLs are downloaded first.
type AutoLoader struct {
	Cascade Loader
	Binary  Loader
}

// NewAutoLoader creates a loader dispatching between the two backends.
func NewAutoLoader(cascade, binary Loader) *AutoLoader {
	return &AutoLoader{Cascade: cascade, Binary: binary}
}

// Load implements the Loader interface.
func (l *AutoLoader) Load(path string) (Classifier, error) {
	if utils.IsValidUrl(path) {
		f, err := utils.DownloadFile(path)
		if err != nil {
			return nil, err
		}
		defer os.Remove(f.Name())
		if err := f.Close(); err != nil {
			return nil, errors.Wrap(err, "unable to close the downloaded model")
		}

		path = f.Name()
	}

	ctype, err := utils.DetectContentType(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read the model file")
	}

	var backend Loader
	if strings.Contains(ctype, "xml") {
		backend = l.Cascade
	} else {
		backend = l.Binary
	}
	if backend == nil {
		return nil, errors.Errorf("no classifier backend for content type %s", ctype)
	}
	return backend.Load(path)
}
