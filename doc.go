/*
Package paindetect captures a video stream, detects the faces together with
the smile and pain expressions using pretrained cascade classifiers and
overlays the detections on the displayed frame. A small set of image filters
can be toggled from the keyboard while the stream is running.

The package provides a command line interface. To check the supported flags type:

	$ paindetect --help

The library can be used with any frame source, classifier and display backend:

	package main

	import (
		"os"

		"github.com/esimov/paindetect"
		"github.com/esimov/paindetect/cv"
	)

	func main() {
		win := cv.NewWindow(paindetect.WindowName)
		defer win.Close()

		op := &paindetect.Ops{
			Models:   paindetect.DefaultModelPaths,
			Loader:   paindetect.NewAutoLoader(cv.CascadeLoader, paindetect.PigoLoader(0)),
			Open:     func() (paindetect.Source, error) { return cv.OpenCamera(0, -1) },
			Equalize: cv.EqualizeHist,
			Filters:  cv.Filters(),
			Display:  win,
		}
		os.Exit(op.Execute())
	}
*/
package paindetect
