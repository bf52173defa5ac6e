package cv

import (
	"image"

	"github.com/esimov/paindetect"
	"gocv.io/x/gocv"
)

// highgui is the part of gocv.Window used by the display.
type highgui interface {
	IMShow(img gocv.Mat) error
	WaitKey(delay int) int
	GetWindowProperty(flag gocv.WindowPropertyFlag) float64
	Close() error
}

// newHighgui creates the native window.
var newHighgui = func(name string) highgui {
	return gocv.NewWindow(name)
}

// Window is a paindetect.Display backed by an OpenCV highgui window.
// Like cv::imshow, the native window is created on the first use.
type Window struct {
	name  string
	win   highgui
	shown bool
}

var _ paindetect.Display = (*Window)(nil)

// NewWindow returns a named display window.
func NewWindow(name string) *Window {
	return &Window{name: name}
}

func (w *Window) window() highgui {
	if w.win == nil {
		w.win = newHighgui(w.name)
	}
	return w.win
}

// Show displays the image.
func (w *Window) Show(img image.Image) error {
	var (
		mat gocv.Mat
		err error
	)
	if gray, ok := img.(*image.Gray); ok {
		mat, err = gocv.ImageGrayToMatGray(gray)
	} else {
		mat, err = gocv.ImageToMatRGB(img)
	}
	if err != nil {
		return err
	}
	defer mat.Close()

	if err := w.window().IMShow(mat); err != nil {
		return err
	}
	w.shown = true

	return nil
}

// WaitKey waits for a key press at most delay milliseconds.
// A window closed by the user is reported as the escape key.
func (w *Window) WaitKey(delay int) int {
	win := w.window()
	key := win.WaitKey(delay)
	if w.shown && win.GetWindowProperty(gocv.WindowPropertyVisible) < 1 {
		return paindetect.KeyEscape
	}
	return key
}

// Close closes the window, if it was ever opened.
func (w *Window) Close() error {
	if w.win == nil {
		return nil
	}
	return w.win.Close()
}
