// Package gui implements a paindetect.Display on top of the Gio toolkit.
//
// Gio owns the OS main thread, so the program has to call app.Main from its
// main goroutine and run the capture loop on another one. The window receives
// the frames and hands the key presses back through channels.
package gui

import (
	"errors"
	"image"
	"image/color"
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"gioui.org/app"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"github.com/esimov/paindetect"
)

const (
	maxScreenX = 1366
	maxScreenY = 768
)

// ErrClosed is returned when a frame is sent to a closed window.
var ErrClosed = errors.New("gui: window closed")

var defaultBkgColor = color.NRGBA{A: 0xff}

// Window is the Gio display window.
type Window struct {
	title  string
	frames chan image.Image
	keys   chan int
	done   chan struct{}
	errs   chan error

	start   sync.Once
	stop    sync.Once
	started atomic.Bool
}

var _ paindetect.Display = (*Window)(nil)

// NewWindow returns a window titled title. The native window is created on the first frame.
func NewWindow(title string) *Window {
	return &Window{
		title:  title,
		frames: make(chan image.Image, 1),
		keys:   make(chan int, 8),
		done:   make(chan struct{}),
		errs:   make(chan error, 1),
	}
}

// Show sends the image to the GUI. A frame not yet rendered is replaced by the new one.
func (g *Window) Show(img image.Image) error {
	select {
	case <-g.done:
		return ErrClosed
	default:
	}
	g.start.Do(func() {
		g.started.Store(true)
		go g.run(img.Bounds().Dx(), img.Bounds().Dy())
	})

	for {
		select {
		case g.frames <- img:
			return nil
		default:
			// Drop the stale frame.
			select {
			case <-g.frames:
			default:
			}
		}
	}
}

// WaitKey waits for a key press at most delay milliseconds.
// A window closed by the user is reported as the escape key.
func (g *Window) WaitKey(delay int) int {
	timer := time.NewTimer(time.Duration(delay) * time.Millisecond)
	defer timer.Stop()

	select {
	case k := <-g.keys:
		return k
	case <-g.done:
		return paindetect.KeyEscape
	case <-timer.C:
		return paindetect.KeyNone
	}
}

// Wait waits at most timeout for the native window to be destroyed and
// returns the error it was destroyed with. It returns nil right away
// when the window was never opened.
func (g *Window) Wait(timeout time.Duration) error {
	if !g.started.Load() {
		return nil
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case err := <-g.errs:
		return err
	case <-timer.C:
		return nil
	}
}

// Close marks the window as closed.
func (g *Window) Close() error {
	g.stop.Do(func() { close(g.done) })
	return nil
}

// run creates the Gio window and serves its events until it gets destroyed.
func (g *Window) run(width, height int) {
	win := app.NewWindow(g.options(width, height)...)

	var (
		ops  op.Ops
		img  image.Image
		done = g.done
	)
	for {
		select {
		case e := <-win.Events():
			switch e := e.(type) {
			case system.FrameEvent:
				gtx := layout.NewContext(&ops, e)
				paint.Fill(gtx.Ops, defaultBkgColor)

				if img != nil {
					widget.Image{
						Src:   paint.NewImageOp(img),
						Scale: 1 / gtx.Metric.PxPerDp,
						Fit:   widget.Contain,
					}.Layout(gtx)
				}
				e.Frame(gtx.Ops)
			case key.Event:
				if e.State != key.Press {
					continue
				}
				if code, ok := keyCode(e.Name); ok {
					select {
					case g.keys <- code:
					default:
					}
				}
			case system.DestroyEvent:
				g.errs <- e.Err
				g.Close()
				return
			}
		case img = <-g.frames:
			win.Invalidate()
		case <-done:
			// Ask once, the DestroyEvent ends the loop.
			done = nil
			win.Perform(system.ActionClose)
		}
	}
}

// options returns the native window options for a frame of the given size.
func (g *Window) options(width, height int) []app.Option {
	w, h := windowSize(width, height)
	return []app.Option{
		app.Title(g.title),
		app.Size(unit.Dp(w), unit.Dp(h)),
	}
}

// keyCode converts a Gio key name to the key code used by the filters.
func keyCode(name string) (int, bool) {
	if name == key.NameEscape {
		return paindetect.KeyEscape, true
	}
	if len(name) == 1 {
		return int(strings.ToLower(name)[0]), true
	}
	return 0, false
}

// windowSize returns the window dimension, keeping the image aspect ratio
// in case the image is bigger than the predefined screen size.
func windowSize(width, height int) (float32, float32) {
	w, h := float64(width), float64(height)
	if w > maxScreenX || h > maxScreenY {
		ratio := math.Min(maxScreenX/w, maxScreenY/h)
		w, h = w*ratio, h*ratio
	}
	return float32(w), float32(h)
}
