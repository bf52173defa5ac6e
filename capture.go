package paindetect

import (
	"errors"
	"image"
	"io"
	"log"
	"os"
	"time"

	"github.com/esimov/paindetect/utils"
)

// ErrEmptyFrame is returned by a Source which delivered a frame without any pixel.
var ErrEmptyFrame = errors.New("no captured frame")

// Source delivers the frames to the capture loop.
// Read returns io.EOF, ErrEmptyFrame or any other error once no frame can be read anymore.
type Source interface {
	Read() (*image.RGBA, error)
	Close() error
}

// State is the state of the capture loop.
type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	default:
		return "stopped"
	}
}

// Stats summarizes a capture session.
type Stats struct {
	Frames  int
	Elapsed time.Duration
}

// Capture pulls the frames from the source and hands them over to the processor,
// one at a time, until the stream is exhausted or the escape key is pressed.
type Capture struct {
	Source    Source
	Processor *Processor
	Logger    *log.Logger

	state State
}

// NewCapture creates a capture loop logging to the standard output.
func NewCapture(src Source, proc *Processor) *Capture {
	return &Capture{
		Source:    src,
		Processor: proc,
		Logger:    log.New(os.Stdout, "", 0),
	}
}

// State returns the current state of the loop.
func (c *Capture) State() State {
	return c.state
}

// Run executes the loop. It returns when the source is exhausted or on escape.
func (c *Capture) Run() Stats {
	var stats Stats

	now := time.Now()
	c.state = Running

	for c.state == Running {
		frame, err := c.Source.Read()
		if err == nil && (frame == nil || frame.Bounds().Empty()) {
			err = ErrEmptyFrame
		}
		if err != nil {
			switch {
			case errors.Is(err, ErrEmptyFrame):
				c.logf(utils.DecorateText(" --(!) No captured frame -- Break!", utils.ErrorMessage))
			case !errors.Is(err, io.EOF):
				c.logf(utils.DecorateText(" --(!) Error reading frame: %v", utils.ErrorMessage), err)
			}
			c.state = Stopped
			break
		}

		key, err := c.Processor.Process(frame)
		if err != nil {
			c.logf(utils.DecorateText(" --(!) Error displaying frame: %v", utils.ErrorMessage), err)
		}
		stats.Frames++

		if NormalizeKey(key) == KeyEscape {
			c.state = Stopped
		}
	}
	stats.Elapsed = time.Since(now)

	return stats
}

func (c *Capture) logf(format string, v ...any) {
	if c.Logger != nil {
		c.Logger.Printf(format, v...)
	}
}
