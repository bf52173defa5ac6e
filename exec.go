package paindetect

import (
	"fmt"
	"image"
	"io"
	"log"
	"os"

	"github.com/esimov/paindetect/utils"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitLoadFailure = -1
)

// Ops groups everything needed to run a capture session.
type Ops struct {
	Models ModelPaths
	Loader Loader

	// Open opens the frame source. It is called only after the models are loaded.
	Open func() (Source, error)

	Display Display
	Painter Painter

	// Equalize and Filters are handed to the Processor.
	Equalize func(*image.Gray) *image.Gray
	Filters  FilterBank

	KeyDelay      int
	AnchorEllipse bool
	AnchorSmile   bool

	// Out receives the menu and the log messages. It defaults to os.Stdout.
	Out io.Writer
	// Progress, when set, is shown while the models are loading.
	Progress *utils.Spinner
}

// Execute loads the classifier bank, prints the menu and runs the capture loop.
// It returns the process exit code.
func (op *Ops) Execute() int {
	out := op.Out
	if out == nil {
		out = os.Stdout
	}
	logger := log.New(out, "", 0)

	if op.Progress != nil {
		op.Progress.Start()
	}
	bank, err := LoadBank(op.Loader, op.Models)
	if op.Progress != nil {
		op.Progress.Stop()
	}
	if err != nil {
		logger.Println(utils.DecorateText(err.Error(), utils.ErrorMessage))
		return ExitLoadFailure
	}
	defer func() {
		if err := bank.Close(); err != nil {
			logger.Printf("could not release the classifiers: %v", err)
		}
	}()

	if err := PrintMenu(out); err != nil {
		logger.Printf("could not print the menu: %v", err)
	}

	painter := op.Painter
	if painter == nil {
		painter = NewCanvas()
	}

	src, err := op.Open()
	if err != nil {
		// Without a frame source the stream is exhausted right away.
		logger.Println(utils.DecorateText(fmt.Sprintf(" --(!) Error opening the video stream: %v", err), utils.ErrorMessage))
		return ExitOK
	}
	defer func() {
		if err := src.Close(); err != nil {
			logger.Printf("could not close the video stream: %v", err)
		}
	}()

	capture := &Capture{
		Source: src,
		Processor: &Processor{
			Bank:          bank,
			Painter:       painter,
			Display:       op.Display,
			Equalize:      op.Equalize,
			Filters:       op.Filters,
			KeyDelay:      op.KeyDelay,
			AnchorEllipse: op.AnchorEllipse,
			AnchorSmile:   op.AnchorSmile,
		},
		Logger: logger,
	}
	stats := capture.Run()

	logger.Printf("\n%d frames processed in %s\n",
		stats.Frames,
		utils.DecorateText(utils.FormatTime(stats.Elapsed), utils.SuccessMessage),
	)
	return ExitOK
}
