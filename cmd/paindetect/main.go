package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gioui.org/app"
	"github.com/esimov/paindetect"
	"github.com/esimov/paindetect/cv"
	"github.com/esimov/paindetect/gui"
	"github.com/esimov/paindetect/utils"
)

const HelpBanner = `
┌─┐┌─┐┬┌┐┌┌┬┐┌─┐┌┬┐┌─┐┌─┐┌┬┐
├─┘├─┤││││ ││├┤  │ ├┤ │   │
┴  ┴ ┴┴┘└┘─┴┘└─┘ ┴ └─┘└─┘ ┴

Webcam face, smile and pain detection.
    Version: %s

`

// maxKeyDelay caps the per frame key wait, in milliseconds.
const maxKeyDelay = 1000

// destroyTimeout bounds the wait for the Gio window to be torn down.
const destroyTimeout = time.Second

// Version indicates the current build version.
var Version string

// spinner is shown while the cascade classifiers are loading.
var spinner *utils.Spinner

var (
	// Flags
	faceModel  = flag.String("face", paindetect.DefaultModelPaths.Face, "Face cascade classifier")
	smileModel = flag.String("smile", paindetect.DefaultModelPaths.Smile, "Smile cascade classifier")
	painModel  = flag.String("pain", paindetect.DefaultModelPaths.Pain, "Pain cascade classifier")
	device     = flag.Int("device", 0, "Camera device index")
	fallback   = flag.Int("fallback", -1, "Camera device tried when the first one fails")
	source     = flag.String("in", "", "Video file or directory of frames used instead of the camera")
	display    = flag.String("display", "cv", "Display backend: cv or gio")
	keyDelay   = flag.Int("wait", paindetect.DefaultKeyDelay, "Key wait per frame in milliseconds")
	anchor     = flag.Bool("anchor", false, "Draw the pain ellipses on the pain regions and the smile labels next to the smiles")
	quality    = flag.Float64("quality", 0, "Minimum detection score of the pigo cascades")
	fontFile   = flag.String("font", "", "TrueType font used for the labels")
)

func main() {
	log.SetFlags(0)
	log.SetOutput(os.Stdout)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	spinnerText := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ PAINDETECT", utils.StatusMessage),
		utils.DecorateText("is loading the cascade classifiers...", utils.DefaultMessage))
	spinner = utils.NewSpinner(os.Stderr, spinnerText, time.Millisecond*100)

	op := &paindetect.Ops{
		Models: paindetect.ModelPaths{
			Face:  *faceModel,
			Smile: *smileModel,
			Pain:  *painModel,
		},
		Loader:        paindetect.NewAutoLoader(cv.CascadeLoader, paindetect.PigoLoader(float32(*quality))),
		Open:          openSource,
		Equalize:      cv.EqualizeHist,
		Filters:       cv.Filters(),
		KeyDelay:      utils.Clamp(*keyDelay, 1, maxKeyDelay),
		AnchorEllipse: *anchor,
		AnchorSmile:   *anchor,
		Progress:      spinner,
	}

	if *fontFile != "" {
		canvas, err := paindetect.LoadCanvasFont(*fontFile, 14)
		if err != nil {
			log.Fatalf(utils.DecorateText("Failed to load the font: %v", utils.ErrorMessage), err)
		}
		op.Painter = canvas
	}

	// Capture CTRL-C signal and restore the cursor visibility back.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalChan
		spinner.RestoreCursor()
		os.Exit(paindetect.ExitOK)
	}()

	switch *display {
	case "cv":
		win := cv.NewWindow(paindetect.WindowName)
		op.Display = win
		code := op.Execute()
		win.Close()
		os.Exit(code)
	case "gio":
		win := gui.NewWindow(paindetect.WindowName)
		op.Display = win
		go func() {
			code := op.Execute()
			win.Close()
			if err := win.Wait(destroyTimeout); err != nil {
				log.Printf(utils.DecorateText("Window closed with error: %v", utils.ErrorMessage), err)
			}
			os.Exit(code)
		}()
		app.Main()
	default:
		flag.Usage()
		log.Fatalf(utils.DecorateText("Unknown display backend: %s", utils.ErrorMessage), *display)
	}
}

// openSource opens the frame source: the camera, a video file or a directory of frames.
func openSource() (paindetect.Source, error) {
	if *source == "" {
		return cv.OpenCamera(*device, *fallback)
	}
	if utils.IsValidUrl(*source) {
		return cv.OpenFile(*source)
	}

	fs, err := os.Stat(*source)
	if err != nil {
		return nil, err
	}
	if fs.IsDir() {
		return paindetect.NewSequenceSource(*source)
	}
	return cv.OpenFile(*source)
}
