package cv

import (
	"fmt"
	"image"
	"image/draw"
	"io"
	"log"

	"github.com/esimov/paindetect"
	"github.com/esimov/paindetect/utils"
	"gocv.io/x/gocv"
)

// videoCapture is the part of gocv.VideoCapture used by the source.
type videoCapture interface {
	Read(m *gocv.Mat) bool
	IsOpened() bool
	Close() error
}

// openDevice opens a camera by index.
var openDevice = func(device int) (videoCapture, error) {
	vc, err := gocv.OpenVideoCapture(device)
	if vc == nil {
		return nil, err
	}
	return checkOpened(vc, err, device)
}

// checkOpened releases a capture which could not be opened before the error is returned.
func checkOpened(vc videoCapture, err error, device int) (videoCapture, error) {
	if err == nil && !vc.IsOpened() {
		err = fmt.Errorf("device %d is not opened", device)
	}
	if err != nil {
		vc.Close()
		return nil, err
	}
	return vc, nil
}

// Capture is a paindetect.Source reading from an OpenCV video capture.
type Capture struct {
	vc  videoCapture
	img gocv.Mat
	// Device is the opened device index, or -1 for video files.
	Device int
}

var _ paindetect.Source = (*Capture)(nil)

// OpenCamera opens the camera device. In case the device cannot be opened
// a single attempt is made with the fallback index.
func OpenCamera(device, fallback int) (*Capture, error) {
	vc, err := openDevice(device)
	if err != nil {
		log.Println(utils.DecorateText(
			fmt.Sprintf("--(!)Error opening video capture device %d, trying device %d", device, fallback),
			utils.ErrorMessage,
		))
		device = fallback
		if vc, err = openDevice(device); err != nil {
			return nil, fmt.Errorf("error opening video capture device %d: %w", device, err)
		}
	}
	return &Capture{vc: vc, img: gocv.NewMat(), Device: device}, nil
}

// OpenFile opens a video file or stream URI.
func OpenFile(uri string) (*Capture, error) {
	vc, err := gocv.VideoCaptureFile(uri)
	if err != nil {
		if vc != nil {
			vc.Close()
		}
		return nil, fmt.Errorf("error opening video file %s: %w", uri, err)
	}
	return &Capture{vc: vc, img: gocv.NewMat(), Device: -1}, nil
}

// Read grabs the next frame.
func (c *Capture) Read() (*image.RGBA, error) {
	if ok := c.vc.Read(&c.img); !ok {
		return nil, io.EOF
	}
	if c.img.Empty() {
		return nil, paindetect.ErrEmptyFrame
	}

	img, err := c.img.ToImage()
	if err != nil {
		return nil, err
	}
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba, nil
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)

	return dst, nil
}

// Close releases the capture device.
func (c *Capture) Close() error {
	if err := c.img.Close(); err != nil {
		return err
	}
	return c.vc.Close()
}
