package paindetect

import (
	"image"
	"image/draw"

	"github.com/esimov/paindetect/utils"
)

// WindowName is the title of the display window.
const WindowName = "Capture - Face detection"

// DefaultKeyDelay is the time, in milliseconds, the processor waits for a key press on every frame.
const DefaultKeyDelay = 10

// Display shows the processed frames and polls the keyboard.
type Display interface {
	// Show displays the image until the next call.
	Show(img image.Image) error
	// WaitKey waits at most delay milliseconds for a key press.
	// It returns the key code or KeyNone.
	WaitKey(delay int) int
}

// Detections holds the regions found on a single frame.
type Detections struct {
	Faces  []image.Rectangle
	Pain   []image.Rectangle
	Smiles []image.Rectangle
}

// Processor runs the detection and display step on each frame.
type Processor struct {
	Bank    *Bank
	Painter Painter
	Display Display

	// Equalize stretches the contrast of the gray frame before detection.
	// When nil the frames are not equalized.
	Equalize func(*image.Gray) *image.Gray
	// Filters holds the keyed filters. When nil DefaultFilters is used.
	Filters FilterBank

	// KeyDelay is the key poll timeout in milliseconds. Zero means DefaultKeyDelay.
	KeyDelay int
	// AnchorEllipse centers each pain ellipse on its own pain region.
	// By default the ellipse drawn while visiting the i-th face is centered
	// on the i-th pain region, whatever the pain region being visited.
	AnchorEllipse bool
	// AnchorSmile places the smile labels next to the smiles.
	// By default the label offset is taken relative to the face but
	// applied to the frame, so it lands near the frame origin.
	AnchorSmile bool
}

// Annotate detects the faces, pain and smile regions on the frame and draws them in place.
func (p *Processor) Annotate(frame *image.RGBA) Detections {
	var det Detections

	gray := Grayscale(frame)
	if p.Equalize != nil {
		gray = p.Equalize(gray)
	}
	bounds := gray.Bounds()

	det.Faces = p.Bank.Face.Detect(gray, bounds, FaceParams)
	det.Pain = p.Bank.Pain.Detect(gray, bounds, PainParams)

	for i, face := range det.Faces {
		p.Painter.Rectangle(frame, face, faceColor, faceThickness)

		// Every pain region redraws the very same ellipse, drawing it once is equivalent.
		if !p.AnchorEllipse && i < len(det.Pain) {
			p.drawEllipse(frame, det.Pain[i])
		}

		smiles := p.Bank.Smile.Detect(gray, face, SmileParams)
		for _, smile := range smiles {
			if !p.AnchorSmile {
				smile = smile.Sub(face.Min)
			}
			p.Painter.Label(frame, smileLabel, labelPoint(smile), labelColor)
		}
		det.Smiles = append(det.Smiles, smiles...)
	}

	for _, pain := range det.Pain {
		if p.AnchorEllipse {
			p.drawEllipse(frame, pain)
		}
		p.Painter.Label(frame, painLabel, labelPoint(pain), labelColor)
	}
	return det
}

// Process annotates the frame, reads one key press and shows either the
// filtered copy of the annotated frame or, without a recognized key, the annotated frame itself.
// It returns the key code read from the display.
func (p *Processor) Process(frame *image.RGBA) (int, error) {
	p.Annotate(frame)

	delay := p.KeyDelay
	if delay <= 0 {
		delay = DefaultKeyDelay
	}
	key := p.Display.WaitKey(delay)

	filters := p.Filters
	if filters == nil {
		filters = DefaultFilters()
	}

	var out image.Image = frame
	if filter, ok := filters.Lookup(key); ok {
		out = filter(cloneFrame(frame))
	}
	return key, p.Display.Show(out)
}

func (p *Processor) drawEllipse(frame *image.RGBA, r image.Rectangle) {
	center := image.Pt(r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2)
	axes := image.Pt(r.Dx()/2, r.Dy()/2)
	p.Painter.Ellipse(frame, center, axes, painColor, painThickness)
}

// labelPoint returns the label position of a region, kept inside the frame.
func labelPoint(r image.Rectangle) image.Point {
	return image.Pt(
		utils.Max(r.Min.X+labelOffset, 0),
		utils.Max(r.Min.Y+labelOffset, 0),
	)
}

// cloneFrame returns a deep copy of the frame.
func cloneFrame(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	return dst
}
