package paindetect

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// Annotation colors.
var (
	faceColor  = color.RGBA{R: 0x00, G: 0xff, B: 0x00, A: 0xff}
	painColor  = color.RGBA{R: 0x00, G: 0xff, B: 0xff, A: 0xff}
	labelColor = color.RGBA{R: 0x00, G: 0xff, B: 0x00, A: 0xff}
)

// Annotation strokes and labels.
const (
	faceThickness = 1
	painThickness = 4
	painLabel     = "pain"
	smileLabel    = "Smile"
	labelOffset   = 10
)

// Painter draws the detection annotations directly into the frame.
type Painter interface {
	Rectangle(dst *image.RGBA, r image.Rectangle, c color.Color, thickness float64)
	Ellipse(dst *image.RGBA, center, axes image.Point, c color.Color, thickness float64)
	Label(dst *image.RGBA, text string, at image.Point, c color.Color)
}

// Canvas is a Painter backed by the gg 2D rendering library.
type Canvas struct {
	// Face is the font used for the labels. When nil the gg default face is used.
	Face font.Face
}

// NewCanvas returns a canvas which renders labels with the default font.
func NewCanvas() *Canvas {
	return &Canvas{}
}

// LoadCanvasFont returns a canvas using the TrueType font found at path.
func LoadCanvasFont(path string, points float64) (*Canvas, error) {
	face, err := gg.LoadFontFace(path, points)
	if err != nil {
		return nil, err
	}
	return &Canvas{Face: face}, nil
}

func (cn *Canvas) context(dst *image.RGBA, c color.Color, thickness float64) *gg.Context {
	dc := gg.NewContextForRGBA(dst)
	dc.SetColor(c)
	dc.SetLineWidth(thickness)
	if cn.Face != nil {
		dc.SetFontFace(cn.Face)
	}
	return dc
}

// Rectangle strokes the outline of r.
func (cn *Canvas) Rectangle(dst *image.RGBA, r image.Rectangle, c color.Color, thickness float64) {
	dc := cn.context(dst, c, thickness)
	// Offset by half a pixel so that a 1px stroke covers exactly one pixel row/column.
	dc.DrawRectangle(
		float64(r.Min.X)+0.5, float64(r.Min.Y)+0.5,
		float64(r.Dx()-1), float64(r.Dy()-1),
	)
	dc.Stroke()
}

// Ellipse strokes an axis aligned ellipse.
func (cn *Canvas) Ellipse(dst *image.RGBA, center, axes image.Point, c color.Color, thickness float64) {
	dc := cn.context(dst, c, thickness)
	dc.DrawEllipse(float64(center.X), float64(center.Y), float64(axes.X), float64(axes.Y))
	dc.Stroke()
}

// Label writes text with its baseline starting at the provided point.
func (cn *Canvas) Label(dst *image.RGBA, text string, at image.Point, c color.Color) {
	dc := cn.context(dst, c, 1)
	dc.DrawString(text, float64(at.X), float64(at.Y))
}
