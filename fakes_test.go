package paindetect

import (
	"image"
	"image/color"
	"io"
)

// fakeClassifier returns the queued results, one slice per Detect call.
// Once the queue is drained it returns the last result forever.
type fakeClassifier struct {
	results [][]image.Rectangle
	calls   int
	rois    []image.Rectangle
	params  []Params
	grays   []*image.Gray
	closed  bool
}

func detectAlways(rects ...image.Rectangle) *fakeClassifier {
	return &fakeClassifier{results: [][]image.Rectangle{rects}}
}

func (c *fakeClassifier) Detect(gray *image.Gray, roi image.Rectangle, p Params) []image.Rectangle {
	c.grays = append(c.grays, gray)
	c.rois = append(c.rois, roi)
	c.params = append(c.params, p)
	defer func() { c.calls++ }()

	if len(c.results) == 0 {
		return nil
	}
	i := c.calls
	if i >= len(c.results) {
		i = len(c.results) - 1
	}
	return c.results[i]
}

func (c *fakeClassifier) Close() error {
	c.closed = true
	return nil
}

type paintCall struct {
	dst  *image.RGBA
	kind string
	rect image.Rectangle
	at   image.Point
	text string
	c    color.Color
}

type recordingPainter struct {
	calls []paintCall
}

func (p *recordingPainter) Rectangle(dst *image.RGBA, r image.Rectangle, c color.Color, thickness float64) {
	p.calls = append(p.calls, paintCall{dst: dst, kind: "rect", rect: r, c: c})
}

func (p *recordingPainter) Ellipse(dst *image.RGBA, center, axes image.Point, c color.Color, thickness float64) {
	p.calls = append(p.calls, paintCall{dst: dst, kind: "ellipse", at: center, c: c})
}

func (p *recordingPainter) Label(dst *image.RGBA, text string, at image.Point, c color.Color) {
	p.calls = append(p.calls, paintCall{dst: dst, kind: "label", at: at, text: text, c: c})
}

func (p *recordingPainter) filter(kind string, dst *image.RGBA) []paintCall {
	var res []paintCall
	for _, c := range p.calls {
		if c.kind == kind && (dst == nil || c.dst == dst) {
			res = append(res, c)
		}
	}
	return res
}

func (p *recordingPainter) labels(text string) []paintCall {
	var res []paintCall
	for _, c := range p.filter("label", nil) {
		if c.text == text {
			res = append(res, c)
		}
	}
	return res
}

// fakeDisplay returns the queued keys, then KeyNone.
type fakeDisplay struct {
	keys   []int
	delays []int
	shown  []image.Image
	err    error
}

func (d *fakeDisplay) Show(img image.Image) error {
	d.shown = append(d.shown, img)
	return d.err
}

func (d *fakeDisplay) WaitKey(delay int) int {
	d.delays = append(d.delays, delay)
	if len(d.keys) == 0 {
		return KeyNone
	}
	k := d.keys[0]
	d.keys = d.keys[1:]
	return k
}

type fakeSource struct {
	frames []*image.RGBA
	next   int
	err    error
	closed bool
}

func newFakeSource(n, w, h int) *fakeSource {
	src := &fakeSource{}
	for i := 0; i < n; i++ {
		src.frames = append(src.frames, newFrame(w, h, color.RGBA{R: 90, G: 120, B: 150, A: 255}))
	}
	return src
}

func (s *fakeSource) Read() (*image.RGBA, error) {
	if s.next >= len(s.frames) {
		if s.err != nil {
			return nil, s.err
		}
		return nil, io.EOF
	}
	f := s.frames[s.next]
	s.next++
	return f, nil
}

func (s *fakeSource) Close() error {
	s.closed = true
	return nil
}

var colorGray = color.RGBA{R: 128, G: 128, B: 128, A: 255}

func newFrame(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

// gradientFrame returns an opaque frame where every pixel has distinct channel values.
func gradientFrame(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(x * 7),
				G: uint8(y * 11),
				B: uint8(x*3 + y*5),
				A: 255,
			})
		}
	}
	return img
}
