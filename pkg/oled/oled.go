// Package oled renders the monitor's screens into a 1-bit frame and
// hands finished frames to a Sink, either a real SSD1306 panel or the
// simulator window.
package oled

import (
	"image"
	"image/draw"
	"log"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/devices/v3/ssd1306/image1bit"

	"github.com/SKY-LEO/Pocket-CO2/pkg/hw"
)

// Panel dimensions.
const (
	Width  = 128
	Height = 64
)

// Sink receives rendered frames and power switches.
type Sink interface {
	Flush(img image.Image) error
	Power(on bool) error
}

// Screen composes the device screens into a persistent frame buffer.
// Draw calls update only their part of the frame, so a countdown can
// tick under a title drawn once.
type Screen struct {
	sink Sink
	img  *image1bit.VerticalLSB
}

var _ hw.Display = (*Screen)(nil)

// New returns a screen renderer flushing into sink.
func New(sink Sink) *Screen {
	return &Screen{
		sink: sink,
		img:  image1bit.NewVerticalLSB(image.Rect(0, 0, Width, Height)),
	}
}

// Power switches the panel on or off. The frame buffer is untouched,
// so the old screen returns on power up until something redraws.
func (s *Screen) Power(on bool) {
	if err := s.sink.Power(on); err != nil {
		log.Printf("oled: failed to switch panel power: %v", err)
	}
}

// Clear blanks the frame and the panel.
func (s *Screen) Clear() {
	s.clearFrame()
	s.flush()
}

func (s *Screen) flush() {
	if err := s.sink.Flush(s.img); err != nil {
		log.Printf("oled: failed to flush frame: %v", err)
	}
}

func (s *Screen) clearFrame() {
	for i := range s.img.Pix {
		s.img.Pix[i] = 0
	}
}

// clearRect blanks one region of the frame.
func (s *Screen) clearRect(x, y, w, h int) {
	draw.Draw(s.img, image.Rect(x, y, x+w, y+h), &image.Uniform{C: image1bit.Off}, image.Point{}, draw.Src)
}

// fillRect lights one region of the frame.
func (s *Screen) fillRect(x, y, w, h int) {
	draw.Draw(s.img, image.Rect(x, y, x+w, y+h), &image.Uniform{C: image1bit.On}, image.Point{}, draw.Src)
}

// text draws one line with its baseline at y.
func (s *Screen) text(x, y int, str string) {
	d := &font.Drawer{
		Dst:  s.img,
		Src:  &image.Uniform{C: image1bit.On},
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(str)
}

// bigText draws str scaled up by an integer factor, top-left at (x, y).
// The base face is 7x13, so the result occupies 13*scale rows.
func (s *Screen) bigText(x, y int, str string, scale int) {
	w := 7 * len(str)
	tmp := image1bit.NewVerticalLSB(image.Rect(0, 0, w, 13))
	d := &font.Drawer{
		Dst:  tmp,
		Src:  &image.Uniform{C: image1bit.On},
		Face: basicfont.Face7x13,
		Dot:  fixed.P(0, 11),
	}
	d.DrawString(str)

	for py := range 13 {
		for px := range w {
			if tmp.BitAt(px, py) == image1bit.On {
				s.fillRect(x+px*scale, y+py*scale, scale, scale)
			}
		}
	}
}
