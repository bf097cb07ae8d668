package main

import (
	"image"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"github.com/SKY-LEO/Pocket-CO2/pkg/oled"
)

var (
	panelOn  = color.RGBA{R: 225, G: 235, B: 255, A: 255}
	panelOff = color.RGBA{R: 10, G: 12, B: 20, A: 255}
)

// frameSink shows rendered frames in the window. Like the real panel it
// retains the last frame through a power off, so power on restores it
// without a redraw.
type frameSink struct {
	img  *canvas.Image
	rgba *image.RGBA

	mu      sync.Mutex
	last    image.Image
	powered bool
}

func newFrameSink() *frameSink {
	rgba := image.NewRGBA(image.Rect(0, 0, oled.Width, oled.Height))
	img := canvas.NewImageFromImage(rgba)
	img.FillMode = canvas.ImageFillContain
	img.ScaleMode = canvas.ImageScalePixels
	img.SetMinSize(fyne.NewSize(3*oled.Width, 3*oled.Height))

	f := &frameSink{img: img, rgba: rgba, powered: true}
	f.blank()
	return f
}

func (f *frameSink) Flush(frame image.Image) error {
	f.mu.Lock()
	f.last = frame
	if f.powered {
		f.blit(frame)
	}
	f.mu.Unlock()

	f.refresh()
	return nil
}

func (f *frameSink) Power(on bool) error {
	f.mu.Lock()
	f.powered = on
	if on && f.last != nil {
		f.blit(f.last)
	} else if !on {
		f.blank()
	}
	f.mu.Unlock()

	f.refresh()
	return nil
}

// blit converts the 1-bit frame to panel colors. Callers hold mu.
func (f *frameSink) blit(frame image.Image) {
	for y := range oled.Height {
		for x := range oled.Width {
			r, _, _, _ := frame.At(x, y).RGBA()
			if r > 0x7fff {
				f.rgba.SetRGBA(x, y, panelOn)
			} else {
				f.rgba.SetRGBA(x, y, panelOff)
			}
		}
	}
}

func (f *frameSink) blank() {
	for y := range oled.Height {
		for x := range oled.Width {
			f.rgba.SetRGBA(x, y, panelOff)
		}
	}
}

func (f *frameSink) refresh() {
	fyne.Do(func() {
		f.img.Refresh()
	})
}
