package main

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

var (
	buttonIdle = color.RGBA{R: 55, G: 58, B: 70, A: 255}
	buttonHeld = color.RGBA{R: 90, G: 120, B: 200, A: 255}
)

// holdButton is a press-and-hold button: mouse down and up map to the
// physical press and release, so chords like the both-buttons exit work
// the way they do on the device.
type holdButton struct {
	widget.BaseWidget

	label  string
	onHold func(down bool)
	down   bool
}

var _ desktop.Mouseable = (*holdButton)(nil)

func newHoldButton(label string, onHold func(down bool)) *holdButton {
	b := &holdButton{label: label, onHold: onHold}
	b.ExtendBaseWidget(b)
	return b
}

func (b *holdButton) MouseDown(*desktop.MouseEvent) {
	b.down = true
	b.onHold(true)
	b.Refresh()
}

func (b *holdButton) MouseUp(*desktop.MouseEvent) {
	b.down = false
	b.onHold(false)
	b.Refresh()
}

// CreateRenderer creates the widget renderer.
func (b *holdButton) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(buttonIdle)
	bg.CornerRadius = 8
	label := canvas.NewText(b.label, color.White)
	label.Alignment = fyne.TextAlignCenter
	label.TextSize = 14
	return &holdButtonRenderer{
		btn:     b,
		bg:      bg,
		label:   label,
		objects: []fyne.CanvasObject{bg, label},
	}
}

type holdButtonRenderer struct {
	btn     *holdButton
	bg      *canvas.Rectangle
	label   *canvas.Text
	objects []fyne.CanvasObject
}

func (r *holdButtonRenderer) MinSize() fyne.Size {
	return fyne.NewSize(110, 44)
}

func (r *holdButtonRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	ts := r.label.MinSize()
	r.label.Move(fyne.NewPos((size.Width-ts.Width)/2, (size.Height-ts.Height)/2))
}

func (r *holdButtonRenderer) Refresh() {
	if r.btn.down {
		r.bg.FillColor = buttonHeld
	} else {
		r.bg.FillColor = buttonIdle
	}
	canvas.Refresh(r.bg)
}

func (r *holdButtonRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *holdButtonRenderer) Destroy() {}
