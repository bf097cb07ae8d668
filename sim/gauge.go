package main

import (
	"fmt"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/chewxy/math32"

	"github.com/SKY-LEO/Pocket-CO2/pkg/sched"
)

// Dial sweep: 240 degrees from the lower left around to the lower
// right.
const (
	dialStartDeg = 210
	dialSweepDeg = 240
)

var (
	gaugeBack   = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	gaugeGreen  = color.RGBA{R: 80, G: 200, B: 100, A: 255}
	gaugeAmber  = color.RGBA{R: 250, G: 180, B: 40, A: 255}
	gaugeRed    = color.RGBA{R: 230, G: 70, B: 60, A: 255}
	gaugeNeedle = color.RGBA{R: 240, G: 240, B: 245, A: 255}
	gaugeText   = color.RGBA{R: 200, G: 200, B: 200, A: 255}
)

// Gauge is a dial showing the simulated room's CO2 level. The arc is
// colored by the same thresholds the device LED cue uses.
type Gauge struct {
	widget.BaseWidget

	mu    sync.RWMutex
	value float64
	min   float64
	max   float64
}

// NewGauge creates a dial spanning the slider's range.
func NewGauge() *Gauge {
	g := &Gauge{value: 420, min: 400, max: 3000}
	g.ExtendBaseWidget(g)
	g.Refresh()
	return g
}

// SetValue moves the needle. Call on the UI thread.
func (g *Gauge) SetValue(v float64) {
	g.mu.Lock()
	if v < g.min {
		v = g.min
	}
	if v > g.max {
		v = g.max
	}
	g.value = v
	g.mu.Unlock()

	g.Refresh()
}

// CreateRenderer creates the widget renderer.
func (g *Gauge) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(gaugeBack)
	return &gaugeRenderer{
		gauge:    g,
		bg:       bg,
		objects:  []fyne.CanvasObject{bg},
		lastSize: fyne.Size{Width: 0, Height: 0},
	}
}

type gaugeRenderer struct {
	gauge *Gauge

	bg       *canvas.Rectangle
	objects  []fyne.CanvasObject
	lastSize fyne.Size
}

func (r *gaugeRenderer) MinSize() fyne.Size {
	return fyne.NewSize(220, 150)
}

func (r *gaugeRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)

	if r.lastSize.Width != size.Width || r.lastSize.Height != size.Height {
		r.lastSize = size
		r.gauge.BaseWidget.Refresh()
	}
}

func (r *gaugeRenderer) Refresh() {
	r.gauge.mu.RLock()
	value := r.gauge.value
	min := r.gauge.min
	max := r.gauge.max
	r.gauge.mu.RUnlock()

	size := r.gauge.Size()
	if size.Width == 0 || size.Height == 0 {
		return
	}

	r.objects = []fyne.CanvasObject{r.bg}

	cx := size.Width / 2
	cy := size.Height * 0.62
	radius := size.Height * 0.5
	if w := size.Width/2 - 10; radius > w {
		radius = w
	}

	// Colored tick arc.
	const ticks = 25
	for i := range ticks {
		t := float32(i) / float32(ticks-1)
		ppm := min + float64(t)*(max-min)
		tick := canvas.NewLine(zoneColor(int(ppm)))
		tick.StrokeWidth = 3
		tick.Position1 = dialPoint(cx, cy, radius*0.82, t)
		tick.Position2 = dialPoint(cx, cy, radius, t)
		r.objects = append(r.objects, tick)
	}

	// Needle.
	t := float32((value - min) / (max - min))
	needle := canvas.NewLine(gaugeNeedle)
	needle.StrokeWidth = 3
	needle.Position1 = fyne.NewPos(cx, cy)
	needle.Position2 = dialPoint(cx, cy, radius*0.72, t)
	r.objects = append(r.objects, needle)

	label := canvas.NewText(fmt.Sprintf("%d ppm", int(value)), gaugeText)
	label.TextSize = 14
	label.Alignment = fyne.TextAlignCenter
	label.Move(fyne.NewPos(cx-40, cy+12))
	label.Resize(fyne.NewSize(80, 20))
	r.objects = append(r.objects, label)
}

func (r *gaugeRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *gaugeRenderer) Destroy() {}

// dialPoint maps a dial fraction to window coordinates at the given
// radius. Window y grows downward, hence the minus.
func dialPoint(cx, cy, radius, t float32) fyne.Position {
	deg := dialStartDeg - dialSweepDeg*t
	rad := deg * math32.Pi / 180
	return fyne.NewPos(cx+radius*math32.Cos(rad), cy-radius*math32.Sin(rad))
}

// zoneColor colors the arc with the LED cue thresholds: green only,
// both, red only.
func zoneColor(ppm int) color.Color {
	green, red := sched.LEDCue(ppm)
	switch {
	case green && red:
		return gaugeAmber
	case red:
		return gaugeRed
	default:
		return gaugeGreen
	}
}
