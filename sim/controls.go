package main

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/SKY-LEO/Pocket-CO2/pkg/hw"
)

var (
	ledGreenOn  = color.RGBA{R: 70, G: 230, B: 100, A: 255}
	ledGreenOff = color.RGBA{R: 20, G: 55, B: 30, A: 255}
	ledRedOn    = color.RGBA{R: 245, G: 70, B: 55, A: 255}
	ledRedOff   = color.RGBA{R: 60, G: 25, B: 22, A: 255}
	motorOn     = color.RGBA{R: 200, G: 160, B: 250, A: 255}
	motorOff    = color.RGBA{R: 42, G: 42, B: 50, A: 255}
)

// buildControls builds the room controls: the CO2 target slider and the
// calibration failure toggle.
func buildControls(sensor *simSensor) fyne.CanvasObject {
	label := widget.NewLabel("Room CO2: 800 ppm")

	slider := widget.NewSlider(400, 3000)
	slider.Step = 10
	slider.Value = 800
	slider.OnChanged = func(v float64) {
		sensor.setTarget(v)
		label.SetText(fmt.Sprintf("Room CO2: %d ppm", int(v)))
	}

	failCheck := widget.NewCheck("Fail calibration", sensor.setFailCalibration)

	return container.NewBorder(nil, nil, label, failCheck, slider)
}

// indicators are the LED and motor lamps next to the screen.
type indicators struct {
	box   fyne.CanvasObject
	green *canvas.Circle
	red   *canvas.Circle
	motor *canvas.Circle
}

func newIndicators() *indicators {
	ind := &indicators{
		green: canvas.NewCircle(ledGreenOff),
		red:   canvas.NewCircle(ledRedOff),
		motor: canvas.NewCircle(motorOff),
	}

	row := func(lamp *canvas.Circle, name string) fyne.CanvasObject {
		return container.NewHBox(
			container.NewGridWrap(fyne.NewSize(20, 20), lamp),
			widget.NewLabel(name),
		)
	}
	ind.box = container.NewVBox(
		row(ind.green, "Green"),
		row(ind.red, "Red"),
		row(ind.motor, "Motor"),
	)
	return ind
}

// setLED updates a lamp. Call on the UI thread.
func (ind *indicators) setLED(l hw.LED, on bool) {
	lamp, onColor, offColor := ind.green, ledGreenOn, ledGreenOff
	if l == hw.LEDRed {
		lamp, onColor, offColor = ind.red, ledRedOn, ledRedOff
	}
	if on {
		lamp.FillColor = onColor
	} else {
		lamp.FillColor = offColor
	}
	lamp.Refresh()
}

// setMotor updates the motor lamp. Call on the UI thread.
func (ind *indicators) setMotor(on bool) {
	if on {
		ind.motor.FillColor = motorOn
	} else {
		ind.motor.FillColor = motorOff
	}
	ind.motor.Refresh()
}
