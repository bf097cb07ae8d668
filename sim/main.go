// The desktop simulator. Runs the exact device controller against a
// synthetic room: the OLED frame, buttons, LEDs and motor live in a
// fyne window, the CO2 level follows a slider.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"

	"github.com/SKY-LEO/Pocket-CO2/pkg/config"
	"github.com/SKY-LEO/Pocket-CO2/pkg/console"
	"github.com/SKY-LEO/Pocket-CO2/pkg/device"
	"github.com/SKY-LEO/Pocket-CO2/pkg/hw"
	"github.com/SKY-LEO/Pocket-CO2/pkg/oled"
)

func main() {
	var (
		speedFlag    = flag.Float64("speed", 1.0, "Time acceleration factor (1 = real time)")
		settingsFlag = flag.String("settings", "pocket-co2-sim.bin", "Settings record path")
		consoleFlag  = flag.Bool("console", false, "Mirror the sensor stream to stdout")
	)
	flag.Parse()

	application := app.NewWithID("com.skyleo.pocketco2.sim")
	window := application.NewWindow("Pocket CO2 Simulator")
	window.Resize(fyne.NewSize(820, 540))
	window.CenterOnScreen()

	board := newSimBoard(*speedFlag)
	sensorSim := newSimSensor()
	var sensor hw.Sensor = sensorSim
	if *consoleFlag {
		sensor = console.NewTap(sensorSim, os.Stdout)
	}

	sink := newFrameSink()
	screen := oled.New(sink)
	store := config.NewStore(config.FileStore{Path: *settingsFlag})

	gauge := NewGauge()
	sensorSim.onSample = func(co2 int) {
		fyne.Do(func() {
			gauge.SetValue(float64(co2))
		})
	}

	lamps := newIndicators()
	board.onLED = func(l hw.LED, on bool) {
		fyne.Do(func() {
			lamps.setLED(l, on)
		})
	}
	board.onMotor = func(on bool) {
		fyne.Do(func() {
			lamps.setMotor(on)
		})
	}

	hold := func(m hw.ButtonMask) func(bool) {
		return func(down bool) {
			if down {
				board.press(m)
			} else {
				board.release(m)
			}
		}
	}
	buttons := container.NewGridWithColumns(2,
		newHoldButton("Button 0", hold(hw.Button0)),
		newHoldButton("Button 1", hold(hw.Button1)),
	)

	window.SetContent(container.NewBorder(
		buildControls(sensorSim),
		buttons,
		nil,
		container.NewVBox(gauge, lamps.box),
		container.NewCenter(sink.img),
	))

	ctx, cancel := context.WithCancel(context.Background())
	window.SetOnClosed(cancel)

	controller := device.New(store, board, sensor, screen)
	go func() {
		if err := controller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Controller stopped: %v", err)
		}
	}()

	window.ShowAndRun()

	cancel()
	sensor.Shutdown()
}
