// Package device implements the firmware core of the monitor: the
// settings menu and the five run modes, driven as one cooperative loop
// over the sensor, display and board contracts. Nothing here touches
// hardware registers or pixels; that lives behind the contracts.
package device

import (
	"context"

	"github.com/SKY-LEO/Pocket-CO2/pkg/alert"
	"github.com/SKY-LEO/Pocket-CO2/pkg/button"
	"github.com/SKY-LEO/Pocket-CO2/pkg/config"
	"github.com/SKY-LEO/Pocket-CO2/pkg/hw"
)

// Controller is the device state machine. It owns the settings, the
// last captured reading and the session sample counter, and serializes
// all hardware access on its own goroutine.
type Controller struct {
	store   *config.Store
	board   hw.Board
	sensor  hw.Sensor
	display hw.Display
	buttons *button.Debouncer
	alerts  *alert.Engine

	settings config.Settings

	// lastReading survives mode changes so a woken screen has
	// something to show before the next sample lands.
	lastReading hw.Reading
	sampleCount int
}

// New wires a controller to its hardware.
func New(store *config.Store, board hw.Board, sensor hw.Sensor, display hw.Display) *Controller {
	return &Controller{
		store:   store,
		board:   board,
		sensor:  sensor,
		display: display,
		buttons: button.New(board),
		alerts:  alert.New(board),
	}
}

// Settings returns the current in-memory configuration.
func (c *Controller) Settings() config.Settings {
	return c.settings
}

// Run boots the device and cycles between the menu and the configured
// run mode until ctx is cancelled, which stands in for a power cycle.
func (c *Controller) Run(ctx context.Context) error {
	c.settings = c.store.Load()
	c.board.SetMotor(false)

	// Power-on indicator. Always the LED sequence so a boot is
	// visible even with a vibration-only configuration; the stored
	// alert style stays untouched.
	c.alerts.Play(config.AlertLED)

	for {
		if err := c.runMenu(ctx); err != nil {
			return err
		}
		c.display.DrawBanner(c.settings.Mode)

		var err error
		switch c.settings.Mode {
		case config.ModeLowPower:
			err = c.runLowPower(ctx)
		case config.ModeStealth:
			err = c.runStealth(ctx)
		case config.ModeCalibrate:
			err = c.runCalibrate(ctx)
		case config.ModeTimer:
			err = c.runTimer(ctx)
		default:
			// Continuous, and any mode value a stale record may
			// carry.
			err = c.runContinuous(ctx)
		}
		if err != nil {
			return err
		}
	}
}

// applyWake clears the screen buffer if the wake interrupt fired while
// the board was suspended, mirroring what the hardware handler does.
func (c *Controller) applyWake() {
	if c.board.TakeWake() {
		c.display.Clear()
	}
}
