// Package hw defines the hardware surface of the monitor: the CO2 sensor,
// the OLED panel and the board itself (buttons, LEDs, vibration motor,
// sleep). The controller only ever talks to these three contracts; real
// implementations live in pkg/scd4x, pkg/oled and the program wiring, the
// mocks in this package back the tests and the simulator.
package hw

import (
	"time"

	"github.com/SKY-LEO/Pocket-CO2/pkg/config"
)

// ButtonMask is the instantaneous state of the two front buttons.
type ButtonMask uint8

const (
	Button0 ButtonMask = 1 << iota
	Button1
)

// ButtonBoth is the universal exit gesture: both buttons held at once.
const ButtonBoth = Button0 | Button1

// LED identifies one of the two status LEDs.
type LED int

const (
	LEDGreen LED = iota
	LEDRed
)

func (l LED) String() string {
	switch l {
	case LEDGreen:
		return "green"
	case LEDRed:
		return "red"
	}
	return "led?"
}

// Profile selects the sensor's measurement power mode.
type Profile int

const (
	// ProfileNormal samples every ~5 seconds.
	ProfileNormal Profile = iota
	// ProfileLow samples every ~30 seconds at a fraction of the power.
	ProfileLow
)

func (p Profile) String() string {
	if p == ProfileLow {
		return "low"
	}
	return "normal"
}

// Reading is one environmental measurement. Temperature and humidity are
// kept in tenths so the loop stays integer-only.
type Reading struct {
	CO2PPM          int
	TempDeciC       int
	HumidityDeciPct int
}

// MenuItem is one entry of the main menu, in display order.
type MenuItem int

const (
	MenuStart MenuItem = iota
	MenuMode
	MenuUpdateFreq
	MenuAlert
	MenuTimer
)

// Next returns the entry below, wrapping from Timer back to Start.
func (m MenuItem) Next() MenuItem {
	if m >= MenuTimer {
		return MenuStart
	}
	return m + 1
}

func (m MenuItem) String() string {
	switch m {
	case MenuStart:
		return "Start"
	case MenuMode:
		return "Mode"
	case MenuUpdateFreq:
		return "Update"
	case MenuAlert:
		return "Alert"
	case MenuTimer:
		return "Timer"
	}
	return "item?"
}

// Sensor is the CO2 sensor as the controller sees it. Every run mode opens
// a session with Start and closes it with Stop; Recalibrate is only legal
// between sessions. Implementations resolve transport errors themselves
// and always answer, typically by holding the last good reading.
type Sensor interface {
	Start(p Profile)
	Stop()
	Sample() Reading
	Recalibrate(referencePPM int) bool
	Shutdown()
}

// Display is the OLED panel. The controller describes screens; layout,
// fonts and flushing belong to the implementation.
type Display interface {
	DrawReading(r Reading, mood int)
	DrawMenu(sel MenuItem, cfg config.Settings)
	DrawCountdown(secondsLeft int)
	DrawBanner(mode config.Mode)
	DrawIntro(mode config.Mode)
	DrawCalibrationResult(ok bool)
	Power(on bool)
	Clear()
}

// Board is the rest of the hardware: buttons, the two LEDs, the vibration
// motor and the sleep primitives. Suspend may return early when the wake
// interrupt fires; the interrupt itself only latches a flag, which the
// next TakeWake call consumes.
type Board interface {
	Buttons() ButtonMask
	SetLED(l LED, on bool)
	SetMotor(on bool)
	Sleep(d time.Duration)
	Suspend(d time.Duration)
	TakeWake() bool
}
