// Package alert drives the vibration motor and status LEDs through the
// device's fixed indication sequences.
package alert

import (
	"time"

	"github.com/SKY-LEO/Pocket-CO2/pkg/config"
	"github.com/SKY-LEO/Pocket-CO2/pkg/hw"
)

const (
	vibrationPulse = 150 * time.Millisecond
	vibrationRest  = 820 * time.Millisecond
	ledBlink       = 300 * time.Millisecond
	comboBlink     = 400 * time.Millisecond

	stealthPulse = 100 * time.Millisecond
	stealthRest  = 395 * time.Millisecond

	// Sample cues in the low power mode are kept to a few
	// milliseconds so they barely dent the battery.
	cueGreenBlink = 2 * time.Millisecond
	cueRedBlink   = 3 * time.Millisecond
)

// Engine plays indication sequences on a board. All sequences block
// until finished.
type Engine struct {
	board hw.Board
}

// New returns an engine over the given board.
func New(b hw.Board) *Engine {
	return &Engine{board: b}
}

// Play runs the attention sequence for the given style.
func (e *Engine) Play(style config.AlertStyle) {
	switch style {
	case config.AlertVibration:
		for range 3 {
			e.vibrate(vibrationPulse)
			e.board.Sleep(vibrationRest)
		}
	case config.AlertLED:
		for range 4 {
			e.Blink(hw.LEDGreen, ledBlink)
			e.Blink(hw.LEDRed, ledBlink)
		}
	case config.AlertBoth:
		for range 3 {
			e.vibrate(vibrationPulse)
			e.Blink(hw.LEDGreen, comboBlink)
			e.Blink(hw.LEDRed, comboBlink)
		}
	}
}

// Blink holds one LED on for the given duration.
func (e *Engine) Blink(l hw.LED, d time.Duration) {
	e.board.SetLED(l, true)
	e.board.Sleep(d)
	e.board.SetLED(l, false)
}

// Cue flashes the chosen LEDs just long enough to be seen in the dark.
func (e *Engine) Cue(green, red bool) {
	if green {
		e.Blink(hw.LEDGreen, cueGreenBlink)
	}
	if red {
		e.Blink(hw.LEDRed, cueRedBlink)
	}
}

// Buzz emits a stealth pulse train of the given length.
func (e *Engine) Buzz(pulses int) {
	for range pulses {
		e.vibrate(stealthPulse)
		e.board.Sleep(stealthRest)
	}
}

func (e *Engine) vibrate(d time.Duration) {
	e.board.SetMotor(true)
	e.board.Sleep(d)
	e.board.SetMotor(false)
}
