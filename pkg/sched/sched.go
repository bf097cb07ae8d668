// Package sched holds the sampling cadence and indication policy shared
// by the run modes. Everything here is a pure function of readings and
// elapsed slices so the mode loops stay trivial to test.
package sched

import "time"

// Slice is the base scheduling quantum. Mode loops advance in whole
// slices and decide per slice whether to sample, refresh or indicate.
const Slice = 250 * time.Millisecond

const (
	// ContinuousWarmup is how long the sensor settles before the
	// first reading is trusted.
	ContinuousWarmup = 5 * time.Second
	// ContinuousRefreshSlices is the screen refresh period of the
	// continuous mode, in slices.
	ContinuousRefreshSlices = 20

	// LowPowerSampleSlices is the sampling period of the low power
	// mode, in slices.
	LowPowerSampleSlices = 120
	// DisplaySlices is how long a woken screen stays on before the
	// low power and timer modes blank it again.
	DisplaySlices = 20

	// StealthSampleSlices is the sampling period of the stealth
	// mode, in slices.
	StealthSampleSlices = 20
	// StealthPulseSlices is charged against the stealth schedule per
	// emitted pulse, keeping the report cadence independent of how
	// long the pulse train runs.
	StealthPulseSlices = 2

	// TimerDisplayTicks is how many one second ticks the countdown
	// screen stays on after a button wake.
	TimerDisplayTicks = 5
	// TimerFinalSeconds is the tail of the countdown during which
	// the screen stays on regardless of button activity.
	TimerFinalSeconds = 10
	// TimerBlinkPulse is the heartbeat blink width of the countdown.
	TimerBlinkPulse = 10 * time.Millisecond
	// TimerTickRest completes each countdown tick to one second.
	TimerTickRest = 990 * time.Millisecond

	// CalibrateSeconds is how long the sensor breathes reference air
	// before forced recalibration.
	CalibrateSeconds = 180
	// CalibrateReferencePPM is the assumed fresh air concentration.
	CalibrateReferencePPM = 420
)

// MoodIndex maps a CO2 concentration to one of the five face glyphs,
// from 0 (happy) to 4 (grim). Bands are 500 ppm wide starting at 1000.
func MoodIndex(ppm int) int {
	idx := (ppm - 500) / 500
	if idx < 0 {
		return 0
	}
	if idx > 4 {
		return 4
	}
	return idx
}

// PulseCount maps a CO2 concentration to the length of a stealth pulse
// train, from 1 (good air) to 6 (bad air).
func PulseCount(ppm int) int {
	n := 1 + ppm/500
	if n < 1 {
		n = 1
	}
	if n > 6 {
		n = 6
	}
	return n
}

// LEDCue picks the LEDs for a low power sample cue. Below 1000 ppm the
// air is fine and only green shows, from 2000 up only red, and the band
// between lights both.
func LEDCue(ppm int) (green, red bool) {
	switch {
	case ppm < 1000:
		return true, false
	case ppm < 2000:
		return true, true
	default:
		return false, true
	}
}

// TrainSlices converts the configured update frequency to the stealth
// reporting period in slices.
func TrainSlices(freqSeconds int) int {
	return freqSeconds * 4
}
