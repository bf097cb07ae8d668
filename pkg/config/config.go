// Package config holds the two configuration layers of the monitor: the
// user settings persisted in the device's non-volatile record, and the
// host profile describing how the hardware is wired on a given machine.
package config

// Mode is the operating mode the device enters from the menu.
type Mode int

const (
	ModeContinuous Mode = iota
	ModeLowPower
	ModeStealth
	ModeCalibrate
	ModeTimer

	modeCount
)

func (m Mode) String() string {
	switch m {
	case ModeContinuous:
		return "Continuous"
	case ModeLowPower:
		return "Low Power"
	case ModeStealth:
		return "Stealth"
	case ModeCalibrate:
		return "Calibrate"
	case ModeTimer:
		return "Timer"
	}
	return "Mode?"
}

// Next cycles to the following mode, wrapping after Timer. Out-of-range
// values (a record can carry any word) land back in range within a step.
func (m Mode) Next() Mode {
	m++
	if m >= modeCount || m < 0 {
		return ModeContinuous
	}
	return m
}

// AlertStyle selects how the device signals an alarm.
type AlertStyle int

const (
	AlertVibration AlertStyle = iota
	AlertLED
	AlertBoth

	alertCount
)

func (a AlertStyle) String() string {
	switch a {
	case AlertVibration:
		return "Vibration"
	case AlertLED:
		return "LEDs"
	case AlertBoth:
		return "Vib+LEDs"
	}
	return "Alert?"
}

// Next cycles to the following alert style, wrapping after Vib+LEDs.
func (a AlertStyle) Next() AlertStyle {
	a++
	if a >= alertCount || a < 0 {
		return AlertVibration
	}
	return a
}

// Timer period bounds in minutes. The period doubles as the integrity
// marker of the persisted record: any value outside these bounds marks
// the whole record invalid.
const (
	MinTimerMinutes = 5
	MaxTimerMinutes = 60
)

// Settings are the user-facing options edited in the menu and persisted
// across power cycles.
type Settings struct {
	Mode              Mode
	Alert             AlertStyle
	UpdateFreqSeconds int // stealth report interval
	TimerMinutes      int // timer mode countdown period
}

// DefaultSettings are the factory values written when the record is blank
// or damaged.
func DefaultSettings() Settings {
	return Settings{
		Mode:              ModeContinuous,
		Alert:             AlertVibration,
		UpdateFreqSeconds: 30,
		TimerMinutes:      MinTimerMinutes,
	}
}

// Valid reports whether the record marker is in range.
func (s Settings) Valid() bool {
	return s.TimerMinutes >= MinTimerMinutes && s.TimerMinutes <= MaxTimerMinutes
}

// NextUpdateFreq cycles the stealth report interval: 15, 30, 45, 60, back
// to 15.
func NextUpdateFreq(seconds int) int {
	seconds += 15
	if seconds > 60 {
		return 15
	}
	return seconds
}

// NextTimerPeriod cycles the timer period in 5 minute steps, wrapping from
// 60 back to 5.
func NextTimerPeriod(minutes int) int {
	minutes += 5
	if minutes > MaxTimerMinutes {
		return MinTimerMinutes
	}
	return minutes
}
