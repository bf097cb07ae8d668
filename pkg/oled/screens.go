package oled

import (
	"fmt"
	"strconv"

	"github.com/SKY-LEO/Pocket-CO2/pkg/config"
	"github.com/SKY-LEO/Pocket-CO2/pkg/hw"
)

// Menu geometry. Five items under the title, ten rows apart; the 7x13
// face overlaps a descender into the next row here and there, which is
// invisible at this pixel pitch.
const (
	menuTitleY  = 11
	menuFirstY  = 22
	menuPitch   = 10
	menuItemX   = 10
	menuCursorX = 0
)

// DrawMenu paints the full menu with sel marked by a cursor.
func (s *Screen) DrawMenu(sel hw.MenuItem, cfg config.Settings) {
	s.clearFrame()
	s.text(29, menuTitleY, "Pocket CO2")

	lines := []string{
		"Start",
		"Mode   " + cfg.Mode.String(),
		fmt.Sprintf("Update %d secs", cfg.UpdateFreqSeconds),
		"Alert  " + cfg.Alert.String(),
		fmt.Sprintf("Timer  %d mins", cfg.TimerMinutes),
	}
	for i, line := range lines {
		y := menuFirstY + menuPitch*i
		if hw.MenuItem(i) == sel {
			s.text(menuCursorX, y, ">")
		}
		s.text(menuItemX, y, line)
	}
	s.flush()
}

// DrawReading paints the measurement screen: the ppm figure large on
// the left, unit labels beside it, a five segment air quality meter on
// the right and temperature plus humidity along the bottom.
func (s *Screen) DrawReading(r hw.Reading, mood int) {
	s.clearFrame()

	s.bigText(0, 12, strconv.Itoa(r.CO2PPM), 3)
	s.text(88, 24, "CO2")
	s.text(88, 37, "ppm")
	s.drawMeter(mood)

	s.text(0, 62, deci(r.TempDeciC)+"C  "+strconv.Itoa(r.HumidityDeciPct/10)+"%")
	s.flush()
}

// drawMeter stacks five segments on the right edge and fills the bottom
// mood+1 of them.
func (s *Screen) drawMeter(mood int) {
	for i := range 5 {
		y := 8 + (4-i)*9
		if i <= mood {
			s.fillRect(110, y, 16, 7)
		} else {
			s.outlineRect(110, y, 16, 7)
		}
	}
}

// DrawCountdown repaints only the time strip, leaving whatever sits in
// the top rows alone so a mode title survives the ticking.
func (s *Screen) DrawCountdown(secondsLeft int) {
	s.clearRect(0, 20, Width, Height-20)
	s.bigText(10, 24, formatSeconds(secondsLeft), 3)
	s.flush()
}

// DrawBanner paints the short mode announcement shown before a mode
// takes over the screen.
func (s *Screen) DrawBanner(mode config.Mode) {
	s.clearFrame()
	s.text(0, menuTitleY, mode.String())
	s.text(0, 24, "Starting...")
	s.flush()
}

// DrawIntro paints a mode's opening screen. Stealth and Calibrate get
// their instructions, Timer just a title above the countdown strip.
func (s *Screen) DrawIntro(mode config.Mode) {
	s.clearFrame()
	switch mode {
	case config.ModeStealth:
		s.text(0, 11, "Stealth")
		s.text(0, 24, "CO2 level becomes")
		s.text(0, 37, "1-6 motor pulses.")
		s.text(0, 50, "1=good, 6=bad.")
		s.text(0, 63, "Press to start.")
	case config.ModeCalibrate:
		s.text(0, 11, "Calibrate")
		s.text(0, 24, "Place in fresh")
		s.text(0, 37, "air, then press")
		s.text(0, 50, "a button to start.")
		s.text(0, 63, "Result at the end.")
	case config.ModeTimer:
		s.text(0, 11, "Timer Mode")
	default:
		s.text(0, 11, mode.String())
	}
	s.flush()
}

// DrawCalibrationResult paints the outcome screen held until a button
// press.
func (s *Screen) DrawCalibrationResult(ok bool) {
	s.clearFrame()
	if ok {
		s.bigText(0, 16, "Success!", 2)
	} else {
		s.bigText(0, 16, "Failed", 2)
	}
	s.text(0, 56, "Press to exit.")
	s.flush()
}

// outlineRect draws a one pixel border.
func (s *Screen) outlineRect(x, y, w, h int) {
	s.fillRect(x, y, w, 1)
	s.fillRect(x, y+h-1, w, 1)
	s.fillRect(x, y, 1, h)
	s.fillRect(x+w-1, y, 1, h)
}

func formatSeconds(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// deci renders a value held in tenths, so 234 comes out as "23.4".
func deci(v int) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%d", sign, v/10, v%10)
}
