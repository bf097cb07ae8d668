package device

import (
	"context"

	"github.com/SKY-LEO/Pocket-CO2/pkg/config"
	"github.com/SKY-LEO/Pocket-CO2/pkg/hw"
	"github.com/SKY-LEO/Pocket-CO2/pkg/sched"
)

// runTimer counts down the configured period at 1 Hz, blinking the
// heartbeat LED each second, and plays the configured alert when the
// countdown reaches zero. The exit gesture cancels without the alert.
func (c *Controller) runTimer(ctx context.Context) error {
	c.display.Clear()
	c.display.DrawIntro(config.ModeTimer)

	c.sensor.Start(hw.ProfileLow)
	defer c.sensor.Stop()

	displayTicks := sched.TimerDisplayTicks

	for t := c.settings.TimerMinutes * 60; t >= 0; t-- {
		c.display.DrawCountdown(t)

		m := c.buttons.Poll()
		if m == hw.ButtonBoth {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if m != 0 && displayTicks == 0 {
			displayTicks = sched.TimerDisplayTicks
			c.display.Power(true)
		}
		if t == sched.TimerFinalSeconds {
			// Keep the last stretch of the countdown visible.
			if displayTicks == 0 {
				c.display.Power(true)
			}
			displayTicks = sched.TimerFinalSeconds + 1
		}
		if displayTicks > 0 {
			displayTicks--
			if displayTicks == 0 {
				c.display.Power(false)
			}
		}

		if t&1 == 1 {
			c.alerts.Blink(hw.LEDGreen, sched.TimerBlinkPulse)
		} else {
			c.alerts.Blink(hw.LEDRed, sched.TimerBlinkPulse)
		}
		c.board.Sleep(sched.TimerTickRest)
	}

	c.alerts.Play(c.settings.Alert)
	return nil
}
