package device

import (
	"context"

	"github.com/SKY-LEO/Pocket-CO2/pkg/hw"
	"github.com/SKY-LEO/Pocket-CO2/pkg/sched"
)

// runLowPower keeps the CPU suspended between slices and samples every
// thirty seconds. The screen stays dark except for a few seconds after
// a button press; each sample is acknowledged with a faint LED blink.
func (c *Controller) runLowPower(ctx context.Context) error {
	c.sensor.Start(hw.ProfileLow)
	defer c.sensor.Stop()

	// The starting banner stays visible for the first window.
	displayTicks := sched.DisplaySlices
	sampleTicks := 0

	for {
		m := c.buttons.Poll()
		if m == hw.ButtonBoth {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if m != 0 && displayTicks == 0 {
			c.display.Power(true)
			c.display.DrawReading(c.lastReading, sched.MoodIndex(c.lastReading.CO2PPM))
			displayTicks = sched.DisplaySlices
		}

		c.board.Suspend(sched.Slice)
		c.applyWake()

		sampleTicks++
		if sampleTicks == sched.LowPowerSampleSlices {
			r := c.sensor.Sample()
			c.lastReading = r
			c.alerts.Cue(sched.LEDCue(r.CO2PPM))
			sampleTicks = 0
		}

		if displayTicks > 0 {
			displayTicks--
			if displayTicks == 0 {
				c.display.Power(false)
			}
		}
	}
}
