package device

import (
	"context"

	"github.com/SKY-LEO/Pocket-CO2/pkg/config"
	"github.com/SKY-LEO/Pocket-CO2/pkg/hw"
	"github.com/SKY-LEO/Pocket-CO2/pkg/sched"
)

// runContinuous samples and refreshes the screen every few seconds
// with the display on the whole time.
func (c *Controller) runContinuous(ctx context.Context) error {
	c.sensor.Start(hw.ProfileNormal)
	defer c.sensor.Stop()

	// Let the sensor settle before trusting the first reading.
	c.board.Suspend(sched.ContinuousWarmup)

	for {
		c.applyWake()
		r := c.sensor.Sample()
		c.lastReading = r
		c.sampleCount++
		if c.sampleCount == 16 && c.settings.Mode != config.ModeContinuous {
			// After a minute, turn off the display.
			c.display.Power(false)
		}
		c.display.DrawReading(r, sched.MoodIndex(r.CO2PPM))

		for range sched.ContinuousRefreshSlices {
			c.board.Suspend(sched.Slice)
			c.applyWake()
			if c.buttons.Poll() == hw.ButtonBoth {
				return nil
			}
			if err := ctx.Err(); err != nil {
				return err
			}
		}
	}
}
