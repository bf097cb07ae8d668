package device

import (
	"context"

	"github.com/SKY-LEO/Pocket-CO2/pkg/config"
	"github.com/SKY-LEO/Pocket-CO2/pkg/hw"
	"github.com/SKY-LEO/Pocket-CO2/pkg/sched"
)

// runStealth reports air quality as vibration pulse trains with the
// screen dark. An intro screen explains the pulse code; any press arms
// the mode, and only then does the exit gesture apply.
func (c *Controller) runStealth(ctx context.Context) error {
	c.display.DrawIntro(config.ModeStealth)
	if err := c.buttons.WaitRelease(ctx); err != nil {
		return err
	}
	if _, err := c.buttons.WaitPress(ctx); err != nil {
		return err
	}

	c.display.Clear()
	c.display.Power(false)

	c.sensor.Start(hw.ProfileNormal)
	defer c.sensor.Stop()

	tick := 0
	level := 1
	train := sched.TrainSlices(c.settings.UpdateFreqSeconds)

	for {
		if c.buttons.Poll() == hw.ButtonBoth {
			c.display.Clear()
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		// Plain sleep, not suspend; standby wakeups would smear
		// the pulse cadence.
		c.board.Sleep(sched.Slice)

		if tick%sched.StealthSampleSlices == sched.StealthSampleSlices-1 {
			r := c.sensor.Sample()
			c.lastReading = r
			level = sched.PulseCount(r.CO2PPM)
		}
		if tick%train == train-1 {
			c.alerts.Buzz(level)
			// A pulse takes about two slices of wall time.
			tick += level * sched.StealthPulseSlices
		}
		tick++
	}
}
