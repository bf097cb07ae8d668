package device

import (
	"context"
	"time"

	"github.com/SKY-LEO/Pocket-CO2/pkg/config"
	"github.com/SKY-LEO/Pocket-CO2/pkg/hw"
	"github.com/SKY-LEO/Pocket-CO2/pkg/sched"
)

// runCalibrate lets the sensor breathe fresh air for three minutes and
// then forces recalibration against the reference concentration. The
// exit gesture at the intro backs out before the sensor ever starts.
func (c *Controller) runCalibrate(ctx context.Context) error {
	c.display.DrawIntro(config.ModeCalibrate)
	if err := c.buttons.WaitRelease(ctx); err != nil {
		return err
	}
	m, err := c.buttons.WaitPress(ctx)
	if err != nil {
		return err
	}
	if m == hw.ButtonBoth {
		return nil
	}

	c.display.Clear()
	c.sensor.Start(hw.ProfileNormal)

	for t := sched.CalibrateSeconds; t >= 0; t-- {
		c.display.DrawCountdown(t)
		if c.buttons.Poll() == hw.ButtonBoth {
			c.sensor.Stop()
			return nil
		}
		if err := ctx.Err(); err != nil {
			c.sensor.Stop()
			return err
		}
		c.board.Sleep(time.Second)
	}

	// Forced recalibration only works on an idle sensor.
	c.sensor.Stop()
	ok := c.sensor.Recalibrate(sched.CalibrateReferencePPM)
	c.display.DrawCalibrationResult(ok)

	_, err = c.buttons.WaitPress(ctx)
	return err
}
