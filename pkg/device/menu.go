package device

import (
	"context"
	"log"

	"github.com/SKY-LEO/Pocket-CO2/pkg/config"
	"github.com/SKY-LEO/Pocket-CO2/pkg/hw"
)

// runMenu drives the settings screen until the user starts a mode.
// Button 0 moves the cursor, button 1 activates the selected item.
// When both buttons land in one poll, the cursor move wins.
func (c *Controller) runMenu(ctx context.Context) error {
	entry := c.settings
	sel := hw.MenuStart

	c.display.Power(true)
	c.display.DrawMenu(sel, c.settings)

	for {
		if err := c.buttons.WaitRelease(ctx); err != nil {
			return err
		}
		m, err := c.buttons.WaitPress(ctx)
		if err != nil {
			return err
		}

		if m&hw.Button0 != 0 {
			sel = sel.Next()
		} else if m&hw.Button1 != 0 {
			if sel == hw.MenuStart {
				c.persist(entry)
				return nil
			}
			c.cycle(sel)
		}
		c.display.DrawMenu(sel, c.settings)
	}
}

// cycle advances the field behind a menu item to its next value.
func (c *Controller) cycle(sel hw.MenuItem) {
	switch sel {
	case hw.MenuMode:
		c.settings.Mode = c.settings.Mode.Next()
	case hw.MenuUpdateFreq:
		c.settings.UpdateFreqSeconds = config.NextUpdateFreq(c.settings.UpdateFreqSeconds)
	case hw.MenuAlert:
		c.settings.Alert = c.settings.Alert.Next()
	case hw.MenuTimer:
		c.settings.TimerMinutes = config.NextTimerPeriod(c.settings.TimerMinutes)
	}
}

// persist writes the settings back if they changed during this menu
// visit. Calibrate sessions never save.
func (c *Controller) persist(entry config.Settings) {
	if c.settings == entry || c.settings.Mode == config.ModeCalibrate {
		return
	}
	if err := c.store.Save(c.settings); err != nil {
		log.Printf("Failed to save settings: %v", err)
	}
}
