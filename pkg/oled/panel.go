package oled

import (
	"fmt"
	"image"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Panel is the Sink for a real SSD1306 behind an I2C bus.
type Panel struct {
	dev      *ssd1306.Dev
	contrast byte
}

// NewPanel opens the controller chip and applies the configured
// contrast.
func NewPanel(bus i2c.Bus, contrast int) (*Panel, error) {
	dev, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
	if err != nil {
		return nil, fmt.Errorf("oled: failed to initialize panel: %w", err)
	}
	p := &Panel{dev: dev, contrast: byte(contrast)}
	if err := dev.SetContrast(p.contrast); err != nil {
		return nil, fmt.Errorf("oled: failed to set contrast: %w", err)
	}
	return p, nil
}

// Flush pushes a full frame to the panel.
func (p *Panel) Flush(img image.Image) error {
	return p.dev.Draw(p.dev.Bounds(), img, image.Point{})
}

// Power switches the visible state of the panel. The driver has no way
// back from a true display-off command, so off means a blank frame at
// zero contrast.
func (p *Panel) Power(on bool) error {
	if on {
		return p.dev.SetContrast(p.contrast)
	}
	if err := p.dev.SetContrast(0); err != nil {
		return err
	}
	return p.dev.Draw(p.dev.Bounds(), image1bit.NewVerticalLSB(p.dev.Bounds()), image.Point{})
}

// Halt sends the real display-off command. Only for shutdown.
func (p *Panel) Halt() error {
	return p.dev.Halt()
}
