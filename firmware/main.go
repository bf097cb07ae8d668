// The monitor firmware for Linux SBC builds. Wires the SCD4x sensor,
// the SSD1306 panel and the board GPIO lines to the controller per the
// hardware profile, then runs until SIGINT or SIGTERM.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/SKY-LEO/Pocket-CO2/pkg/config"
	"github.com/SKY-LEO/Pocket-CO2/pkg/console"
	"github.com/SKY-LEO/Pocket-CO2/pkg/device"
	"github.com/SKY-LEO/Pocket-CO2/pkg/hw"
	"github.com/SKY-LEO/Pocket-CO2/pkg/oled"
	"github.com/SKY-LEO/Pocket-CO2/pkg/scd4x"
)

var profilePath = flag.String("profile", "/etc/pocket-co2.yaml", "hardware profile file")

func main() {
	flag.Parse()

	profile, err := config.LoadProfile(*profilePath)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}

	if _, err := host.Init(); err != nil {
		log.Fatalf("fatal: periph host init: %v", err)
	}

	bus, err := i2creg.Open(profile.I2C.Bus)
	if err != nil {
		log.Fatalf("fatal: failed to open I2C bus %q: %v", profile.I2C.Bus, err)
	}
	defer bus.Close()

	// The SCD4x tops out at 100 kHz. Not every host honors this.
	if err := bus.SetSpeed(100 * physic.KiloHertz); err != nil {
		log.Printf("Failed to set I2C bus speed: %v", err)
	}

	board, err := newBoard(profile)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}

	dev, err := scd4x.New(bus, i2c.Addr(profile.I2C.SensorAddr))
	if err != nil {
		log.Fatalf("fatal: failed to open sensor: %v", err)
	}
	var sensor hw.Sensor = newSensor(dev)

	if profile.Console.Port != "" {
		port, err := console.Open(profile.Console.Port, profile.Console.Baud)
		if err != nil {
			log.Printf("Failed to open debug console: %v", err)
		} else {
			defer port.Close()
			sensor = console.NewTap(sensor, port)
		}
	}

	panel, err := oled.NewPanel(bus, profile.Display.Contrast)
	if err != nil {
		log.Fatalf("fatal: failed to open panel: %v", err)
	}
	screen := oled.New(panel)

	store := config.NewStore(config.FileStore{Path: profile.Flash.Path})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("pocket-co2 starting, settings at %s", profile.Flash.Path)
	if err := device.New(store, board, sensor, screen).Run(ctx); err != nil {
		log.Printf("Controller stopped: %v", err)
	}

	sensor.Shutdown()
	screen.Clear()
	if err := panel.Halt(); err != nil {
		log.Printf("Failed to halt panel: %v", err)
	}
	log.Printf("pocket-co2 down")
}
