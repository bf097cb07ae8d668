package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile describes how the monitor hardware is wired on a host: which I2C
// bus carries the sensor and panel, which GPIO lines carry the buttons and
// actuators, where the settings record lives, and whether a debug console
// port is attached.
type Profile struct {
	I2C     I2CProfile     `yaml:"i2c"`
	Display DisplayProfile `yaml:"display"`
	GPIO    GPIOProfile    `yaml:"gpio"`
	Flash   FlashProfile   `yaml:"flash"`
	Console ConsoleProfile `yaml:"console"`
}

// I2CProfile names the bus shared by the sensor and the panel. An empty
// bus name selects the host's first I2C bus.
type I2CProfile struct {
	Bus        string `yaml:"bus"`
	SensorAddr uint16 `yaml:"sensor_addr"`
}

// DisplayProfile contains panel tuning.
type DisplayProfile struct {
	Contrast int `yaml:"contrast"`
}

// GPIOProfile names the button, LED and motor lines.
type GPIOProfile struct {
	Button0  string `yaml:"button0"`
	Button1  string `yaml:"button1"`
	LEDGreen string `yaml:"led_green"`
	LEDRed   string `yaml:"led_red"`
	Motor    string `yaml:"motor"`
}

// FlashProfile locates the settings record.
type FlashProfile struct {
	Path string `yaml:"path"`
}

// ConsoleProfile configures the optional serial debug console. An empty
// port disables it.
type ConsoleProfile struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

// DefaultProfile returns the wiring of the reference build.
func DefaultProfile() *Profile {
	return &Profile{
		I2C: I2CProfile{
			Bus:        "", // first available bus
			SensorAddr: 0x62,
		},
		Display: DisplayProfile{
			Contrast: 150,
		},
		GPIO: GPIOProfile{
			Button0:  "GPIO5",
			Button1:  "GPIO6",
			LEDGreen: "GPIO13",
			LEDRed:   "GPIO19",
			Motor:    "GPIO26",
		},
		Flash: FlashProfile{
			Path: "/var/lib/pocket-co2/settings.bin",
		},
		Console: ConsoleProfile{
			Port: "",
			Baud: 115200,
		},
	}
}

// LoadProfile loads a profile from a YAML file. If the file doesn't exist
// or fields are missing, it uses default values.
func LoadProfile(filename string) (*Profile, error) {
	p := DefaultProfile()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return p, nil
		}
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}

	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to parse profile file: %w", err)
	}

	p.ensureDefaults()

	return p, nil
}

// Save saves the profile to a YAML file.
func (p *Profile) Save(filename string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write profile file: %w", err)
	}

	return nil
}

// ensureDefaults fills required fields that the file left empty.
func (p *Profile) ensureDefaults() {
	def := DefaultProfile()

	if p.I2C.SensorAddr == 0 {
		p.I2C.SensorAddr = def.I2C.SensorAddr
	}

	if p.Display.Contrast == 0 {
		p.Display.Contrast = def.Display.Contrast
	}

	if p.GPIO.Button0 == "" {
		p.GPIO.Button0 = def.GPIO.Button0
	}
	if p.GPIO.Button1 == "" {
		p.GPIO.Button1 = def.GPIO.Button1
	}
	if p.GPIO.LEDGreen == "" {
		p.GPIO.LEDGreen = def.GPIO.LEDGreen
	}
	if p.GPIO.LEDRed == "" {
		p.GPIO.LEDRed = def.GPIO.LEDRed
	}
	if p.GPIO.Motor == "" {
		p.GPIO.Motor = def.GPIO.Motor
	}

	if p.Flash.Path == "" {
		p.Flash.Path = def.Flash.Path
	}

	if p.Console.Baud == 0 {
		p.Console.Baud = def.Console.Baud
	}
}
