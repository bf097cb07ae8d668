// Package scd4x interfaces the Sensirion SCD40 and SCD41 photoacoustic
// CO2 sensors over I2C.
//
// The device runs a periodic measurement mode (one sample every 5 s, or
// every 30 s in low power mode) and answers 16-bit command words with
// CRC-protected 16-bit data words.
//
// # Datasheet
//
// https://sensirion.com/media/documents/48C4B7FB/66E05452/CD_DS_SCD4x_Datasheet_D1.pdf
package scd4x

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/devices/v3/common"
)

// DefaultAddress is the fixed I2C address of all SCD4x parts.
const DefaultAddress i2c.Addr = 0x62

const (
	cmdStartPeriodic         uint16 = 0x21B1
	cmdStartLowPowerPeriodic uint16 = 0x21AC
	cmdReadMeasurement       uint16 = 0xEC05
	cmdStopPeriodic          uint16 = 0x3F86
	cmdDataReady             uint16 = 0xE4B8
	cmdForcedRecalibration   uint16 = 0x362F
	cmdSerialNumber          uint16 = 0x3682
	cmdReinit                uint16 = 0x3646
	cmdPowerDown             uint16 = 0x36E0
	cmdWakeUp                uint16 = 0x36F6

	// Command execution times from the datasheet, rounded up.
	readDelay   = time.Millisecond
	stopDelay   = 500 * time.Millisecond
	recalDelay  = 400 * time.Millisecond
	reinitDelay = 30 * time.Millisecond
	wakeDelay   = 30 * time.Millisecond
)

// ErrCalibrationFailed is returned when the sensor rejects a forced
// recalibration, typically because it has not sampled long enough.
var ErrCalibrationFailed = errors.New("scd4x: forced recalibration rejected")

// Measurement is one periodic sample, in the integer units the rest of
// the firmware works in.
type Measurement struct {
	CO2PPM          int
	TempDeciC       int
	HumidityDeciPct int
}

// Dev is a handle to an SCD4x sensor.
type Dev struct {
	d *i2c.Dev
}

// New returns a handle to the sensor on the given bus. The SCD4x tops
// out at 100 kHz; the bus must not be driven faster.
func New(bus i2c.Bus, addr i2c.Addr) (*Dev, error) {
	return &Dev{d: &i2c.Dev{Bus: bus, Addr: uint16(addr)}}, nil
}

// StartPeriodic begins periodic measurement at the 5 second cadence.
func (d *Dev) StartPeriodic() error {
	return d.send(cmdStartPeriodic)
}

// StartLowPowerPeriodic begins periodic measurement at the 30 second
// cadence.
func (d *Dev) StartLowPowerPeriodic() error {
	return d.send(cmdStartLowPowerPeriodic)
}

// StopPeriodic halts periodic measurement. The sensor ignores most
// commands until the stop completes, hence the long delay.
func (d *Dev) StopPeriodic() error {
	if err := d.send(cmdStopPeriodic); err != nil {
		return err
	}
	time.Sleep(stopDelay)
	return nil
}

// DataReady reports whether an unread measurement is waiting.
func (d *Dev) DataReady() (bool, error) {
	w, err := d.read(cmdDataReady, readDelay, 1)
	if err != nil {
		return false, err
	}
	return w[0]&0x07FF != 0, nil
}

// Read fetches the latest measurement. Reading clears the data ready
// flag; poll DataReady first or the sensor returns stale words.
func (d *Dev) Read() (Measurement, error) {
	w, err := d.read(cmdReadMeasurement, readDelay, 3)
	if err != nil {
		return Measurement{}, err
	}
	return Measurement{
		CO2PPM:          int(w[0]),
		TempDeciC:       -450 + 1750*int(w[1])/65535,
		HumidityDeciPct: 1000 * int(w[2]) / 65535,
	}, nil
}

// ForcedRecalibration calibrates the sensor against a known reference
// concentration and returns the correction that was applied, in ppm.
// The sensor must have run periodic measurement for at least three
// minutes and then be stopped before calling this.
func (d *Dev) ForcedRecalibration(referencePPM int) (int, error) {
	if err := d.write(cmdForcedRecalibration, uint16(referencePPM)); err != nil {
		return 0, err
	}
	time.Sleep(recalDelay)
	r := make([]byte, 3)
	if err := d.d.Tx(nil, r); err != nil {
		return 0, fmt.Errorf("scd4x: error reading recalibration result: %w", err)
	}
	w, err := decodeWords(r)
	if err != nil {
		return 0, err
	}
	if w[0] == 0xFFFF {
		return 0, ErrCalibrationFailed
	}
	return int(w[0]) - 0x8000, nil
}

// SerialNumber returns the factory-set 48 bit serial number.
func (d *Dev) SerialNumber() (uint64, error) {
	w, err := d.read(cmdSerialNumber, readDelay, 3)
	if err != nil {
		return 0, err
	}
	return uint64(w[0])<<32 | uint64(w[1])<<16 | uint64(w[2]), nil
}

// Reinit reloads the sensor configuration from EEPROM. Only valid on an
// idle sensor.
func (d *Dev) Reinit() error {
	if err := d.send(cmdReinit); err != nil {
		return err
	}
	time.Sleep(reinitDelay)
	return nil
}

// PowerDown puts the sensor into its lowest power state until WakeUp.
// SCD41 only.
func (d *Dev) PowerDown() error {
	return d.send(cmdPowerDown)
}

// WakeUp brings the sensor out of power down. The part does not
// acknowledge this command, so a transmission error here is expected
// and swallowed.
func (d *Dev) WakeUp() error {
	_ = d.send(cmdWakeUp)
	time.Sleep(wakeDelay)
	return nil
}

// Halt stops periodic measurement. Implements conn.Resource.
func (d *Dev) Halt() error {
	return d.StopPeriodic()
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return "scd4x"
}

// send transmits a bare command word.
func (d *Dev) send(cmd uint16) error {
	if err := d.d.Tx([]byte{byte(cmd >> 8), byte(cmd)}, nil); err != nil {
		return fmt.Errorf("scd4x: error sending command %#04x: %w", cmd, err)
	}
	return nil
}

// write transmits a command word with one CRC-protected argument word.
func (d *Dev) write(cmd, arg uint16) error {
	buf := []byte{byte(cmd >> 8), byte(cmd), byte(arg >> 8), byte(arg), 0}
	buf[4] = common.CRC8(buf[2:4])
	if err := d.d.Tx(buf, nil); err != nil {
		return fmt.Errorf("scd4x: error sending command %#04x: %w", cmd, err)
	}
	return nil
}

// read transmits a command word, waits for the sensor to execute it and
// reads back the requested number of data words.
func (d *Dev) read(cmd uint16, delay time.Duration, words int) ([]uint16, error) {
	if err := d.send(cmd); err != nil {
		return nil, err
	}
	time.Sleep(delay)
	r := make([]byte, 3*words)
	if err := d.d.Tx(nil, r); err != nil {
		return nil, fmt.Errorf("scd4x: error reading response to %#04x: %w", cmd, err)
	}
	return decodeWords(r)
}

// decodeWords unpacks and CRC-checks a sequence of 3 byte data words.
func decodeWords(r []byte) ([]uint16, error) {
	w := make([]uint16, 0, len(r)/3)
	for i := 0; i+2 < len(r); i += 3 {
		if common.CRC8(r[i:i+2]) != r[i+2] {
			return nil, fmt.Errorf("scd4x: crc mismatch on word %d", i/3)
		}
		w = append(w, uint16(r[i])<<8|uint16(r[i+1]))
	}
	return w, nil
}

var _ conn.Resource = &Dev{}
