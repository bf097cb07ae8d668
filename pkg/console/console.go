// Package console mirrors the sensor's life onto a debug console as CSV
// lines. The device side wraps the sensor with a Tap writing to a serial
// port; host side tooling reads the same stream back with ParseLine.
package console

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"go.bug.st/serial"

	"github.com/SKY-LEO/Pocket-CO2/pkg/hw"
)

// DefaultBaudRate is the rate of the monitor's debug UART.
const DefaultBaudRate = 115200

// Tap is a Sensor decorator. Every call goes through to the wrapped
// sensor unchanged; samples come out as CSV lines and lifecycle events
// as comment lines, so a CSV consumer can skip the latter. Write
// failures are logged and otherwise ignored, the console must never
// get in the way of a measurement.
type Tap struct {
	inner hw.Sensor
	w     io.Writer
	now   func() time.Time
}

var _ hw.Sensor = (*Tap)(nil)

// NewTap wraps s so its activity is mirrored to w.
func NewTap(s hw.Sensor, w io.Writer) *Tap {
	return &Tap{inner: s, w: w, now: time.Now}
}

func (t *Tap) Start(p hw.Profile) {
	t.inner.Start(p)
	t.line("# start " + p.String())
}

func (t *Tap) Stop() {
	t.inner.Stop()
	t.line("# stop")
}

func (t *Tap) Sample() hw.Reading {
	r := t.inner.Sample()
	t.line(fmt.Sprintf("%d,%d,%d,%d", t.now().UnixMicro(), r.CO2PPM, r.TempDeciC, r.HumidityDeciPct))
	return r
}

func (t *Tap) Recalibrate(referencePPM int) bool {
	ok := t.inner.Recalibrate(referencePPM)
	t.line(fmt.Sprintf("# recalibrate %d %v", referencePPM, ok))
	return ok
}

func (t *Tap) Shutdown() {
	t.inner.Shutdown()
	t.line("# shutdown")
}

func (t *Tap) line(s string) {
	if _, err := io.WriteString(t.w, s+"\r\n"); err != nil {
		log.Printf("Failed to write console line: %v", err)
	}
}

// Open opens the named serial port for the tap. A zero baud rate means
// DefaultBaudRate.
func Open(portName string, baudRate int) (io.WriteCloser, error) {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}
	port, err := serial.Open(portName, &serial.Mode{BaudRate: baudRate})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", portName, err)
	}
	return port, nil
}

// ErrComment marks a lifecycle or blank line, not a sample.
var ErrComment = errors.New("console: comment line")

// Record is one sample line read back from the console stream.
type Record struct {
	Timestamp time.Time
	Reading   hw.Reading
}

// ParseLine parses one console line into a Record. Lifecycle and blank
// lines come back as ErrComment so readers can skip them cheaply.
func ParseLine(line string) (Record, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Record{}, ErrComment
	}

	parts := strings.Split(line, ",")
	if len(parts) != 4 {
		return Record{}, fmt.Errorf("invalid line format: expected 4 comma-separated values, got %d", len(parts))
	}

	timestampMicros, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("invalid timestamp: %w", err)
	}

	co2, err := strconv.Atoi(parts[1])
	if err != nil {
		return Record{}, fmt.Errorf("invalid co2: %w", err)
	}
	if co2 < 0 {
		return Record{}, fmt.Errorf("co2 out of range: %d", co2)
	}

	temp, err := strconv.Atoi(parts[2])
	if err != nil {
		return Record{}, fmt.Errorf("invalid temperature: %w", err)
	}

	hum, err := strconv.Atoi(parts[3])
	if err != nil {
		return Record{}, fmt.Errorf("invalid humidity: %w", err)
	}
	if hum < 0 || hum > 1000 {
		return Record{}, fmt.Errorf("humidity out of range: %d", hum)
	}

	return Record{
		Timestamp: time.UnixMicro(timestampMicros),
		Reading:   hw.Reading{CO2PPM: co2, TempDeciC: temp, HumidityDeciPct: hum},
	}, nil
}
