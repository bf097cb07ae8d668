package hw

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/SKY-LEO/Pocket-CO2/pkg/config"
)

// MockBoard is a scriptable Board for tests. Buttons consumes one mask per
// call from the queued script and falls back to the Idle hook (or 0) once
// the script runs out. Sleep and Suspend advance a virtual clock only, so
// even the minute-long loops run instantly. Actuator activity is recorded
// as a flat event log for order-sensitive assertions.
type MockBoard struct {
	mu     sync.Mutex
	script []ButtonMask
	idle   func() ButtonMask
	events []string
	wake   bool
	slept  time.Duration
	polls  int
}

var _ Board = (*MockBoard)(nil)

// NewMockBoard creates a board preloaded with a button script.
func NewMockBoard(script ...ButtonMask) *MockBoard {
	return &MockBoard{script: script}
}

// QueueButtons appends masks to the button script.
func (b *MockBoard) QueueButtons(masks ...ButtonMask) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.script = append(b.script, masks...)
}

// SetIdle installs the hook consulted once the script is exhausted.
func (b *MockBoard) SetIdle(f func() ButtonMask) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.idle = f
}

// LatchWake marks a pending wake interrupt for the next TakeWake.
func (b *MockBoard) LatchWake() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.wake = true
}

// Events returns a copy of the recorded actuator log.
func (b *MockBoard) Events() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.events...)
}

// Count returns how many recorded events start with prefix.
func (b *MockBoard) Count(prefix string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, e := range b.events {
		if strings.HasPrefix(e, prefix) {
			n++
		}
	}
	return n
}

// Slept is the total virtual time spent in Sleep and Suspend.
func (b *MockBoard) Slept() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.slept
}

// Polls is the number of Buttons calls so far.
func (b *MockBoard) Polls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.polls
}

func (b *MockBoard) Buttons() ButtonMask {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.polls++
	if len(b.script) > 0 {
		m := b.script[0]
		b.script = b.script[1:]
		return m
	}
	if b.idle != nil {
		return b.idle()
	}
	return 0
}

func (b *MockBoard) SetLED(l LED, on bool) {
	b.record(fmt.Sprintf("led %s %s", l, onOff(on)))
}

func (b *MockBoard) SetMotor(on bool) {
	b.record("motor " + onOff(on))
}

func (b *MockBoard) Sleep(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.slept += d
	b.events = append(b.events, "sleep "+d.String())
}

func (b *MockBoard) Suspend(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.slept += d
	b.events = append(b.events, "suspend "+d.String())
}

func (b *MockBoard) TakeWake() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	w := b.wake
	b.wake = false
	return w
}

func (b *MockBoard) record(e string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

// MockSensor is a Sensor that answers with a fixed reading and records
// every lifecycle call.
type MockSensor struct {
	mu        sync.Mutex
	reading   Reading
	recalOK   bool
	starts    []Profile
	stops     int
	samples   int
	recals    []int
	shutdowns int
}

var _ Sensor = (*MockSensor)(nil)

// NewMockSensor creates a sensor reporting a mildly elevated office.
func NewMockSensor() *MockSensor {
	return &MockSensor{
		reading: Reading{CO2PPM: 600, TempDeciC: 234, HumidityDeciPct: 412},
		recalOK: true,
	}
}

// SetReading changes what Sample returns.
func (s *MockSensor) SetReading(r Reading) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reading = r
}

// SetRecalOK changes the recalibration outcome.
func (s *MockSensor) SetRecalOK(ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recalOK = ok
}

func (s *MockSensor) Start(p Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.starts = append(s.starts, p)
}

func (s *MockSensor) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stops++
}

func (s *MockSensor) Sample() Reading {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples++
	return s.reading
}

func (s *MockSensor) Recalibrate(referencePPM int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recals = append(s.recals, referencePPM)
	return s.recalOK
}

func (s *MockSensor) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shutdowns++
}

// Starts returns the profiles of every Start call, in order.
func (s *MockSensor) Starts() []Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Profile(nil), s.starts...)
}

// Stops returns the number of Stop calls.
func (s *MockSensor) Stops() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stops
}

// Samples returns the number of Sample calls.
func (s *MockSensor) Samples() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.samples
}

// Recals returns the reference ppm of every Recalibrate call.
func (s *MockSensor) Recals() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.recals...)
}

// Shutdowns returns the number of Shutdown calls.
func (s *MockSensor) Shutdowns() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shutdowns
}

// MockDisplay records every draw call as a flat event log.
type MockDisplay struct {
	mu     sync.Mutex
	events []string
}

var _ Display = (*MockDisplay)(nil)

// NewMockDisplay creates an empty display recorder.
func NewMockDisplay() *MockDisplay {
	return &MockDisplay{}
}

// Events returns a copy of the recorded draw log.
func (d *MockDisplay) Events() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.events...)
}

// Count returns how many recorded events start with prefix.
func (d *MockDisplay) Count(prefix string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, e := range d.events {
		if strings.HasPrefix(e, prefix) {
			n++
		}
	}
	return n
}

func (d *MockDisplay) DrawReading(r Reading, mood int) {
	d.record(fmt.Sprintf("reading %d mood %d", r.CO2PPM, mood))
}

func (d *MockDisplay) DrawMenu(sel MenuItem, cfg config.Settings) {
	d.record("menu " + sel.String())
}

func (d *MockDisplay) DrawCountdown(secondsLeft int) {
	d.record(fmt.Sprintf("countdown %d", secondsLeft))
}

func (d *MockDisplay) DrawBanner(mode config.Mode) {
	d.record("banner " + mode.String())
}

func (d *MockDisplay) DrawIntro(mode config.Mode) {
	d.record("intro " + mode.String())
}

func (d *MockDisplay) DrawCalibrationResult(ok bool) {
	if ok {
		d.record("result success")
	} else {
		d.record("result failed")
	}
}

func (d *MockDisplay) Power(on bool) {
	d.record("power " + onOff(on))
}

func (d *MockDisplay) Clear() {
	d.record("clear")
}

func (d *MockDisplay) record(e string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, e)
}
