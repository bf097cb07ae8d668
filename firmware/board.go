package main

import (
	"fmt"
	"log"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"

	"github.com/SKY-LEO/Pocket-CO2/pkg/config"
	"github.com/SKY-LEO/Pocket-CO2/pkg/hw"
)

// gpioBoard is the Board over host GPIO lines. Buttons are pulled up
// and active low. Button 0 doubles as the wake interrupt: Suspend
// blocks on its falling edge, and a fired edge latches the wake flag
// for the next TakeWake.
type gpioBoard struct {
	button0  gpio.PinIO
	button1  gpio.PinIO
	ledGreen gpio.PinIO
	ledRed   gpio.PinIO
	motor    gpio.PinIO

	mu   sync.Mutex
	wake bool
}

var _ hw.Board = (*gpioBoard)(nil)

func newBoard(profile *config.Profile) (*gpioBoard, error) {
	pin := func(name string) (gpio.PinIO, error) {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("board: pin %q not found", name)
		}
		return p, nil
	}

	b := &gpioBoard{}
	var err error
	if b.button0, err = pin(profile.GPIO.Button0); err != nil {
		return nil, err
	}
	if b.button1, err = pin(profile.GPIO.Button1); err != nil {
		return nil, err
	}
	if b.ledGreen, err = pin(profile.GPIO.LEDGreen); err != nil {
		return nil, err
	}
	if b.ledRed, err = pin(profile.GPIO.LEDRed); err != nil {
		return nil, err
	}
	if b.motor, err = pin(profile.GPIO.Motor); err != nil {
		return nil, err
	}

	if err := b.button0.In(gpio.PullUp, gpio.FallingEdge); err != nil {
		return nil, fmt.Errorf("board: failed to configure %s: %w", b.button0, err)
	}
	if err := b.button1.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("board: failed to configure %s: %w", b.button1, err)
	}
	for _, out := range []gpio.PinIO{b.ledGreen, b.ledRed, b.motor} {
		if err := out.Out(gpio.Low); err != nil {
			return nil, fmt.Errorf("board: failed to configure %s: %w", out, err)
		}
	}
	return b, nil
}

func (b *gpioBoard) Buttons() hw.ButtonMask {
	var m hw.ButtonMask
	if b.button0.Read() == gpio.Low {
		m |= hw.Button0
	}
	if b.button1.Read() == gpio.Low {
		m |= hw.Button1
	}
	return m
}

func (b *gpioBoard) SetLED(l hw.LED, on bool) {
	pin := b.ledGreen
	if l == hw.LEDRed {
		pin = b.ledRed
	}
	if err := pin.Out(gpio.Level(on)); err != nil {
		log.Printf("Failed to drive %s: %v", pin, err)
	}
}

func (b *gpioBoard) SetMotor(on bool) {
	if err := b.motor.Out(gpio.Level(on)); err != nil {
		log.Printf("Failed to drive %s: %v", b.motor, err)
	}
}

func (b *gpioBoard) Sleep(d time.Duration) {
	time.Sleep(d)
}

// Suspend parks on the wake pin's edge queue. On real standby hardware
// this is where the core would power down; on a host it is still the
// cheapest way to wait.
func (b *gpioBoard) Suspend(d time.Duration) {
	if b.button0.WaitForEdge(d) {
		b.mu.Lock()
		b.wake = true
		b.mu.Unlock()
	}
}

func (b *gpioBoard) TakeWake() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	w := b.wake
	b.wake = false
	return w
}
