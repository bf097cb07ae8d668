package main

import (
	"sync"
	"time"

	"github.com/SKY-LEO/Pocket-CO2/pkg/hw"
)

// simBoard is the Board behind the simulator window. Button state comes
// from the two on-screen buttons; a press of button 0 also feeds the
// wake channel the way the hardware wake interrupt would, so Suspend
// returns early and latches the wake flag. Actuator changes are handed
// to the UI through callbacks.
type simBoard struct {
	mu      sync.Mutex
	buttons hw.ButtonMask
	wake    bool

	speed  float64
	wakeCh chan struct{}

	onLED   func(l hw.LED, on bool)
	onMotor func(on bool)
}

var _ hw.Board = (*simBoard)(nil)

func newSimBoard(speed float64) *simBoard {
	if speed < 1 {
		speed = 1
	}
	return &simBoard{speed: speed, wakeCh: make(chan struct{}, 1)}
}

// press adds m to the held mask. Button 0 leaves a pending wake token,
// like the edge interrupt's pending bit.
func (b *simBoard) press(m hw.ButtonMask) {
	b.mu.Lock()
	b.buttons |= m
	b.mu.Unlock()

	if m&hw.Button0 != 0 {
		select {
		case b.wakeCh <- struct{}{}:
		default:
		}
	}
}

func (b *simBoard) release(m hw.ButtonMask) {
	b.mu.Lock()
	b.buttons &^= m
	b.mu.Unlock()
}

func (b *simBoard) Buttons() hw.ButtonMask {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buttons
}

func (b *simBoard) SetLED(l hw.LED, on bool) {
	if b.onLED != nil {
		b.onLED(l, on)
	}
}

func (b *simBoard) SetMotor(on bool) {
	if b.onMotor != nil {
		b.onMotor(on)
	}
}

func (b *simBoard) Sleep(d time.Duration) {
	time.Sleep(b.scaled(d))
}

func (b *simBoard) Suspend(d time.Duration) {
	select {
	case <-b.wakeCh:
		b.mu.Lock()
		b.wake = true
		b.mu.Unlock()
	case <-time.After(b.scaled(d)):
	}
}

func (b *simBoard) TakeWake() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	w := b.wake
	b.wake = false
	return w
}

// scaled shortens waits by the time acceleration factor.
func (b *simBoard) scaled(d time.Duration) time.Duration {
	return time.Duration(float64(d) / b.speed)
}
