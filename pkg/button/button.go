// Package button turns the raw button mask into settled press and
// release events.
package button

import (
	"context"
	"time"

	"github.com/SKY-LEO/Pocket-CO2/pkg/hw"
)

// PollInterval spaces the mask reads far enough apart that contact
// bounce settles between them.
const PollInterval = 20 * time.Millisecond

// Debouncer polls a board's buttons on a fixed cadence.
type Debouncer struct {
	board hw.Board
}

// New returns a debouncer over the given board.
func New(b hw.Board) *Debouncer {
	return &Debouncer{board: b}
}

// Poll reads the current mask without waiting.
func (d *Debouncer) Poll() hw.ButtonMask {
	return d.board.Buttons()
}

// WaitRelease blocks until no button is held.
func (d *Debouncer) WaitRelease(ctx context.Context) error {
	for d.board.Buttons() != 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		d.board.Sleep(PollInterval)
	}
	return nil
}

// WaitPress blocks until at least one button is held and returns the
// mask that was read. Callers that need a clean edge call WaitRelease
// first.
func (d *Debouncer) WaitPress(ctx context.Context) (hw.ButtonMask, error) {
	for {
		if m := d.board.Buttons(); m != 0 {
			return m, nil
		}
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		d.board.Sleep(PollInterval)
	}
}
