package device

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SKY-LEO/Pocket-CO2/pkg/config"
	"github.com/SKY-LEO/Pocket-CO2/pkg/hw"
)

// testRig bundles a controller with the scriptable hardware behind it.
type testRig struct {
	c  *Controller
	nv *config.MemStore
	b  *hw.MockBoard
	s  *hw.MockSensor
	d  *hw.MockDisplay
}

func newRig() *testRig {
	r := &testRig{
		nv: &config.MemStore{},
		b:  hw.NewMockBoard(),
		s:  hw.NewMockSensor(),
		d:  hw.NewMockDisplay(),
	}
	r.c = New(config.NewStore(r.nv), r.b, r.s, r.d)
	r.c.settings = config.DefaultSettings()
	return r
}

// zeros builds a script of n idle polls.
func zeros(n int) []hw.ButtonMask {
	return make([]hw.ButtonMask, n)
}

func TestRun_Boot(t *testing.T) {
	r := newRig()
	ctx, cancel := context.WithCancel(context.Background())

	// Through the menu straight into continuous mode, then let the
	// exhausted script cancel the power.
	r.b.QueueButtons(0, hw.Button1)
	r.b.SetIdle(func() hw.ButtonMask {
		cancel()
		return 0
	})

	err := r.c.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	// Boot heals the empty store and forces the motor off before
	// anything else.
	assert.Equal(t, 1, r.nv.Writes())
	require.NotEmpty(t, r.b.Events())
	assert.Equal(t, "motor off", r.b.Events()[0])

	// The power-on indicator is the LED sequence regardless of the
	// configured style, and the style survives it.
	assert.Equal(t, 4, r.b.Count("led green on"))
	assert.Equal(t, 4, r.b.Count("led red on"))
	assert.Equal(t, 1, r.b.Count("motor"))
	assert.Equal(t, config.AlertVibration, r.c.Settings().Alert)

	assert.Equal(t, 1, r.d.Count("banner Continuous"))

	// The sensor that was started on the way down got stopped on the
	// way out.
	assert.Equal(t, []hw.Profile{hw.ProfileNormal}, r.s.Starts())
	assert.Equal(t, 1, r.s.Stops())
}

func TestRun_DispatchAfterMenu(t *testing.T) {
	r := newRig()
	ctx := context.Background()

	// Cycle the mode to Timer, start it, then cancel at the first
	// countdown tick once the script runs dry.
	script := []hw.ButtonMask{0, hw.Button0, 0, hw.Button1} // cursor to Mode, cycle
	script = append(script, 0, hw.Button1, 0, hw.Button1, 0, hw.Button1) // to Stealth, Calibrate, Timer
	script = append(script, 0, hw.Button0, 0, hw.Button0, 0, hw.Button0, 0, hw.Button0) // cursor back to Start
	script = append(script, 0, hw.Button1) // start
	r.b.QueueButtons(script...)

	ctx, cancel := context.WithCancel(ctx)
	r.b.SetIdle(func() hw.ButtonMask {
		cancel()
		return 0
	})

	err := r.c.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, 1, r.d.Count("banner Timer"))
	assert.Equal(t, config.ModeTimer, r.c.Settings().Mode)
	assert.Equal(t, []hw.Profile{hw.ProfileLow}, r.s.Starts())
	assert.Equal(t, 1, r.s.Stops())
}

func TestApplyWake(t *testing.T) {
	r := newRig()

	r.c.applyWake()
	assert.Equal(t, 0, r.d.Count("clear"))

	r.b.LatchWake()
	r.c.applyWake()
	assert.Equal(t, 1, r.d.Count("clear"))

	// The latch is consumed.
	r.c.applyWake()
	assert.Equal(t, 1, r.d.Count("clear"))
}
