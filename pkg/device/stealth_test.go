package device

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SKY-LEO/Pocket-CO2/pkg/hw"
)

func TestStealth_TrainLength(t *testing.T) {
	r := newRig()
	r.s.SetReading(hw.Reading{CO2PPM: 750})
	r.c.settings.UpdateFreqSeconds = 30

	// Intro release + arming press, one full reporting period, exit.
	script := []hw.ButtonMask{0, hw.Button0}
	script = append(script, zeros(120)...)
	script = append(script, hw.ButtonBoth)
	r.b.QueueButtons(script...)

	require.NoError(t, r.c.runStealth(context.Background()))

	// 750 ppm codes as exactly two pulses.
	assert.Equal(t, 2, r.b.Count("motor on"))

	// Samples land every twenty slices while the train waits for the
	// configured period.
	assert.Equal(t, 6, r.s.Samples())

	events := r.b.Events()
	require.GreaterOrEqual(t, len(events), 8)
	assert.Equal(t, []string{
		"motor on", "sleep 100ms", "motor off", "sleep 395ms",
		"motor on", "sleep 100ms", "motor off", "sleep 395ms",
	}, events[len(events)-8:])

	assert.Equal(t, []hw.Profile{hw.ProfileNormal}, r.s.Starts())
	assert.Equal(t, 1, r.s.Stops())

	// Intro, then a dark screen for the whole session, cleared again
	// on the way out.
	assert.Equal(t, 1, r.d.Count("intro Stealth"))
	assert.Equal(t, 1, r.d.Count("power off"))
	assert.Equal(t, 2, r.d.Count("clear"))
}

func TestStealth_PulseDebtShiftsSchedule(t *testing.T) {
	r := newRig()
	r.s.SetReading(hw.Reading{CO2PPM: 3000})
	r.c.settings.UpdateFreqSeconds = 15

	// Two reporting periods of six pulses each. Every pulse charges
	// two slices, so the second period arrives twelve ticks early in
	// iteration terms: 60 iterations to the first train, 48 to the
	// second.
	script := []hw.ButtonMask{0, hw.Button0}
	script = append(script, zeros(108)...)
	script = append(script, hw.ButtonBoth)
	r.b.QueueButtons(script...)

	require.NoError(t, r.c.runStealth(context.Background()))

	assert.Equal(t, 12, r.b.Count("motor on"))
	assert.Equal(t, 6, r.s.Samples())
}

func TestStealth_IntroArmsOnAnyPress(t *testing.T) {
	r := newRig()

	// Even the exit gesture arms the mode at the intro screen.
	r.b.QueueButtons(0, hw.ButtonBoth, hw.ButtonBoth)

	require.NoError(t, r.c.runStealth(context.Background()))

	assert.Equal(t, []hw.Profile{hw.ProfileNormal}, r.s.Starts())
	assert.Equal(t, 1, r.s.Stops())
}

func TestStealth_CancelledAtIntro(t *testing.T) {
	r := newRig()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.c.runStealth(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	// Never armed, so the sensor never ran.
	assert.Empty(t, r.s.Starts())
	assert.Equal(t, 0, r.s.Stops())
}

func TestStealth_CancelledWhileRunning(t *testing.T) {
	r := newRig()
	ctx, cancel := context.WithCancel(context.Background())

	r.b.QueueButtons(0, hw.Button0)
	r.b.SetIdle(func() hw.ButtonMask {
		cancel()
		return 0
	})

	err := r.c.runStealth(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, r.s.Stops())
}
