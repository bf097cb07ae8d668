package device

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SKY-LEO/Pocket-CO2/pkg/hw"
)

func TestContinuous_SampleAndRefresh(t *testing.T) {
	r := newRig()
	r.s.SetReading(hw.Reading{CO2PPM: 2500, TempDeciC: 221, HumidityDeciPct: 450})
	r.b.QueueButtons(append(zeros(5), hw.ButtonBoth)...)

	require.NoError(t, r.c.runContinuous(context.Background()))

	assert.Equal(t, 1, r.s.Samples())
	assert.Equal(t, 1, r.d.Count("reading 2500 mood 4"))

	// One warmup suspend, then one slice per inner poll.
	assert.Equal(t, 1, r.b.Count("suspend 5s"))
	assert.Equal(t, 6, r.b.Count("suspend 250ms"))

	assert.Equal(t, []hw.Profile{hw.ProfileNormal}, r.s.Starts())
	assert.Equal(t, 1, r.s.Stops())

	// The display stays powered for the whole session.
	assert.Equal(t, 0, r.d.Count("power"))
}

func TestContinuous_RefreshEveryTwentySlices(t *testing.T) {
	r := newRig()
	r.b.QueueButtons(append(zeros(20), hw.ButtonBoth)...)

	require.NoError(t, r.c.runContinuous(context.Background()))

	assert.Equal(t, 2, r.s.Samples())
	assert.Equal(t, 2, r.d.Count("reading"))
	assert.Equal(t, 2, r.c.sampleCount)
}

func TestContinuous_LegacyAutoOffStaysDead(t *testing.T) {
	r := newRig()
	r.c.sampleCount = 15
	r.b.QueueButtons(hw.ButtonBoth)

	require.NoError(t, r.c.runContinuous(context.Background()))

	assert.Equal(t, 16, r.c.sampleCount)
	assert.Equal(t, 0, r.d.Count("power"))
}

func TestContinuous_WakeClearsScreen(t *testing.T) {
	r := newRig()
	r.b.LatchWake()
	r.b.QueueButtons(hw.ButtonBoth)

	require.NoError(t, r.c.runContinuous(context.Background()))

	assert.Equal(t, 1, r.d.Count("clear"))
}

func TestContinuous_Cancelled(t *testing.T) {
	r := newRig()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.c.runContinuous(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, r.s.Stops())
}
