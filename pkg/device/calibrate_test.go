package device

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SKY-LEO/Pocket-CO2/pkg/hw"
	"github.com/SKY-LEO/Pocket-CO2/pkg/sched"
)

func TestCalibrate_EarlyExitNeverStartsSensor(t *testing.T) {
	r := newRig()
	r.b.QueueButtons(0, hw.ButtonBoth)

	require.NoError(t, r.c.runCalibrate(context.Background()))

	assert.Empty(t, r.s.Starts())
	assert.Equal(t, 0, r.s.Stops())
	assert.Empty(t, r.s.Recals())
	assert.Equal(t, 1, r.d.Count("intro Calibrate"))
	assert.Equal(t, 0, r.d.Count("countdown"))
}

func TestCalibrate_Success(t *testing.T) {
	r := newRig()
	script := []hw.ButtonMask{0, hw.Button1}
	script = append(script, zeros(sched.CalibrateSeconds+1)...)
	script = append(script, hw.Button0) // leave the result screen
	r.b.QueueButtons(script...)

	require.NoError(t, r.c.runCalibrate(context.Background()))

	assert.Equal(t, sched.CalibrateSeconds+1, r.d.Count("countdown"))
	assert.Equal(t, sched.CalibrateSeconds+1, r.b.Count("sleep 1s"))

	assert.Equal(t, []hw.Profile{hw.ProfileNormal}, r.s.Starts())
	assert.Equal(t, 1, r.s.Stops())
	assert.Equal(t, []int{sched.CalibrateReferencePPM}, r.s.Recals())
	assert.Equal(t, 1, r.d.Count("result success"))
}

func TestCalibrate_Failure(t *testing.T) {
	r := newRig()
	r.s.SetRecalOK(false)
	script := []hw.ButtonMask{0, hw.Button1}
	script = append(script, zeros(sched.CalibrateSeconds+1)...)
	script = append(script, hw.Button1)
	r.b.QueueButtons(script...)

	require.NoError(t, r.c.runCalibrate(context.Background()))

	assert.Equal(t, 1, r.d.Count("result failed"))
	assert.Equal(t, 1, r.s.Stops())
}

func TestCalibrate_ExitDuringCountdown(t *testing.T) {
	r := newRig()
	r.b.QueueButtons(0, hw.Button1, 0, 0, hw.ButtonBoth)

	require.NoError(t, r.c.runCalibrate(context.Background()))

	assert.Equal(t, 3, r.d.Count("countdown"))
	assert.Equal(t, 1, r.s.Stops())
	assert.Empty(t, r.s.Recals())
	assert.Equal(t, 0, r.d.Count("result"))
}

func TestCalibrate_CancelledAtIntro(t *testing.T) {
	r := newRig()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.c.runCalibrate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, r.s.Starts())
	assert.Equal(t, 0, r.s.Stops())
}

func TestCalibrate_CancelledDuringCountdown(t *testing.T) {
	r := newRig()
	ctx, cancel := context.WithCancel(context.Background())

	r.b.QueueButtons(0, hw.Button1)
	r.b.SetIdle(func() hw.ButtonMask {
		cancel()
		return 0
	})

	err := r.c.runCalibrate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, r.s.Stops())
	assert.Empty(t, r.s.Recals())
}
