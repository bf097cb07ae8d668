package button

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SKY-LEO/Pocket-CO2/pkg/hw"
)

func TestPoll(t *testing.T) {
	b := hw.NewMockBoard()
	b.QueueButtons(hw.Button1)
	d := New(b)

	assert.Equal(t, hw.Button1, d.Poll())
	assert.Equal(t, hw.ButtonMask(0), d.Poll())
}

func TestWaitPress(t *testing.T) {
	b := hw.NewMockBoard()
	b.QueueButtons(0, 0, 0, hw.Button0)
	d := New(b)

	m, err := d.WaitPress(context.Background())
	require.NoError(t, err)
	assert.Equal(t, hw.Button0, m)

	// Three empty polls, each followed by a settling sleep.
	assert.Equal(t, 3*PollInterval, b.Slept())
	assert.Equal(t, 4, b.Polls())
}

func TestWaitPress_BothButtons(t *testing.T) {
	b := hw.NewMockBoard()
	b.QueueButtons(0, hw.ButtonBoth)
	d := New(b)

	m, err := d.WaitPress(context.Background())
	require.NoError(t, err)
	assert.Equal(t, hw.ButtonBoth, m)
}

func TestWaitRelease(t *testing.T) {
	b := hw.NewMockBoard()
	b.QueueButtons(hw.Button0, hw.Button0, 0)
	d := New(b)

	require.NoError(t, d.WaitRelease(context.Background()))
	assert.Equal(t, 2*PollInterval, b.Slept())
}

func TestWaitRelease_AlreadyReleased(t *testing.T) {
	b := hw.NewMockBoard()
	d := New(b)

	require.NoError(t, d.WaitRelease(context.Background()))
	assert.Equal(t, time.Duration(0), b.Slept())
}

func TestWait_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := hw.NewMockBoard()
	d := New(b)

	_, err := d.WaitPress(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	b.QueueButtons(hw.Button0, hw.Button0)
	err = d.WaitRelease(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
