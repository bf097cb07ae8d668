package sched

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMoodIndex(t *testing.T) {
	tests := []struct {
		ppm  int
		want int
	}{
		{0, 0},
		{499, 0},
		{600, 0},
		{999, 0},
		{1000, 1},
		{1499, 1},
		{1500, 2},
		{2000, 3},
		{2499, 3},
		{2500, 4},
		{3000, 4},
		{9999, 4},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MoodIndex(tt.ppm), "ppm=%d", tt.ppm)
	}
}

func TestPulseCount(t *testing.T) {
	tests := []struct {
		ppm  int
		want int
	}{
		{0, 1},
		{420, 1},
		{499, 1},
		{500, 2},
		{750, 2},
		{999, 2},
		{1000, 3},
		{2499, 5},
		{2500, 6},
		{4000, 6},
		{100000, 6},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PulseCount(tt.ppm), "ppm=%d", tt.ppm)
	}
}

func TestLEDCue(t *testing.T) {
	tests := []struct {
		ppm   int
		green bool
		red   bool
	}{
		{400, true, false},
		{999, true, false},
		{1000, true, true},
		{1999, true, true},
		{2000, false, true},
		{5000, false, true},
	}

	for _, tt := range tests {
		g, r := LEDCue(tt.ppm)
		assert.Equal(t, tt.green, g, "ppm=%d green", tt.ppm)
		assert.Equal(t, tt.red, r, "ppm=%d red", tt.ppm)
	}
}

func TestTrainSlices(t *testing.T) {
	assert.Equal(t, 60, TrainSlices(15))
	assert.Equal(t, 120, TrainSlices(30))
	assert.Equal(t, 240, TrainSlices(60))
}

func TestSlicePeriods(t *testing.T) {
	// The periods expressed in slices line up with their wall clock
	// intents at the 250ms quantum.
	assert.Equal(t, 30*time.Second, LowPowerSampleSlices*Slice)
	assert.Equal(t, 5*time.Second, DisplaySlices*Slice)
	assert.Equal(t, 5*time.Second, StealthSampleSlices*Slice)
	assert.Equal(t, time.Second, TimerBlinkPulse+TimerTickRest)
}
