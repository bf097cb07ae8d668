package config

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LoadEmptyWritesDefaults(t *testing.T) {
	nv := &MemStore{}
	st := NewStore(nv)

	s := st.Load()

	assert.Equal(t, DefaultSettings(), s)
	assert.Equal(t, 1, nv.Writes())

	// The healed record must decode cleanly, so a second load reads it
	// back without another write.
	s = st.Load()
	assert.Equal(t, DefaultSettings(), s)
	assert.Equal(t, 1, nv.Writes())
}

func TestStore_LoadShortRecord(t *testing.T) {
	nv := &MemStore{}
	require.NoError(t, nv.Write([]byte{1, 2, 3}))
	st := NewStore(nv)

	assert.Equal(t, DefaultSettings(), st.Load())
	assert.Equal(t, 2, nv.Writes())
}

func TestStore_LoadInvalidTimerPeriod(t *testing.T) {
	for _, minutes := range []int{0, 4, 61, 10000} {
		nv := &MemStore{}
		bad := DefaultSettings()
		bad.TimerMinutes = minutes
		require.NoError(t, nv.Write(encodeRecord(bad)))
		st := NewStore(nv)

		assert.Equal(t, DefaultSettings(), st.Load(), "minutes=%d", minutes)
		assert.Equal(t, 2, nv.Writes(), "minutes=%d", minutes)
	}
}

func TestStore_LoadKeepsUncheckedFields(t *testing.T) {
	// Validity hinges on the timer period alone. Other words pass
	// through untouched even when they carry junk.
	odd := Settings{Mode: Mode(99), Alert: AlertStyle(7), UpdateFreqSeconds: 999, TimerMinutes: 30}
	nv := &MemStore{}
	require.NoError(t, nv.Write(encodeRecord(odd)))
	st := NewStore(nv)

	assert.Equal(t, odd, st.Load())
	assert.Equal(t, 1, nv.Writes())
}

func TestStore_LoadReadError(t *testing.T) {
	nv := &MemStore{ReadErr: errors.New("bus fault")}
	st := NewStore(nv)

	assert.Equal(t, DefaultSettings(), st.Load())
	assert.Equal(t, 1, nv.Writes())
}

func TestStore_LoadHealWriteFailure(t *testing.T) {
	nv := &MemStore{WriteErr: errors.New("flash worn out")}
	st := NewStore(nv)

	// Still usable with defaults even when the heal cannot land.
	assert.Equal(t, DefaultSettings(), st.Load())
}

func TestStore_SaveRoundTrip(t *testing.T) {
	nv := &MemStore{}
	st := NewStore(nv)

	want := Settings{Mode: ModeStealth, Alert: AlertBoth, UpdateFreqSeconds: 45, TimerMinutes: 25}
	require.NoError(t, st.Save(want))

	assert.Equal(t, want, st.Load())
	assert.Equal(t, 1, nv.Writes())
}

func TestStore_SaveWriteError(t *testing.T) {
	nv := &MemStore{WriteErr: errors.New("flash worn out")}
	st := NewStore(nv)

	err := st.Save(DefaultSettings())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings record")
}

func TestRecordLayout(t *testing.T) {
	s := Settings{Mode: ModeStealth, Alert: AlertBoth, UpdateFreqSeconds: 45, TimerMinutes: 25}
	rec := encodeRecord(s)

	require.Len(t, rec, 16)
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(rec[0:4]))
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(rec[4:8]))
	assert.Equal(t, uint32(45), binary.LittleEndian.Uint32(rec[8:12]))
	assert.Equal(t, uint32(25), binary.LittleEndian.Uint32(rec[12:16]))

	got, ok := decodeRecord(rec)
	require.True(t, ok)
	assert.Equal(t, s, got)
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.bin")
	st := NewStore(&FileStore{Path: path})

	// First load finds no file and heals it into place.
	assert.Equal(t, DefaultSettings(), st.Load())
	_, err := os.Stat(path)
	require.NoError(t, err)

	want := Settings{Mode: ModeTimer, Alert: AlertLED, UpdateFreqSeconds: 15, TimerMinutes: 60}
	require.NoError(t, st.Save(want))

	// A fresh store over the same file sees the saved record.
	again := NewStore(&FileStore{Path: path})
	assert.Equal(t, want, again.Load())
}
