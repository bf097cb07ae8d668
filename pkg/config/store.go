package config

import (
	"encoding/binary"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// The settings record is four little-endian 32-bit words in field order:
// mode, alert, update frequency, timer period. No checksum and no version;
// the timer period bounds are the only integrity marker, exactly as the
// device flash layout has it.
const recordSize = 16

// NVStore is the reserved non-volatile region holding the settings record.
type NVStore interface {
	Read() ([]byte, error)
	Write([]byte) error
}

// FileStore keeps the record in a small file, the flash stand-in on Linux
// hosts. Writes are not atomic; a torn write reads back invalid and heals
// on the next load.
type FileStore struct {
	Path string
}

var _ NVStore = FileStore{}

func (f FileStore) Read() ([]byte, error) {
	return os.ReadFile(f.Path)
}

func (f FileStore) Write(b []byte) error {
	if dir := filepath.Dir(f.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(f.Path, b, 0o644)
}

// MemStore is an in-memory NVStore for tests and the simulator. The zero
// value reads back empty, which loads as an invalid record.
type MemStore struct {
	data   []byte
	writes int

	// ReadErr, when set, is returned by every Read.
	ReadErr error
	// WriteErr, when set, is returned by every Write.
	WriteErr error
}

var _ NVStore = (*MemStore)(nil)

func (m *MemStore) Read() ([]byte, error) {
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	return append([]byte(nil), m.data...), nil
}

func (m *MemStore) Write(b []byte) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.data = append([]byte(nil), b...)
	m.writes++
	return nil
}

// Writes returns how many writes the store has accepted.
func (m *MemStore) Writes() int {
	return m.writes
}

// Store loads and saves the settings record.
type Store struct {
	nv NVStore
}

// NewStore wraps a non-volatile region.
func NewStore(nv NVStore) *Store {
	return &Store{nv: nv}
}

// Load reads the persisted settings. An unreadable, short or invalid
// record heals to the defaults, which are written back immediately so the
// next load succeeds without another repair. Load never fails: the device
// must boot with whatever settings it can get.
func (s *Store) Load() Settings {
	raw, err := s.nv.Read()
	if err == nil {
		if got, ok := decodeRecord(raw); ok {
			return got
		}
	}
	def := DefaultSettings()
	if werr := s.nv.Write(encodeRecord(def)); werr != nil {
		log.Printf("Failed to persist default settings: %v", werr)
	}
	return def
}

// Save overwrites the record with cfg.
func (s *Store) Save(cfg Settings) error {
	if err := s.nv.Write(encodeRecord(cfg)); err != nil {
		return fmt.Errorf("failed to write settings record: %w", err)
	}
	return nil
}

func encodeRecord(s Settings) []byte {
	b := make([]byte, recordSize)
	binary.LittleEndian.PutUint32(b[0:], uint32(int32(s.Mode)))
	binary.LittleEndian.PutUint32(b[4:], uint32(int32(s.Alert)))
	binary.LittleEndian.PutUint32(b[8:], uint32(int32(s.UpdateFreqSeconds)))
	binary.LittleEndian.PutUint32(b[12:], uint32(int32(s.TimerMinutes)))
	return b
}

func decodeRecord(b []byte) (Settings, bool) {
	if len(b) < recordSize {
		return Settings{}, false
	}
	s := Settings{
		Mode:              Mode(int32(binary.LittleEndian.Uint32(b[0:]))),
		Alert:             AlertStyle(int32(binary.LittleEndian.Uint32(b[4:]))),
		UpdateFreqSeconds: int(int32(binary.LittleEndian.Uint32(b[8:]))),
		TimerMinutes:      int(int32(binary.LittleEndian.Uint32(b[12:]))),
	}
	return s, s.Valid()
}
