package machine

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/andybalholm/brotli"

	"github.com/thelolagemann/sm83/internal/types"
)

// stateMagic prefixes every saved state.
var stateMagic = []byte("SM83")

// headerSize is the length of the magic and the xxhash-64 checksum of the
// uncompressed state that precede the compressed state.
const headerSize = 4 + 8

var (
	// ErrBadState is returned when a saved state can not be decoded.
	ErrBadState = errors.New("bad state")
	// ErrChecksum is returned when a saved state does not match its checksum.
	ErrChecksum = errors.New("state checksum mismatch")
)

var _ types.Stater = (*Machine)(nil)

// Load restores the CPU and memory from the given state.
func (m *Machine) Load(s *types.State) {
	m.CPU.Load(s)
	m.Bus.Load(s)
}

// Save writes the CPU and memory to the given state.
func (m *Machine) Save(s *types.State) {
	m.CPU.Save(s)
	m.Bus.Save(s)
}

// Snapshot returns the compressed state of the machine.
func (m *Machine) Snapshot() ([]byte, error) {
	s := types.NewState()
	m.Save(s)

	var buf bytes.Buffer
	buf.Write(stateMagic)
	var sum [8]byte
	binary.LittleEndian.PutUint64(sum[:], s.Checksum())
	buf.Write(sum[:])

	w := brotli.NewWriterLevel(&buf, brotli.BestCompression)
	if _, err := w.Write(s.Bytes()); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Restore loads a state produced by Snapshot. The machine is left untouched
// if the state can not be decoded.
func (m *Machine) Restore(b []byte) error {
	if len(b) < headerSize || !bytes.Equal(b[:4], stateMagic) {
		return fmt.Errorf("%w: missing header", ErrBadState)
	}
	want := binary.LittleEndian.Uint64(b[4:headerSize])

	raw, err := io.ReadAll(brotli.NewReader(bytes.NewReader(b[headerSize:])))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadState, err)
	}

	s := types.StateFromBytes(raw)
	if got := s.Checksum(); got != want {
		return fmt.Errorf("%w: expected %016X, got %016X", ErrChecksum, want, got)
	}
	if size := m.stateSize(); len(raw) != size {
		return fmt.Errorf("%w: expected %d bytes, got %d", ErrBadState, size, len(raw))
	}

	m.Load(s)
	return nil
}

// SaveState writes the compressed state of the machine to path.
func (m *Machine) SaveState(path string) error {
	b, err := m.Snapshot()
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("save state: %w", err)
	}

	m.Logger.Infof("saved state to %s (%d bytes)", path, len(b))
	return nil
}

// LoadState restores the machine from a state file written by SaveState.
func (m *Machine) LoadState(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	if err := m.Restore(b); err != nil {
		return fmt.Errorf("load state %s: %w", path, err)
	}

	m.Logger.Infof("loaded state from %s", path)
	return nil
}

// stateSize returns the length of an uncompressed state.
func (m *Machine) stateSize() int {
	s := types.NewState()
	m.Save(s)
	return len(s.Bytes())
}
