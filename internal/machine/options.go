package machine

import (
	"io"

	"github.com/thelolagemann/sm83/internal/cpu"
	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/log"
)

// Opt is a function that modifies a Machine instance.
type Opt func(m *Machine)

// Debug enables per-instruction tracing in the CPU, through the logger.
func Debug() Opt {
	return func(m *Machine) {
		cpu.Debug()(m.CPU)
	}
}

// WithLogger sets the logger of the machine and its CPU.
func WithLogger(l log.Logger) Opt {
	return func(m *Machine) {
		m.Logger = l
		cpu.WithLogger(l)(m.CPU)
	}
}

// WithProgram copies the program into memory at the given address.
func WithProgram(data []byte, at uint16) Opt {
	return func(m *Machine) {
		if n := m.Bus.Copy(at, data); n < len(data) {
			m.Logger.Errorf("program truncated to %d of %d bytes", n, len(data))
		}
	}
}

// StartAt sets the program counter.
func StartAt(pc uint16) Opt {
	return func(m *Machine) {
		m.CPU.PC = pc
	}
}

// WithStack sets the stack pointer.
func WithStack(sp uint16) Opt {
	return func(m *Machine) {
		m.CPU.SP = sp
	}
}

// Breakpoint stops Run when PC reaches addr.
func Breakpoint(addr uint16) Opt {
	return func(m *Machine) {
		m.SetBreakpoint(addr)
	}
}

// Trace writes the disassembly of every instruction to w before it is
// executed.
func Trace(w io.Writer) Opt {
	return func(m *Machine) {
		m.trace = w
	}
}

// SerialOutput forwards the serial port to w. A program transfers a byte by
// writing it to SB and then writing 0x81 to SC; the transfer completes
// immediately.
func SerialOutput(w io.Writer) Opt {
	return func(m *Machine) {
		// used to intercept serial output
		m.Bus.ReserveAddress(SC, func(v byte) byte {
			if v&types.Bit7 == 0 || v&types.Bit0 == 0 {
				return v
			}
			if _, err := w.Write([]byte{m.Bus.Get(SB)}); err != nil {
				m.Logger.Errorf("serial output: %v", err)
			}

			// transfer complete
			return v &^ types.Bit7
		})
	}
}

// WithState restores a state previously produced by Snapshot.
func WithState(b []byte) Opt {
	return func(m *Machine) {
		if err := m.Restore(b); err != nil {
			m.Logger.Errorf("could not restore state: %v", err)
		}
	}
}
