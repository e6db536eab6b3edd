package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/thelolagemann/sm83/internal/io"
	"github.com/thelolagemann/sm83/internal/types"
)

// snapshot is a comparable copy of the register file.
type snapshot struct {
	A, F, B, C, D, E, H, L uint8
	PC, SP                 uint16
	IME                    bool
}

func snap(c *CPU) snapshot {
	return snapshot{
		A: c.A, F: c.F(), B: c.B, C: c.C, D: c.D, E: c.E, H: c.H, L: c.L,
		PC: c.PC, SP: c.SP, IME: c.IME,
	}
}

func TestCPU_Reset(t *testing.T) {
	cpu.A, cpu.B, cpu.PC, cpu.SP, cpu.IME = 0x12, 0x34, 0x5678, 0x9ABC, false
	cpu.SetF(0xF0)
	cpu.mode = ModeHalt

	cpu.Reset()

	want := snapshot{IME: true}
	if diff := cmp.Diff(want, snap(cpu)); diff != "" {
		t.Errorf("unexpected registers after reset (-want +got):\n%s", diff)
	}
	if cpu.Halted() {
		t.Errorf("expected CPU to be running after reset")
	}
	if cpu.State() != StateIdle {
		t.Errorf("expected state to be idle, got %s", cpu.State())
	}
}

func TestCPU_Step(t *testing.T) {
	t.Run("LD BC, d16", func(t *testing.T) {
		cpu.Reset()
		clocks := step(t, 0x01, 0x01, 0x02)

		if cpu.C != 0x01 || cpu.B != 0x02 {
			t.Errorf("expected BC to be 0x0201, got 0x%04X", cpu.BC.Uint16())
		}
		if cpu.PC != 0x0003 {
			t.Errorf("expected PC to be 0x0003, got 0x%04X", cpu.PC)
		}
		if clocks != (Clocks{M: 3, T: 12}) {
			t.Errorf("expected 3/12 cycles, got %+v", clocks)
		}
	})
	t.Run("ADD HL, BC half carry", func(t *testing.T) {
		cpu.Reset()
		cpu.HL.SetUint16(0x0FFF)
		cpu.BC.SetUint16(0x0001)
		cpu.SetF(0x80)
		clocks := step(t, 0x09)

		if cpu.HL.Uint16() != 0x1000 {
			t.Errorf("expected HL to be 0x1000, got 0x%04X", cpu.HL.Uint16())
		}
		// zero is preserved, half carry set
		if cpu.F() != 0xA0 {
			t.Errorf("expected F to be 0xA0, got 0x%02X", cpu.F())
		}
		if clocks.M != 2 {
			t.Errorf("expected 2 cycles, got %d", clocks.M)
		}
	})
	t.Run("INC B overflow", func(t *testing.T) {
		cpu.Reset()
		cpu.B = 0xFF
		cpu.SetF(0x10)
		step(t, 0x04)

		if cpu.B != 0x00 {
			t.Errorf("expected B to be 0x00, got 0x%02X", cpu.B)
		}
		if cpu.F() != 0xB0 {
			t.Errorf("expected F to be 0xB0, got 0x%02X", cpu.F())
		}
	})
	t.Run("DEC B underflow", func(t *testing.T) {
		cpu.Reset()
		cpu.B = 0x00
		step(t, 0x05)

		if cpu.B != 0xFF {
			t.Errorf("expected B to be 0xFF, got 0x%02X", cpu.B)
		}
		if cpu.F() != 0x60 {
			t.Errorf("expected F to be 0x60, got 0x%02X", cpu.F())
		}
	})
	t.Run("RLC B", func(t *testing.T) {
		cpu.Reset()
		cpu.B = 0xF0
		clocks := step(t, 0xCB, 0x00)

		if cpu.B != 0xE1 {
			t.Errorf("expected B to be 0xE1, got 0x%02X", cpu.B)
		}
		if cpu.F() != 0x10 {
			t.Errorf("expected F to be 0x10, got 0x%02X", cpu.F())
		}
		if cpu.PC != 0x0002 || clocks.M != 2 {
			t.Errorf("expected PC 0x0002 after 2 cycles, got 0x%04X after %d", cpu.PC, clocks.M)
		}
	})
}

func TestCPU_InvalidOpcode(t *testing.T) {
	for _, opcode := range disallowedOpcodes {
		cpu.Reset()
		cpu.PC = 0x0200
		cpu.A, cpu.SP = 0x42, 0xFFFE
		bus.Set(0x0200, opcode)
		before := snap(cpu)

		clocks, err := cpu.Step()
		if !errors.Is(err, ErrInvalidOpcode) {
			t.Fatalf("%02X: expected invalid opcode error, got %v", opcode, err)
		}

		var invalid *InvalidOpcodeError
		if !errors.As(err, &invalid) {
			t.Fatalf("%02X: expected *InvalidOpcodeError, got %T", opcode, err)
		}
		if invalid.Opcode != opcode || invalid.PC != 0x0200 || invalid.Prefixed {
			t.Errorf("expected opcode %02X at 0200, got %+v", opcode, invalid)
		}
		if diff := cmp.Diff(before, snap(cpu)); diff != "" {
			t.Errorf("%02X: registers changed (-want +got):\n%s", opcode, diff)
		}
		if clocks != (Clocks{}) {
			t.Errorf("%02X: expected no cycles, got %+v", opcode, clocks)
		}
		if cpu.State() != StateIdle {
			t.Errorf("%02X: expected state to be idle, got %s", opcode, cpu.State())
		}
	}
}

func TestInvalidOpcodeError(t *testing.T) {
	tests := []struct {
		err  *InvalidOpcodeError
		want string
	}{
		{&InvalidOpcodeError{Opcode: 0xD3, PC: 0x0150}, "invalid opcode D3 at 0150"},
		{&InvalidOpcodeError{Opcode: 0x37, Prefixed: true, PC: 0xC000}, "invalid opcode CB 37 at C000"},
	}
	for _, tt := range tests {
		if tt.err.Error() != tt.want {
			t.Errorf("expected %q, got %q", tt.want, tt.err.Error())
		}
	}
}

func TestCPU_Halt(t *testing.T) {
	cpu.Reset()
	step(t, 0x76)

	if !cpu.Halted() || cpu.Mode() != ModeHalt {
		t.Fatalf("expected CPU to be halted")
	}

	// idling does not fetch
	for i := 0; i < 3; i++ {
		clocks := step(t)
		if clocks != (Clocks{M: 1, T: 4}) {
			t.Errorf("expected 1/4 cycles while halted, got %+v", clocks)
		}
	}
	if cpu.PC != 0x0001 {
		t.Errorf("expected PC to stay at 0x0001, got 0x%04X", cpu.PC)
	}

	cpu.Wake()
	cpu.A = 0
	step(t, 0x3C) // INC A
	if cpu.A != 0x01 || cpu.PC != 0x0002 {
		t.Errorf("expected INC A to run after waking, got A=0x%02X PC=0x%04X", cpu.A, cpu.PC)
	}
}

func TestCPU_Stop(t *testing.T) {
	cpu.Reset()
	step(t, 0x10, 0x00)

	if cpu.Mode() != ModeStop {
		t.Errorf("expected CPU to be stopped, got mode %d", cpu.Mode())
	}
	if cpu.PC != 0x0002 {
		t.Errorf("expected PC to be 0x0002, got 0x%04X", cpu.PC)
	}
	cpu.Wake()
	if cpu.Halted() {
		t.Errorf("expected CPU to be running after wake")
	}
}

// spyBus records the engine state of the CPU on every read.
type spyBus struct {
	*io.Bus
	cpu    *CPU
	states []EngineState
}

func (s *spyBus) Read(addr uint16) uint8 {
	if s.cpu != nil {
		s.states = append(s.states, s.cpu.State())
	}
	return s.Bus.Read(addr)
}

func TestCPU_State(t *testing.T) {
	spy := &spyBus{Bus: io.NewBus()}
	c := New(spy)
	spy.cpu = c

	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if len(spy.states) == 0 {
		t.Fatal("expected the bus to be read")
	}
	for _, state := range spy.states {
		if state != StateExecuting {
			t.Errorf("expected state to be executing during the step, got %s", state)
		}
	}
	if c.State() != StateIdle {
		t.Errorf("expected state to be idle after the step, got %s", c.State())
	}
}

func TestCPU_Debug(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	c := New(io.NewBus(), Debug(), WithLogger(logger))
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}

	if len(hook.Entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(hook.Entries))
	}
	if entry := hook.LastEntry(); entry.Level != logrus.DebugLevel || !strings.Contains(entry.Message, "NOP") {
		t.Errorf("expected a debug trace of NOP, got %s %q", entry.Level, entry.Message)
	}
}

func TestCPU_SaveLoad(t *testing.T) {
	cpu.Reset()
	cpu.A, cpu.B, cpu.C, cpu.D, cpu.E, cpu.H, cpu.L = 1, 2, 3, 4, 5, 6, 7
	cpu.SetF(0xB0)
	cpu.PC, cpu.SP, cpu.IME = 0x1234, 0xFFFE, false
	cpu.mode = ModeHalt

	s := types.NewState()
	cpu.Save(s)

	c := New(io.NewBus())
	s.ResetPosition()
	c.Load(s)

	if diff := cmp.Diff(snap(cpu), snap(c)); diff != "" {
		t.Errorf("unexpected registers after load (-want +got):\n%s", diff)
	}
	if !c.Halted() {
		t.Errorf("expected loaded CPU to be halted")
	}
	if s.Remaining() != 0 {
		t.Errorf("expected state to be consumed, %d bytes left", s.Remaining())
	}
	// the pair views follow the loaded registers
	if c.HL.Uint16() != 0x0607 {
		t.Errorf("expected HL to be 0x0607, got 0x%04X", c.HL.Uint16())
	}
}
