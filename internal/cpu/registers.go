package cpu

import (
	"github.com/thelolagemann/sm83/internal/types"
)

type (
	Register     = types.Register
	RegisterPair = types.RegisterPair
)

// Registers is the processor-visible register file: the 8-bit registers,
// their 16-bit pair views, the program counter, the stack pointer and the
// interrupt master enable.
//
// The zero value has no pair views wired; use NewRegisters or call Reset
// before using the pair views.
type Registers struct {
	A Register
	B Register
	C Register
	D Register
	E Register
	H Register
	L Register
	f Register // low nibble always zero, see SetF

	// PC is the program counter, it points to the next byte to be fetched.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// IME is the interrupt master enable flag.
	IME bool

	AF *RegisterPair
	BC *RegisterPair
	DE *RegisterPair
	HL *RegisterPair
}

// NewRegisters returns a register file in its power-on state.
func NewRegisters() *Registers {
	r := &Registers{}
	r.Reset()
	return r
}

// Reset restores the power-on defaults: every register, F, PC and SP are
// cleared and IME is set.
func (r *Registers) Reset() {
	r.A, r.B, r.C, r.D, r.E, r.H, r.L, r.f = 0, 0, 0, 0, 0, 0, 0, 0
	r.PC, r.SP = 0, 0
	r.IME = true

	r.AF = types.NewRegisterPair(&r.A, &r.f, 0xF0)
	r.BC = types.NewRegisterPair(&r.B, &r.C, 0xFF)
	r.DE = types.NewRegisterPair(&r.D, &r.E, 0xFF)
	r.HL = types.NewRegisterPair(&r.H, &r.L, 0xFF)
}

// F returns the flag register.
func (r *Registers) F() Register {
	return r.f
}

// SetF sets the flag register. The lower nibble is discarded.
func (r *Registers) SetF(value Register) {
	r.f = value & 0xF0
}

// registerNames maps the 3-bit register encoding used by the opcode
// space to a name. Index 6 is the memory operand at (HL).
var registerNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// registerPointer returns a Register pointer for the given 3-bit index. Index
// 6 addresses memory, callers must handle it separately.
func (r *Registers) registerPointer(index uint8) *Register {
	switch index {
	case 0:
		return &r.B
	case 1:
		return &r.C
	case 2:
		return &r.D
	case 3:
		return &r.E
	case 4:
		return &r.H
	case 5:
		return &r.L
	case 7:
		return &r.A
	}
	return nil
}
