package cpu

import (
	"fmt"

	"github.com/thelolagemann/sm83/internal/types"
)

// shiftLeftArithmetic shifts n left by one bit, and sets the carry flag to the
// most significant bit of n.
//
//	SLA n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) shiftLeftArithmetic(n *Register) {
	carry := *n&types.Bit7 == types.Bit7
	*n <<= 1
	c.applyFlags(evalRotate(*n, carry, true))
}

// shiftRightArithmetic shifts n right by one bit, keeping the most
// significant bit, and sets the carry flag to the least significant bit.
//
//	SRA n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) shiftRightArithmetic(n *Register) {
	carry := *n&types.Bit0 == types.Bit0
	*n = *n>>1 | *n&types.Bit7
	c.applyFlags(evalRotate(*n, carry, true))
}

// shiftRightLogical shifts n right by one bit, clearing the most significant
// bit, and sets the carry flag to the least significant bit.
//
//	SRL n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) shiftRightLogical(n *Register) {
	carry := *n&types.Bit0 == types.Bit0
	*n >>= 1
	c.applyFlags(evalRotate(*n, carry, true))
}

// defineShiftInstructions defines the CB-prefixed SLA, SRA, SWAP and SRL
// instructions.
//
//	CB 0x20 SLA B ... CB 0x3F SRL A
func defineShiftInstructions() {
	shifts := [4]struct {
		name string
		fn   func(c *CPU, n *Register)
	}{
		{"SLA", (*CPU).shiftLeftArithmetic},
		{"SRA", (*CPU).shiftRightArithmetic},
		{"SWAP", (*CPU).swap},
		{"SRL", (*CPU).shiftRightLogical},
	}

	for op, shift := range shifts {
		for i := uint8(0); i < 8; i++ {
			index := i
			fn := shift.fn
			DefineInstructionCB(0x20+uint8(op)<<3|index, fmt.Sprintf("%s %s", shift.name, registerNames[index]), func(c *CPU) {
				c.modify(index, func(n *Register) { fn(c, n) })
			}, cbCycles(index))
		}
	}
}
