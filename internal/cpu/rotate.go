package cpu

import (
	"fmt"

	"github.com/thelolagemann/sm83/internal/types"
)

// rotateLeftCarry rotates n left by 1 bit. The most significant bit is copied
// to both the carry flag and the least significant bit.
//
//	RLC n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero (reset for RLCA).
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) rotateLeftCarry(n *Register, zeroAware bool) {
	carry := *n & types.Bit7
	*n = *n<<1 | carry>>7
	c.applyFlags(evalRotate(*n, carry == types.Bit7, zeroAware))
}

// rotateRightCarry rotates n right by 1 bit. The least significant bit is
// copied to both the carry flag and the most significant bit.
//
//	RRC n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero (reset for RRCA).
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) rotateRightCarry(n *Register, zeroAware bool) {
	carry := *n & types.Bit0
	*n = *n>>1 | carry<<7
	c.applyFlags(evalRotate(*n, carry == types.Bit0, zeroAware))
}

// rotateLeftThroughCarry rotates n left by 1 bit. The carry flag is copied to
// the least significant bit, and the most significant bit is copied to the
// carry flag.
//
//	RL n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero (reset for RLA).
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) rotateLeftThroughCarry(n *Register, zeroAware bool) {
	carry := *n&types.Bit7 == types.Bit7
	*n = *n<<1 | c.carry()
	c.applyFlags(evalRotate(*n, carry, zeroAware))
}

// rotateRightThroughCarry rotates n right by 1 bit. The carry flag is copied
// to the most significant bit, and the least significant bit is copied to the
// carry flag.
//
//	RR n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero (reset for RRA).
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) rotateRightThroughCarry(n *Register, zeroAware bool) {
	carry := *n&types.Bit0 == types.Bit0
	*n = *n>>1 | c.carry()<<7
	c.applyFlags(evalRotate(*n, carry, zeroAware))
}

// defineRotateInstructions defines the accumulator rotates and the
// CB-prefixed RLC, RRC, RL and RR instructions.
//
//	0x07 RLCA, 0x0F RRCA, 0x17 RLA, 0x1F RRA
//	CB 0x00 RLC B ... CB 0x1F RR A
func defineRotateInstructions() {
	DefineInstruction(0x07, "RLCA", func(c *CPU) { c.rotateLeftCarry(&c.A, false) })
	DefineInstruction(0x0F, "RRCA", func(c *CPU) { c.rotateRightCarry(&c.A, false) })
	DefineInstruction(0x17, "RLA", func(c *CPU) { c.rotateLeftThroughCarry(&c.A, false) })
	DefineInstruction(0x1F, "RRA", func(c *CPU) { c.rotateRightThroughCarry(&c.A, false) })

	rotations := [4]struct {
		name string
		fn   func(c *CPU, n *Register, zeroAware bool)
	}{
		{"RLC", (*CPU).rotateLeftCarry},
		{"RRC", (*CPU).rotateRightCarry},
		{"RL", (*CPU).rotateLeftThroughCarry},
		{"RR", (*CPU).rotateRightThroughCarry},
	}

	for op, rotation := range rotations {
		for i := uint8(0); i < 8; i++ {
			index := i
			rotate := rotation.fn
			DefineInstructionCB(uint8(op)<<3|index, fmt.Sprintf("%s %s", rotation.name, registerNames[index]), func(c *CPU) {
				c.modify(index, func(n *Register) { rotate(c, n, true) })
			}, cbCycles(index))
		}
	}
}

// cbCycles returns the machine cycles of a CB read-modify-write
// instruction on the operand at index.
func cbCycles(index uint8) InstructionOpt {
	if index == indexHL {
		return Cycles(4)
	}
	return Cycles(2)
}
