package cpu

import (
	"fmt"

	"github.com/thelolagemann/sm83/pkg/bits"
)

// testBit tests the bit at the given position in the given value.
//
//	BIT n, r
//	n = 0-7
//	r = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if bit n of r is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func (c *CPU) testBit(value uint8, position uint8) {
	c.applyFlags(evalBit(value, position))
}

// defineBitInstructions defines the CB-prefixed BIT, RES and SET
// instructions. No flags are affected by RES and SET.
//
//	CB 0x40 BIT 0, B ... CB 0x7F BIT 7, A
//	CB 0x80 RES 0, B ... CB 0xBF RES 7, A
//	CB 0xC0 SET 0, B ... CB 0xFF SET 7, A
func defineBitInstructions() {
	for b := uint8(0); b < 8; b++ {
		for i := uint8(0); i < 8; i++ {
			position, index := b, i
			opcode := position<<3 | index

			testCycles := Cycles(2)
			if index == indexHL {
				testCycles = Cycles(3)
			}

			DefineInstructionCB(0x40|opcode, fmt.Sprintf("BIT %d, %s", position, registerNames[index]), func(c *CPU) {
				c.testBit(c.readOperandAt(index), position)
			}, testCycles)
			DefineInstructionCB(0x80|opcode, fmt.Sprintf("RES %d, %s", position, registerNames[index]), func(c *CPU) {
				c.modify(index, func(n *Register) { *n = bits.Reset(*n, position) })
			}, cbCycles(index))
			DefineInstructionCB(0xC0|opcode, fmt.Sprintf("SET %d, %s", position, registerNames[index]), func(c *CPU) {
				c.modify(index, func(n *Register) { *n = bits.Set(*n, position) })
			}, cbCycles(index))
		}
	}
}
