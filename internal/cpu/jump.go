package cpu

import (
	"fmt"

	"github.com/thelolagemann/sm83/pkg/utils"
)

// conditionNames maps the 2-bit condition encoding of the conditional jump,
// call and return instructions to a name.
var conditionNames = [4]string{"NZ", "Z", "NC", "C"}

// condition evaluates the 2-bit condition encoding against F.
func (c *CPU) condition(index uint8) bool {
	switch index {
	case 0:
		return !c.isFlagSet(FlagZero)
	case 1:
		return c.isFlagSet(FlagZero)
	case 2:
		return !c.isFlagSet(FlagCarry)
	default:
		return c.isFlagSet(FlagCarry)
	}
}

// pushStack pushes a 16 bit value onto the stack.
func (c *CPU) pushStack(value uint16) {
	high, low := utils.Uint16ToBytes(value)
	c.writeByte(c.SP-1, high)
	c.writeByte(c.SP-2, low)
	c.SP -= 2
}

// popStack pops a 16 bit value off the stack.
func (c *CPU) popStack() uint16 {
	lower := c.readByte(c.SP)
	upper := c.readByte(c.SP + 1)
	c.SP += 2
	return utils.BytesToUint16(upper, lower)
}

// call pushes the address of the next instruction onto the stack and jumps to
// the given address.
//
//	CALL nn
//	nn = 16-bit immediate value
func (c *CPU) call(address uint16) {
	c.pushStack(c.PC)
	c.PC = address
}

// callConditional reads the target address and calls it if the given
// condition is true. The operand is consumed either way.
//
//	CALL cc, nn
//	cc = NZ, Z, NC, C
//	nn = 16-bit immediate value
func (c *CPU) callConditional(condition bool) {
	address := c.readOperand16()
	if condition {
		c.call(address)
		c.branched = true
	}
}

// jumpRelative jumps to the address relative to the current PC.
//
//	JR e
//	e = 8-bit signed immediate value
func (c *CPU) jumpRelative(offset uint8) {
	c.PC = uint16(int32(c.PC) + int32(int8(offset)))
}

// jumpRelativeConditional reads the offset and jumps if the given condition
// is true.
//
//	JR cc, e
//	cc = NZ, Z, NC, C
//	e = 8-bit signed immediate value
func (c *CPU) jumpRelativeConditional(condition bool) {
	offset := c.readOperand()
	if condition {
		c.jumpRelative(offset)
		c.branched = true
	}
}

// jumpAbsoluteConditional reads the target address and jumps to it if the
// given condition is true.
//
//	JP cc, nn
//	cc = NZ, Z, NC, C
//	nn = 16-bit immediate value
func (c *CPU) jumpAbsoluteConditional(condition bool) {
	address := c.readOperand16()
	if condition {
		c.PC = address
		c.branched = true
	}
}

// ret pops the return address off the stack and jumps to it.
//
//	RET
func (c *CPU) ret() {
	c.PC = c.popStack()
}

// retConditional returns if the given condition is true.
//
//	RET cc
//	cc = NZ, Z, NC, C
func (c *CPU) retConditional(condition bool) {
	if condition {
		c.ret()
		c.branched = true
	}
}

// retInterrupt returns and enables interrupts.
//
//	RETI
func (c *CPU) retInterrupt() {
	c.ret()
	c.IME = true
}

// defineJumpInstructions defines the jumps, calls, returns and restarts.
//
//	0x18 JR r8, 0x20 JR NZ, r8 ... 0x38 JR C, r8
//	0xC3 JP a16, 0xC2 JP NZ, a16 ... 0xDA JP C, a16, 0xE9 JP HL
//	0xCD CALL a16, 0xC4 CALL NZ, a16 ... 0xDC CALL C, a16
//	0xC9 RET, 0xC0 RET NZ ... 0xD8 RET C, 0xD9 RETI
//	0xC7 RST 00H ... 0xFF RST 38H
func defineJumpInstructions() {
	DefineInstruction(0x18, "JR r8", func(c *CPU) { c.jumpRelative(c.readOperand()) }, Length(2), Cycles(3))
	DefineInstruction(0xC3, "JP a16", func(c *CPU) { c.PC = c.readOperand16() }, Length(3), Cycles(4))
	DefineInstruction(0xE9, "JP HL", func(c *CPU) { c.PC = c.HL.Uint16() })
	DefineInstruction(0xCD, "CALL a16", func(c *CPU) { c.call(c.readOperand16()) }, Length(3), Cycles(6))
	DefineInstruction(0xC9, "RET", func(c *CPU) { c.ret() }, Cycles(4))
	DefineInstruction(0xD9, "RETI", func(c *CPU) { c.retInterrupt() }, Cycles(4))

	for i := uint8(0); i < 4; i++ {
		cc := i
		name := conditionNames[cc]

		DefineInstruction(0x20+cc<<3, fmt.Sprintf("JR %s, r8", name), func(c *CPU) {
			c.jumpRelativeConditional(c.condition(cc))
		}, Length(2), Cycles(2), Branch(3))
		DefineInstruction(0xC2+cc<<3, fmt.Sprintf("JP %s, a16", name), func(c *CPU) {
			c.jumpAbsoluteConditional(c.condition(cc))
		}, Length(3), Cycles(3), Branch(4))
		DefineInstruction(0xC4+cc<<3, fmt.Sprintf("CALL %s, a16", name), func(c *CPU) {
			c.callConditional(c.condition(cc))
		}, Length(3), Cycles(3), Branch(6))
		DefineInstruction(0xC0+cc<<3, fmt.Sprintf("RET %s", name), func(c *CPU) {
			c.retConditional(c.condition(cc))
		}, Cycles(2), Branch(5))
	}

	for i := uint8(0); i < 8; i++ {
		address := uint16(i) << 3
		DefineInstruction(0xC7+i<<3, fmt.Sprintf("RST %02XH", address), func(c *CPU) {
			c.call(address)
		}, Cycles(4))
	}
}

// defineStackInstructions defines PUSH and POP for the register pairs.
//
//	0xC1 POP BC ... 0xF1 POP AF
//	0xC5 PUSH BC ... 0xF5 PUSH AF
func defineStackInstructions() {
	pairs := [4]string{"BC", "DE", "HL", "AF"}
	for i := uint8(0); i < 4; i++ {
		index := i
		pair := func(c *CPU) *RegisterPair {
			if index == 3 {
				return c.AF
			}
			return c.registerPair(index)
		}

		DefineInstruction(0xC1+index<<4, fmt.Sprintf("POP %s", pairs[index]), func(c *CPU) {
			pair(c).SetUint16(c.popStack())
		}, Cycles(3))
		DefineInstruction(0xC5+index<<4, fmt.Sprintf("PUSH %s", pairs[index]), func(c *CPU) {
			c.pushStack(pair(c).Uint16())
		}, Cycles(4))
	}
}
