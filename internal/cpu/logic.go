package cpu

import "fmt"

// and performs a bitwise AND operation on n and the A Register.
//
//	AND n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func (c *CPU) and(n uint8) {
	c.A &= n
	c.applyFlags(evalLogic(c.A, true))
}

// or performs a bitwise OR operation on n and the A Register.
//
//	OR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) or(n uint8) {
	c.A |= n
	c.applyFlags(evalLogic(c.A, false))
}

// xor performs a bitwise XOR operation on n and the A Register.
//
//	XOR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) xor(n uint8) {
	c.A ^= n
	c.applyFlags(evalLogic(c.A, false))
}

// compare compares n to the A Register, setting the flags as a
// subtraction would without storing the result.
//
//	CP n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) compare(n uint8) {
	_, f := evalSub8(c.A, n, 0)
	c.applyFlags(f)
}

// complement flips every bit of the A Register.
//
//	CPL
//
// Flags affected:
//
//	Z - Not affected.
//	N - Set.
//	H - Set.
//	C - Not affected.
func (c *CPU) complement() {
	c.A = ^c.A
	c.applyFlags(newFlags(maskSubtract|maskHalfCarry, false, true, true, false))
}

// setCarryFlag sets the carry flag.
//
//	SCF
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Reset.
//	C - Set.
func (c *CPU) setCarryFlag() {
	c.applyFlags(newFlags(maskSubtract|maskHalfCarry|maskCarry, false, false, false, true))
}

// complementCarryFlag flips the carry flag.
//
//	CCF
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Reset.
//	C - Complemented.
func (c *CPU) complementCarryFlag() {
	c.applyFlags(newFlags(maskSubtract|maskHalfCarry|maskCarry, false, false, false, !c.isFlagSet(FlagCarry)))
}

// decimalAdjust corrects the A Register to binary coded decimal after an
// addition or subtraction of two BCD values.
//
//	DAA
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set if the adjustment carried, otherwise unchanged.
func (c *CPU) decimalAdjust() {
	subtract := c.isFlagSet(FlagSubtract)
	carry := c.isFlagSet(FlagCarry)

	var adjust uint8
	if c.isFlagSet(FlagHalfCarry) || (!subtract && c.A&0xF > 0x9) {
		adjust |= 0x06
	}
	if carry || (!subtract && c.A > 0x99) {
		adjust |= 0x60
		carry = true
	}

	if subtract {
		c.A -= adjust
	} else {
		c.A += adjust
	}

	c.applyFlags(newFlags(maskZero|maskHalfCarry|maskCarry, c.A == 0, false, false, carry))
}

// defineLogicInstructions defines AND, XOR, OR and CP against every
// register, (HL) and an immediate.
//
//	0xA0 AND B ... 0xBF CP A
//	0xE6 AND d8, 0xEE XOR d8, 0xF6 OR d8, 0xFE CP d8
func defineLogicInstructions() {
	for i := uint8(0); i < 8; i++ {
		index := i
		cycles := uint8(1)
		if index == indexHL {
			cycles = 2
		}

		DefineInstruction(0xA0+index, fmt.Sprintf("AND %s", registerNames[index]), func(c *CPU) {
			c.and(c.readOperandAt(index))
		}, Cycles(cycles))
		DefineInstruction(0xA8+index, fmt.Sprintf("XOR %s", registerNames[index]), func(c *CPU) {
			c.xor(c.readOperandAt(index))
		}, Cycles(cycles))
		DefineInstruction(0xB0+index, fmt.Sprintf("OR %s", registerNames[index]), func(c *CPU) {
			c.or(c.readOperandAt(index))
		}, Cycles(cycles))
		DefineInstruction(0xB8+index, fmt.Sprintf("CP %s", registerNames[index]), func(c *CPU) {
			c.compare(c.readOperandAt(index))
		}, Cycles(cycles))
	}

	DefineInstruction(0xE6, "AND d8", func(c *CPU) { c.and(c.readOperand()) }, Length(2), Cycles(2))
	DefineInstruction(0xEE, "XOR d8", func(c *CPU) { c.xor(c.readOperand()) }, Length(2), Cycles(2))
	DefineInstruction(0xF6, "OR d8", func(c *CPU) { c.or(c.readOperand()) }, Length(2), Cycles(2))
	DefineInstruction(0xFE, "CP d8", func(c *CPU) { c.compare(c.readOperand()) }, Length(2), Cycles(2))
}
