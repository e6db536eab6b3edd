package cpu

// indexHL is the 3-bit register encoding that addresses memory at (HL).
const indexHL = 6

// readOperandAt returns the value of the register at index, or the byte at
// (HL) for indexHL.
func (c *CPU) readOperandAt(index uint8) uint8 {
	if index == indexHL {
		return c.readByte(c.HL.Uint16())
	}
	return *c.registerPointer(index)
}

// modify applies fn to the register at index, or to the byte at (HL) for
// indexHL, writing the result back.
func (c *CPU) modify(index uint8, fn func(*Register)) {
	if index == indexHL {
		address := c.HL.Uint16()
		value := c.readByte(address)
		fn(&value)
		c.writeByte(address, value)
		return
	}
	fn(c.registerPointer(index))
}

// add8 adds operand and carryIn to dst.
//
//	ADD A, n
//	ADC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) add8(dst *Register, operand, carryIn uint8) {
	result, f := evalAdd8(*dst, operand, carryIn)
	*dst = result
	c.applyFlags(f)
}

// sub8 subtracts operand and carryIn from dst.
//
//	SUB A, n
//	SBC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) sub8(dst *Register, operand, carryIn uint8) {
	result, f := evalSub8(*dst, operand, carryIn)
	*dst = result
	c.applyFlags(f)
}

// inc8 increments dst by 1.
//
//	INC n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
func (c *CPU) inc8(dst *Register) {
	result, f := evalInc8(*dst)
	*dst = result
	c.applyFlags(f)
}

// dec8 decrements dst by 1.
//
//	DEC n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
func (c *CPU) dec8(dst *Register) {
	result, f := evalDec8(*dst)
	*dst = result
	c.applyFlags(f)
}

// add16 adds operand to the given RegisterPair.
//
//	ADD HL, nn
//	nn = BC, DE, HL, SP
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) add16(dst *RegisterPair, operand uint16) {
	result, f := evalAdd16(dst.Uint16(), operand)
	dst.SetUint16(result)
	c.applyFlags(f)
}

// inc16 increments the given RegisterPair by 1. No flags are affected.
//
//	INC nn
//	nn = BC, DE, HL
func (c *CPU) inc16(pair *RegisterPair) {
	pair.SetUint16(pair.Uint16() + 1)
}

// dec16 decrements the given RegisterPair by 1. No flags are affected.
//
//	DEC nn
//	nn = BC, DE, HL
func (c *CPU) dec16(pair *RegisterPair) {
	pair.SetUint16(pair.Uint16() - 1)
}

// addSPSigned reads a signed 8-bit operand and returns SP plus the operand.
//
//	ADD SP, r8
//	LD HL, SP+r8
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) addSPSigned() uint16 {
	result, f := evalAddSigned(c.SP, c.readOperand())
	c.applyFlags(f)
	return result
}
