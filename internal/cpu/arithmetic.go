package cpu

import "fmt"

// pairNames maps the 2-bit register pair encoding of the 16-bit arithmetic
// and load instructions to a name.
var pairNames = [4]string{"BC", "DE", "HL", "SP"}

// registerPair returns the RegisterPair for the 2-bit encoding, or nil for
// SP which has no pair view.
func (c *CPU) registerPair(index uint8) *RegisterPair {
	switch index {
	case 0:
		return c.BC
	case 1:
		return c.DE
	case 2:
		return c.HL
	}
	return nil
}

// pairValue returns the value of the 16-bit register for the 2-bit encoding.
func (c *CPU) pairValue(index uint8) uint16 {
	if pair := c.registerPair(index); pair != nil {
		return pair.Uint16()
	}
	return c.SP
}

// defineArithmeticInstructions defines the 8-bit and 16-bit add, subtract,
// increment and decrement instructions.
//
//	0x04 INC B ... 0x3C INC A
//	0x05 DEC B ... 0x3D DEC A
//	0x80 ADD A, B ... 0x9F SBC A, A
//	0x03 INC BC, 0x09 ADD HL, BC, 0x0B DEC BC ... (SP)
func defineArithmeticInstructions() {
	for i := uint8(0); i < 8; i++ {
		index := i // capture for the closures
		cycles := uint8(1)
		if index == indexHL {
			cycles = 3
		}

		DefineInstruction(0x04+index<<3, fmt.Sprintf("INC %s", registerNames[index]), func(c *CPU) {
			c.modify(index, c.inc8)
		}, Cycles(cycles))
		DefineInstruction(0x05+index<<3, fmt.Sprintf("DEC %s", registerNames[index]), func(c *CPU) {
			c.modify(index, c.dec8)
		}, Cycles(cycles))
	}

	for i := uint8(0); i < 8; i++ {
		index := i
		cycles := uint8(1)
		if index == indexHL {
			cycles = 2
		}

		DefineInstruction(0x80+index, fmt.Sprintf("ADD A, %s", registerNames[index]), func(c *CPU) {
			c.add8(&c.A, c.readOperandAt(index), 0)
		}, Cycles(cycles))
		DefineInstruction(0x88+index, fmt.Sprintf("ADC A, %s", registerNames[index]), func(c *CPU) {
			c.add8(&c.A, c.readOperandAt(index), c.carry())
		}, Cycles(cycles))
		DefineInstruction(0x90+index, fmt.Sprintf("SUB A, %s", registerNames[index]), func(c *CPU) {
			c.sub8(&c.A, c.readOperandAt(index), 0)
		}, Cycles(cycles))
		DefineInstruction(0x98+index, fmt.Sprintf("SBC A, %s", registerNames[index]), func(c *CPU) {
			c.sub8(&c.A, c.readOperandAt(index), c.carry())
		}, Cycles(cycles))
	}

	DefineInstruction(0xC6, "ADD A, d8", func(c *CPU) { c.add8(&c.A, c.readOperand(), 0) }, Length(2), Cycles(2))
	DefineInstruction(0xCE, "ADC A, d8", func(c *CPU) {
		carry := c.carry()
		c.add8(&c.A, c.readOperand(), carry)
	}, Length(2), Cycles(2))
	DefineInstruction(0xD6, "SUB A, d8", func(c *CPU) { c.sub8(&c.A, c.readOperand(), 0) }, Length(2), Cycles(2))
	DefineInstruction(0xDE, "SBC A, d8", func(c *CPU) {
		carry := c.carry()
		c.sub8(&c.A, c.readOperand(), carry)
	}, Length(2), Cycles(2))

	for i := uint8(0); i < 3; i++ {
		index := i
		DefineInstruction(0x03+index<<4, fmt.Sprintf("INC %s", pairNames[index]), func(c *CPU) {
			c.inc16(c.registerPair(index))
		}, Cycles(2))
		DefineInstruction(0x0B+index<<4, fmt.Sprintf("DEC %s", pairNames[index]), func(c *CPU) {
			c.dec16(c.registerPair(index))
		}, Cycles(2))
	}
	DefineInstruction(0x33, "INC SP", func(c *CPU) { c.SP++ }, Cycles(2))
	DefineInstruction(0x3B, "DEC SP", func(c *CPU) { c.SP-- }, Cycles(2))

	for i := uint8(0); i < 4; i++ {
		index := i
		DefineInstruction(0x09+index<<4, fmt.Sprintf("ADD HL, %s", pairNames[index]), func(c *CPU) {
			c.add16(c.HL, c.pairValue(index))
		}, Cycles(2))
	}

	DefineInstruction(0xE8, "ADD SP, r8", func(c *CPU) { c.SP = c.addSPSigned() }, Length(2), Cycles(4))
}
