package cpu

import (
	"fmt"

	"github.com/thelolagemann/sm83/pkg/utils"
)

// loadImmediate loads the next operand into the given Register.
//
//	LD n, d8
//	n = A, B, C, D, E, H, L
//	d8 = 8-bit immediate value
func (c *CPU) loadImmediate(reg *Register) {
	*reg = c.readOperand()
}

// loadImmediate16 loads the next two operands into the given RegisterPair.
// The low byte comes first.
//
//	LD nn, d16
//	nn = BC, DE, HL
//	d16 = 16-bit immediate value
func (c *CPU) loadImmediate16(pair *RegisterPair) {
	*pair.Low = c.readOperand()
	*pair.High = c.readOperand()
}

// loadIndirect loads the value at the given memory address into the given
// Register.
//
//	LD A, (BC)
//	LD n, (HL)
//	n = A, B, C, D, E, H, L
func (c *CPU) loadIndirect(address uint16, reg *Register) {
	*reg = c.readByte(address)
}

// storeIndirect stores the given value at the given memory address.
//
//	LD (BC), A
//	LD (HL), n
//	n = A, B, C, D, E, H, L
func (c *CPU) storeIndirect(address uint16, value Register) {
	c.writeByte(address, value)
}

// defineLoadInstructions defines every 8-bit and 16-bit load.
func defineLoadInstructions() {
	for i := uint8(0); i < 3; i++ {
		index := i
		DefineInstruction(0x01+index<<4, fmt.Sprintf("LD %s, d16", pairNames[index]), func(c *CPU) {
			c.loadImmediate16(c.registerPair(index))
		}, Length(3), Cycles(3))
	}
	DefineInstruction(0x31, "LD SP, d16", func(c *CPU) { c.SP = c.readOperand16() }, Length(3), Cycles(3))

	DefineInstruction(0x02, "LD (BC), A", func(c *CPU) { c.storeIndirect(c.BC.Uint16(), c.A) }, Cycles(2))
	DefineInstruction(0x12, "LD (DE), A", func(c *CPU) { c.storeIndirect(c.DE.Uint16(), c.A) }, Cycles(2))
	DefineInstruction(0x22, "LD (HL+), A", func(c *CPU) {
		c.storeIndirect(c.HL.Uint16(), c.A)
		c.inc16(c.HL)
	}, Cycles(2))
	DefineInstruction(0x32, "LD (HL-), A", func(c *CPU) {
		c.storeIndirect(c.HL.Uint16(), c.A)
		c.dec16(c.HL)
	}, Cycles(2))
	DefineInstruction(0x0A, "LD A, (BC)", func(c *CPU) { c.loadIndirect(c.BC.Uint16(), &c.A) }, Cycles(2))
	DefineInstruction(0x1A, "LD A, (DE)", func(c *CPU) { c.loadIndirect(c.DE.Uint16(), &c.A) }, Cycles(2))
	DefineInstruction(0x2A, "LD A, (HL+)", func(c *CPU) {
		c.loadIndirect(c.HL.Uint16(), &c.A)
		c.inc16(c.HL)
	}, Cycles(2))
	DefineInstruction(0x3A, "LD A, (HL-)", func(c *CPU) {
		c.loadIndirect(c.HL.Uint16(), &c.A)
		c.dec16(c.HL)
	}, Cycles(2))

	for i := uint8(0); i < 8; i++ {
		index := i
		if index == indexHL {
			DefineInstruction(0x36, "LD (HL), d8", func(c *CPU) {
				c.storeIndirect(c.HL.Uint16(), c.readOperand())
			}, Length(2), Cycles(3))
			continue
		}
		DefineInstruction(0x06+index<<3, fmt.Sprintf("LD %s, d8", registerNames[index]), func(c *CPU) {
			c.loadImmediate(c.registerPointer(index))
		}, Length(2), Cycles(2))
	}

	DefineInstruction(0x08, "LD (a16), SP", func(c *CPU) {
		address := c.readOperand16()
		high, low := utils.Uint16ToBytes(c.SP)
		c.storeIndirect(address, low)
		c.storeIndirect(address+1, high)
	}, Length(3), Cycles(5))

	defineLoadRegisterToRegisterInstructions()

	DefineInstruction(0xE0, "LDH (a8), A", func(c *CPU) {
		c.storeIndirect(0xFF00+uint16(c.readOperand()), c.A)
	}, Length(2), Cycles(3))
	DefineInstruction(0xF0, "LDH A, (a8)", func(c *CPU) {
		c.loadIndirect(0xFF00+uint16(c.readOperand()), &c.A)
	}, Length(2), Cycles(3))
	DefineInstruction(0xE2, "LD (C), A", func(c *CPU) { c.storeIndirect(0xFF00+uint16(c.C), c.A) }, Cycles(2))
	DefineInstruction(0xF2, "LD A, (C)", func(c *CPU) { c.loadIndirect(0xFF00+uint16(c.C), &c.A) }, Cycles(2))
	DefineInstruction(0xEA, "LD (a16), A", func(c *CPU) { c.storeIndirect(c.readOperand16(), c.A) }, Length(3), Cycles(4))
	DefineInstruction(0xFA, "LD A, (a16)", func(c *CPU) { c.loadIndirect(c.readOperand16(), &c.A) }, Length(3), Cycles(4))
	DefineInstruction(0xF8, "LD HL, SP+r8", func(c *CPU) { c.HL.SetUint16(c.addSPSigned()) }, Length(2), Cycles(3))
	DefineInstruction(0xF9, "LD SP, HL", func(c *CPU) { c.SP = c.HL.Uint16() }, Cycles(2))
}

// defineLoadRegisterToRegisterInstructions defines the instructions for
// loading a register to another register. (e.g. LD B, A)
//
// The instructions are defined in the following format:
//
//	0x40 LD B, B
//	0x41 LD B, C
//	....
//	0x7F LD A, A
//
// 0x76, which would be LD (HL), (HL), is HALT.
func defineLoadRegisterToRegisterInstructions() {
	for i := uint8(0); i < 8; i++ {
		for j := uint8(0); j < 8; j++ {
			to, from := i, j
			opcode := 0x40 | to<<3 | from
			name := fmt.Sprintf("LD %s, %s", registerNames[to], registerNames[from])

			switch {
			case to == indexHL && from == indexHL:
				continue
			case to == indexHL:
				DefineInstruction(opcode, name, func(c *CPU) {
					c.storeIndirect(c.HL.Uint16(), *c.registerPointer(from))
				}, Cycles(2))
			case from == indexHL:
				DefineInstruction(opcode, name, func(c *CPU) {
					c.loadIndirect(c.HL.Uint16(), c.registerPointer(to))
				}, Cycles(2))
			default:
				DefineInstruction(opcode, name, func(c *CPU) {
					*c.registerPointer(to) = *c.registerPointer(from)
				})
			}
		}
	}
}
