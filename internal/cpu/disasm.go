package cpu

import (
	"fmt"
	"strings"

	"github.com/thelolagemann/sm83/pkg/utils"
)

// Disassemble renders the instruction at addr, substituting the operand
// placeholders of its mnemonic with the bytes that follow it. It returns
// the text and the length of the instruction in bytes. Opcodes that cannot
// be executed are rendered as a data byte of length 1.
func Disassemble(bus Bus, addr uint16) (string, uint8) {
	opcode := bus.Read(addr)
	if opcode == prefixCB {
		instruction := instructionSetCB[bus.Read(addr+1)]
		return instruction.name, instruction.length
	}

	instruction := instructionSet[opcode]
	if !instruction.Valid() {
		return fmt.Sprintf("DB $%02X", opcode), 1
	}

	name := instruction.name
	switch {
	case strings.Contains(name, "d16"):
		name = strings.Replace(name, "d16", fmt.Sprintf("$%04X", read16(bus, addr+1)), 1)
	case strings.Contains(name, "a16"):
		name = strings.Replace(name, "a16", fmt.Sprintf("$%04X", read16(bus, addr+1)), 1)
	case strings.Contains(name, "d8"):
		name = strings.Replace(name, "d8", fmt.Sprintf("$%02X", bus.Read(addr+1)), 1)
	case strings.Contains(name, "a8"):
		name = strings.Replace(name, "a8", fmt.Sprintf("$FF%02X", bus.Read(addr+1)), 1)
	case strings.HasPrefix(name, "JR"):
		// relative jumps show their destination
		target := uint16(int32(addr) + int32(instruction.length) + int32(int8(bus.Read(addr+1))))
		name = strings.Replace(name, "r8", fmt.Sprintf("$%04X", target), 1)
	case strings.Contains(name, "+r8"):
		name = strings.Replace(name, "+r8", fmt.Sprintf("%+d", int8(bus.Read(addr+1))), 1)
	case strings.Contains(name, "r8"):
		name = strings.Replace(name, "r8", fmt.Sprintf("%d", int8(bus.Read(addr+1))), 1)
	}

	return name, instruction.length
}

func read16(bus Bus, addr uint16) uint16 {
	return utils.BytesToUint16(bus.Read(addr+1), bus.Read(addr))
}
