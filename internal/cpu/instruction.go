package cpu

import (
	"fmt"
)

const prefixCB = 0xCB

type kind uint8

const (
	kindUndefined kind = iota
	kindOperation
	kindPrefix
	kindDisallowed
)

// Instruction describes a single opcode: its mnemonic, its length in bytes,
// its cost in machine cycles and the function that executes it.
type Instruction struct {
	name         string     // name of the instruction
	length       uint8      // length in bytes, including opcode and prefix
	cycles       uint8      // machine cycles, branch not taken
	branchCycles uint8      // machine cycles, branch taken
	fn           func(*CPU) // fn called when executing the instruction
	kind         kind
}

// Name returns the mnemonic of the instruction.
func (i Instruction) Name() string { return i.name }

// Length returns the length of the instruction in bytes.
func (i Instruction) Length() uint8 { return i.length }

// Cycles returns the machine cycles the instruction takes. For
// conditional instructions this is the cost when the branch is not taken.
func (i Instruction) Cycles() uint8 { return i.cycles }

// BranchCycles returns the machine cycles a conditional instruction takes
// when its branch is taken. It equals Cycles for every other instruction.
func (i Instruction) BranchCycles() uint8 { return i.branchCycles }

// Valid reports whether the instruction can be executed.
func (i Instruction) Valid() bool { return i.kind == kindOperation }

// Prefix reports whether the instruction is the CB prefix.
func (i Instruction) Prefix() bool { return i.kind == kindPrefix }

// InstructionOpt modifies an Instruction as it is defined.
type InstructionOpt func(*Instruction)

// Length sets the length of the instruction in bytes.
func Length(n uint8) InstructionOpt {
	return func(i *Instruction) {
		i.length = n
	}
}

// Cycles sets the machine cycles the instruction takes.
func Cycles(m uint8) InstructionOpt {
	return func(i *Instruction) {
		i.cycles = m
		if i.branchCycles < m {
			i.branchCycles = m
		}
	}
}

// Branch sets the machine cycles a conditional instruction takes when it
// branches.
func Branch(m uint8) InstructionOpt {
	return func(i *Instruction) {
		i.branchCycles = m
	}
}

var (
	// instructionSet holds the first 256 instructions.
	instructionSet [256]Instruction
	// instructionSetCB holds the 256 instructions following the CB prefix.
	instructionSetCB [256]Instruction
)

// Lookup returns the instruction for the given opcode.
func Lookup(opcode uint8) Instruction {
	return instructionSet[opcode]
}

// LookupCB returns the instruction for the given opcode following the CB
// prefix.
func LookupCB(opcode uint8) Instruction {
	return instructionSetCB[opcode]
}

func newInstruction(name string, fn func(*CPU), length, cycles uint8, opts []InstructionOpt) Instruction {
	instruction := Instruction{
		name:         name,
		length:       length,
		cycles:       cycles,
		branchCycles: cycles,
		fn:           fn,
		kind:         kindOperation,
	}
	for _, opt := range opts {
		opt(&instruction)
	}
	return instruction
}

// DefineInstruction defines the instruction in the InstructionSet, with the
// provided opcode. Instructions default to 1 byte and 1 machine cycle.
func DefineInstruction(opcode uint8, name string, fn func(*CPU), opts ...InstructionOpt) {
	if instructionSet[opcode].kind != kindUndefined {
		panic(fmt.Sprintf("opcode %02X already defined as %s", opcode, instructionSet[opcode].name))
	}
	instructionSet[opcode] = newInstruction(name, fn, 1, 1, opts)
}

// DefineInstructionCB defines the instruction in the CB InstructionSet.
// Instructions default to 2 bytes (prefix included) and 2 machine cycles.
func DefineInstructionCB(opcode uint8, name string, fn func(*CPU), opts ...InstructionOpt) {
	if instructionSetCB[opcode].kind != kindUndefined {
		panic(fmt.Sprintf("opcode CB %02X already defined as %s", opcode, instructionSetCB[opcode].name))
	}
	instructionSetCB[opcode] = newInstruction(name, fn, 2, 2, opts)
}

var disallowedOpcodes = []uint8{
	0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD,
}

// disallowedOpcode creates an instruction that cannot be executed.
func disallowedOpcode(opcode uint8) Instruction {
	return Instruction{
		name:   fmt.Sprintf("disallowed opcode %02X", opcode),
		length: 1,
		kind:   kindDisallowed,
	}
}

func init() {
	defineControlInstructions()
	defineLoadInstructions()
	defineArithmeticInstructions()
	defineLogicInstructions()
	defineRotateInstructions()
	defineJumpInstructions()
	defineStackInstructions()
	defineShiftInstructions()
	defineBitInstructions()

	instructionSet[prefixCB] = Instruction{name: "PREFIX CB", length: 1, kind: kindPrefix}
	for _, opcode := range disallowedOpcodes {
		instructionSet[opcode] = disallowedOpcode(opcode)
	}

	for i := 0; i < 256; i++ {
		if instructionSet[i].kind == kindUndefined {
			panic(fmt.Sprintf("opcode %02X has no definition", i))
		}
		if instructionSetCB[i].kind == kindUndefined {
			panic(fmt.Sprintf("opcode CB %02X has no definition", i))
		}
	}
}

func defineControlInstructions() {
	DefineInstruction(0x00, "NOP", func(c *CPU) {})
	DefineInstruction(0x10, "STOP", func(c *CPU) {
		// STOP is followed by a padding byte
		c.PC++
		c.mode = ModeStop
	}, Length(2))
	DefineInstruction(0x27, "DAA", func(c *CPU) { c.decimalAdjust() })
	DefineInstruction(0x2F, "CPL", func(c *CPU) { c.complement() })
	DefineInstruction(0x37, "SCF", func(c *CPU) { c.setCarryFlag() })
	DefineInstruction(0x3F, "CCF", func(c *CPU) { c.complementCarryFlag() })
	DefineInstruction(0x76, "HALT", func(c *CPU) { c.mode = ModeHalt })
	DefineInstruction(0xF3, "DI", func(c *CPU) { c.IME = false })
	DefineInstruction(0xFB, "EI", func(c *CPU) { c.IME = true })
}
