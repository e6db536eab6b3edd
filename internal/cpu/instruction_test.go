package cpu

import (
	"testing"

	"github.com/thelolagemann/sm83/internal/io"
)

var (
	bus *io.Bus
	cpu *CPU
)

func init() {
	bus = io.NewBus()
	cpu = New(bus)
}

// testInstruction runs fn against the instruction defined for opcode,
// after checking that it carries the expected mnemonic.
func testInstruction(t *testing.T, name string, opcode uint8, fn func(t *testing.T, instr Instruction)) {
	t.Helper()
	instr := Lookup(opcode)
	if instr.Name() != name {
		t.Errorf("expected opcode %02X to be %s, got %s", opcode, name, instr.Name())
	}
	t.Run(name, func(t *testing.T) {
		fn(t, instr)
	})
}

// testInstructionCB is testInstruction for the CB prefixed instruction set.
func testInstructionCB(t *testing.T, name string, opcode uint8, fn func(t *testing.T, instr Instruction)) {
	t.Helper()
	instr := LookupCB(opcode)
	if instr.Name() != name {
		t.Errorf("expected opcode CB %02X to be %s, got %s", opcode, name, instr.Name())
	}
	t.Run(name, func(t *testing.T) {
		fn(t, instr)
	})
}

// execute places the operands at PC and runs the instruction, as if its
// opcode had just been fetched.
func execute(instr Instruction, operands ...uint8) {
	bus.Copy(cpu.PC, operands)
	cpu.branched = false
	instr.fn(cpu)
}

// step writes program at PC and steps the cpu once.
func step(t *testing.T, program ...uint8) Clocks {
	t.Helper()
	bus.Copy(cpu.PC, program)
	clocks, err := cpu.Step()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return clocks
}

func TestInstruction_Timing(t *testing.T) {
	timings := []uint8{
		1, 3, 2, 2, 1, 1, 2, 1, 5, 2, 2, 2, 1, 1, 2, 1,
		0, 3, 2, 2, 1, 1, 2, 1, 3, 2, 2, 2, 1, 1, 2, 1,
		2, 3, 2, 2, 1, 1, 2, 1, 2, 2, 2, 2, 1, 1, 2, 1,
		2, 3, 2, 2, 3, 3, 3, 1, 2, 2, 2, 2, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		2, 2, 2, 2, 2, 2, 0, 2, 1, 1, 1, 1, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		2, 3, 3, 4, 3, 4, 2, 4, 2, 4, 3, 0, 3, 6, 2, 4,
		2, 3, 3, 0, 3, 4, 2, 4, 2, 4, 3, 0, 3, 0, 2, 4,
		3, 3, 2, 0, 0, 4, 2, 4, 4, 1, 4, 0, 0, 0, 2, 4,
		3, 3, 2, 1, 0, 4, 2, 4, 3, 2, 4, 1, 0, 0, 2, 4,
	}
	for i, timing := range timings {
		if timing == 0 {
			continue
		}

		instr := Lookup(uint8(i))
		if instr.Cycles() != timing {
			t.Errorf("%02X %s: expected %d cycles, got %d", i, instr.Name(), timing, instr.Cycles())
		}
	}

	cbTiming := []uint8{
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 3, 2, 2, 2, 2, 2, 2, 2, 3, 2,
		2, 2, 2, 2, 2, 2, 3, 2, 2, 2, 2, 2, 2, 2, 3, 2,
		2, 2, 2, 2, 2, 2, 3, 2, 2, 2, 2, 2, 2, 2, 3, 2,
		2, 2, 2, 2, 2, 2, 3, 2, 2, 2, 2, 2, 2, 2, 3, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
	}
	for i, timing := range cbTiming {
		instr := LookupCB(uint8(i))
		if instr.Cycles() != timing {
			t.Errorf("CB %02X %s: expected %d cycles, got %d", i, instr.Name(), timing, instr.Cycles())
		}
	}
}

func TestInstruction_BranchTiming(t *testing.T) {
	tests := []struct {
		opcodes []uint8
		cycles  uint8
		branch  uint8
	}{
		{[]uint8{0x20, 0x28, 0x30, 0x38}, 2, 3},
		{[]uint8{0xC2, 0xCA, 0xD2, 0xDA}, 3, 4},
		{[]uint8{0xC4, 0xCC, 0xD4, 0xDC}, 3, 6},
		{[]uint8{0xC0, 0xC8, 0xD0, 0xD8}, 2, 5},
	}
	for _, tt := range tests {
		for _, opcode := range tt.opcodes {
			instr := Lookup(opcode)
			if instr.Cycles() != tt.cycles || instr.BranchCycles() != tt.branch {
				t.Errorf("%02X %s: expected %d/%d cycles, got %d/%d", opcode, instr.Name(), tt.cycles, tt.branch, instr.Cycles(), instr.BranchCycles())
			}
		}
	}

	// unconditional instructions cost the same either way
	for _, opcode := range []uint8{0x00, 0x18, 0xC3, 0xC9, 0xCD} {
		if instr := Lookup(opcode); instr.Cycles() != instr.BranchCycles() {
			t.Errorf("%02X %s: expected equal cycles, got %d/%d", opcode, instr.Name(), instr.Cycles(), instr.BranchCycles())
		}
	}
}

func TestInstruction_Table(t *testing.T) {
	disallowed := map[uint8]bool{}
	for _, opcode := range disallowedOpcodes {
		disallowed[opcode] = true
	}

	for i := 0; i < 256; i++ {
		opcode := uint8(i)
		instr := Lookup(opcode)
		switch {
		case opcode == prefixCB:
			if !instr.Prefix() || instr.Valid() {
				t.Errorf("expected %02X to be the prefix", opcode)
			}
		case disallowed[opcode]:
			if instr.Valid() {
				t.Errorf("expected %02X to be disallowed, got %s", opcode, instr.Name())
			}
		default:
			if !instr.Valid() {
				t.Errorf("expected %02X to be defined", opcode)
			}
		}

		if !LookupCB(opcode).Valid() {
			t.Errorf("expected CB %02X to be defined", opcode)
		}
		if LookupCB(opcode).Length() != 2 {
			t.Errorf("expected CB %02X to be 2 bytes, got %d", opcode, LookupCB(opcode).Length())
		}
	}
}

func TestInstruction_Length(t *testing.T) {
	// instructions that load PC themselves
	controlFlow := map[uint8]bool{
		0x18: true, 0x20: true, 0x28: true, 0x30: true, 0x38: true,
		0xC0: true, 0xC2: true, 0xC3: true, 0xC4: true, 0xC8: true, 0xC9: true,
		0xCA: true, 0xCC: true, 0xCD: true, 0xD0: true, 0xD2: true, 0xD4: true,
		0xD8: true, 0xD9: true, 0xDA: true, 0xDC: true, 0xE9: true,
		0xC7: true, 0xCF: true, 0xD7: true, 0xDF: true, 0xE7: true, 0xEF: true, 0xF7: true, 0xFF: true,
	}

	for i := 0; i < 256; i++ {
		opcode := uint8(i)
		instr := Lookup(opcode)
		if !instr.Valid() || controlFlow[opcode] {
			continue
		}

		cpu.Reset()
		cpu.PC = 0x0100
		cpu.SP = 0xFFF0
		cpu.HL.SetUint16(0xC000)
		clocks := step(t, opcode, 0x00, 0x00)

		if cpu.PC != 0x0100+uint16(instr.Length()) {
			t.Errorf("%02X %s: expected PC to be 0x%04X, got 0x%04X", opcode, instr.Name(), 0x0100+uint16(instr.Length()), cpu.PC)
		}
		if clocks.M != instr.Cycles() || clocks.T != instr.Cycles()*TicksPerCycle {
			t.Errorf("%02X %s: expected %d cycles, got %+v", opcode, instr.Name(), instr.Cycles(), clocks)
		}
	}

	for i := 0; i < 256; i++ {
		cpu.Reset()
		cpu.PC = 0x0100
		cpu.HL.SetUint16(0xC000)
		clocks := step(t, prefixCB, uint8(i))

		if cpu.PC != 0x0102 {
			t.Errorf("CB %02X: expected PC to be 0x0102, got 0x%04X", i, cpu.PC)
		}
		if clocks.M != LookupCB(uint8(i)).Cycles() {
			t.Errorf("CB %02X: expected %d cycles, got %d", i, LookupCB(uint8(i)).Cycles(), clocks.M)
		}
	}
}

func TestDefineInstruction_Redefined(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected redefining an opcode to panic")
		}
	}()
	DefineInstruction(0x00, "NOP", func(c *CPU) {})
}
