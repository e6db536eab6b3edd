package cpu

import (
	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/log"
	"github.com/thelolagemann/sm83/pkg/utils"
)

const (
	// ClockSpeed is the clock speed of the CPU in T-cycles per second.
	ClockSpeed = 4194304
	// TicksPerCycle is the number of clock (T) cycles in one machine (M) cycle.
	TicksPerCycle = 4
)

// Bus is the memory bus the CPU fetches from and reads and writes data
// through. Implementations decide what lives behind each address; the CPU
// treats every access as succeeding.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
}

type mode = uint8

const (
	// ModeNormal is the normal CPU mode.
	ModeNormal mode = iota
	// ModeHalt is entered by HALT, until Wake is called.
	ModeHalt
	// ModeStop is entered by STOP, until Wake is called.
	ModeStop
)

// EngineState is the state of the fetch-decode-execute driver.
type EngineState uint8

const (
	// StateIdle means no instruction is in flight.
	StateIdle EngineState = iota
	// StateExecuting means an instruction is being dispatched.
	StateExecuting
)

func (s EngineState) String() string {
	if s == StateExecuting {
		return "executing"
	}
	return "idle"
}

// Clocks is the cost of a single step, in machine cycles (M) and clock
// cycles (T).
type Clocks struct {
	M uint8
	T uint8
}

func machineCycles(m uint8) Clocks {
	return Clocks{M: m, T: m * TicksPerCycle}
}

// CPU represents the SM83 CPU. It is responsible for executing instructions.
type CPU struct {
	// Registers contains the 8-bit registers, the 16-bit register pairs,
	// the program counter, the stack pointer and IME.
	Registers

	// Debug enables per-instruction tracing through the logger.
	Debug bool

	bus Bus
	log log.Logger

	mode     mode
	state    EngineState
	branched bool // set by a conditional instruction that took its branch
}

// New creates a new CPU instance in its power-on state, reading and writing
// memory through the given Bus.
func New(bus Bus, opts ...Opt) *CPU {
	c := &CPU{
		bus: bus,
		log: log.NewNullLogger(),
	}
	c.Reset()

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Reset brings the CPU to its power-on state.
func (c *CPU) Reset() {
	c.Registers.Reset()
	c.mode = ModeNormal
	c.state = StateIdle
	c.branched = false
}

// Step fetches, decodes and executes one instruction and returns the number
// of cycles it took. An opcode without a definition is reported as an
// *InvalidOpcodeError, in which case PC is left pointing at the opcode and
// no other register is changed.
func (c *CPU) Step() (Clocks, error) {
	c.state = StateExecuting
	defer func() { c.state = StateIdle }()

	// while halted or stopped the CPU idles, one cycle at a time
	if c.mode != ModeNormal {
		return machineCycles(1), nil
	}

	pc := c.PC
	instruction, err := c.fetch()
	if err != nil {
		c.PC = pc
		return Clocks{}, err
	}

	c.branched = false
	instruction.fn(c)

	if c.Debug {
		c.log.Debugf("%04X  %-16s A:%02X F:%02X B:%02X C:%02X D:%02X E:%02X H:%02X L:%02X SP:%04X",
			pc, instruction.name, c.A, c.f, c.B, c.C, c.D, c.E, c.H, c.L, c.SP)
	}

	if c.branched {
		return machineCycles(instruction.branchCycles), nil
	}
	return machineCycles(instruction.cycles), nil
}

// fetch reads the opcode at PC, following the CB prefix into the extended
// table, and resolves its Instruction.
func (c *CPU) fetch() (Instruction, error) {
	pc := c.PC
	opcode := c.readInstruction()
	if opcode != prefixCB {
		if instruction := instructionSet[opcode]; instruction.Valid() {
			return instruction, nil
		}
		return Instruction{}, &InvalidOpcodeError{Opcode: opcode, PC: pc}
	}

	opcode = c.readOperand()
	if instruction := instructionSetCB[opcode]; instruction.Valid() {
		return instruction, nil
	}
	return Instruction{}, &InvalidOpcodeError{Opcode: opcode, Prefixed: true, PC: pc}
}

// State returns the current state of the execution engine.
func (c *CPU) State() EngineState {
	return c.state
}

// Halted reports whether the CPU is waiting in HALT or STOP.
func (c *CPU) Halted() bool {
	return c.mode != ModeNormal
}

// Mode returns the current CPU mode.
func (c *CPU) Mode() uint8 {
	return c.mode
}

// Wake returns the CPU to normal execution after HALT or STOP. This is the
// hook an interrupt controller calls once an interrupt is pending.
func (c *CPU) Wake() {
	c.mode = ModeNormal
}

// readInstruction reads the next instruction from memory.
func (c *CPU) readInstruction() uint8 {
	value := c.bus.Read(c.PC)
	c.PC++
	return value
}

// readOperand reads the next operand from memory. The same as
// readInstruction, but kept apart to make the intent clear.
func (c *CPU) readOperand() uint8 {
	value := c.bus.Read(c.PC)
	c.PC++
	return value
}

// readOperand16 reads a little endian 16-bit operand.
func (c *CPU) readOperand16() uint16 {
	low := c.readOperand()
	high := c.readOperand()
	return utils.BytesToUint16(high, low)
}

// readByte reads a byte from memory.
func (c *CPU) readByte(addr uint16) uint8 {
	return c.bus.Read(addr)
}

// writeByte writes the given value to the given address.
func (c *CPU) writeByte(addr uint16, val uint8) {
	c.bus.Write(addr, val)
}

var _ types.Stater = (*CPU)(nil)

// Load restores the CPU from the given state.
func (c *CPU) Load(s *types.State) {
	c.A = s.Read8()
	c.SetF(s.Read8())
	c.B = s.Read8()
	c.C = s.Read8()
	c.D = s.Read8()
	c.E = s.Read8()
	c.H = s.Read8()
	c.L = s.Read8()
	c.SP = s.Read16()
	c.PC = s.Read16()
	c.IME = s.ReadBool()
	c.mode = s.Read8()
}

// Save writes the CPU to the given state.
func (c *CPU) Save(s *types.State) {
	s.Write8(c.A)
	s.Write8(c.f)
	s.Write8(c.B)
	s.Write8(c.C)
	s.Write8(c.D)
	s.Write8(c.E)
	s.Write8(c.H)
	s.Write8(c.L)
	s.Write16(c.SP)
	s.Write16(c.PC)
	s.WriteBool(c.IME)
	s.Write8(c.mode)
}
