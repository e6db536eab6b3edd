// Package machine hosts a CPU on a flat memory bus: it loads programs,
// drives the CPU one step at a time, accumulates cycles and stops on
// breakpoints, HALT or errors.
package machine

import (
	"fmt"
	"io"

	"github.com/thelolagemann/sm83/internal/cpu"
	membus "github.com/thelolagemann/sm83/internal/io"
	"github.com/thelolagemann/sm83/pkg/log"
)

const (
	// SB is the serial transfer data register.
	SB uint16 = 0xFF01
	// SC is the serial transfer control register.
	SC uint16 = 0xFF02
)

// StopReason describes why Run returned.
type StopReason uint8

const (
	// StopNone means Run has not returned yet.
	StopNone StopReason = iota
	// StopLimit means the step limit was reached.
	StopLimit
	// StopBreakpoint means PC reached a breakpoint.
	StopBreakpoint
	// StopHalt means the CPU entered HALT or STOP. Nothing in the machine
	// can wake it.
	StopHalt
	// StopError means the CPU returned an error.
	StopError
)

func (r StopReason) String() string {
	switch r {
	case StopLimit:
		return "step limit"
	case StopBreakpoint:
		return "breakpoint"
	case StopHalt:
		return "halted"
	case StopError:
		return "error"
	}
	return "running"
}

// Totals is the running sum of cycles taken by the machine.
type Totals struct {
	M uint64
	T uint64
}

// Machine is a CPU attached to a flat 64 KiB bus.
type Machine struct {
	CPU    *cpu.CPU
	Bus    *membus.Bus
	Logger log.Logger

	breakpoints map[uint16]struct{}
	trace       io.Writer

	totals Totals
	steps  uint64
	reason StopReason
}

// New creates a new Machine with a zeroed bus and a CPU in its power-on
// state, then applies the given options.
func New(opts ...Opt) *Machine {
	b := membus.NewBus()
	m := &Machine{
		CPU:         cpu.New(b),
		Bus:         b,
		Logger:      log.NewNullLogger(),
		breakpoints: make(map[uint16]struct{}),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Step executes a single instruction and adds its cycles to the totals.
func (m *Machine) Step() (cpu.Clocks, error) {
	pc := m.CPU.PC
	if m.trace != nil && !m.CPU.Halted() {
		text, _ := cpu.Disassemble(m.Bus, pc)
		fmt.Fprintf(m.trace, "%04X  %s\n", pc, text)
	}

	clocks, err := m.CPU.Step()
	if err != nil {
		return clocks, fmt.Errorf("step %d: %w", m.steps, err)
	}

	m.totals.M += uint64(clocks.M)
	m.totals.T += uint64(clocks.T)
	m.steps++
	return clocks, nil
}

// Run steps the machine until maxSteps instructions have been executed, PC
// reaches a breakpoint, the CPU halts or an error occurs. A maxSteps of 0
// or less runs without a limit. The breakpoint at the starting PC is
// ignored, so that Run can resume from a breakpoint. It returns the number
// of steps taken.
func (m *Machine) Run(maxSteps int) (int, error) {
	m.reason = StopNone

	n := 0
	for maxSteps <= 0 || n < maxSteps {
		if _, ok := m.breakpoints[m.CPU.PC]; ok && n > 0 {
			m.Logger.Infof("breakpoint at %04X after %d steps", m.CPU.PC, n)
			m.reason = StopBreakpoint
			return n, nil
		}

		if _, err := m.Step(); err != nil {
			m.Logger.Errorf("%v", err)
			m.reason = StopError
			return n, err
		}
		n++

		if m.CPU.Halted() {
			m.Logger.Debugf("halted at %04X after %d steps", m.CPU.PC, n)
			m.reason = StopHalt
			return n, nil
		}
	}

	m.reason = StopLimit
	return n, nil
}

// Reason returns why the last call to Run returned.
func (m *Machine) Reason() StopReason {
	return m.reason
}

// Clocks returns the cycles taken since the machine was created.
func (m *Machine) Clocks() Totals {
	return m.totals
}

// Steps returns the number of instructions executed since the machine was
// created.
func (m *Machine) Steps() uint64 {
	return m.steps
}

// SetBreakpoint stops Run when PC reaches addr.
func (m *Machine) SetBreakpoint(addr uint16) {
	m.breakpoints[addr] = struct{}{}
}

// ClearBreakpoint removes the breakpoint at addr.
func (m *Machine) ClearBreakpoint(addr uint16) {
	delete(m.breakpoints, addr)
}
