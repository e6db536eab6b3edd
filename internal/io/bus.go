// Package io provides the flat memory bus the CPU reads and writes through.
package io

import (
	"fmt"

	"github.com/thelolagemann/sm83/internal/types"
)

// Bus is a flat 64 KiB address space. Every address is readable and
// writable; addresses reserved with ReserveAddress route writes through
// their handler.
type Bus struct {
	data [0x10000]byte

	writeHandlers map[uint16]WriteHandler
}

// WriteHandler is a function that handles writing to a memory address.
// It should return the new value to be written back to the memory address.
type WriteHandler func(byte) byte

// NewBus returns a zeroed Bus.
func NewBus() *Bus {
	return &Bus{
		writeHandlers: make(map[uint16]WriteHandler),
	}
}

// ReserveAddress reserves a memory address on the bus. Writes to addr are
// passed to handler and the value it returns is stored.
func (b *Bus) ReserveAddress(addr uint16, handler func(byte) byte) {
	// check to make sure address hasn't already been reserved
	if _, ok := b.writeHandlers[addr]; ok {
		panic(fmt.Sprintf("address %04X has already been reserved", addr))
	}
	b.writeHandlers[addr] = handler
}

// Read returns the value at the specified memory address.
func (b *Bus) Read(addr uint16) byte {
	return b.data[addr]
}

// Write writes the value to the specified memory address, passing it
// through the write handler if the address has been reserved.
func (b *Bus) Write(addr uint16, value byte) {
	if handler, ok := b.writeHandlers[addr]; ok {
		value = handler(value)
	}
	b.data[addr] = value
}

// Get gets the value at the specified memory address.
func (b *Bus) Get(addr uint16) byte {
	return b.data[addr]
}

// Set sets the value at the specified memory address. This function
// ignores the write handler and just sets the value.
func (b *Bus) Set(addr uint16, value byte) {
	b.data[addr] = value
}

// SetBit sets the bit at the specified memory address.
func (b *Bus) SetBit(addr uint16, bit byte) {
	b.data[addr] |= bit
}

// ClearBit clears the bit at the specified memory address.
func (b *Bus) ClearBit(addr uint16, bit byte) {
	b.data[addr] &= ^bit
}

// TestBit tests the bit at the specified memory address.
func (b *Bus) TestBit(addr uint16, bit byte) bool {
	return b.data[addr]&bit != 0
}

// Copy copies data into memory starting at the given address, bypassing
// write handlers. Data running past 0xFFFF is truncated and the number of
// bytes copied is returned.
func (b *Bus) Copy(at uint16, data []byte) int {
	return copy(b.data[at:], data)
}

var _ types.Stater = (*Bus)(nil)

// Load restores the memory contents from the given state.
func (b *Bus) Load(s *types.State) {
	s.ReadData(b.data[:])
}

// Save writes the memory contents to the given state.
func (b *Bus) Save(s *types.State) {
	s.WriteData(b.data[:])
}
