package types

// Register represents an SM83 Register which is used to hold an 8-bit value.
// The CPU has 8 registers: A, B, C, D, E, H, L, and F. The F register is
// special in that it is used to hold the flags.
type Register = uint8

// RegisterPair represents a pair of Registers which is used to hold a 16-bit
// value. The CPU has 4 register pairs: AF, BC, DE, and HL.
//
// A RegisterPair holds no storage of its own, it composes and decomposes the
// two Registers it points to, so that a write through the pair is always
// visible through the individual Registers and vice versa.
type RegisterPair struct {
	High *Register
	Low  *Register

	mask uint8 // applied to Low on every write through the pair
}

// NewRegisterPair creates a RegisterPair over the given Registers. Writes
// through the pair are masked with lowMask before landing in the low
// Register (0xF0 for AF, 0xFF for every other pair).
func NewRegisterPair(high, low *Register, lowMask uint8) *RegisterPair {
	return &RegisterPair{High: high, Low: low, mask: lowMask}
}

// Uint16 returns the value of the RegisterPair as an uint16.
func (r *RegisterPair) Uint16() uint16 {
	return uint16(*r.High)<<8 | uint16(*r.Low)
}

// SetUint16 sets the value of the RegisterPair to the given value.
func (r *RegisterPair) SetUint16(value uint16) {
	*r.High = uint8(value >> 8)
	*r.Low = uint8(value) & r.lowMask()
}

func (r *RegisterPair) lowMask() uint8 {
	if r.mask == 0 {
		return 0xFF
	}
	return r.mask
}
