package cpu

import (
	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/bits"
)

type Flag = uint8

const (
	FlagZero      Flag = 7
	FlagSubtract  Flag = 6
	FlagHalfCarry Flag = 5
	FlagCarry     Flag = 4
)

const (
	maskZero      = uint8(types.Bit7)
	maskSubtract  = uint8(types.Bit6)
	maskHalfCarry = uint8(types.Bit5)
	maskCarry     = uint8(types.Bit4)
	maskAll       = maskZero | maskSubtract | maskHalfCarry | maskCarry
)

// flags is the result of evaluating an operation: the bit pattern for the
// high nibble of F, and the set of flags the operation is allowed to change.
// Flags outside mask keep their previous value.
type flags struct {
	value uint8
	mask  uint8
}

// newFlags builds a flags value that affects the flags in mask.
func newFlags(mask uint8, z, n, h, c bool) flags {
	var v uint8
	if z {
		v |= maskZero
	}
	if n {
		v |= maskSubtract
	}
	if h {
		v |= maskHalfCarry
	}
	if c {
		v |= maskCarry
	}
	return flags{value: v & mask, mask: mask}
}

// has reports whether the evaluated pattern sets flag.
func (f flags) has(flag Flag) bool {
	return f.value&(1<<flag) != 0
}

// evalAdd8 adds a, b and carryIn, returning the truncated result.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func evalAdd8(a, b, carryIn uint8) (uint8, flags) {
	sum := uint16(a) + uint16(b) + uint16(carryIn)
	half := a&0xF + b&0xF + carryIn
	return uint8(sum), newFlags(maskAll, uint8(sum) == 0, false, half > 0xF, sum > 0xFF)
}

// evalSub8 subtracts b and borrowIn from a, returning the truncated result.
// Half carry and carry are evaluated as borrows, not as the carries of the
// equivalent two's complement addition.
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func evalSub8(a, b, borrowIn uint8) (uint8, flags) {
	diff := int16(a) - int16(b) - int16(borrowIn)
	half := int16(a&0xF) - int16(b&0xF) - int16(borrowIn)
	return uint8(diff), newFlags(maskAll, uint8(diff) == 0, true, half < 0, diff < 0)
}

// evalInc8 increments a by one. Carry is left untouched.
func evalInc8(a uint8) (uint8, flags) {
	result := a + 1
	return result, newFlags(maskZero|maskSubtract|maskHalfCarry, result == 0, false, a&0xF == 0xF, false)
}

// evalDec8 decrements a by one. Carry is left untouched.
func evalDec8(a uint8) (uint8, flags) {
	result := a - 1
	return result, newFlags(maskZero|maskSubtract|maskHalfCarry, result == 0, true, a&0xF == 0x0, false)
}

// evalAdd16 adds two 16-bit values. Zero is left untouched.
//
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func evalAdd16(a, b uint16) (uint16, flags) {
	sum := uint32(a) + uint32(b)
	return uint16(sum), newFlags(maskSubtract|maskHalfCarry|maskCarry, false, false, a&0xFFF+b&0xFFF > 0xFFF, sum > 0xFFFF)
}

// evalAddSigned adds the signed offset e to a 16-bit value, as done by
// ADD SP, r8 and LD HL, SP+r8. Half carry and carry come from the unsigned
// addition of the low byte.
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func evalAddSigned(a uint16, e uint8) (uint16, flags) {
	result := uint16(int32(a) + int32(int8(e)))
	return result, newFlags(maskAll, false, false, a&0xF+uint16(e&0xF) > 0xF, a&0xFF+uint16(e) > 0xFF)
}

// evalRotate evaluates a rotate or shift. zeroAware is false for the
// accumulator forms (RLCA, RRCA, RLA, RRA) which always clear Z.
//
//	Z - Set if result is zero (zeroAware), otherwise reset.
//	N - Reset.
//	H - Reset.
//	C - Contains the bit shifted out.
func evalRotate(result uint8, carryOut, zeroAware bool) flags {
	return newFlags(maskAll, zeroAware && result == 0, false, false, carryOut)
}

// evalLogic evaluates AND (half set), OR and XOR (half reset).
func evalLogic(result uint8, half bool) flags {
	return newFlags(maskAll, result == 0, false, half, false)
}

// evalBit evaluates BIT n: Z is set when the tested bit is clear.
func evalBit(value, bit uint8) flags {
	return newFlags(maskZero|maskSubtract|maskHalfCarry, !bits.Test(value, bit), false, true, false)
}

// applyFlags writes the evaluated pattern into F, leaving flags outside its
// mask as they were.
func (c *CPU) applyFlags(f flags) {
	c.SetF(c.f&^f.mask | f.value&f.mask)
}

// clearFlag clears a flag from the F register.
func (c *CPU) clearFlag(flag Flag) {
	c.applyFlags(flags{mask: 1 << flag})
}

// setFlag sets a flag.
func (c *CPU) setFlag(flag Flag) {
	c.applyFlags(flags{value: 1 << flag, mask: 1 << flag})
}

// isFlagSet returns true if the given flag is set.
func (c *CPU) isFlagSet(flag Flag) bool {
	return c.f&(1<<flag) != 0
}

// carry returns the carry flag as 0 or 1.
func (c *CPU) carry() uint8 {
	return (c.f >> FlagCarry) & 1
}
