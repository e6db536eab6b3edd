package cpu

import (
	"errors"
	"fmt"
)

// ErrInvalidOpcode is matched by every *InvalidOpcodeError.
var ErrInvalidOpcode = errors.New("invalid opcode")

// InvalidOpcodeError is returned by Step when the fetched opcode has no
// definition. Real hardware locks up on these opcodes; the caller decides
// whether to stop or carry on.
type InvalidOpcodeError struct {
	Opcode   uint8  // the undefined opcode byte
	Prefixed bool   // whether Opcode was read after the 0xCB prefix
	PC       uint16 // address of the first byte of the instruction
}

func (e *InvalidOpcodeError) Error() string {
	if e.Prefixed {
		return fmt.Sprintf("invalid opcode CB %02X at %04X", e.Opcode, e.PC)
	}
	return fmt.Sprintf("invalid opcode %02X at %04X", e.Opcode, e.PC)
}

// Is reports whether target is ErrInvalidOpcode.
func (e *InvalidOpcodeError) Is(target error) bool {
	return target == ErrInvalidOpcode
}
