package cpu

// swap the upper and lower nibbles of the given Register.
//
//	SWAP n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) swap(n *Register) {
	*n = *n<<4 | *n>>4
	c.applyFlags(evalLogic(*n, false))
}
