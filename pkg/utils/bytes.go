package utils

// BytesToUint16 joins the upper and lower bytes of a 16-bit value.
func BytesToUint16(upper, lower uint8) uint16 {
	return uint16(upper)<<8 ^ uint16(lower)
}

// Uint16ToBytes splits a 16-bit value into its upper and lower bytes.
func Uint16ToBytes(value uint16) (upper, lower uint8) {
	return uint8(value >> 8), uint8(value & 0xFF)
}
