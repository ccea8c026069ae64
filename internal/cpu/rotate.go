package cpu

// rotateLeftCarry rotates n left by 1 bit, with bit 7 moved to
// both bit 0 and the carry flag.
//
//	RLC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) rotateLeftCarry(n uint8) uint8 {
	result := n<<1 | n>>7
	c.setFlags(result == 0, false, false, n&0x80 != 0)
	return result
}

// rotateRightCarry rotates n right by 1 bit, with bit 0 moved to
// both bit 7 and the carry flag.
//
//	RRC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) rotateRightCarry(n uint8) uint8 {
	result := n>>1 | n<<7
	c.setFlags(result == 0, false, false, n&0x01 != 0)
	return result
}

// rotateLeftThroughCarry rotates n left through the carry flag.
//
//	RL n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) rotateLeftThroughCarry(n uint8) uint8 {
	result := n<<1 | c.carry()
	c.setFlags(result == 0, false, false, n&0x80 != 0)
	return result
}

// rotateRightThroughCarry rotates n right through the carry flag.
//
//	RR n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) rotateRightThroughCarry(n uint8) uint8 {
	result := n>>1 | c.carry()<<7
	c.setFlags(result == 0, false, false, n&0x01 != 0)
	return result
}

func init() {
	// the accumulator rotates always reset the zero flag
	DefineInstruction(0x07, "RLCA", 4, func(c *CPU) {
		c.A = c.rotateLeftCarry(c.A)
		c.clearFlag(FlagZero)
	})
	DefineInstruction(0x0F, "RRCA", 4, func(c *CPU) {
		c.A = c.rotateRightCarry(c.A)
		c.clearFlag(FlagZero)
	})
	DefineInstruction(0x17, "RLA", 4, func(c *CPU) {
		c.A = c.rotateLeftThroughCarry(c.A)
		c.clearFlag(FlagZero)
	})
	DefineInstruction(0x1F, "RRA", 4, func(c *CPU) {
		c.A = c.rotateRightThroughCarry(c.A)
		c.clearFlag(FlagZero)
	})
}
