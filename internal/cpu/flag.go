package cpu

// Flag is a bit in the F register.
type Flag = uint8

const (
	// FlagZero is set when the result of an operation is zero.
	FlagZero Flag = 7
	// FlagSubtract is set when the last operation was a subtraction.
	FlagSubtract Flag = 6
	// FlagHalfCarry is set on a carry from, or borrow into, bit 4.
	FlagHalfCarry Flag = 5
	// FlagCarry is set on a carry from, or borrow into, bit 8.
	FlagCarry Flag = 4
)

// clearFlag clears the given flag.
func (c *CPU) clearFlag(flag Flag) {
	c.F &^= 1 << flag
}

// setFlag sets the given flag.
func (c *CPU) setFlag(flag Flag) {
	c.F |= 1 << flag
}

// isFlagSet returns true if the given flag is set.
func (c *CPU) isFlagSet(flag Flag) bool {
	return c.F&(1<<flag) != 0
}

// setFlags sets all four flags at once. The lower nibble of
// F is always zero.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	c.F = 0
	if zero {
		c.setFlag(FlagZero)
	}
	if subtract {
		c.setFlag(FlagSubtract)
	}
	if halfCarry {
		c.setFlag(FlagHalfCarry)
	}
	if carry {
		c.setFlag(FlagCarry)
	}
}

// carry returns 1 if the carry flag is set.
func (c *CPU) carry() uint8 {
	if c.isFlagSet(FlagCarry) {
		return 1
	}
	return 0
}
