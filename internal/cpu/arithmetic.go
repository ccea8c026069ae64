package cpu

import "fmt"

// pairNames holds the names of the register pairs used by the 16-bit
// arithmetic and load opcodes, by index.
var pairNames = [4]string{"BC", "DE", "HL", "SP"}

// readPair returns the register pair for index: BC, DE, HL, SP.
func (c *CPU) readPair(index uint8) uint16 {
	switch index {
	case 0:
		return c.BC.Uint16()
	case 1:
		return c.DE.Uint16()
	case 2:
		return c.HL.Uint16()
	}
	return c.SP
}

// writePair sets the register pair for index, see readPair.
func (c *CPU) writePair(index uint8, value uint16) {
	switch index {
	case 0:
		c.BC.SetUint16(value)
	case 1:
		c.DE.SetUint16(value)
	case 2:
		c.HL.SetUint16(value)
	default:
		c.SP = value
	}
}

// increment the given value and set the flags accordingly.
//
//	INC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
func (c *CPU) increment(value uint8) uint8 {
	incremented := value + 0x01
	c.setFlags(incremented == 0, false, value&0xF == 0xF, c.isFlagSet(FlagCarry))
	return incremented
}

// decrement the given value and set the flags accordingly.
//
//	DEC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
func (c *CPU) decrement(value uint8) uint8 {
	decremented := value - 0x01
	c.setFlags(decremented == 0, true, value&0xF == 0x0, c.isFlagSet(FlagCarry))
	return decremented
}

// addHLRR adds the given value to the HL RegisterPair.
//
//	ADD HL, rr
//	rr = BC, DE, HL, SP
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) addHLRR(value uint16) {
	hl := c.HL.Uint16()
	c.setFlags(c.isFlagSet(FlagZero), false, hl&0xFFF+value&0xFFF > 0xFFF, uint32(hl)+uint32(value) > 0xFFFF)
	c.HL.SetUint16(hl + value)
	c.tickCycle()
}

// add adds n, and the carry flag if withCarry is set, to the A
// Register.
//
//	ADD A, n
//	ADC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) add(n uint8, withCarry bool) {
	var carry uint16
	if withCarry {
		carry = uint16(c.carry())
	}
	sum := uint16(c.A) + uint16(n) + carry
	half := uint16(c.A&0xF) + uint16(n&0xF) + carry
	c.A = uint8(sum)
	c.setFlags(c.A == 0, false, half > 0xF, sum > 0xFF)
}

// sub subtracts n, and the carry flag if withCarry is set, from the
// A Register.
//
//	SUB A, n
//	SBC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) sub(n uint8, withCarry bool) {
	var carry uint16
	if withCarry {
		carry = uint16(c.carry())
	}
	a := uint16(c.A)
	c.A = uint8(a - uint16(n) - carry)
	c.setFlags(c.A == 0, true, a&0xF < uint16(n&0xF)+carry, a < uint16(n)+carry)
}

// addSPSigned returns SP plus the signed immediate operand e.
// The carry flags are computed over the low byte of the unsigned
// addition.
//
// Used by:
//
//	ADD SP, e
//	LD HL, SP+e
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) addSPSigned() uint16 {
	e := c.readOperand()
	c.setFlags(false, false, c.SP&0xF+uint16(e&0xF) > 0xF, c.SP&0xFF+uint16(e) > 0xFF)
	return uint16(int32(c.SP) + int32(int8(e)))
}

// decimalAdjust adjusts the A Register to hold the binary coded
// decimal result of the last addition or subtraction.
//
//	DAA
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set if an addition overflowed 99, otherwise not affected.
func (c *CPU) decimalAdjust() {
	if !c.isFlagSet(FlagSubtract) {
		if c.isFlagSet(FlagCarry) || c.A > 0x99 {
			c.A += 0x60
			c.setFlag(FlagCarry)
		}
		if c.isFlagSet(FlagHalfCarry) || c.A&0xF > 0x9 {
			c.A += 0x06
		}
	} else {
		if c.isFlagSet(FlagCarry) {
			c.A -= 0x60
		}
		if c.isFlagSet(FlagHalfCarry) {
			c.A -= 0x06
		}
	}
	c.clearFlag(FlagHalfCarry)
	if c.A == 0 {
		c.setFlag(FlagZero)
	} else {
		c.clearFlag(FlagZero)
	}
}

func init() {
	for r := uint8(0); r < 8; r++ {
		r := r
		cycles := uint8(4)
		if r == 6 {
			cycles = 12
		}
		DefineInstruction(0x04+r<<3, fmt.Sprintf("INC %s", registerNames[r]), cycles, func(c *CPU) {
			c.writeRegister(r, c.increment(c.readRegister(r)))
		})
		DefineInstruction(0x05+r<<3, fmt.Sprintf("DEC %s", registerNames[r]), cycles, func(c *CPU) {
			c.writeRegister(r, c.decrement(c.readRegister(r)))
		})
	}

	for i := uint8(0); i < 4; i++ {
		i := i
		DefineInstruction(0x03+i<<4, fmt.Sprintf("INC %s", pairNames[i]), 8, func(c *CPU) {
			c.writePair(i, c.readPair(i)+1)
			c.tickCycle()
		})
		DefineInstruction(0x0B+i<<4, fmt.Sprintf("DEC %s", pairNames[i]), 8, func(c *CPU) {
			c.writePair(i, c.readPair(i)-1)
			c.tickCycle()
		})
		DefineInstruction(0x09+i<<4, fmt.Sprintf("ADD HL, %s", pairNames[i]), 8, func(c *CPU) {
			c.addHLRR(c.readPair(i))
		})
	}

	DefineInstruction(0x27, "DAA", 4, func(c *CPU) { c.decimalAdjust() })
	DefineInstruction(0x2F, "CPL", 4, func(c *CPU) {
		c.A = 0xFF ^ c.A
		c.setFlag(FlagSubtract)
		c.setFlag(FlagHalfCarry)
	})
	DefineInstruction(0x37, "SCF", 4, func(c *CPU) {
		c.setFlag(FlagCarry)
		c.clearFlag(FlagSubtract)
		c.clearFlag(FlagHalfCarry)
	})
	DefineInstruction(0x3F, "CCF", 4, func(c *CPU) {
		c.F ^= 1 << FlagCarry
		c.clearFlag(FlagSubtract)
		c.clearFlag(FlagHalfCarry)
	})
	DefineInstruction(0xE8, "ADD SP, r8", 16, func(c *CPU) {
		c.SP = c.addSPSigned()
		c.tickCycle()
		c.tickCycle()
	})
}
