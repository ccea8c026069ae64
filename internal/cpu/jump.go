package cpu

import "fmt"

// conditionNames holds the names of the branch conditions encoded
// in bits 3-4 of the conditional jump, call and return opcodes.
var conditionNames = [4]string{"NZ", "Z", "NC", "C"}

// condition returns whether the branch condition for index holds.
func (c *CPU) condition(index uint8) bool {
	switch index {
	case 0:
		return !c.isFlagSet(FlagZero)
	case 1:
		return c.isFlagSet(FlagZero)
	case 2:
		return !c.isFlagSet(FlagCarry)
	}
	return c.isFlagSet(FlagCarry)
}

// pushStack pushes a 16-bit value onto the stack, high byte first.
// The push takes an internal cycle before the two writes.
func (c *CPU) pushStack(value uint16) {
	c.tickCycle()
	c.SP--
	c.writeByte(c.SP, uint8(value>>8))
	c.SP--
	c.writeByte(c.SP, uint8(value))
}

// popStack pops a 16-bit value off the stack.
func (c *CPU) popStack() uint16 {
	low := c.readByte(c.SP)
	c.SP++
	high := c.readByte(c.SP)
	c.SP++
	return uint16(high)<<8 | uint16(low)
}

// call pushes the address of the next instruction onto the stack
// and jumps to the given address.
//
//	CALL nn
//	RST n
func (c *CPU) call(address uint16) {
	c.pushStack(c.PC)
	c.PC = address
}

// jumpRelative jumps by the signed offset relative to the address
// of the next instruction.
//
//	JR e
func (c *CPU) jumpRelative(offset uint8) {
	c.PC = uint16(int32(c.PC) + int32(int8(offset)))
	c.tickCycle()
}

// jumpAbsolute jumps to the given address.
//
//	JP nn
func (c *CPU) jumpAbsolute(address uint16) {
	c.PC = address
	c.tickCycle()
}

// ret pops the return address off the stack and jumps to it.
//
//	RET
func (c *CPU) ret() {
	c.PC = c.popStack()
	c.tickCycle()
}

func init() {
	DefineInstruction(0x18, "JR r8", 12, func(c *CPU) { c.jumpRelative(c.readOperand()) })
	DefineInstruction(0xC3, "JP a16", 16, func(c *CPU) { c.jumpAbsolute(c.readOperand16()) })
	DefineInstruction(0xE9, "JP (HL)", 4, func(c *CPU) { c.PC = c.HL.Uint16() })
	DefineInstruction(0xCD, "CALL a16", 24, func(c *CPU) { c.call(c.readOperand16()) })
	DefineInstruction(0xC9, "RET", 16, func(c *CPU) { c.ret() })
	DefineInstruction(0xD9, "RETI", 16, func(c *CPU) {
		c.ret()
		c.IRQ.IME = true
	})

	for cc := uint8(0); cc < 4; cc++ {
		cc := cc
		name := conditionNames[cc]

		DefineInstruction(0x20+cc<<3, fmt.Sprintf("JR %s, r8", name), 8, func(c *CPU) {
			offset := c.readOperand()
			if c.condition(cc) {
				c.jumpRelative(offset)
			}
		})
		DefineInstruction(0xC2+cc<<3, fmt.Sprintf("JP %s, a16", name), 12, func(c *CPU) {
			address := c.readOperand16()
			if c.condition(cc) {
				c.jumpAbsolute(address)
			}
		})
		DefineInstruction(0xC4+cc<<3, fmt.Sprintf("CALL %s, a16", name), 12, func(c *CPU) {
			address := c.readOperand16()
			if c.condition(cc) {
				c.call(address)
			}
		})
		DefineInstruction(0xC0+cc<<3, fmt.Sprintf("RET %s", name), 8, func(c *CPU) {
			c.tickCycle()
			if c.condition(cc) {
				c.ret()
			}
		})
	}

	generateRSTInstructions()
	generateStackInstructions()
}

// generateRSTInstructions defines RST n, which calls one of the
// 8 fixed vectors 0x00, 0x08, ... 0x38.
func generateRSTInstructions() {
	for n := uint8(0); n < 8; n++ {
		vector := uint16(n) << 3
		DefineInstruction(0xC7+n<<3, fmt.Sprintf("RST %02XH", vector), 16, func(c *CPU) {
			c.call(vector)
		})
	}
}

// generateStackInstructions defines PUSH and POP for BC, DE, HL and
// AF. Popping into AF clears the lower nibble of F.
func generateStackInstructions() {
	pairs := [4]struct {
		name string
		get  func(c *CPU) *RegisterPair
	}{
		{"BC", func(c *CPU) *RegisterPair { return c.BC }},
		{"DE", func(c *CPU) *RegisterPair { return c.DE }},
		{"HL", func(c *CPU) *RegisterPair { return c.HL }},
		{"AF", func(c *CPU) *RegisterPair { return c.AF }},
	}
	for i, pair := range pairs {
		pair := pair
		DefineInstruction(0xC5+uint8(i)<<4, fmt.Sprintf("PUSH %s", pair.name), 16, func(c *CPU) {
			c.pushStack(pair.get(c).Uint16())
		})
		DefineInstruction(0xC1+uint8(i)<<4, fmt.Sprintf("POP %s", pair.name), 12, func(c *CPU) {
			pair.get(c).SetUint16(c.popStack())
			c.F &= 0xF0
		})
	}
}
