package cpu

import "fmt"

// loadRegister16 loads the next two operands into the register
// pair for index.
//
//	LD nn, d16
//	nn = BC, DE, HL, SP
func (c *CPU) loadRegister16(index uint8) {
	c.writePair(index, c.readOperand16())
}

// loadMemoryToRegister loads the value at the given memory address
// into the A Register.
//
//	LD A, (nn)
//	nn = BC, DE, HL+, HL-, a16
func (c *CPU) loadMemoryToRegister(address uint16) {
	c.A = c.readByte(address)
}

// loadRegisterToMemory loads the A Register into the given memory
// address.
//
//	LD (nn), A
//	nn = BC, DE, HL+, HL-, a16
func (c *CPU) loadRegisterToMemory(address uint16) {
	c.writeByte(address, c.A)
}

// loadRegisterToHardware loads the A Register into the hardware
// register at 0xFF00 + offset.
//
//	LDH (a8), A
//	LD (C), A
func (c *CPU) loadRegisterToHardware(offset uint8) {
	c.writeByte(0xFF00|uint16(offset), c.A)
}

// loadHardwareToRegister loads the hardware register at 0xFF00 +
// offset into the A Register.
//
//	LDH A, (a8)
//	LD A, (C)
func (c *CPU) loadHardwareToRegister(offset uint8) {
	c.A = c.readByte(0xFF00 | uint16(offset))
}

// hlPostIncrement returns HL, incrementing it afterwards.
func (c *CPU) hlPostIncrement() uint16 {
	hl := c.HL.Uint16()
	c.HL.SetUint16(hl + 1)
	return hl
}

// hlPostDecrement returns HL, decrementing it afterwards.
func (c *CPU) hlPostDecrement() uint16 {
	hl := c.HL.Uint16()
	c.HL.SetUint16(hl - 1)
	return hl
}

func init() {
	// 0x40 - 0x7F - LD r, r'
	generateLoadRegisterToRegisterInstructions()

	for r := uint8(0); r < 8; r++ {
		r := r
		cycles := uint8(8)
		if r == 6 {
			cycles = 12
		}
		DefineInstruction(0x06+r<<3, fmt.Sprintf("LD %s, d8", registerNames[r]), cycles, func(c *CPU) {
			c.writeRegister(r, c.readOperand())
		})
	}

	for i := uint8(0); i < 4; i++ {
		i := i
		DefineInstruction(0x01+i<<4, fmt.Sprintf("LD %s, d16", pairNames[i]), 12, func(c *CPU) {
			c.loadRegister16(i)
		})
	}

	DefineInstruction(0x02, "LD (BC), A", 8, func(c *CPU) { c.loadRegisterToMemory(c.BC.Uint16()) })
	DefineInstruction(0x12, "LD (DE), A", 8, func(c *CPU) { c.loadRegisterToMemory(c.DE.Uint16()) })
	DefineInstruction(0x22, "LD (HL+), A", 8, func(c *CPU) { c.loadRegisterToMemory(c.hlPostIncrement()) })
	DefineInstruction(0x32, "LD (HL-), A", 8, func(c *CPU) { c.loadRegisterToMemory(c.hlPostDecrement()) })
	DefineInstruction(0x0A, "LD A, (BC)", 8, func(c *CPU) { c.loadMemoryToRegister(c.BC.Uint16()) })
	DefineInstruction(0x1A, "LD A, (DE)", 8, func(c *CPU) { c.loadMemoryToRegister(c.DE.Uint16()) })
	DefineInstruction(0x2A, "LD A, (HL+)", 8, func(c *CPU) { c.loadMemoryToRegister(c.hlPostIncrement()) })
	DefineInstruction(0x3A, "LD A, (HL-)", 8, func(c *CPU) { c.loadMemoryToRegister(c.hlPostDecrement()) })

	DefineInstruction(0x08, "LD (a16), SP", 20, func(c *CPU) {
		address := c.readOperand16()
		c.writeByte(address, uint8(c.SP))
		c.writeByte(address+1, uint8(c.SP>>8))
	})

	DefineInstruction(0xE0, "LDH (a8), A", 12, func(c *CPU) { c.loadRegisterToHardware(c.readOperand()) })
	DefineInstruction(0xF0, "LDH A, (a8)", 12, func(c *CPU) { c.loadHardwareToRegister(c.readOperand()) })
	DefineInstruction(0xE2, "LD (C), A", 8, func(c *CPU) { c.loadRegisterToHardware(c.C) })
	DefineInstruction(0xF2, "LD A, (C)", 8, func(c *CPU) { c.loadHardwareToRegister(c.C) })
	DefineInstruction(0xEA, "LD (a16), A", 16, func(c *CPU) { c.loadRegisterToMemory(c.readOperand16()) })
	DefineInstruction(0xFA, "LD A, (a16)", 16, func(c *CPU) { c.loadMemoryToRegister(c.readOperand16()) })

	DefineInstruction(0xF8, "LD HL, SP+r8", 12, func(c *CPU) {
		c.HL.SetUint16(c.addSPSigned())
		c.tickCycle()
	})
	DefineInstruction(0xF9, "LD SP, HL", 8, func(c *CPU) {
		c.SP = c.HL.Uint16()
		c.tickCycle()
	})
}

// generateLoadRegisterToRegisterInstructions defines LD r, r' for
// every pair of registers, skipping 0x76 (LD (HL), (HL)) which
// encodes HALT.
func generateLoadRegisterToRegisterInstructions() {
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			if dst == 6 && src == 6 {
				continue
			}
			dst, src := dst, src
			cycles := uint8(4)
			if dst == 6 || src == 6 {
				cycles = 8
			}
			DefineInstruction(0x40+dst<<3+src, fmt.Sprintf("LD %s, %s", registerNames[dst], registerNames[src]), cycles, func(c *CPU) {
				c.writeRegister(dst, c.readRegister(src))
			})
		}
	}
}
