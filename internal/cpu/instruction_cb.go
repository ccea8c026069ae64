package cpu

import "fmt"

// cbOperations holds the 8 rotate and shift operations of the 0xCB
// prefixed table, in the order they are encoded in bits 3-5 of the
// opcode.
var cbOperations = [8]struct {
	name string
	fn   func(c *CPU, n uint8) uint8
}{
	{"RLC", (*CPU).rotateLeftCarry},
	{"RRC", (*CPU).rotateRightCarry},
	{"RL", (*CPU).rotateLeftThroughCarry},
	{"RR", (*CPU).rotateRightThroughCarry},
	{"SLA", (*CPU).shiftLeftArithmetic},
	{"SRA", (*CPU).shiftRightArithmetic},
	{"SWAP", (*CPU).swap},
	{"SRL", (*CPU).shiftRightLogical},
}

func init() {
	for r := uint8(0); r < 8; r++ {
		r := r
		// register operations take 8 cycles including the prefix,
		// (HL) adds a read and a write
		cycles, bitCycles := uint8(8), uint8(8)
		if r == 6 {
			cycles, bitCycles = 16, 12
		}

		// 0x00 - 0x3F - rotates, shifts and swap
		for op := uint8(0); op < 8; op++ {
			shift := cbOperations[op]
			DefineInstructionCB(op<<3+r, fmt.Sprintf("%s %s", shift.name, registerNames[r]), cycles, func(c *CPU) {
				c.writeRegister(r, shift.fn(c, c.readRegister(r)))
			})
		}

		for b := uint8(0); b < 8; b++ {
			b := b
			// 0x40 - 0x7F - BIT b, r
			DefineInstructionCB(0x40+b<<3+r, fmt.Sprintf("BIT %d, %s", b, registerNames[r]), bitCycles, func(c *CPU) {
				c.testBit(c.readRegister(r), b)
			})
			// 0x80 - 0xBF - RES b, r
			DefineInstructionCB(0x80+b<<3+r, fmt.Sprintf("RES %d, %s", b, registerNames[r]), cycles, func(c *CPU) {
				c.writeRegister(r, c.clearBit(c.readRegister(r), b))
			})
			// 0xC0 - 0xFF - SET b, r
			DefineInstructionCB(0xC0+b<<3+r, fmt.Sprintf("SET %d, %s", b, registerNames[r]), cycles, func(c *CPU) {
				c.writeRegister(r, c.setBit(c.readRegister(r), b))
			})
		}
	}
}
