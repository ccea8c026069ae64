package cpu

import "fmt"

// and performs a bitwise AND operation on n and the A Register.
//
//	AND n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func (c *CPU) and(n uint8) {
	c.A &= n
	c.setFlags(c.A == 0, false, true, false)
}

// or performs a bitwise OR operation on n and the A Register.
//
//	OR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) or(n uint8) {
	c.A |= n
	c.setFlags(c.A == 0, false, false, false)
}

// xor performs a bitwise XOR operation on n and the A Register.
//
//	XOR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) xor(n uint8) {
	c.A ^= n
	c.setFlags(c.A == 0, false, false, false)
}

// compare compares n to the A Register, by subtracting n from A
// and discarding the result.
//
//	CP n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) compare(n uint8) {
	c.setFlags(c.A == n, true, c.A&0x0F < n&0x0F, c.A < n)
}

// aluOperations holds the 8 accumulator operations, in the order
// they are encoded in bits 3-5 of the opcode.
var aluOperations = [8]struct {
	name string
	fn   func(c *CPU, n uint8)
}{
	{"ADD A,", func(c *CPU, n uint8) { c.add(n, false) }},
	{"ADC A,", func(c *CPU, n uint8) { c.add(n, true) }},
	{"SUB", func(c *CPU, n uint8) { c.sub(n, false) }},
	{"SBC A,", func(c *CPU, n uint8) { c.sub(n, true) }},
	{"AND", (*CPU).and},
	{"XOR", (*CPU).xor},
	{"OR", (*CPU).or},
	{"CP", (*CPU).compare},
}

func init() {
	for op := uint8(0); op < 8; op++ {
		alu := aluOperations[op]

		// 0x80 - 0xBF - ALU A, r
		for r := uint8(0); r < 8; r++ {
			r := r
			cycles := uint8(4)
			if r == 6 {
				cycles = 8
			}
			DefineInstruction(0x80+op<<3+r, fmt.Sprintf("%s %s", alu.name, registerNames[r]), cycles, func(c *CPU) {
				alu.fn(c, c.readRegister(r))
			})
		}

		// 0xC6, 0xCE, ... 0xFE - ALU A, d8
		DefineInstruction(0xC6+op<<3, fmt.Sprintf("%s d8", alu.name), 8, func(c *CPU) {
			alu.fn(c, c.readOperand())
		})
	}
}
