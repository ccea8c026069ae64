package cpu

import (
	"github.com/thelolagemann/dmgcore/internal/types"
)

// Instruction represents a single instruction of the CPU.
type Instruction struct {
	name   string     // name of the instruction
	cycles uint8      // cycles taken, when a branch is not taken
	fn     func(*CPU) // fn called when executing the instruction
}

// Name returns the mnemonic of the instruction.
func (i Instruction) Name() string {
	return i.name
}

// Cycles returns the number of cycles the instruction takes. For
// conditional branches this is the cost when the branch is not taken.
func (i Instruction) Cycles() uint8 {
	return i.cycles
}

// Defined reports whether the instruction has any behaviour.
func (i Instruction) Defined() bool {
	return i.fn != nil
}

// InstructionSet holds the first 256 instructions. Opcodes without
// an entry raise a types.DecodeError when executed.
var InstructionSet [256]Instruction

// InstructionSetCB holds the 256 instructions prefixed by 0xCB.
var InstructionSetCB [256]Instruction

// DefineInstruction defines the instruction in the InstructionSet,
// with the provided opcode.
func DefineInstruction(opcode uint8, name string, cycles uint8, fn func(*CPU)) {
	InstructionSet[opcode] = Instruction{
		name:   name,
		cycles: cycles,
		fn:     fn,
	}
}

// DefineInstructionCB defines the instruction in the InstructionSetCB,
// with the provided opcode. cycles includes the prefix.
func DefineInstructionCB(opcode uint8, name string, cycles uint8, fn func(*CPU)) {
	InstructionSetCB[opcode] = Instruction{
		name:   name,
		cycles: cycles,
		fn:     fn,
	}
}

func init() {
	DefineInstruction(0x00, "NOP", 4, func(c *CPU) {})
	DefineInstruction(0x10, "STOP", 8, func(c *CPU) {
		pc := c.PC - 1
		if c.readOperand() != 0 {
			c.fault(&types.DecodeError{Opcode: 0x10, PC: pc})
		}
	})
	DefineInstruction(0x76, "HALT", 4, func(c *CPU) {
		if c.IRQ.IME {
			c.halted = true
		}
	})
	DefineInstruction(0xF3, "DI", 4, func(c *CPU) { c.IRQ.IME = false })
	DefineInstruction(0xFB, "EI", 4, func(c *CPU) { c.IRQ.IME = true })
	DefineInstruction(0xCB, "PREFIX CB", 4, func(c *CPU) {
		c.runCBInstruction(c.readOperand())
	})
}
