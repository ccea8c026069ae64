// Package cpu provides an implementation of the Game Boy's Sharp LR35902
// CPU. Instructions are decoded through two dispatch tables of 256 entries,
// one for the base opcodes and one for opcodes prefixed with 0xCB.
package cpu

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
)

const (
	// ClockSpeed is the clock speed of the CPU.
	ClockSpeed = 4194304
)

// Register is an 8-bit CPU register.
type Register = types.Register

// RegisterPair is a pair of 8-bit CPU registers.
type RegisterPair = types.RegisterPair

// Bus is the memory the CPU reads and writes through.
type Bus interface {
	Read(address uint16) (uint8, error)
	Write(address uint16, value uint8) error
}

// Component is a piece of hardware clocked alongside the CPU,
// which may raise interrupts as it is advanced.
type Component interface {
	Tick(cycles uint16)
	interrupts.Source
}

// CPU represents the Gameboy CPU. It is responsible for executing instructions.
type CPU struct {
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// Registers contains the 8-bit registers, as well as the 16-bit register pairs.
	types.Registers

	IRQ *interrupts.Service

	bus    Bus
	timer  Component
	video  Component
	joypad interrupts.Source

	halted bool

	// currentTick holds the cycles spent by the step in progress.
	currentTick uint16
	// err holds the first error raised by the bus or decoder. Once
	// set, the CPU refuses to step.
	err error
}

// NewCPU returns a CPU in the state the boot ROM leaves it in,
// about to execute the cartridge entry point at 0x0100.
func NewCPU(bus Bus, irq *interrupts.Service, timer, video Component, joypad interrupts.Source) *CPU {
	c := &CPU{
		bus:    bus,
		IRQ:    irq,
		timer:  timer,
		video:  video,
		joypad: joypad,
	}
	c.Registers.Bind()

	c.AF.SetUint16(0x01B0)
	c.BC.SetUint16(0x0013)
	c.DE.SetUint16(0x00D8)
	c.HL.SetUint16(0x014D)
	c.SP = 0xFFFE
	c.PC = 0x0100

	return c
}

// Halted reports whether the CPU is waiting for an interrupt.
func (c *CPU) Halted() bool {
	return c.halted
}

// Err returns the error that stopped the CPU, if any.
func (c *CPU) Err() error {
	return c.err
}

// Step executes a single instruction, or a single idle cycle when
// halted, advances the timer and PPU by the cycles it took and then
// services at most one interrupt. It returns the number of cycles
// consumed. Any error is fatal, and will be returned by every
// subsequent call.
func (c *CPU) Step() (uint16, error) {
	if c.err != nil {
		return 0, c.err
	}

	c.currentTick = 0
	if c.halted {
		c.tickCycle()
	} else {
		c.runInstruction(c.readInstruction())
	}
	if c.err != nil {
		return c.currentTick, c.err
	}

	total := c.currentTick
	c.update(c.currentTick)

	if c.IRQ.IME && c.IRQ.HasInterrupts() {
		c.currentTick = 0
		c.executeInterrupt()
		if c.err != nil {
			return total + c.currentTick, c.err
		}
		c.update(c.currentTick)
		total += c.currentTick
	}

	return total, nil
}

// update advances the components by cycles and collects any
// interrupts they raised.
func (c *CPU) update(cycles uint16) {
	if cycles == 0 {
		return
	}
	c.timer.Tick(cycles)
	c.video.Tick(cycles)
	c.IRQ.Collect(c.video, c.timer, c.joypad)
}

// runInstruction executes the instruction for opcode.
func (c *CPU) runInstruction(opcode uint8) {
	instruction := InstructionSet[opcode]
	if instruction.fn == nil {
		c.fault(&types.DecodeError{Opcode: opcode, PC: c.PC - 1})
		return
	}
	instruction.fn(c)
}

// runCBInstruction executes the 0xCB prefixed instruction for opcode.
func (c *CPU) runCBInstruction(opcode uint8) {
	instruction := InstructionSetCB[opcode]
	if instruction.fn == nil {
		c.fault(&types.DecodeError{Opcode: opcode, Prefixed: true, PC: c.PC - 2})
		return
	}
	instruction.fn(c)
}

// executeInterrupt services the highest priority pending interrupt.
// Servicing takes 20 cycles: 8 internal cycles, followed by pushing
// PC and jumping to the interrupt vector.
func (c *CPU) executeInterrupt() {
	i, ok := c.IRQ.Next()
	if !ok {
		return
	}
	c.IRQ.IME = false
	c.halted = false

	c.tickCycle()
	c.tickCycle()
	c.call(interrupts.Vector(i))
}

// fault records err as the reason the CPU stopped. Only the
// first fault is kept.
func (c *CPU) fault(err error) {
	if c.err == nil {
		c.err = err
	}
}

// tickCycle charges one machine cycle (4 clock cycles) to the
// step in progress.
func (c *CPU) tickCycle() {
	c.currentTick += 4
}

// readInstruction reads the next opcode and increments the program counter.
func (c *CPU) readInstruction() uint8 {
	opcode := c.readByte(c.PC)
	c.PC++
	return opcode
}

// readOperand reads the next 8-bit operand and increments the program counter.
func (c *CPU) readOperand() uint8 {
	value := c.readByte(c.PC)
	c.PC++
	return value
}

// readOperand16 reads the next two operands as a little endian 16-bit value.
func (c *CPU) readOperand16() uint16 {
	low := c.readOperand()
	high := c.readOperand()
	return uint16(high)<<8 | uint16(low)
}

// readByte reads a byte from the bus, taking 4 cycles.
func (c *CPU) readByte(address uint16) uint8 {
	c.tickCycle()
	value, err := c.bus.Read(address)
	if err != nil {
		c.fault(err)
	}
	return value
}

// writeByte writes a byte to the bus, taking 4 cycles. A write to
// types.DMA starts an OAM DMA transfer before the write completes.
func (c *CPU) writeByte(address uint16, value uint8) {
	if address == types.DMA {
		c.dma(value)
	} else if err := c.bus.Write(address, value); err != nil {
		c.fault(err)
	}
	c.tickCycle()
}

// readRegister returns the register for index, using the encoding
// shared by most opcodes: B, C, D, E, H, L, (HL), A. Index 6
// reads from memory at HL.
func (c *CPU) readRegister(index uint8) uint8 {
	switch index {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		return c.readByte(c.HL.Uint16())
	}
	return c.A
}

// writeRegister sets the register for index, see readRegister.
func (c *CPU) writeRegister(index uint8, value uint8) {
	switch index {
	case 0:
		c.B = value
	case 1:
		c.C = value
	case 2:
		c.D = value
	case 3:
		c.E = value
	case 4:
		c.H = value
	case 5:
		c.L = value
	case 6:
		c.writeByte(c.HL.Uint16(), value)
	default:
		c.A = value
	}
}

// registerNames holds the names of the registers by index.
var registerNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
