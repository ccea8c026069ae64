// Package mmu provides the memory bus for the Game Boy. The MMU holds
// explicit references to each component mapped into the address space
// and routes every read and write to exactly one of them.
package mmu

import (
	"io"

	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/ram"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// IOBus is the interface that the MMU uses to communicate with the other
// components.
type IOBus interface {
	Read(address uint16) (uint8, error)
	Write(address uint16, value uint8) error
}

// MMU is the memory management unit for the Game Boy. It handles all
// memory reads and writes to the Game Boy's 64kB of memory, and
// delegates to the other components through the IOBus interface.
//
// Addresses without a handler read as 0 and discard writes.
type MMU struct {
	// 0x0000 - 0x7FFF - ROM (32kB)
	// 0xA000 - 0xBFFF - External RAM (8kB)
	Cart cartridge.Cartridge

	// 0x8000 - 0x9FFF - Video RAM (8kB)
	// 0xFE00 - 0xFE9F - Sprite Attribute Table (160B)
	// 0xFF40 - 0xFF45, 0xFF47 - 0xFF4B - LCD registers
	Video IOBus

	// 0xFF04 - 0xFF07 - Timer registers
	Timer IOBus

	// 0xFF00 - Joypad register
	Joypad IOBus

	// 0xFF0F - interrupt flag register
	// 0xFFFF - interrupt enable register
	IRQ *interrupts.Service

	// 0xC000 - 0xDFFF - Work RAM (8kB)
	wRAM *ram.RAM

	// 0xFF80 - 0xFFFE - Zero Page RAM (127B)
	zRAM *ram.RAM

	// Serial receives every byte written to types.SB.
	Serial io.Writer

	Log log.Logger
}

// NewMMU returns a new MMU routing to the given components.
func NewMMU(cart cartridge.Cartridge, video, timer, joypad IOBus, irq *interrupts.Service) *MMU {
	return &MMU{
		Cart:   cart,
		Video:  video,
		Timer:  timer,
		Joypad: joypad,
		IRQ:    irq,
		wRAM:   ram.NewRAM(0x2000),
		zRAM:   ram.NewRAM(0x7F),
		Serial: io.Discard,
		Log:    log.NewNullLogger(),
	}
}

// Read returns the value at the given address.
func (m *MMU) Read(address uint16) (uint8, error) {
	switch {
	case address <= 0x7FFF:
		return m.Cart.Read(address)
	case address <= 0x9FFF:
		return m.Video.Read(address)
	case address <= 0xBFFF:
		return m.Cart.Read(address)
	case address <= 0xDFFF:
		return m.wRAM.Read(address & 0x1FFF), nil
	case address >= 0xFE00 && address <= 0xFE9F:
		return m.Video.Read(address)
	case address >= 0xFF80 && address <= 0xFFFE:
		return m.zRAM.Read(address - 0xFF80), nil
	}

	switch address {
	case types.P1:
		return m.Joypad.Read(address)
	case types.DIV, types.TIMA, types.TMA, types.TAC:
		return m.Timer.Read(address)
	case types.IF:
		return m.IRQ.Flag, nil
	case types.LCDC, types.STAT, types.SCY, types.SCX, types.LY, types.LYC,
		types.BGP, types.OBP0, types.OBP1, types.WY, types.WX:
		return m.Video.Read(address)
	case types.IE:
		return m.IRQ.Enable, nil
	}

	return 0, nil
}

// Write writes the value to the given address. Writes to types.DMA
// are not handled here, as the transfer is driven by the CPU.
func (m *MMU) Write(address uint16, value uint8) error {
	switch {
	case address <= 0x7FFF:
		return m.Cart.Write(address, value)
	case address <= 0x9FFF:
		return m.Video.Write(address, value)
	case address <= 0xBFFF:
		return m.Cart.Write(address, value)
	case address <= 0xDFFF:
		m.wRAM.Write(address&0x1FFF, value)
		return nil
	case address >= 0xFE00 && address <= 0xFE9F:
		return m.Video.Write(address, value)
	case address >= 0xFF80 && address <= 0xFFFE:
		m.zRAM.Write(address-0xFF80, value)
		return nil
	}

	switch address {
	case types.P1:
		return m.Joypad.Write(address, value)
	case types.SB:
		if _, err := m.Serial.Write([]byte{value}); err != nil {
			m.Log.Errorf("serial: %v", err)
		}
	case types.DIV, types.TIMA, types.TMA, types.TAC:
		return m.Timer.Write(address, value)
	case types.IF:
		m.IRQ.Flag = value
	case types.LCDC, types.STAT, types.SCY, types.SCX, types.LY, types.LYC,
		types.BGP, types.OBP0, types.OBP1, types.WY, types.WX:
		return m.Video.Write(address, value)
	case types.IE:
		m.IRQ.Enable = value
	}

	return nil
}
