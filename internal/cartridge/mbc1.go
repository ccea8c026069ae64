package cartridge

import (
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// MemoryBankedCartridge1 represents a MemoryBankedCartridge1 cartridge. This cartridge type
// has up to 2MiB of ROM and 32KiB of external RAM, selected through two bank latches.
type MemoryBankedCartridge1 struct {
	rom      []byte
	romBanks int

	ram        []byte
	ramEnabled bool

	lowerBank uint8 // 5-bit bank latch (0x2000-0x3FFF)
	upperBank uint8 // 2-bit bank latch (0x4000-0x5FFF)
	ramMode   bool  // banking mode (0x6000-0x7FFF)

	header Header

	// Log receives bank switching at the debug level.
	Log log.Logger
}

// NewMemoryBankedCartridge1 returns a new MemoryBankedCartridge1 cartridge.
func NewMemoryBankedCartridge1(rom []byte, header Header) *MemoryBankedCartridge1 {
	return &MemoryBankedCartridge1{
		rom:      rom,
		romBanks: header.ROMBanks,
		ram:      make([]byte, header.RAMSize),
		header:   header,
		Log:      log.NewNullLogger(),
	}
}

// Header returns the parsed cartridge header.
func (m *MemoryBankedCartridge1) Header() Header {
	return m.header
}

// ROMBank returns the bank mapped into 0x4000-0x7FFF. In ROM
// banking mode the upper latch supplies bits 5-6 of the bank
// number. Banks 0x00, 0x20, 0x40 and 0x60 can never be selected,
// the controller maps them onto the following bank instead.
func (m *MemoryBankedCartridge1) ROMBank() int {
	bank := int(m.lowerBank)
	if !m.ramMode {
		bank |= int(m.upperBank) << 5
	}
	switch bank {
	case 0x00, 0x20, 0x40, 0x60:
		bank++
	}
	return bank & (m.romBanks - 1)
}

// ramAddress returns the offset into the cartridge RAM for address.
func (m *MemoryBankedCartridge1) ramAddress(address uint16) int {
	bank := 0
	if m.ramMode {
		bank = int(m.upperBank)
	}
	return (int(address&0x1FFF) + 0x2000*bank) % len(m.ram)
}

// Read returns the value from the cartridges ROM or RAM, depending on the bank
// selected.
func (m *MemoryBankedCartridge1) Read(address uint16) (uint8, error) {
	switch {
	case address < 0x4000:
		return m.romAt(int(address)), nil // first bank is always fixed
	case address < 0x8000:
		return m.romAt(int(address&0x3FFF) + 0x4000*m.ROMBank()), nil
	case address >= 0xA000 && address < 0xC000:
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF, nil
		}
		return m.ram[m.ramAddress(address)], nil
	}

	return 0, &types.AddressError{Component: "mbc1", Address: address}
}

// romAt returns the ROM byte at offset, or 0xFF when the image is
// shorter than its header claims.
func (m *MemoryBankedCartridge1) romAt(offset int) uint8 {
	if offset >= len(m.rom) {
		return 0xFF
	}
	return m.rom[offset]
}

// Write updates the bank latches, or writes to the selected RAM bank.
func (m *MemoryBankedCartridge1) Write(address uint16, value uint8) error {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		m.lowerBank = value & 0x1F
		m.Log.Debugf("mbc1: switched to ROM bank %d", m.ROMBank())
	case address < 0x6000:
		m.upperBank = value & 0x03
		m.Log.Debugf("mbc1: upper bank latch set to %d", m.upperBank)
	case address < 0x8000:
		m.ramMode = value&0x01 == 0x01
	case address >= 0xA000 && address < 0xC000:
		if m.ramEnabled && len(m.ram) > 0 {
			m.ram[m.ramAddress(address)] = value
		}
	default:
		return &types.AddressError{Component: "mbc1", Address: address, Write: true}
	}
	return nil
}
