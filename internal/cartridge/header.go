package cartridge

import (
	"fmt"
	"strings"
)

// ramSizes maps the RAM size code at 0x0149 to the size of
// the cartridge RAM in bytes.
var ramSizes = [...]int{
	0x00: 0,
	0x01: 2 * 1024,
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

// Type is the cartridge type code found at 0x0147.
type Type uint8

const (
	ROM         Type = 0x00
	MBC1        Type = 0x01
	MBC1RAM     Type = 0x02
	MBC1RAMBATT Type = 0x03
)

func (t Type) String() string {
	switch t {
	case ROM:
		return "ROM ONLY"
	case MBC1:
		return "MBC1"
	case MBC1RAM:
		return "MBC1+RAM"
	case MBC1RAMBATT:
		return "MBC1+RAM+BATTERY"
	}
	return fmt.Sprintf("UNKNOWN (0x%02X)", uint8(t))
}

// Header represents the header of a cartridge, each cartridge has a header and is
// located at the address space 0x0100-0x014F. The header contains information about
// the cartridge itself, and the hardware it expects to run on.
type Header struct {
	// 0x0134-0x0143 - Title of the game
	Title string

	// 0x0147 - CartridgeType describes the memory bank controller and
	// any additional hardware present on the cartridge.
	CartridgeType Type

	// 0x0148 - ROMBanks is the number of 16KiB ROM banks, calculated
	// as 2 << n.
	ROMBanks int

	// 0x0149 - RAMSize is the size of the external RAM in bytes.
	RAMSize int

	// 0x014D - HeaderChecksum of bytes 0x0134-0x014C.
	HeaderChecksum uint8
	// ChecksumValid is set when HeaderChecksum matches the
	// checksum computed over the header.
	ChecksumValid bool
}

// parseHeader parses the header of the given ROM and returns a Header.
func parseHeader(rom []byte) (Header, error) {
	h := Header{}
	if len(rom) < 0x150 {
		return h, fmt.Errorf("cartridge: rom too small for header (%d bytes)", len(rom))
	}
	header := rom[0x100:0x150]

	h.Title = strings.TrimRight(string(header[0x34:0x44]), "\x00")
	h.CartridgeType = Type(header[0x47])

	if header[0x48] > 8 {
		return h, fmt.Errorf("cartridge: invalid rom size code 0x%02X", header[0x48])
	}
	h.ROMBanks = 2 << header[0x48]

	if int(header[0x49]) >= len(ramSizes) {
		return h, fmt.Errorf("cartridge: invalid ram size code 0x%02X", header[0x49])
	}
	h.RAMSize = ramSizes[header[0x49]]
	h.HeaderChecksum = header[0x4D]
	h.ChecksumValid = checksum(rom) == h.HeaderChecksum

	return h, nil
}

func checksum(rom []byte) uint8 {
	var x uint8
	for _, b := range rom[0x134:0x14D] {
		x = x - b - 1
	}
	return x
}

func (h *Header) String() string {
	return fmt.Sprintf("%s | Type: %s | ROM Banks: %d | RAM Size: %dkB", h.Title, h.CartridgeType, h.ROMBanks, h.RAMSize/1024)
}
