// Package cartridge provides the Cartridge interface and the
// MBC1 memory bank controller. The cartridge holds the game ROM
// and any external RAM.
package cartridge

// Cartridge represents a game cartridge mapped into 0x0000-0x7FFF
// and 0xA000-0xBFFF.
type Cartridge interface {
	Read(address uint16) (uint8, error)
	Write(address uint16, value uint8) error

	Header() Header
}

// New parses the header of rom and returns the cartridge for it.
// Every cartridge is driven by an MBC1 controller, which behaves
// as a plain ROM for images of two banks that never write to the
// banking window.
func New(rom []byte) (*MemoryBankedCartridge1, error) {
	header, err := parseHeader(rom)
	if err != nil {
		return nil, err
	}

	return NewMemoryBankedCartridge1(rom, header), nil
}
