package ppu

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
)

const (
	// ScreenWidth is the width of the screen in pixels.
	ScreenWidth = 160
	// ScreenHeight is the height of the screen in pixels.
	ScreenHeight = 144
)

const (
	// ModeHBlank (Mode 0) - Horizontal Blanking Period
	//
	// 	Duration 204 dots
	//	- Allows CPU access to VRAM/OAM
	// 	- STAT interrupt available if enabled via STAT.3
	ModeHBlank = iota

	// ModeVBlank (Mode 1) - Vertical Blanking Period
	//
	//	Duration 4560 dots (10 lines)
	//	- Allows full CPU access to VRAM/OAM
	//	- VBlank interrupt requested on entry
	//	- STAT interrupt available if enabled via STAT.4
	//	- Active during LY 144-153
	ModeVBlank

	// ModeOAM (Mode 2) - OAM Scan
	//
	//	Duration: 80 dots
	//	- Locks OAM bus
	//	- STAT interrupt available if enabled via STAT.5
	//	- Occurs at start of each line
	ModeOAM

	// ModeVRAM (Mode 3) - Pixel Transfer
	//
	//	Duration: 172 dots
	//	- Locks both OAM and VRAM buses
	//	- The scanline is rendered on entry
	ModeVRAM
)

// Mode durations in cycles.
const (
	oamCycles    = 80
	vramCycles   = 172
	hblankCycles = 204

	// LineCycles is the length of one scanline.
	LineCycles = oamCycles + vramCycles + hblankCycles
	// Lines is the number of scanlines in a frame, including
	// the 10 lines of VBlank.
	Lines = 154
	// FrameCycles is the length of one frame.
	FrameCycles = LineCycles * Lines
)

// LCDC bits.
const (
	lcdcBGEnable     = types.Bit0
	lcdcOBJEnable    = types.Bit1
	lcdcBGTileMap    = types.Bit3
	lcdcTileData     = types.Bit4
	lcdcWindowEnable = types.Bit5
	lcdcWindowMap    = types.Bit6
	lcdcEnable       = types.Bit7
)

// STAT bits.
const (
	statCoincidence = types.Bit2
	statHBlankInt   = types.Bit3
	statVBlankInt   = types.Bit4
	statOAMInt      = types.Bit5
	statLYCInt      = types.Bit6
)

// Priority classifies a background pixel for sprite ordering.
type Priority uint8

const (
	// Color0 marks a background pixel of colour number 0, which
	// objects are drawn over.
	Color0 Priority = iota
	// Color123 marks a background pixel of colour number 1-3.
	Color123
)

// PPU implements the Game Boy's (P)ixel (P)rocessing (U)nit as
// a scanline renderer driven by a 4 mode state machine.
//
// References:
//   - [Pan Docs](https://gbdev.io/pandocs/Graphics.html)
//   - [Hacktix GBEDG](https://hacktix.github.io/GBEDG/ppu/)
type PPU struct {
	vram [0x2000]uint8
	oam  [0xA0]uint8

	lcdc, stat uint8
	scy, scx   uint8 // Background viewport position
	ly, lyc    uint8
	bgp        uint8
	obp0, obp1 uint8
	wy, wx     uint8 // Window Position

	// counter holds the cycles spent in the current mode.
	counter uint16

	// Interrupt lines
	vblankInt bool
	statInt   bool

	scanline   [ScreenWidth]uint8
	bgPriority [ScreenWidth]Priority
	frame      [ScreenWidth * ScreenHeight]uint8
}

// New returns a PPU with the LCD enabled, at the start of
// the OAM scan of line 0.
func New() *PPU {
	return &PPU{
		lcdc: lcdcEnable,
		stat: ModeOAM,
	}
}

// Mode returns the current mode reported in STAT.
func (p *PPU) Mode() uint8 {
	return p.stat & 0x03
}

func (p *PPU) setMode(mode uint8) {
	p.stat = p.stat&0xF8 | mode
}

// Frame returns a copy of the framebuffer, one shade per pixel.
func (p *PPU) Frame() [ScreenWidth * ScreenHeight]uint8 {
	return p.frame
}

// BackgroundPriority returns the priority classification of the
// last rendered scanline.
func (p *PPU) BackgroundPriority() [ScreenWidth]Priority {
	return p.bgPriority
}

// PendingInterrupts implements interrupts.Source.
func (p *PPU) PendingInterrupts() uint8 {
	var flags uint8
	if p.vblankInt {
		flags |= interrupts.VBlankFlag
	}
	if p.statInt {
		flags |= interrupts.LCDFlag
	}
	p.vblankInt, p.statInt = false, false
	return flags
}

// Tick advances the PPU by cycles. Timing is frozen while the
// LCD is disabled.
func (p *PPU) Tick(cycles uint16) {
	if p.lcdc&lcdcEnable == 0 {
		return
	}
	p.counter += cycles

	for {
		switch p.Mode() {
		case ModeOAM:
			if p.counter < oamCycles {
				return
			}
			p.counter -= oamCycles
			p.setMode(ModeVRAM)
			p.renderScanline()
		case ModeVRAM:
			if p.counter < vramCycles {
				return
			}
			p.counter -= vramCycles
			p.setMode(ModeHBlank)
			p.checkModeInterrupt()
		case ModeHBlank:
			if p.counter < hblankCycles {
				return
			}
			p.counter -= hblankCycles
			p.ly++
			if p.ly >= ScreenHeight {
				p.setMode(ModeVBlank)
				p.vblankInt = true
			} else {
				p.setMode(ModeOAM)
			}
			p.checkLYC()
			p.checkModeInterrupt()
		case ModeVBlank:
			if p.counter < LineCycles {
				return
			}
			p.counter -= LineCycles
			p.ly++
			if p.ly >= Lines {
				p.ly = 0
				p.setMode(ModeOAM)
				p.checkModeInterrupt()
			}
			p.checkLYC()
		}
	}
}

// checkModeInterrupt raises the STAT interrupt if the source
// for the current mode is enabled.
func (p *PPU) checkModeInterrupt() {
	switch p.Mode() {
	case ModeHBlank:
		p.statInt = p.statInt || p.stat&statHBlankInt != 0
	case ModeVBlank:
		p.statInt = p.statInt || p.stat&statVBlankInt != 0
	case ModeOAM:
		p.statInt = p.statInt || p.stat&statOAMInt != 0
	}
}

// checkLYC updates the coincidence flag, raising the STAT
// interrupt on a match if enabled.
func (p *PPU) checkLYC() {
	if p.ly != p.lyc {
		p.stat &^= statCoincidence
		return
	}
	p.stat |= statCoincidence
	if p.stat&statLYCInt != 0 {
		p.statInt = true
	}
}

// Read returns the value at address from VRAM, OAM or one of
// the LCD registers.
func (p *PPU) Read(address uint16) (uint8, error) {
	switch {
	case address >= 0x8000 && address <= 0x9FFF:
		if p.Mode() == ModeVRAM {
			return 0xFF, nil
		}
		return p.vram[address&0x1FFF], nil
	case address >= 0xFE00 && address <= 0xFE9F:
		if !p.oamAccessible() {
			return 0xFF, nil
		}
		return p.oam[address&0xFF], nil
	}

	switch address {
	case types.LCDC:
		return p.lcdc, nil
	case types.STAT:
		return p.stat, nil
	case types.SCY:
		return p.scy, nil
	case types.SCX:
		return p.scx, nil
	case types.LY:
		return p.ly, nil
	case types.LYC:
		return p.lyc, nil
	case types.BGP:
		return p.bgp, nil
	case types.OBP0:
		return p.obp0, nil
	case types.OBP1:
		return p.obp1, nil
	case types.WY:
		return p.wy, nil
	case types.WX:
		return p.wx, nil
	}
	return 0, &types.AddressError{Component: "ppu", Address: address}
}

// Write sets the value at address in VRAM, OAM or one of the
// LCD registers. Writes to VRAM and OAM are dropped while the
// PPU holds the bus.
func (p *PPU) Write(address uint16, value uint8) error {
	switch {
	case address >= 0x8000 && address <= 0x9FFF:
		if p.Mode() != ModeVRAM {
			p.vram[address&0x1FFF] = value
		}
		return nil
	case address >= 0xFE00 && address <= 0xFE9F:
		if p.oamAccessible() {
			p.oam[address&0xFF] = value
		}
		return nil
	}

	switch address {
	case types.LCDC:
		if (p.lcdc^value)&lcdcEnable != 0 {
			p.ly = 0
			p.counter = 0
			if value&lcdcEnable != 0 {
				p.setMode(ModeOAM)
			} else {
				p.setMode(ModeHBlank)
			}
			p.checkModeInterrupt()
		}
		p.lcdc = value
	case types.STAT:
		// mode and coincidence bits are read only
		p.stat = value&0x78 | p.stat&0x07
	case types.SCY:
		p.scy = value
	case types.SCX:
		p.scx = value
	case types.LY:
		// read only
	case types.LYC:
		if p.lyc != value {
			p.lyc = value
			p.checkLYC()
		}
	case types.BGP:
		p.bgp = value
	case types.OBP0:
		p.obp0 = value
	case types.OBP1:
		p.obp1 = value
	case types.WY:
		p.wy = value
	case types.WX:
		p.wx = value
	default:
		return &types.AddressError{Component: "ppu", Address: address, Write: true}
	}
	return nil
}

func (p *PPU) oamAccessible() bool {
	return p.Mode() == ModeHBlank || p.Mode() == ModeVBlank
}
