package ppu

import (
	"github.com/thelolagemann/dmgcore/internal/ppu/palette"
)

// tile holds the two bitplane bytes of one row of a tile.
type tile struct {
	low, high uint8
}

// colourNumber returns the 2-bit colour number at bit.
func (t tile) colourNumber(bit uint8) uint8 {
	return (t.high>>bit&1)<<1 | t.low>>bit&1
}

// renderScanline draws the current line into the framebuffer.
func (p *PPU) renderScanline() {
	if p.lcdc&lcdcBGEnable != 0 {
		p.renderBackground()
	}
	if p.lcdc&lcdcOBJEnable != 0 {
		p.renderSprites()
	}
	copy(p.frame[int(p.ly)*ScreenWidth:], p.scanline[:])
}

// renderBackground draws the background, switching to the window
// once the window origin is reached.
func (p *PPU) renderBackground() {
	y := p.scy + p.ly
	tileX, tileY := p.scx>>3, y>>3
	offsetX, offsetY := p.scx&7, y&7

	mapBase := p.tileMap(lcdcBGTileMap)
	t := p.fetchTile(mapBase, tileX, tileY, offsetY)

	for x := 0; x < ScreenWidth; x++ {
		if p.lcdc&lcdcWindowEnable != 0 && p.wy <= p.ly && int(p.wx) == x+7 {
			wy := p.ly - p.wy
			tileX, tileY = 0, wy>>3
			offsetX, offsetY = 0, wy&7
			mapBase = p.tileMap(lcdcWindowMap)
			t = p.fetchTile(mapBase, tileX, tileY, offsetY)
		}

		c := t.colourNumber(7 - offsetX)
		if c == 0 {
			p.bgPriority[x] = Color0
		} else {
			p.bgPriority[x] = Color123
		}
		p.scanline[x] = palette.Shade(c, p.bgp)

		offsetX++
		if offsetX == 8 {
			offsetX = 0
			tileX++
			t = p.fetchTile(mapBase, tileX, tileY, offsetY)
		}
	}
}

// renderSprites is a stub. Objects are not composited, the
// background priority of each pixel is left for when they are.
func (p *PPU) renderSprites() {}

// tileMap returns the VRAM offset of the tile map selected by
// the given LCDC bit.
func (p *PPU) tileMap(bit uint8) uint16 {
	if p.lcdc&bit != 0 {
		return 0x1C00
	}
	return 0x1800
}

// fetchTile reads row offsetY of the tile at (tileX, tileY) in
// the tile map at mapBase.
func (p *PPU) fetchTile(mapBase uint16, tileX, tileY, offsetY uint8) tile {
	tileNo := p.vram[mapBase|(uint16(tileX&0x1F)+uint16(tileY)<<5)]

	var addr uint16
	if p.lcdc&lcdcTileData != 0 {
		addr = uint16(tileNo) << 4
	} else {
		addr = uint16(0x1000 + int(int8(tileNo))<<4)
	}
	addr += uint16(offsetY) << 1

	return tile{low: p.vram[addr], high: p.vram[addr+1]}
}
