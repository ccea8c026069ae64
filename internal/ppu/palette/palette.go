// Package palette maps background colour numbers to the four
// DMG shades, and shades to host colours.
package palette

// The four shades a pixel can take, from lightest to darkest.
const (
	White     uint8 = 0xFF
	LightGrey uint8 = 0xAA
	DarkGrey  uint8 = 0x55
	Black     uint8 = 0x00
)

var shades = [4]uint8{White, LightGrey, DarkGrey, Black}

// Shade maps colour number c (0-3) through the palette register
// pal, where bits 2c+1..2c hold the shade index for c.
func Shade(c, pal uint8) uint8 {
	return shades[(pal>>(c<<1))&0x03]
}

const (
	// Greyscale is the default greyscale palette.
	Greyscale = iota
	// Green is the green palette which attempts to emulate
	// the original colour palette as it would have appeared
	// on the original Game Boy.
	Green
	// Red is a red palette.
	Red
	// Yellow is a yellow palette.
	Yellow
)

// Palette represents a palette. A palette is an array of 4 RGB values,
// that can be used to represent a colour.
type Palette struct {
	Colors [4][3]uint8
}

// Palettes is a list of all available palettes.
var Palettes = []Palette{
	// Greyscale
	{
		Colors: [4][3]uint8{
			{0xFF, 0xFF, 0xFF},
			{0xAA, 0xAA, 0xAA},
			{0x55, 0x55, 0x55},
			{0x00, 0x00, 0x00},
		},
	},
	// Green
	{
		Colors: [4][3]uint8{
			{0x9B, 0xBC, 0x0F},
			{0x8B, 0xAC, 0x0F},
			{0x30, 0x62, 0x30},
			{0x0F, 0x38, 0x0F},
		},
	},
	// Red
	{
		Colors: [4][3]uint8{
			{0xFF, 0x00, 0x00},
			{0xCC, 0x00, 0x00},
			{0x77, 0x00, 0x00},
			{0x00, 0x00, 0x00},
		},
	},
	// Yellow
	{
		Colors: [4][3]uint8{
			{0xFF, 0xFF, 0x00},
			{0xCC, 0xCC, 0x00},
			{0x77, 0x77, 0x00},
			{0x00, 0x00, 0x00},
		},
	},
}

// Get returns palette i, falling back to Greyscale when i
// is out of range.
func Get(i int) Palette {
	if i < 0 || i >= len(Palettes) {
		return Palettes[Greyscale]
	}
	return Palettes[i]
}

// Colour returns the RGB colour of shade.
func (p Palette) Colour(shade uint8) [3]uint8 {
	switch shade {
	case White:
		return p.Colors[0]
	case LightGrey:
		return p.Colors[1]
	case DarkGrey:
		return p.Colors[2]
	}
	return p.Colors[3]
}

// Colourise converts a frame of shades into packed RGBA pixels.
// dst must hold at least 4*len(frame) bytes.
func (p Palette) Colourise(dst, frame []uint8) {
	for i, s := range frame {
		c := p.Colour(s)
		dst[i*4] = c[0]
		dst[i*4+1] = c[1]
		dst[i*4+2] = c[2]
		dst[i*4+3] = 0xFF
	}
}
