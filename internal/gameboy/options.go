package gameboy

import (
	"io"

	"github.com/thelolagemann/dmgcore/internal/ppu/palette"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance.
type Opt func(gb *GameBoy)

// WithLogger sets the logger used by the GameBoy and
// the components that log.
func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
		gb.MMU.Log = log
		gb.Cartridge.Log = log
	}
}

// WithSerialOutput sends every byte written to the serial data
// register (types.SB) to w. Test ROMs report their results this way.
func WithSerialOutput(w io.Writer) Opt {
	return func(gb *GameBoy) {
		gb.MMU.Serial = w
	}
}

// WithPalette sets the palette used to colourise frames, see
// palette.Palettes.
func WithPalette(i int) Opt {
	return func(gb *GameBoy) {
		gb.paletteIndex = i
		gb.Palette = palette.Get(i)
	}
}

// Speed scales the rate at which Run emulates frames. A speed
// of 2 runs twice as fast as the hardware.
func Speed(speed float64) Opt {
	return func(gb *GameBoy) {
		if speed > 0 {
			gb.speed = speed
		}
	}
}
