package cpu

import (
	"github.com/thelolagemann/dmgcore/internal/types"
)

// dma copies 160 bytes from page source into OAM at 0xFE00. The
// transfer runs to completion before the CPU continues, with every
// read and write taking its usual 4 cycles. Only pages 0x80-0xDF
// can be used as a source.
func (c *CPU) dma(source uint8) {
	if source < 0x80 || source > 0xDF {
		c.fault(&types.ConfigError{Address: types.DMA, Value: source, Reason: "dma source must be within 0x80-0xDF"})
		return
	}

	base := uint16(source) << 8
	for i := uint16(0); i < 0xA0; i++ {
		c.writeByte(0xFE00|i, c.readByte(base|i))
	}
}
