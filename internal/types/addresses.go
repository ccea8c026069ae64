package types

// Hardware register addresses in the 0xFF00 - 0xFFFF region.
const (
	// P1 is the joypad register.
	P1 uint16 = 0xFF00
	// SB is the serial transfer data register. Writes are
	// forwarded to the serial diagnostic output.
	SB uint16 = 0xFF01
	// DIV is the divider register, the upper byte of the
	// internal timer counter.
	DIV uint16 = 0xFF04
	// TIMA is the timer counter.
	TIMA uint16 = 0xFF05
	// TMA is the timer modulo, loaded into TIMA on overflow.
	TMA uint16 = 0xFF06
	// TAC is the timer control register.
	TAC uint16 = 0xFF07
	// IF is the interrupt flag register.
	IF uint16 = 0xFF0F
	// LCDC is the LCD control register.
	LCDC uint16 = 0xFF40
	// STAT is the LCD status register.
	STAT uint16 = 0xFF41
	// SCY is the background scroll Y register.
	SCY uint16 = 0xFF42
	// SCX is the background scroll X register.
	SCX uint16 = 0xFF43
	// LY is the current scanline.
	LY uint16 = 0xFF44
	// LYC is the scanline compare register.
	LYC uint16 = 0xFF45
	// DMA starts an OAM DMA transfer from page (value << 8).
	DMA uint16 = 0xFF46
	// BGP is the background palette.
	BGP uint16 = 0xFF47
	// OBP0 is object palette 0.
	OBP0 uint16 = 0xFF48
	// OBP1 is object palette 1.
	OBP1 uint16 = 0xFF49
	// WY is the window Y position.
	WY uint16 = 0xFF4A
	// WX is the window X position plus 7.
	WX uint16 = 0xFF4B
	// IE is the interrupt enable register.
	IE uint16 = 0xFFFF
)
