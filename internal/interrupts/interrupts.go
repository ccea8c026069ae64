package interrupts

import (
	"github.com/thelolagemann/dmgcore/internal/types"
)

const (
	// VBlankFlag is the VBlank interrupt flag (bit 0),
	// which is requested every time the PPU enters
	// VBlank mode.
	VBlankFlag = types.Bit0
	// LCDFlag is the LCD interrupt flag (bit 1), which
	// is requested by the LCD STAT register (types.STAT),
	// when certain conditions are met.
	LCDFlag = types.Bit1
	// TimerFlag is the Timer interrupt flag (bit 2),
	// which is requested when the timer overflows,
	// (types.TIMA > 0xFF).
	TimerFlag = types.Bit2
	// SerialFlag is the Serial interrupt flag (bit 3).
	// Serial transfers are not modelled, so it is only
	// ever set by software.
	SerialFlag = types.Bit3
	// JoypadFlag is the Joypad interrupt Flag (bit 4),
	// which is requested when a button is pressed.
	JoypadFlag = types.Bit4
)

// vectors holds the handler address of each interrupt,
// indexed by its bit in the Flag register.
var vectors = [5]uint16{0x0040, 0x0048, 0x0050, 0x0058, 0x0060}

// Source is implemented by components that raise interrupt
// lines. PendingInterrupts returns the flags raised since the
// previous call, and lowers them.
type Source interface {
	PendingInterrupts() uint8
}

// Service is the interrupt service, used to request
// interrupts and to select the next interrupt to
// dispatch.
//
// When an interrupt is requested, the corresponding bit
// in the Flag register is set. When an interrupt is
// enabled, the corresponding bit in the Enable register
// is set. When an interrupt is requested and enabled,
// and the IME is set, the CPU will jump to the interrupt
// vector, and the corresponding bit in the Flag register
// will be cleared.
//
// The IME is set by the EI and RETI instructions, and
// cleared by DI and by dispatching an interrupt.
type Service struct {
	Flag   uint8 // interrupt Flag (types.IF)
	Enable uint8 // interrupt Enable (types.IE)
	IME    bool  // interrupt master enable
}

// NewService returns a new Service.
func NewService() *Service {
	return &Service{}
}

// HasInterrupts returns true if there are any interrupts
// that are requested and enabled.
func (s *Service) HasInterrupts() bool {
	return s.Enable&s.Flag&0x1F != 0
}

// Request requests the specified interrupt, by setting
// the corresponding bit in the Flag register.
func (s *Service) Request(flag uint8) {
	s.Flag |= flag
}

// Collect requests every interrupt the given sources
// have raised.
func (s *Service) Collect(sources ...Source) {
	for _, src := range sources {
		s.Flag |= src.PendingInterrupts()
	}
}

// Next returns the index of the highest priority interrupt
// that is both requested and enabled, clearing only its bit
// in the Flag register. VBlank has the highest priority and
// Joypad the lowest.
func (s *Service) Next() (uint8, bool) {
	for i := uint8(0); i < 5; i++ {
		flag := uint8(1 << i)
		if s.Flag&flag != 0 && s.Enable&flag != 0 {
			s.Flag &^= flag
			return i, true
		}
	}
	return 0, false
}

// Vector returns the handler address of interrupt i.
func Vector(i uint8) uint16 {
	return vectors[i]
}
