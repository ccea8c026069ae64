// Package timer provides an implementation of the Game Boy
// timer. It is used to generate interrupts at a specific
// frequency. The frequency can be configured using the
// types.TAC register.
package timer

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// shifts holds the position of the counter bit whose toggling
// increments TIMA, indexed by TAC bits 0-1.
//
//	00 = every 1024 cycles (bit 10)
//	01 = every 16 cycles   (bit 4)
//	10 = every 64 cycles   (bit 6)
//	11 = every 256 cycles  (bit 8)
var shifts = [4]uint16{10, 4, 6, 8}

// Controller is a timer controller. It is used to generate
// interrupts at a specific frequency. The frequency can be
// configured using the types.TAC register.
type Controller struct {
	// counter is the free running 16-bit counter. Its upper
	// byte is exposed as types.DIV.
	counter uint16

	tima uint8
	tma  uint8
	tac  uint8

	irq bool
}

// NewController returns a new timer controller.
func NewController() *Controller {
	return &Controller{}
}

// Tick advances the timer by ticks cycles. The number of
// times the selected counter bit toggled is added to TIMA. On
// overflow TIMA is reloaded from TMA, carrying any increments
// past the overflow, and the timer interrupt is raised.
func (c *Controller) Tick(ticks uint16) {
	prev := c.counter
	c.counter += ticks

	if c.tac&types.Bit2 == 0 {
		return
	}

	shift := shifts[c.tac&0x03]
	mask := uint16(1)<<(16-shift) - 1
	diff := (c.counter>>shift - prev>>shift) & mask
	if diff == 0 {
		return
	}

	if uint16(c.tima)+uint16(uint8(diff)) > 0xFF {
		c.tima = c.tma + (uint8(diff) - 1)
		c.irq = true
	} else {
		c.tima += uint8(diff)
	}
}

// PendingInterrupts implements interrupts.Source.
func (c *Controller) PendingInterrupts() uint8 {
	if c.irq {
		c.irq = false
		return interrupts.TimerFlag
	}
	return 0
}

// Read returns the value of the timer register at address.
func (c *Controller) Read(address uint16) (uint8, error) {
	switch address {
	case types.DIV:
		return uint8(c.counter >> 8), nil
	case types.TIMA:
		return c.tima, nil
	case types.TMA:
		return c.tma, nil
	case types.TAC:
		return c.tac, nil
	}
	return 0, &types.AddressError{Component: "timer", Address: address}
}

// Write sets the timer register at address. Any write to
// types.DIV resets the whole counter.
func (c *Controller) Write(address uint16, value uint8) error {
	switch address {
	case types.DIV:
		c.counter = 0
	case types.TIMA:
		c.tima = value
	case types.TMA:
		c.tma = value
	case types.TAC:
		c.tac = value & 0x07
	default:
		return &types.AddressError{Component: "timer", Address: address, Write: true}
	}
	return nil
}
