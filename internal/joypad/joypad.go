// Package joypad provides an implementation of the Game Boy
// joypad. The joypad is used to read the state of the buttons
// and the direction keys.
package joypad

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/bits"
)

// Button represents a physical button on the Game Boy. Its
// value is the index of the button's bit in the key state.
type Button = uint8

const (
	// ButtonA is the A button.
	ButtonA Button = iota
	// ButtonB is the B button.
	ButtonB
	// ButtonSelect is the Select button.
	ButtonSelect
	// ButtonStart is the Start button.
	ButtonStart
	// ButtonRight is the Right button.
	ButtonRight
	// ButtonLeft is the Left button.
	ButtonLeft
	// ButtonUp is the Up button.
	ButtonUp
	// ButtonDown is the Down button.
	ButtonDown
)

// State represents the state of the joypad. Select either
// action or direction buttons by writing to the register,
// and then read out bits 0-3 to get the state of the buttons.
//
//	Bit 7 - Not used
//	Bit 6 - Not used
//	Bit 5 - P15 Select Button Keys      (0=Select)
//	Bit 4 - P14 Select Direction Keys   (0=Select)
//	Bit 3 - P13 Input Down  or Start    (0=Pressed) (Read Only)
//	Bit 2 - P12 Input Up    or Select   (0=Pressed) (Read Only)
//	Bit 1 - P11 Input Left  or Button B (0=Pressed) (Read Only)
//	Bit 0 - P10 Input Right or Button A (0=Pressed) (Read Only)
type State struct {
	// State is the current state of the joypad. The lower 4
	// bits hold the action buttons, and the upper 4 bits hold
	// the direction buttons. A 0 in a bit indicates that the
	// button is pressed.
	State uint8

	register uint8 // types.P1
	irq      bool
}

// New returns a new joypad state with every button released.
func New() *State {
	return &State{
		State:    0xFF,
		register: 0xFF,
	}
}

// Press presses a button and raises the joypad interrupt.
func (s *State) Press(button Button) {
	s.State = bits.Reset(s.State, button)
	s.irq = true
}

// Release releases a button.
func (s *State) Release(button Button) {
	s.State = bits.Set(s.State, button)
}

// PendingInterrupts implements interrupts.Source.
func (s *State) PendingInterrupts() uint8 {
	if s.irq {
		s.irq = false
		return interrupts.JoypadFlag
	}
	return 0
}

// Read returns the joypad register, with the nibble of the
// selected button group in the lower 4 bits.
func (s *State) Read(address uint16) (uint8, error) {
	if address != types.P1 {
		return 0, &types.AddressError{Component: "joypad", Address: address}
	}
	switch {
	case !bits.Test(s.register, 4):
		return s.register&0xF0 | s.State>>4, nil
	case !bits.Test(s.register, 5):
		return s.register&0xF0 | s.State&0x0F, nil
	}
	return s.register, nil
}

// Write updates the select bits (4 and 5) of the joypad register.
func (s *State) Write(address uint16, value uint8) error {
	if address != types.P1 {
		return &types.AddressError{Component: "joypad", Address: address, Write: true}
	}
	s.register = s.register&0xCF | value&0x30
	return nil
}
