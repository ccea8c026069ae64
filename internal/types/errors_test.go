package types

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrors(t *testing.T) {
	t.Run("DecodeError", func(t *testing.T) {
		err := fmt.Errorf("step: %w", &DecodeError{Opcode: 0xD3, PC: 0x0150})
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Fatal("expected errors.As to find a DecodeError")
		}
		if de.Opcode != 0xD3 || de.PC != 0x0150 {
			t.Errorf("unexpected fields: %+v", de)
		}
		if got := de.Error(); got != "undefined opcode 0xD3 at 0x0150" {
			t.Errorf("unexpected message %q", got)
		}
	})
	t.Run("AddressError", func(t *testing.T) {
		err := &AddressError{Component: "timer", Address: 0xFF08, Write: true}
		if got := err.Error(); got != "timer: write of unmapped address 0xFF08" {
			t.Errorf("unexpected message %q", got)
		}
	})
}

func TestRegisterPair(t *testing.T) {
	var r Registers
	r.Bind()
	r.BC.SetUint16(0x1234)
	if r.B != 0x12 || r.C != 0x34 {
		t.Errorf("expected B=0x12 C=0x34, got B=0x%02X C=0x%02X", r.B, r.C)
	}
	r.H, r.L = 0xAB, 0xCD
	if r.HL.Uint16() != 0xABCD {
		t.Errorf("expected HL=0xABCD, got 0x%04X", r.HL.Uint16())
	}
}
