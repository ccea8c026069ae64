package mmu

import (
	"bytes"
	"testing"

	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/internal/timer"
	"github.com/thelolagemann/dmgcore/internal/types"
)

func newMMU(t *testing.T) *MMU {
	t.Helper()
	rom := make([]byte, 0x8000)
	rom[0x0000] = 0x11
	rom[0x4000] = 0x22
	cart, err := cartridge.New(rom)
	if err != nil {
		t.Fatal(err)
	}
	return NewMMU(cart, ppu.New(), timer.NewController(), joypad.New(), interrupts.NewService())
}

func TestMMU_Dispatch(t *testing.T) {
	m := newMMU(t)

	reads := map[uint16]uint8{
		0x0000:     0x11,
		0x4000:     0x22,
		0xA000:     0xFF, // cartridge RAM disabled
		types.P1:   0xFF,
		types.LCDC: 0x80,
		types.STAT: 0x02,
	}
	for addr, want := range reads {
		v, err := m.Read(addr)
		if err != nil {
			t.Fatalf("0x%04X: %v", addr, err)
		}
		if v != want {
			t.Errorf("0x%04X: expected 0x%02X, got 0x%02X", addr, want, v)
		}
	}
}

func TestMMU_RAM(t *testing.T) {
	m := newMMU(t)
	for _, addr := range []uint16{0xC000, 0xDFFF, 0xFF80, 0xFFFE, 0x8000, 0x9FFF} {
		if err := m.Write(addr, 0x5A); err != nil {
			t.Fatal(err)
		}
		if v, _ := m.Read(addr); v != 0x5A {
			t.Errorf("0x%04X: expected 0x5A, got 0x%02X", addr, v)
		}
	}
}

func TestMMU_InterruptRegisters(t *testing.T) {
	m := newMMU(t)
	_ = m.Write(types.IE, 0x1F)
	_ = m.Write(types.IF, 0x06)
	if m.IRQ.Enable != 0x1F || m.IRQ.Flag != 0x06 {
		t.Errorf("expected IE=0x1F IF=0x06, got IE=0x%02X IF=0x%02X", m.IRQ.Enable, m.IRQ.Flag)
	}
	if v, _ := m.Read(types.IF); v != 0x06 {
		t.Errorf("expected IF to read 0x06, got 0x%02X", v)
	}
}

func TestMMU_Timer(t *testing.T) {
	m := newMMU(t)
	_ = m.Write(types.TMA, 0x42)
	if v, _ := m.Read(types.TMA); v != 0x42 {
		t.Errorf("expected TMA=0x42, got 0x%02X", v)
	}
}

func TestMMU_Unmapped(t *testing.T) {
	m := newMMU(t)
	for _, addr := range []uint16{0xE000, 0xFEA0, 0xFF10, 0xFF46, 0xFF7F} {
		if err := m.Write(addr, 0x42); err != nil {
			t.Errorf("0x%04X: unexpected error %v", addr, err)
		}
		v, err := m.Read(addr)
		if err != nil || v != 0 {
			t.Errorf("0x%04X: expected 0, got 0x%02X (%v)", addr, v, err)
		}
	}
}

func TestMMU_Serial(t *testing.T) {
	m := newMMU(t)
	var buf bytes.Buffer
	m.Serial = &buf
	for _, c := range []byte("Passed") {
		_ = m.Write(types.SB, c)
	}
	if buf.String() != "Passed" {
		t.Errorf("expected serial output %q, got %q", "Passed", buf.String())
	}
}
