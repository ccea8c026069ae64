package gameboy

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// newROM returns a 32KiB ROM with program placed at the entry point.
func newROM(program ...uint8) []byte {
	rom := make([]byte, 0x8000)
	copy(rom[0x100:], program)
	return rom
}

// loop is a program that spins forever.
var loop = []uint8{0x18, 0xFE} // JR -2

func TestNewGameBoy(t *testing.T) {
	g, err := NewGameBoy(newROM(loop...))
	if err != nil {
		t.Fatal(err)
	}
	if g.CPU.PC != 0x0100 || g.CPU.SP != 0xFFFE {
		t.Errorf("expected post boot state, got PC=0x%04X SP=0x%04X", g.CPU.PC, g.CPU.SP)
	}
}

func TestNewGameBoy_InvalidROM(t *testing.T) {
	if _, err := NewGameBoy(make([]byte, 0x100)); err == nil {
		t.Error("expected an error for a truncated ROM")
	}
}

func TestGameBoy_Frame(t *testing.T) {
	g, err := NewGameBoy(newROM(loop...))
	if err != nil {
		t.Fatal(err)
	}
	frame, err := g.Frame()
	if err != nil {
		t.Fatal(err)
	}
	// JR takes 12 cycles, which divides a frame exactly
	if g.currentCycle != 0 {
		t.Errorf("expected no cycles carried over, got %d", g.currentCycle)
	}
	if g.PPU.Mode() != 2 {
		t.Errorf("expected the PPU to be back at the start of a frame, got mode %d", g.PPU.Mode())
	}
	if len(frame) != 160*144 {
		t.Errorf("unexpected frame size %d", len(frame))
	}
	if g.Interrupts.Flag&interrupts.VBlankFlag == 0 {
		t.Error("expected a vblank interrupt to be requested")
	}
}

func TestGameBoy_FrameBackground(t *testing.T) {
	g, err := NewGameBoy(newROM(
		0x3E, 0x91, // LD A, 0x91 (LCD on, unsigned tile data, BG on)
		0xE0, 0x40, // LDH (LCDC), A
		0x3E, 0xE4, // LD A, 0xE4
		0xE0, 0x47, // LDH (BGP), A
		0x18, 0xFE, // JR -2
	))
	if err != nil {
		t.Fatal(err)
	}
	frame, err := g.Frame()
	if err != nil {
		t.Fatal(err)
	}
	if g.currentCycle >= 12 {
		t.Errorf("expected less than one instruction carried over, got %d", g.currentCycle)
	}
	// VRAM is empty, so every pixel is colour 0, mapped through BGP
	for i, shade := range frame {
		if shade != 0xFF {
			t.Fatalf("pixel %d: expected white, got 0x%02X", i, shade)
		}
	}
}

func TestGameBoy_SerialOutput(t *testing.T) {
	var buf bytes.Buffer
	g, err := NewGameBoy(newROM(
		0x3E, 'P', // LD A, 'P'
		0xE0, 0x01, // LDH (SB), A
		0x10, 0x00, // STOP
		0x18, 0xFE, // JR -2
	), WithSerialOutput(&buf))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if _, err := g.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if buf.String() != "P" {
		t.Errorf("expected serial output %q, got %q", "P", buf.String())
	}
}

func TestGameBoy_DecodeError(t *testing.T) {
	g, err := NewGameBoy(newROM(0xD3))
	if err != nil {
		t.Fatal(err)
	}
	_, err = g.Frame()
	var de *types.DecodeError
	if !errors.As(err, &de) || de.Opcode != 0xD3 || de.PC != 0x0100 {
		t.Fatalf("expected a decode error for 0xD3 at 0x0100, got %v", err)
	}
}

func TestGameBoy_Joypad(t *testing.T) {
	g, err := NewGameBoy(newROM(
		0x3E, 0x10, // LD A, 0x10 (select buttons)
		0xE0, 0x00, // LDH (P1), A
		0xF0, 0x00, // LDH A, (P1)
		0x18, 0xFE, // JR -2
	))
	if err != nil {
		t.Fatal(err)
	}
	g.Press(joypad.ButtonStart)
	for i := 0; i < 3; i++ {
		if _, err := g.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if g.CPU.A&0x0F != 0x07 {
		t.Errorf("expected start to read low, got P1=0x%02X", g.CPU.A)
	}
	if g.Interrupts.Flag&interrupts.JoypadFlag == 0 {
		t.Error("expected a joypad interrupt to be requested")
	}
}

func TestGameBoy_Colourise(t *testing.T) {
	g, err := NewGameBoy(newROM(loop...), WithPalette(1))
	if err != nil {
		t.Fatal(err)
	}
	var frame Frame
	rgba := g.Colourise(frame)
	if len(rgba) != len(frame)*4 {
		t.Fatalf("expected %d bytes, got %d", len(frame)*4, len(rgba))
	}
	if rgba[0] != 0x0F || rgba[1] != 0x38 || rgba[2] != 0x0F || rgba[3] != 0xFF {
		t.Errorf("expected the darkest green, got %v", rgba[:4])
	}

	g.CyclePalette()
	rgba = g.Colourise(frame)
	if rgba[0] != 0x00 || rgba[1] != 0x00 || rgba[2] != 0x00 {
		t.Errorf("expected black, got %v", rgba[:4])
	}
}

func TestGameBoy_FrameTime(t *testing.T) {
	speed := 2.0
	g, err := NewGameBoy(newROM(loop...), Speed(speed))
	if err != nil {
		t.Fatal(err)
	}
	want := time.Duration(float64(time.Second) * 70224 / 4194304 / speed)
	if got := g.FrameTime(); got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestGameBoy_Run(t *testing.T) {
	g, err := NewGameBoy(newROM(loop...), Speed(16))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	frames := make(chan Frame, 1)
	pressed := make(chan joypad.Button, 1)
	released := make(chan joypad.Button)
	pressed <- joypad.ButtonA

	done := make(chan error, 1)
	go func() { done <- g.Run(ctx, frames, pressed, released) }()

	select {
	case <-frames:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a frame")
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	if len(pressed) != 0 {
		t.Error("expected the press to be consumed")
	}
}

func TestGameBoy_RunFault(t *testing.T) {
	g, err := NewGameBoy(newROM(0xFD), Speed(16))
	if err != nil {
		t.Fatal(err)
	}
	err = g.Run(context.Background(), make(chan Frame, 1), nil, nil)
	var de *types.DecodeError
	if !errors.As(err, &de) {
		t.Errorf("expected a decode error, got %v", err)
	}
}

func TestGameBoy_Pause(t *testing.T) {
	g, err := NewGameBoy(newROM(loop...), Speed(16))
	if err != nil {
		t.Fatal(err)
	}
	g.Pause()
	if !g.Paused() {
		t.Fatal("expected the GameBoy to be paused")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := g.Run(ctx, make(chan Frame, 1), nil, nil); err != nil {
		t.Fatal(err)
	}
	if g.Interrupts.Flag != 0 {
		t.Errorf("expected no frames to run while paused, IF=0x%02X", g.Interrupts.Flag)
	}

	g.Resume()
	if g.Paused() {
		t.Error("expected the GameBoy to be resumed")
	}
}
