package emulator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/display/event"
)

func newROM(program ...uint8) []byte {
	rom := make([]byte, 0x8000)
	copy(rom[0x100:], program)
	copy(rom[0x134:], "TEST")
	return rom
}

type harness struct {
	emu    *Emulator
	fb     chan []byte
	events chan event.Event
	done   chan error
	cancel context.CancelFunc
}

func start(t *testing.T, rom []byte) *harness {
	t.Helper()
	emu, err := New(rom, 16)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	h := &harness{
		emu:    emu,
		fb:     make(chan []byte, 1),
		events: make(chan event.Event, 16),
		done:   make(chan error, 1),
		cancel: cancel,
	}
	go func() {
		h.done <- emu.Run(ctx, h.fb, h.events, make(chan joypad.Button), make(chan joypad.Button))
	}()
	t.Cleanup(cancel)
	return h
}

func (h *harness) frame(t *testing.T) []byte {
	t.Helper()
	select {
	case f := <-h.fb:
		return f
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a frame")
	}
	return nil
}

func (h *harness) wait(t *testing.T) error {
	t.Helper()
	select {
	case err := <-h.done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the emulator to stop")
	}
	return nil
}

func TestEmulator_Frames(t *testing.T) {
	h := start(t, newROM(0x18, 0xFE))
	if f := h.frame(t); len(f) != 160*144*4 {
		t.Errorf("expected %d bytes, got %d", 160*144*4, len(f))
	}
	if !h.emu.Status().IsRunning() {
		t.Errorf("expected the emulator to be running, got %s", h.emu.Status())
	}
}

func TestEmulator_Commands(t *testing.T) {
	h := start(t, newROM(0x18, 0xFE))
	h.frame(t)

	if resp := h.emu.SendCommand(CommandPacket{Command: CommandPause}); resp.Error != nil {
		t.Fatal(resp.Error)
	}
	if !h.emu.Status().IsPaused() || !h.emu.GameBoy().Paused() {
		t.Error("expected the emulator to be paused")
	}
	if resp := h.emu.SendCommand(CommandPacket{Command: CommandResume}); resp.Error != nil {
		t.Fatal(resp.Error)
	}
	if !h.emu.Status().IsRunning() {
		t.Error("expected the emulator to be running")
	}

	before := h.emu.GameBoy()
	h.emu.SendCommand(CommandPacket{Command: CommandReset})
	h.frame(t)
	if h.emu.GameBoy() == before {
		t.Error("expected reset to create a new GameBoy")
	}

	if resp := h.emu.SendCommand(CommandPacket{Command: Command(99)}); resp.Error == nil {
		t.Error("expected an error for an unknown command")
	}

	h.emu.SendCommand(CommandPacket{Command: CommandClose})
	if err := h.wait(t); err != nil {
		t.Fatal(err)
	}
	if resp := h.emu.SendCommand(CommandPacket{Command: CommandPause}); !errors.Is(resp.Error, ErrNotRunning) {
		t.Errorf("expected ErrNotRunning, got %v", resp.Error)
	}

	var quit bool
	for len(h.events) > 0 {
		if (<-h.events).Type == event.Quit {
			quit = true
		}
	}
	if !quit {
		t.Error("expected a quit event")
	}
}

func TestEmulator_Fault(t *testing.T) {
	h := start(t, newROM(0xDD))
	err := h.wait(t)
	var de *types.DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected a decode error, got %v", err)
	}
	if !h.emu.Status().IsErrored() {
		t.Errorf("expected the emulator to have errored, got %s", h.emu.Status())
	}
}

func TestEmulator_Cancel(t *testing.T) {
	h := start(t, newROM(0x18, 0xFE))
	h.frame(t)
	h.cancel()
	if err := h.wait(t); err != nil {
		t.Fatal(err)
	}
}
