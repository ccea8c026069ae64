// Package gameboy provides an emulation of the original Nintendo Game
// Boy (DMG). A GameBoy owns every hardware component, and wires them
// together explicitly through the MMU.
package gameboy

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/internal/mmu"
	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/internal/ppu/palette"
	"github.com/thelolagemann/dmgcore/internal/timer"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the Game Boy.
	ClockSpeed = cpu.ClockSpeed // 4.194304 MHz
	// CyclesPerFrame is the number of clock cycles per frame.
	CyclesPerFrame = ppu.FrameCycles // ~59.7 frames per second
)

// Frame holds a single frame of shades, one byte per pixel.
type Frame = [ppu.ScreenWidth * ppu.ScreenHeight]uint8

// GameBoy represents a Game Boy. It contains all the components of the Game Boy.
// It is the main entry point for the emulator.
type GameBoy struct {
	CPU        *cpu.CPU
	MMU        *mmu.MMU
	PPU        *ppu.PPU
	Cartridge  *cartridge.MemoryBankedCartridge1
	Joypad     *joypad.State
	Interrupts *interrupts.Service
	Timer      *timer.Controller

	// Palette is used by Colourise to turn frames into RGBA.
	Palette palette.Palette

	log.Logger

	// currentCycle holds the cycles run past the end of the
	// previous frame.
	currentCycle int
	paletteIndex int
	speed        float64
	paused       atomic.Bool
}

// NewGameBoy returns a new GameBoy for the provided ROM, in the state
// the boot ROM leaves the hardware in.
func NewGameBoy(rom []byte, opts ...Opt) (*GameBoy, error) {
	cart, err := cartridge.New(rom)
	if err != nil {
		return nil, err
	}
	interrupt := interrupts.NewService()
	pad := joypad.New()
	timerCtl := timer.NewController()
	video := ppu.New()
	memBus := mmu.NewMMU(cart, video, timerCtl, pad, interrupt)

	g := &GameBoy{
		CPU:        cpu.NewCPU(memBus, interrupt, timerCtl, video, pad),
		MMU:        memBus,
		PPU:        video,
		Cartridge:  cart,
		Joypad:     pad,
		Interrupts: interrupt,
		Timer:      timerCtl,

		Palette: palette.Get(palette.Greyscale),
		Logger:  log.NewNullLogger(),
		speed:   1,
	}

	for _, opt := range opts {
		opt(g)
	}

	header := cart.Header()
	g.Infof("loaded cartridge %s", header.String())
	if !header.ChecksumValid {
		g.Warnf("header checksum mismatch (0x%02X)", header.HeaderChecksum)
	}

	return g, nil
}

// Step executes a single CPU step, returning the cycles it took.
func (g *GameBoy) Step() (uint16, error) {
	return g.CPU.Step()
}

// Frame steps the emulation for the cycles of a single frame, and
// returns the frame rendered by the PPU. Cycles run past the end of
// the frame are deducted from the next.
func (g *GameBoy) Frame() (Frame, error) {
	for g.currentCycle < CyclesPerFrame {
		cycles, err := g.CPU.Step()
		g.currentCycle += int(cycles)
		if err != nil {
			return g.PPU.Frame(), err
		}
	}
	g.currentCycle -= CyclesPerFrame

	return g.PPU.Frame(), nil
}

// Colourise converts frame into packed RGBA pixels using the
// selected palette.
func (g *GameBoy) Colourise(frame Frame) []uint8 {
	rgba := make([]uint8, len(frame)*4)
	g.Palette.Colourise(rgba, frame[:])
	return rgba
}

// CyclePalette selects the next palette.
func (g *GameBoy) CyclePalette() {
	g.paletteIndex = (g.paletteIndex + 1) % len(palette.Palettes)
	g.Palette = palette.Get(g.paletteIndex)
}

// Pause stops Run from emulating further frames. It is safe to
// call while Run is in progress.
func (g *GameBoy) Pause() {
	g.paused.Store(true)
}

// Resume resumes a paused GameBoy.
func (g *GameBoy) Resume() {
	g.paused.Store(false)
}

// Paused reports whether the GameBoy is paused.
func (g *GameBoy) Paused() bool {
	return g.paused.Load()
}

// Press presses button.
func (g *GameBoy) Press(button joypad.Button) {
	g.Joypad.Press(button)
}

// Release releases button.
func (g *GameBoy) Release(button joypad.Button) {
	g.Joypad.Release(button)
}

// FrameTime returns the time between frames at the configured speed.
func (g *GameBoy) FrameTime() time.Duration {
	return time.Duration(float64(time.Second) * CyclesPerFrame / ClockSpeed / g.speed)
}

// Run emulates frames in real time until ctx is cancelled or the
// machine faults. Button presses and releases are applied between
// frames, and every frame is sent to frames. Frames are dropped
// while the receiver is busy. While paused the last frame is
// repeated.
func (g *GameBoy) Run(ctx context.Context, frames chan<- Frame, pressed, released <-chan joypad.Button) error {
	ticker := time.NewTicker(g.FrameTime())
	defer ticker.Stop()

	var frame Frame
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

	inputs:
		for {
			select {
			case b := <-pressed:
				g.Press(b)
			case b := <-released:
				g.Release(b)
			default:
				break inputs
			}
		}

		if !g.Paused() {
			var err error
			if frame, err = g.Frame(); err != nil {
				g.Errorf("emulation halted: %v", err)
				return err
			}
		}

		select {
		case frames <- frame:
		default:
		}
	}
}
