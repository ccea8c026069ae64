// Package emulator runs a GameBoy on behalf of a display driver,
// translating driver commands into changes to the machine.
package emulator

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/thelolagemann/dmgcore/internal/gameboy"
	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/pkg/display/event"
)

// ErrNotRunning is returned for commands sent after the emulator
// has stopped.
var ErrNotRunning = errors.New("emulator is not running")

// Emulator owns a gameboy.GameBoy, and runs it in real time.
// Commands are handled between frames.
type Emulator struct {
	// OnFrame, if set, is called with the time elapsed since
	// the previous frame.
	OnFrame func(elapsed time.Duration)

	rom   []byte
	opts  []gameboy.Opt
	speed float64

	gb     *gameboy.GameBoy
	status atomic.Int32

	commands  chan CommandPacket
	responses chan ResponsePacket
	done      chan struct{}
}

// New returns an Emulator for rom. The options are applied every
// time the GameBoy is created, including on reset.
func New(rom []byte, speed float64, opts ...gameboy.Opt) (*Emulator, error) {
	opts = append(opts, gameboy.Speed(speed))
	gb, err := gameboy.NewGameBoy(rom, opts...)
	if err != nil {
		return nil, err
	}

	return &Emulator{
		rom:       rom,
		opts:      opts,
		speed:     speed,
		gb:        gb,
		commands:  make(chan CommandPacket),
		responses: make(chan ResponsePacket),
		done:      make(chan struct{}),
	}, nil
}

// GameBoy returns the machine being emulated. It is replaced when
// the emulator is reset.
func (e *Emulator) GameBoy() *gameboy.GameBoy {
	return e.gb
}

// Speed returns the speed of the emulator.
func (e *Emulator) Speed() float64 {
	return e.speed
}

// Status returns the status of the emulator.
func (e *Emulator) Status() Status {
	return Status(e.status.Load())
}

// SendCommand sends a command to the running emulator, and waits
// for its response.
func (e *Emulator) SendCommand(command CommandPacket) ResponsePacket {
	select {
	case e.commands <- command:
		return <-e.responses
	case <-e.done:
		return ResponsePacket{Command: command.Command, Error: ErrNotRunning}
	}
}

// Run runs the emulator until ctx is cancelled, the close command
// is received, or the GameBoy faults. Frames are sent to fb as
// packed RGBA pixels. A Quit event is sent to events on return.
func (e *Emulator) Run(ctx context.Context, fb chan<- []byte, events chan<- event.Event, pressed, released <-chan joypad.Button) error {
	defer close(e.done)
	defer send(events, event.Event{Type: event.Quit})

	for {
		reset, err := e.run(ctx, fb, events, pressed, released)
		if err != nil || !reset {
			return err
		}

		gb, err := gameboy.NewGameBoy(e.rom, e.opts...)
		if err == nil {
			e.gb = gb
			e.status.Store(int32(Running))
		}
		e.responses <- ResponsePacket{Command: CommandReset, Error: err}
		if err != nil {
			return err
		}
	}
}

// run runs the current GameBoy, returning true if it should be
// reset. The response to the reset command is left to the caller.
func (e *Emulator) run(ctx context.Context, fb chan<- []byte, events chan<- event.Event, pressed, released <-chan joypad.Button) (bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	frames := make(chan gameboy.Frame, 1)
	errs := make(chan error, 1)
	go func() {
		errs <- e.gb.Run(ctx, frames, pressed, released)
	}()

	header := e.gb.Cartridge.Header()
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	var count int
	var elapsed time.Duration
	last := time.Now()
	for {
		select {
		case err := <-errs:
			if err != nil {
				e.status.Store(int32(Errored))
				return false, fmt.Errorf("%s: %w", header.Title, err)
			}
			return false, nil
		case f := <-frames:
			now := time.Now()
			if e.OnFrame != nil {
				e.OnFrame(now.Sub(last))
			}
			elapsed += now.Sub(last)
			last = now
			count++

			select {
			case fb <- e.gb.Colourise(f):
			default:
			}
		case <-ticker.C:
			send(events, event.Event{Type: event.Title, Data: fmt.Sprintf("%s | FPS: %d", header.Title, count)})
			if count > 0 {
				send(events, event.Event{Type: event.FrameTime, Data: elapsed / time.Duration(count)})
			}
			count, elapsed = 0, 0
		case c := <-e.commands:
			resp := ResponsePacket{Command: c.Command}
			switch c.Command {
			case CommandPause:
				e.gb.Pause()
				e.status.Store(int32(Paused))
			case CommandResume:
				e.gb.Resume()
				e.status.Store(int32(Running))
			case CommandCyclePalette:
				e.gb.CyclePalette()
			case CommandReset:
				cancel()
				<-errs
				return true, nil
			case CommandClose:
				cancel()
				<-errs
				e.responses <- resp
				return false, nil
			default:
				resp.Error = fmt.Errorf("unknown command %d", c.Command)
			}
			e.responses <- resp
		}
	}
}

// send delivers ev without blocking, dropping it if the driver
// is not keeping up.
func send(events chan<- event.Event, ev event.Event) {
	select {
	case events <- ev:
	default:
	}
}
