// Package sdl provides a display driver using SDL2.
package sdl

import (
	"fmt"
	"runtime"
	"time"
	"unsafe"

	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/pkg/display"
	"github.com/thelolagemann/dmgcore/pkg/display/event"
	"github.com/veandco/go-sdl2/sdl"
)

func init() {
	// SDL must be driven from the main thread
	runtime.LockOSThread()

	// register display driver
	driver := &sdlDriver{}
	display.Install("sdl", driver, []display.DriverOption{
		{
			Name:        "scale",
			Default:     4.0,
			Value:       &driver.scale,
			Type:        "float",
			Description: "Scale the window by this factor",
		},
		{
			Name:        "fullscreen",
			Default:     false,
			Value:       &driver.fullscreen,
			Type:        "bool",
			Description: "Run in fullscreen mode",
		},
	})
}

// pollInterval bounds the time between polling window events
// when no frames arrive.
const pollInterval = 100 * time.Millisecond

var (
	joypadKeys = map[sdl.Keycode]joypad.Button{
		sdl.K_a:         joypad.ButtonA,
		sdl.K_b:         joypad.ButtonB,
		sdl.K_DOWN:      joypad.ButtonDown,
		sdl.K_UP:        joypad.ButtonUp,
		sdl.K_LEFT:      joypad.ButtonLeft,
		sdl.K_RIGHT:     joypad.ButtonRight,
		sdl.K_RETURN:    joypad.ButtonStart,
		sdl.K_BACKSPACE: joypad.ButtonSelect,
	}
	hotkeys = map[sdl.Keycode]display.Hotkey{
		sdl.K_ESCAPE: display.HotkeyPause,
		sdl.K_PAUSE:  display.HotkeyPause,
		sdl.K_r:      display.HotkeyReset,
		sdl.K_p:      display.HotkeyPalette,
		sdl.K_F12:    display.HotkeyCopyScreenshot,
		sdl.K_F11:    display.HotkeySaveScreenshot,
	}
)

// button returns the joypad button mapped to key.
func button(key sdl.Keycode) (joypad.Button, bool) {
	b, ok := joypadKeys[key]
	return b, ok
}

// sdlDriver presents frames through a streaming SDL texture.
type sdlDriver struct {
	scale      float64
	fullscreen bool

	emu display.Emulator
}

func (s *sdlDriver) Initialize(emu display.Emulator) {
	s.emu = emu
}

// Start starts the display driver.
func (s *sdlDriver) Start(frames <-chan []byte, evts <-chan event.Event, pressed, released chan<- joypad.Button) error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("sdl: init: %w", err)
	}

	flags := uint32(sdl.WINDOW_SHOWN | sdl.WINDOW_RESIZABLE)
	if s.fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	window, err := sdl.CreateWindow("dmgcore", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(ppu.ScreenWidth*s.scale), int32(ppu.ScreenHeight*s.scale), flags)
	if err != nil {
		return fmt.Errorf("sdl: create window: %w", err)
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return fmt.Errorf("sdl: create renderer: %w", err)
	}
	defer renderer.Destroy()

	// keep the aspect ratio when resized, with square pixels
	sdl.SetHint(sdl.HINT_RENDER_SCALE_QUALITY, "0")
	if err := renderer.SetLogicalSize(ppu.ScreenWidth, ppu.ScreenHeight); err != nil {
		return fmt.Errorf("sdl: set logical size: %w", err)
	}

	// frames are R, G, B, A in memory
	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STREAMING, ppu.ScreenWidth, ppu.ScreenHeight)
	if err != nil {
		return fmt.Errorf("sdl: create texture: %w", err)
	}
	defer texture.Destroy()

	pollTicker := time.NewTicker(pollInterval) // to handle when paused
	defer pollTicker.Stop()

	var last []byte
	for {
		for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
			switch ev := ev.(type) {
			case *sdl.QuitEvent:
				s.emu.SendCommand(display.Close)
				return nil
			case *sdl.KeyboardEvent:
				if ev.Repeat != 0 {
					continue
				}
				if b, ok := button(ev.Keysym.Sym); ok {
					if ev.Type == sdl.KEYDOWN {
						pressed <- b
					} else {
						released <- b
					}
					continue
				}
				if h, ok := hotkeys[ev.Keysym.Sym]; ok && ev.Type == sdl.KEYDOWN {
					if err := display.HandleHotkey(s.emu, h, last); err != nil {
						return err
					}
				}
			}
		}

		select {
		case f := <-frames:
			last = f
			if err := texture.Update(nil, unsafe.Pointer(&f[0]), ppu.ScreenWidth*4); err != nil {
				return fmt.Errorf("sdl: update texture: %w", err)
			}
			renderer.Clear()
			renderer.Copy(texture, nil, nil)
			renderer.Present()
		case e := <-evts:
			switch e.Type {
			case event.Title:
				window.SetTitle("dmgcore | " + e.Data.(string))
			case event.Quit:
				return nil
			}
		case <-pollTicker.C:
		}
	}
}

// Stop stops the display driver.
func (s *sdlDriver) Stop() error {
	sdl.Quit()
	return nil
}
