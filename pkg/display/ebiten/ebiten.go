// Package ebiten provides a display driver using Ebitengine.
package ebiten

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/pkg/display"
	"github.com/thelolagemann/dmgcore/pkg/display/event"
)

func init() {
	driver := &ebitenDriver{}
	display.Install("ebiten", driver, []display.DriverOption{
		{
			Name:        "scale",
			Default:     4.0,
			Value:       &driver.scale,
			Type:        "float",
			Description: "Scale the window by this factor",
		},
	})
}

var (
	joypadKeys = map[ebiten.Key]joypad.Button{
		ebiten.KeyA:          joypad.ButtonA,
		ebiten.KeyB:          joypad.ButtonB,
		ebiten.KeyArrowDown:  joypad.ButtonDown,
		ebiten.KeyArrowUp:    joypad.ButtonUp,
		ebiten.KeyArrowLeft:  joypad.ButtonLeft,
		ebiten.KeyArrowRight: joypad.ButtonRight,
		ebiten.KeyEnter:      joypad.ButtonStart,
		ebiten.KeyBackspace:  joypad.ButtonSelect,
	}
	hotkeys = map[ebiten.Key]display.Hotkey{
		ebiten.KeyEscape: display.HotkeyPause,
		ebiten.KeyPause:  display.HotkeyPause,
		ebiten.KeyR:      display.HotkeyReset,
		ebiten.KeyP:      display.HotkeyPalette,
		ebiten.KeyF12:    display.HotkeyCopyScreenshot,
		ebiten.KeyF11:    display.HotkeySaveScreenshot,
	}
)

// button returns the joypad button mapped to key.
func button(key ebiten.Key) (joypad.Button, bool) {
	b, ok := joypadKeys[key]
	return b, ok
}

// ebitenDriver implements ebiten.Game, presenting the latest
// frame on every draw.
type ebitenDriver struct {
	scale float64

	emu display.Emulator

	frames           <-chan []byte
	events           <-chan event.Event
	pressed, release chan<- joypad.Button

	screen *ebiten.Image
	last   []byte
}

func (e *ebitenDriver) Initialize(emu display.Emulator) {
	e.emu = emu
}

// Start starts the display driver.
func (e *ebitenDriver) Start(frames <-chan []byte, evts <-chan event.Event, pressed, released chan<- joypad.Button) error {
	e.frames, e.events = frames, evts
	e.pressed, e.release = pressed, released

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(int(ppu.ScreenWidth*e.scale), int(ppu.ScreenHeight*e.scale))
	ebiten.SetWindowTitle("dmgcore")

	err := ebiten.RunGame(e)
	e.emu.SendCommand(display.Close)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Stop stops the display driver.
func (e *ebitenDriver) Stop() error {
	return nil
}

// Update handles input and events. It is called by ebiten at a
// fixed tick rate.
func (e *ebitenDriver) Update() error {
	for key, b := range joypadKeys {
		if inpututil.IsKeyJustPressed(key) {
			e.pressed <- b
		} else if inpututil.IsKeyJustReleased(key) {
			e.release <- b
		}
	}
	for key, h := range hotkeys {
		if inpututil.IsKeyJustPressed(key) {
			if err := display.HandleHotkey(e.emu, h, e.last); err != nil {
				return err
			}
		}
	}

	for {
		select {
		case f := <-e.frames:
			e.last = f
		case ev := <-e.events:
			switch ev.Type {
			case event.Title:
				ebiten.SetWindowTitle("dmgcore | " + ev.Data.(string))
			case event.Quit:
				return ebiten.Termination
			}
		default:
			return nil
		}
	}
}

// Draw draws the last frame received.
func (e *ebitenDriver) Draw(screen *ebiten.Image) {
	if e.last == nil {
		return
	}
	if e.screen == nil {
		e.screen = ebiten.NewImage(ppu.ScreenWidth, ppu.ScreenHeight)
	}
	e.screen.WritePixels(e.last)
	screen.DrawImage(e.screen, nil)
}

// Layout fixes the logical screen to the size of a frame, which
// ebiten scales to the window.
func (e *ebitenDriver) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ppu.ScreenWidth, ppu.ScreenHeight
}
