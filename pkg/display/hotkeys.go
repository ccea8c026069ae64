//go:build !test

package display

import (
	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// Hotkey is an emulator action bound to a host key.
type Hotkey int

const (
	// HotkeyPause pauses or resumes the emulator.
	HotkeyPause Hotkey = iota
	// HotkeyReset resets the emulator.
	HotkeyReset
	// HotkeyPalette switches to the next palette.
	HotkeyPalette
	// HotkeyCopyScreenshot copies the last frame to the clipboard.
	HotkeyCopyScreenshot
	// HotkeySaveScreenshot asks where to save the last frame.
	HotkeySaveScreenshot
)

// screenshotScale is the scale screenshots are taken at.
const screenshotScale = 4

// HandleHotkey performs the action bound to h. frame is the last
// frame presented by the driver.
func HandleHotkey(emu Emulator, h Hotkey, frame []byte) error {
	switch h {
	case HotkeyPause:
		if emu.Status().IsPaused() {
			return emu.SendCommand(Resume).Error
		}
		return emu.SendCommand(Pause).Error
	case HotkeyReset:
		return emu.SendCommand(Reset).Error
	case HotkeyPalette:
		return emu.SendCommand(CyclePalette).Error
	case HotkeyCopyScreenshot, HotkeySaveScreenshot:
		if len(frame) != ppu.ScreenWidth*ppu.ScreenHeight*4 {
			return nil // nothing presented yet
		}
		img := utils.Scale(utils.FrameImage(frame, ppu.ScreenWidth, ppu.ScreenHeight), screenshotScale)
		if h == HotkeyCopyScreenshot {
			return utils.CopyImage(img)
		}
		return utils.SaveImage(img)
	}
	return nil
}
