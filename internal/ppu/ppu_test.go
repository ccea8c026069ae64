package ppu

import (
	"testing"

	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
)

func mustWrite(t *testing.T, p *PPU, address uint16, value uint8) {
	t.Helper()
	if err := p.Write(address, value); err != nil {
		t.Fatal(err)
	}
}

func TestPPU_ModeSequence(t *testing.T) {
	p := New()
	steps := []struct {
		cycles uint16
		mode   uint8
		ly     uint8
	}{
		{79, ModeOAM, 0},
		{1, ModeVRAM, 0},
		{172, ModeHBlank, 0},
		{203, ModeHBlank, 0},
		{1, ModeOAM, 1},
	}
	for i, s := range steps {
		p.Tick(s.cycles)
		if p.Mode() != s.mode || p.ly != s.ly {
			t.Errorf("step %d: expected mode %d ly %d, got mode %d ly %d", i, s.mode, s.ly, p.Mode(), p.ly)
		}
	}
}

func TestPPU_FrameTiming(t *testing.T) {
	if LineCycles != 456 {
		t.Errorf("expected 456 cycles per line, got %d", LineCycles)
	}
	if FrameCycles != 70224 {
		t.Errorf("expected 70224 cycles per frame, got %d", FrameCycles)
	}

	p := New()
	vblanks := 0
	for i := 0; i < FrameCycles/4; i++ {
		p.Tick(4)
		if p.PendingInterrupts()&interrupts.VBlankFlag != 0 {
			vblanks++
			if p.ly != ScreenHeight {
				t.Errorf("expected vblank at line %d, got %d", ScreenHeight, p.ly)
			}
		}
	}
	if vblanks != 1 {
		t.Errorf("expected 1 vblank per frame, got %d", vblanks)
	}
	if p.ly != 0 || p.Mode() != ModeOAM || p.counter != 0 {
		t.Errorf("expected to be back at the start of the frame, got ly %d mode %d counter %d", p.ly, p.Mode(), p.counter)
	}
}

func TestPPU_LargeTick(t *testing.T) {
	p := New()
	p.Tick(LineCycles * 3)
	if p.ly != 3 || p.Mode() != ModeOAM {
		t.Errorf("expected line 3 in OAM scan, got ly %d mode %d", p.ly, p.Mode())
	}
}

func TestPPU_Disabled(t *testing.T) {
	p := New()
	p.Tick(100)
	mustWrite(t, p, types.LCDC, 0x00)
	if p.Mode() != ModeHBlank || p.ly != 0 {
		t.Errorf("expected mode 0 line 0 after disabling, got mode %d ly %d", p.Mode(), p.ly)
	}
	for i := 0; i < FrameCycles/LineCycles; i++ {
		p.Tick(LineCycles)
	}
	if p.Mode() != ModeHBlank || p.ly != 0 {
		t.Error("expected timing to be frozen while disabled")
	}
	mustWrite(t, p, types.LCDC, 0x80)
	if p.Mode() != ModeOAM {
		t.Errorf("expected mode 2 after enabling, got %d", p.Mode())
	}
}

func TestPPU_STATInterrupts(t *testing.T) {
	t.Run("HBlank", func(t *testing.T) {
		p := New()
		mustWrite(t, p, types.STAT, statHBlankInt)
		p.Tick(oamCycles + vramCycles)
		if p.PendingInterrupts() != interrupts.LCDFlag {
			t.Error("expected the LCD interrupt on entering HBlank")
		}
	})
	t.Run("LYC", func(t *testing.T) {
		p := New()
		mustWrite(t, p, types.STAT, statLYCInt)
		mustWrite(t, p, types.LYC, 2)
		p.Tick(LineCycles)
		if p.PendingInterrupts() != 0 {
			t.Error("expected no interrupt on line 1")
		}
		p.Tick(LineCycles)
		if p.PendingInterrupts() != interrupts.LCDFlag {
			t.Error("expected the LCD interrupt on line 2")
		}
		if v, _ := p.Read(types.STAT); v&statCoincidence == 0 {
			t.Error("expected the coincidence flag to be set")
		}
		p.Tick(LineCycles)
		if v, _ := p.Read(types.STAT); v&statCoincidence != 0 {
			t.Error("expected the coincidence flag to be cleared")
		}
	})
}

func TestPPU_MemoryAccess(t *testing.T) {
	p := New()
	mustWrite(t, p, 0x8000, 0x12) // mode 2
	if v, _ := p.Read(0x8000); v != 0x12 {
		t.Errorf("expected VRAM access during mode 2, got 0x%02X", v)
	}
	mustWrite(t, p, 0xFE00, 0x34)
	if v, _ := p.Read(0xFE00); v != 0xFF {
		t.Errorf("expected OAM to be blocked during mode 2, got 0x%02X", v)
	}

	p.Tick(oamCycles) // mode 3
	mustWrite(t, p, 0x8000, 0x56)
	if v, _ := p.Read(0x8000); v != 0xFF {
		t.Errorf("expected VRAM to be blocked during mode 3, got 0x%02X", v)
	}

	p.Tick(vramCycles) // mode 0
	if v, _ := p.Read(0x8000); v != 0x12 {
		t.Errorf("expected blocked write to be dropped, got 0x%02X", v)
	}
	mustWrite(t, p, 0xFE00, 0x34)
	if v, _ := p.Read(0xFE00); v != 0x34 {
		t.Errorf("expected OAM access during mode 0, got 0x%02X", v)
	}
}

func TestPPU_Registers(t *testing.T) {
	p := New()
	mustWrite(t, p, types.LY, 0x42)
	if v, _ := p.Read(types.LY); v != 0 {
		t.Errorf("expected LY to be read only, got 0x%02X", v)
	}
	mustWrite(t, p, types.STAT, 0xFF)
	if v, _ := p.Read(types.STAT); v != 0x78|ModeOAM {
		t.Errorf("expected STAT=0x%02X, got 0x%02X", 0x78|ModeOAM, v)
	}
	if _, err := p.Read(types.DMA); err == nil {
		t.Error("expected an error reading the DMA register")
	}
}
