package palette

import "testing"

func TestShade(t *testing.T) {
	// 0xE4 is the identity palette 3-2-1-0
	want := [4]uint8{0xFF, 0xAA, 0x55, 0x00}
	for c := uint8(0); c < 4; c++ {
		if got := Shade(c, 0xE4); got != want[c] {
			t.Errorf("colour %d: expected 0x%02X, got 0x%02X", c, want[c], got)
		}
	}
	// 0x1B reverses it
	for c := uint8(0); c < 4; c++ {
		if got := Shade(c, 0x1B); got != want[3-c] {
			t.Errorf("colour %d reversed: expected 0x%02X, got 0x%02X", c, want[3-c], got)
		}
	}
}

func TestColourise(t *testing.T) {
	frame := []uint8{White, Black}
	dst := make([]uint8, 8)
	Get(Green).Colourise(dst, frame)
	if dst[0] != 0x9B || dst[1] != 0xBC || dst[2] != 0x0F || dst[3] != 0xFF {
		t.Errorf("unexpected white pixel % X", dst[:4])
	}
	if dst[4] != 0x0F || dst[5] != 0x38 || dst[6] != 0x0F {
		t.Errorf("unexpected black pixel % X", dst[4:])
	}
}

func TestGet_OutOfRange(t *testing.T) {
	if Get(42) != Palettes[Greyscale] {
		t.Error("expected greyscale fallback")
	}
}
