package ram

import "testing"

func TestRAM(t *testing.T) {
	r := NewRAM(0x7F)
	r.Write(0x10, 0x42)
	if v := r.Read(0x10); v != 0x42 {
		t.Errorf("expected 0x42, got 0x%02X", v)
	}
	r.Write(0x7F, 0x24) // wraps to 0
	if v := r.Read(0x00); v != 0x24 {
		t.Errorf("expected 0x24, got 0x%02X", v)
	}
}
