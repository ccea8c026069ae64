package web

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/google/brotli/go/cbrotli"
)

func solidFrame(v uint8) []byte {
	f := make([]byte, frameSize)
	for i := range f {
		f[i] = v
	}
	return f
}

func TestStream_FullFrame(t *testing.T) {
	s := newStream()
	msgs, err := s.encode(solidFrame(0xFF))
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 1 || msgs[0][0] != Frame {
		t.Fatalf("expected a single full frame, got %d messages", len(msgs))
	}
	if !bytes.Equal(msgs[0][3:], solidFrame(0xFF)) {
		t.Error("expected the frame to be sent as is")
	}
}

func TestStream_Patch(t *testing.T) {
	s := newStream()
	f := solidFrame(0xFF)
	s.encode(f)

	f[4], f[5], f[6] = 0x00, 0x00, 0x00
	msgs, err := s.encode(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 1 || msgs[0][0] != FramePatch {
		t.Fatalf("expected a patch, got %v", msgs)
	}
	p := msgs[0][3:]
	if p[3] != 0x00 || p[7] != 0xFF || p[4] != 0x00 {
		t.Errorf("expected only pixel 1 to be patched, got %v", p[:8])
	}
}

func TestStream_SkipAndCache(t *testing.T) {
	s := newStream()
	white, black := solidFrame(0xFF), solidFrame(0x00)
	s.encode(white)
	s.encode(black)

	// identical frames are skipped
	for i := 0; i < 3; i++ {
		msgs, _ := s.encode(black)
		if msgs != nil {
			t.Fatalf("expected the frame to be skipped, got %v", msgs)
		}
	}

	msgs, err := s.encode(white)
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected a skip and a frame, got %d messages", len(msgs))
	}
	if msgs[0][0] != FrameSkip || binary.LittleEndian.Uint32(msgs[0][1:]) != 3 {
		t.Errorf("expected 3 skipped frames, got %v", msgs[0])
	}
	if msgs[1][0] != FrameCache || binary.LittleEndian.Uint16(msgs[1][1:]) != 0 {
		t.Errorf("expected a reference to cached frame 0, got %v", msgs[1])
	}
}

func TestStream_Compression(t *testing.T) {
	s := newStream()
	s.compression = true
	msgs, err := s.encode(solidFrame(0xAA))
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := cbrotli.Decode(msgs[0][3:])
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decoded, solidFrame(0xAA)) {
		t.Error("expected the compressed frame to decode to the original")
	}
}

func TestStream_Sync(t *testing.T) {
	s := newStream()
	s.encode(solidFrame(0xFF))

	msgs, err := s.sync()
	if err != nil {
		t.Fatal(err)
	}
	if msgs[0][0] != ClientInfo || msgs[0][1] != s.info() {
		t.Errorf("expected client info first, got %v", msgs[0][:2])
	}
	if msgs[1][0] != FrameCacheSync {
		t.Errorf("expected the cached frame to be synced, got type %d", msgs[1][0])
	}
	last := msgs[len(msgs)-1]
	if last[0] != FrameSync || !bytes.Equal(last[1:], solidFrame(0xFF)) {
		t.Error("expected the current frame last")
	}
}

func TestCache(t *testing.T) {
	c := newCache(2)
	if _, ok := c.lookup(1); ok {
		t.Error("expected an empty cache")
	}
	c.add(1, []byte{1})
	c.add(2, []byte{2})
	if idx, ok := c.lookup(2); !ok || idx != 1 {
		t.Errorf("expected hash 2 at 1, got %d %v", idx, ok)
	}
	// the oldest entry is replaced
	c.add(3, []byte{3})
	if _, ok := c.lookup(1); ok {
		t.Error("expected hash 1 to be evicted")
	}
}

func TestButton(t *testing.T) {
	if b, ok := button(7); !ok || b != 7 {
		t.Errorf("expected button 7, got %d %v", b, ok)
	}
	if _, ok := button(8); ok {
		t.Error("expected 8 to be unmapped")
	}
}
