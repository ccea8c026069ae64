package web

import (
	"bytes"
	"encoding/binary"

	"github.com/cespare/xxhash"
	"github.com/google/brotli/go/cbrotli"
	"github.com/thelolagemann/dmgcore/internal/ppu"
)

const (
	frameSize = ppu.ScreenWidth * ppu.ScreenHeight * 4
	cacheSize = 64
)

// stream encodes frames into messages for clients, sending only
// what changed whenever it can.
type stream struct {
	compression      bool
	compressionLevel int
	framePatching    bool
	framePatchRatio  int // percentage of pixels below which a patch is sent
	frameSkipping    bool

	current, patch  []byte
	skipped         uint32
	frames, patches *cache
}

func newStream() *stream {
	return &stream{
		compressionLevel: 7,
		framePatching:    true,
		framePatchRatio:  40,
		frameSkipping:    true,
		current:          make([]byte, frameSize),
		patch:            make([]byte, frameSize),
		frames:           newCache(cacheSize),
		patches:          newCache(cacheSize),
	}
}

// info returns a byte describing the stream settings:
//
//	Bit 0: Compression enabled
//	Bit 1: Frame patching enabled
//	Bit 2: Frame skipping enabled
func (s *stream) info() byte {
	var info byte
	if s.compression {
		info |= 1 << 0
	}
	if s.framePatching {
		info |= 1 << 1
	}
	if s.frameSkipping {
		info |= 1 << 2
	}
	return info
}

// encode returns the messages that bring a client from the previous
// frame to f.
func (s *stream) encode(f []byte) ([][]byte, error) {
	clear(s.patch)
	dirty := 0
	for i := 0; i < frameSize; i += 4 {
		if !bytes.Equal(s.current[i:i+4], f[i:i+4]) {
			copy(s.patch[i:i+4], f[i:i+4])
			s.patch[i+3] = 0xFF
			dirty++
		}
	}
	copy(s.current, f)

	if dirty == 0 && s.frameSkipping {
		s.skipped++
		return nil, nil
	}

	var msgs [][]byte
	if s.skipped > 0 {
		msgs = append(msgs, binary.LittleEndian.AppendUint32([]byte{FrameSkip}, s.skipped))
		s.skipped = 0
	}

	typ, cached, buffer, c := Frame, FrameCache, s.current, s.frames
	if s.framePatching && dirty*100 < ppu.ScreenWidth*ppu.ScreenHeight*s.framePatchRatio {
		typ, cached, buffer, c = FramePatch, PatchCache, s.patch, s.patches
	}

	output := bytes.Clone(buffer)
	if s.compression {
		var err error
		if output, err = cbrotli.Encode(buffer, cbrotli.WriterOptions{Quality: s.compressionLevel}); err != nil {
			return msgs, err
		}
	}

	hash := xxhash.Sum64(output)
	if idx, ok := c.lookup(hash); ok {
		return append(msgs, message(cached, idx, nil)), nil
	}
	idx := c.add(hash, output)
	return append(msgs, message(typ, idx, output)), nil
}

// sync returns the messages that bring a new client up to date
// with the stream.
func (s *stream) sync() ([][]byte, error) {
	msgs := [][]byte{{ClientInfo, s.info()}}
	for i, d := range s.frames.data {
		if d != nil {
			msgs = append(msgs, message(FrameCacheSync, i, d))
		}
	}
	for i, d := range s.patches.data {
		if d != nil {
			msgs = append(msgs, message(PatchCacheSync, i, d))
		}
	}

	current := s.current
	if s.compression {
		var err error
		if current, err = cbrotli.Encode(s.current, cbrotli.WriterOptions{Quality: 9}); err != nil {
			return msgs, err
		}
	}
	return append(msgs, append([]byte{FrameSync}, current...)), nil
}

// reset empties the caches, as the encoding of their entries no
// longer matches the stream settings.
func (s *stream) reset() {
	s.frames = newCache(cacheSize)
	s.patches = newCache(cacheSize)
}

// message builds a message of typ for the cache entry at idx.
func message(typ Type, idx int, data []byte) []byte {
	msg := binary.LittleEndian.AppendUint16([]byte{typ}, uint16(idx))
	return append(msg, data...)
}
