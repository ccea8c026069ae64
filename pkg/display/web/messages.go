package web

// Type is the first byte of every message sent to a client.
type Type = uint8

const (
	// Frame carries a full frame: [Frame, idx lo, idx hi, pixels...].
	// The frame is stored in the client frame cache at idx.
	Frame Type = iota
	// FramePatch carries the pixels that changed since the previous
	// frame, with an alpha of 0 for unchanged pixels. It is stored
	// in the client patch cache at idx.
	FramePatch
	// FrameSkip reports the number of identical frames skipped,
	// as a little endian uint32.
	FrameSkip
	// FrameCache redraws the frame at idx of the frame cache.
	FrameCache
	// PatchCache applies the patch at idx of the patch cache.
	PatchCache
	// FrameCacheSync fills the frame cache of a new client
	// without drawing.
	FrameCacheSync
	// PatchCacheSync fills the patch cache of a new client
	// without drawing.
	PatchCacheSync
	// FrameSync draws a full, uncached frame.
	FrameSync
	// ClientInfo carries the stream settings, see streamInfo.
	ClientInfo
	// ServerInfo carries the id and latency of each client.
	ServerInfo
	// Title carries the window title.
	Title
)

// Control is the first byte of messages that change stream
// settings: [Control, setting, value].
const Control = 10

// Settings that can be changed with a Control message.
const (
	_ uint8 = iota
	Compression
	CompressionLevel
	FramePatching
	FrameSkipping
)

// Command is the first byte of messages that control the
// emulator: [Command, emulator.Command].
const Command = 11

// Closing is sent by a client before it disconnects.
const Closing = 255
