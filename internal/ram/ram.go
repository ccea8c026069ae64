// Package ram provides a basic RAM implementation.
package ram

// RAM represents a fixed size block of RAM. Addresses are
// offsets into the block, wrapping at its size.
type RAM struct {
	data []uint8
}

// NewRAM returns a new RAM of size bytes.
func NewRAM(size uint32) *RAM {
	return &RAM{
		data: make([]uint8, size),
	}
}

// Read returns the value at the given address.
func (r *RAM) Read(address uint16) uint8 {
	return r.data[int(address)%len(r.data)]
}

// Write writes the value to the given address.
func (r *RAM) Write(address uint16, value uint8) {
	r.data[int(address)%len(r.data)] = value
}
