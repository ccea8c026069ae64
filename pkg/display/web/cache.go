package web

// cache is a fixed size ring of encoded frames, indexed by the
// hash of their contents. Clients mirror the cache, so a repeated
// frame can be sent as its index alone.
type cache struct {
	hashes []uint64
	data   [][]byte
	next   int
}

func newCache(size int) *cache {
	return &cache{
		hashes: make([]uint64, size),
		data:   make([][]byte, size),
	}
}

// lookup returns the index of the entry with hash.
func (c *cache) lookup(hash uint64) (int, bool) {
	for i, h := range c.hashes {
		if h == hash && c.data[i] != nil {
			return i, true
		}
	}
	return 0, false
}

// add stores data under hash, replacing the oldest entry, and
// returns its index.
func (c *cache) add(hash uint64, data []byte) int {
	idx := c.next
	c.hashes[idx] = hash
	c.data[idx] = data
	c.next = (c.next + 1) % len(c.hashes)
	return idx
}
