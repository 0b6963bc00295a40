package transcode

// frameArena owns the reusable raster buffers of one pipeline instance.
// Buffers returned by get and scratch are valid only until the next call for
// the same buffer: frame N's raster is overwritten by frame N+1. The arena
// is never shared across pipeline instances.
type frameArena struct {
	frame   []byte
	scratch []byte
}

// get returns the primary frame buffer sized to n bytes.
func (a *frameArena) get(n int) []byte {
	if cap(a.frame) < n {
		a.frame = make([]byte, n)
	}
	return a.frame[:n]
}

// getScratch returns the secondary buffer, used when a conversion cannot run
// in place (planar deinterleaving, palette expansion).
func (a *frameArena) getScratch(n int) []byte {
	if cap(a.scratch) < n {
		a.scratch = make([]byte, n)
	}
	return a.scratch[:n]
}

// swap exchanges the primary and scratch buffers after an out-of-place
// conversion so the converted raster becomes the current frame.
func (a *frameArena) swap() {
	a.frame, a.scratch = a.scratch, a.frame
}
