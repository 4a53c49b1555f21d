package rhi

// BufferDesc describes a buffer to be created by a Device.
type BufferDesc struct {
	Label string
	Size  uint64
	Usage BufferUsage
}

// Buffer is an opaque GPU buffer handle. Implementations are backend
// resources; callers never inspect a Buffer's internals.
type Buffer interface {
	// Size returns the buffer's size in bytes, as created.
	Size() uint64

	// Usage returns the buffer's usage flags, as created.
	Usage() BufferUsage

	// Release returns the underlying resource to the backend. Callers must
	// not use the Buffer after calling Release.
	Release()
}

// RingBuffer is a single n-buffered transient allocator for per-frame
// vertex/index uploads. One RingBuffer instance wraps N backing Buffers and
// rotates among them across frames so the GPU can still be consuming frame
// N-1's buffer while the CPU writes frame N's.
type RingBuffer interface {
	// Allocate reserves size bytes in the current frame's backing buffer and
	// returns the buffer to write into along with the byte offset of the
	// reservation. It returns a RingBufferOOM kairoerr.Error if size exceeds
	// the remaining capacity for this frame.
	Allocate(size uint64) (buf Buffer, offset uint64, err error)

	// CurrentBuffer returns the backing Buffer for the current frame without
	// allocating.
	CurrentBuffer() Buffer

	// NextFrame advances to the next backing buffer in the ring and resets
	// its write cursor to zero. It must be called exactly once per frame,
	// after the GPU work referencing the buffer N frames ago is known to
	// have retired.
	NextFrame()

	// Capacity returns the size in bytes of each backing buffer.
	Capacity() uint64
}
