// Package ringbuffer implements the engine's n-buffered transient GPU
// allocator: a small pool of backing buffers, one per frame-in-flight,
// rotated so the CPU can write frame N while the GPU still reads frame N-1.
//
// It is backend-agnostic: it creates its backing buffers through
// rhi.Device.CreateBuffer and tracks allocation offsets itself, so any
// rhi.Device implementation gets ring-buffering without special support.
package ringbuffer

import (
	"github.com/kairoui/engine/kairoerr"
	"github.com/kairoui/engine/rhi"
)

// DefaultFrameCount is the number of backing buffers used when a caller
// does not have a specific frame-in-flight count in mind. Double buffering
// is the minimum that lets the CPU stay ahead of the GPU.
const DefaultFrameCount = 2

// RingBuffer implements rhi.RingBuffer over a fixed set of backing buffers
// created once at construction time. It is not safe for concurrent use;
// allocation happens on the single thread recording a frame.
type RingBuffer struct {
	backing  []rhi.Buffer
	capacity uint64
	usage    rhi.BufferUsage
	frame    int
	cursor   uint64
	// alignment is the byte alignment every allocation offset is rounded up
	// to, matching common GPU uniform/vertex alignment requirements.
	alignment uint64
}

// Option configures a RingBuffer at construction.
type Option func(*RingBuffer)

// WithAlignment sets the byte alignment used for each Allocate call.
// Must be a power of two. The default is 16.
func WithAlignment(n uint64) Option {
	return func(r *RingBuffer) { r.alignment = n }
}

// New creates a RingBuffer with frameCount backing buffers of bufferSize
// bytes each, allocated through device.
func New(device rhi.Device, frameCount int, bufferSize uint64, usage rhi.BufferUsage, opts ...Option) (*RingBuffer, error) {
	if frameCount <= 0 {
		frameCount = DefaultFrameCount
	}

	r := &RingBuffer{
		capacity:  bufferSize,
		usage:     usage,
		alignment: 16,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.backing = make([]rhi.Buffer, frameCount)
	for i := 0; i < frameCount; i++ {
		buf, err := device.CreateBuffer(rhi.BufferDesc{
			Label: "ring-buffer",
			Size:  bufferSize,
			Usage: usage,
		})
		if err != nil {
			return nil, kairoerr.Wrap(kairoerr.ResourceCreation, err, "ringbuffer: create backing buffer")
		}
		r.backing[i] = buf
	}

	return r, nil
}

func alignUp(v, align uint64) uint64 {
	if align <= 1 {
		return v
	}
	return (v + align - 1) &^ (align - 1)
}

// Allocate reserves size bytes in the current frame's backing buffer.
func (r *RingBuffer) Allocate(size uint64) (rhi.Buffer, uint64, error) {
	offset := alignUp(r.cursor, r.alignment)
	if offset+size > r.capacity {
		return nil, 0, kairoerr.Newf(kairoerr.RingBufferOOM,
			"ringbuffer: requested %d bytes at offset %d exceeds capacity %d", size, offset, r.capacity)
	}
	r.cursor = offset + size
	return r.backing[r.frame], offset, nil
}

// CurrentBuffer returns the backing buffer for the active frame.
func (r *RingBuffer) CurrentBuffer() rhi.Buffer {
	return r.backing[r.frame]
}

// NextFrame rotates to the next backing buffer and resets the write cursor.
// Callers must ensure the GPU has finished reading the buffer being rotated
// back into, which for a ring of N buffers means N-1 frames must have
// elapsed since it was last used.
func (r *RingBuffer) NextFrame() {
	r.frame = (r.frame + 1) % len(r.backing)
	r.cursor = 0
}

// Capacity returns the size in bytes of each backing buffer.
func (r *RingBuffer) Capacity() uint64 {
	return r.capacity
}

// FrameCount returns the number of backing buffers in the ring.
func (r *RingBuffer) FrameCount() int {
	return len(r.backing)
}

// Used returns the number of bytes allocated so far in the current frame.
func (r *RingBuffer) Used() uint64 {
	return r.cursor
}

var _ rhi.RingBuffer = (*RingBuffer)(nil)
