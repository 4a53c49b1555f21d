// Package null implements a deterministic, CPU-only rhi.Device. It performs
// no GPU work: buffers and textures are backed by plain byte slices, and
// every operation is synchronous and side-effect free beyond recording what
// happened. It exists so the batcher, atlas, and asset packages can be
// tested without a real graphics backend.
package null

import (
	"github.com/kairoui/engine/kairoerr"
	"github.com/kairoui/engine/rhi"
)

// Buffer is a byte-slice-backed rhi.Buffer.
type Buffer struct {
	label   string
	data    []byte
	usage   rhi.BufferUsage
	release bool
}

func newBuffer(desc rhi.BufferDesc) *Buffer {
	return &Buffer{
		label: desc.Label,
		data:  make([]byte, desc.Size),
		usage: desc.Usage,
	}
}

// Size returns the buffer's length in bytes.
func (b *Buffer) Size() uint64 { return uint64(len(b.data)) }

// Usage returns the usage flags the buffer was created with.
func (b *Buffer) Usage() rhi.BufferUsage { return b.usage }

// Release marks the buffer as released. Reads/writes after Release panic in
// debug builds of a real backend; here they are simply no longer valid but
// the data is left intact so tests can still inspect it if needed.
func (b *Buffer) Release() { b.release = true }

// Bytes returns the buffer's backing storage, for test assertions.
func (b *Buffer) Bytes() []byte { return b.data }

// Released reports whether Release has been called.
func (b *Buffer) Released() bool { return b.release }

func (b *Buffer) write(offset uint64, data []byte) error {
	if offset+uint64(len(data)) > uint64(len(b.data)) {
		return kairoerr.Newf(kairoerr.InvalidArgument,
			"null: write of %d bytes at offset %d exceeds buffer size %d", len(data), offset, len(b.data))
	}
	copy(b.data[offset:], data)
	return nil
}
