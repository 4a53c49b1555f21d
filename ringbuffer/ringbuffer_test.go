package ringbuffer_test

import (
	"errors"
	"testing"

	"github.com/kairoui/engine/kairoerr"
	"github.com/kairoui/engine/rhi"
	"github.com/kairoui/engine/rhi/null"
	"github.com/kairoui/engine/ringbuffer"
)

func TestAllocateWithinCapacity(t *testing.T) {
	dev := null.NewDevice()
	rb, err := ringbuffer.New(dev, 2, 256, rhi.BufferUsageVertex)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	buf, offset, err := rb.Allocate(64)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if offset != 0 {
		t.Fatalf("offset = %d, want 0", offset)
	}
	if buf != rb.CurrentBuffer() {
		t.Fatalf("Allocate returned a buffer other than CurrentBuffer")
	}
}

func TestAllocateOOM(t *testing.T) {
	dev := null.NewDevice()
	rb, err := ringbuffer.New(dev, 2, 128, rhi.BufferUsageVertex)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, _, err := rb.Allocate(64); err != nil {
		t.Fatalf("first Allocate: %v", err)
	}
	_, _, err = rb.Allocate(128)
	if err == nil {
		t.Fatalf("expected RingBufferOOM, got nil")
	}
	if !kairoerr.Is(err, kairoerr.RingBufferOOM) {
		t.Fatalf("expected kairoerr.RingBufferOOM, got %v", err)
	}

	var kerr *kairoerr.Error
	if !errors.As(err, &kerr) {
		t.Fatalf("expected *kairoerr.Error in chain")
	}
}

func TestNextFrameRotatesAndResets(t *testing.T) {
	dev := null.NewDevice()
	rb, err := ringbuffer.New(dev, 3, 64, rhi.BufferUsageVertex)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	first := rb.CurrentBuffer()
	if _, _, err := rb.Allocate(32); err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if rb.Used() != 32 {
		t.Fatalf("Used() = %d, want 32", rb.Used())
	}

	rb.NextFrame()
	if rb.Used() != 0 {
		t.Fatalf("Used() after NextFrame = %d, want 0", rb.Used())
	}
	if rb.CurrentBuffer() == first {
		t.Fatalf("expected CurrentBuffer to change after NextFrame")
	}

	rb.NextFrame()
	rb.NextFrame()
	if rb.CurrentBuffer() != first {
		t.Fatalf("expected ring to cycle back to the first buffer after FrameCount rotations")
	}
}

func TestAllocateAlignsOffsets(t *testing.T) {
	dev := null.NewDevice()
	rb, err := ringbuffer.New(dev, 1, 256, rhi.BufferUsageVertex, ringbuffer.WithAlignment(16))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, off, err := rb.Allocate(5); err != nil || off != 0 {
		t.Fatalf("first Allocate: off=%d err=%v", off, err)
	}
	_, off, err := rb.Allocate(5)
	if err != nil {
		t.Fatalf("second Allocate: %v", err)
	}
	if off%16 != 0 {
		t.Fatalf("second offset %d is not 16-byte aligned", off)
	}
}
