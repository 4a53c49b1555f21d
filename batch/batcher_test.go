package batch

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/kairoui/engine/rhi"
	"github.com/kairoui/engine/rhi/null"
)

func newTestBatcher(t *testing.T) (*Batcher, *null.Device) {
	t.Helper()
	device := null.NewDevice()
	b, err := New(device, DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return b, device
}

func decodeVertex(buf rhi.Buffer, offset uint64) Vertex {
	data := buf.(*null.Buffer).Bytes()[offset : offset+SizeOfVertex]
	return Vertex{
		X:       math.Float32frombits(binary.LittleEndian.Uint32(data[0:])),
		Y:       math.Float32frombits(binary.LittleEndian.Uint32(data[4:])),
		U:       math.Float32frombits(binary.LittleEndian.Uint32(data[8:])),
		V:       math.Float32frombits(binary.LittleEndian.Uint32(data[12:])),
		Color:   binary.LittleEndian.Uint32(data[16:]),
		TexSlot: binary.LittleEndian.Uint32(data[20:]),
	}
}

func decodeIndices(buf rhi.Buffer, offset uint64, count int) []uint32 {
	data := buf.(*null.Buffer).Bytes()[offset:]
	out := make([]uint32, count)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return out
}

// TestAddRectProducesExpectedGeometry is Scenario A: a single rect on an
// 800x600 screen flushes as one draw call with four clip-space vertices in
// the expected positions, a correctly packed color, and a fan-triangulated
// index list.
func TestAddRectProducesExpectedGeometry(t *testing.T) {
	b, device := newTestBatcher(t)

	if err := b.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	b.SetScreenSize(800, 600)
	b.AddRect(100, 100, 200, 50, 0xFFFF0000)
	if err := b.End(); err != nil {
		t.Fatalf("End: %v", err)
	}

	frames := device.SubmittedFrames()
	if len(frames) != 1 {
		t.Fatalf("SubmittedFrames: got %d, want 1", len(frames))
	}
	draws := frames[0].Draws()
	if len(draws) != 1 {
		t.Fatalf("Draws: got %d, want 1", len(draws))
	}
	cmd := draws[0]
	if cmd.IndexCount != 6 {
		t.Fatalf("IndexCount: got %d, want 6", cmd.IndexCount)
	}

	wantX := []float32{-0.75, -0.25, -0.25, -0.75}
	wantY := []float32{0.6667, 0.6667, 0.5, 0.5}
	const eps = 1e-3
	for i := 0; i < 4; i++ {
		v := decodeVertex(cmd.VertexBuffer, cmd.VertexOffset+uint64(i)*SizeOfVertex)
		if math.Abs(float64(v.X-wantX[i])) > eps || math.Abs(float64(v.Y-wantY[i])) > eps {
			t.Errorf("vertex %d: got (%v,%v), want (%v,%v)", i, v.X, v.Y, wantX[i], wantY[i])
		}
		r := v.Color & 0xFF
		g := (v.Color >> 8) & 0xFF
		bl := (v.Color >> 16) & 0xFF
		a := (v.Color >> 24) & 0xFF
		if r != 0xFF || g != 0x00 || bl != 0x00 || a != 0xFF {
			t.Errorf("vertex %d color: got R=%x G=%x B=%x A=%x", i, r, g, bl, a)
		}
	}

	wantIndices := []uint32{0, 1, 2, 2, 3, 0}
	gotIndices := decodeIndices(cmd.IndexBuffer, cmd.IndexOffset, 6)
	for i := range wantIndices {
		if gotIndices[i] != wantIndices[i] {
			t.Fatalf("index %d: got %d, want %d", i, gotIndices[i], wantIndices[i])
		}
	}

	stats := b.Stats()
	if stats.DrawCalls != 1 {
		t.Errorf("DrawCalls: got %d, want 1", stats.DrawCalls)
	}
	if stats.VerticesRendered != 4 {
		t.Errorf("VerticesRendered: got %d, want 4", stats.VerticesRendered)
	}
}

// TestTextureChangeFlushesBatch binds a slot for the first time, draws,
// then rebinds the same slot to a different handle. Both the first bind
// (nil to handleA) and the rebind (handleA to handleB) are effective
// changes, so each flushes and counts as a texture switch.
func TestTextureChangeFlushesBatch(t *testing.T) {
	b, device := newTestBatcher(t)

	handleA, err := device.CreateTexture(rhi.TextureDesc{Label: "a", Width: 4, Height: 4, Format: rhi.TextureFormatRGBA8Unorm})
	if err != nil {
		t.Fatalf("CreateTexture a: %v", err)
	}
	handleB, err := device.CreateTexture(rhi.TextureDesc{Label: "b", Width: 4, Height: 4, Format: rhi.TextureFormatRGBA8Unorm})
	if err != nil {
		t.Fatalf("CreateTexture b: %v", err)
	}

	if err := b.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	b.SetScreenSize(800, 600)

	b.SetTexture(0, handleA)
	b.AddTexturedRect(0, 0, 10, 10, [2]float32{0, 0}, [2]float32{1, 1}, 0xFFFFFFFF, 0)

	b.SetTexture(0, handleB)
	b.AddTexturedRect(20, 0, 10, 10, [2]float32{0, 0}, [2]float32{1, 1}, 0xFFFFFFFF, 0)

	if err := b.End(); err != nil {
		t.Fatalf("End: %v", err)
	}

	stats := b.Stats()
	if stats.DrawCalls != 2 {
		t.Fatalf("DrawCalls: got %d, want 2", stats.DrawCalls)
	}
	if stats.TextureSwitches != 2 {
		t.Fatalf("TextureSwitches: got %d, want 2", stats.TextureSwitches)
	}
}

// TestFirstTextureBindCountsAsSwitch is Scenario B: an untextured rect,
// then a single texture bind, then a textured rect. The slot's first bind
// (nil to T) must flush the pending untextured rect and count as a
// texture switch, even though the slot was never bound before.
func TestFirstTextureBindCountsAsSwitch(t *testing.T) {
	b, device := newTestBatcher(t)

	handle, err := device.CreateTexture(rhi.TextureDesc{Label: "t", Width: 4, Height: 4, Format: rhi.TextureFormatRGBA8Unorm})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}

	if err := b.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	b.SetScreenSize(800, 600)

	b.AddRect(0, 0, 10, 10, 0xFFFFFFFF)
	b.SetTexture(0, handle)
	b.AddTexturedRect(0, 0, 10, 10, [2]float32{0, 0}, [2]float32{1, 1}, 0xFFFFFFFF, 0)

	if err := b.End(); err != nil {
		t.Fatalf("End: %v", err)
	}

	stats := b.Stats()
	if stats.DrawCalls != 2 {
		t.Fatalf("DrawCalls: got %d, want 2", stats.DrawCalls)
	}
	if stats.TextureSwitches != 1 {
		t.Fatalf("TextureSwitches: got %d, want 1", stats.TextureSwitches)
	}
}

// TestScissorCullsFullyClippedRect is Scenario C: a rect entirely outside
// the active scissor produces zero draw calls and one culled element.
func TestScissorCullsFullyClippedRect(t *testing.T) {
	b, _ := newTestBatcher(t)

	if err := b.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	b.SetScreenSize(800, 600)
	b.PushScissor(ScissorRect{X: 0, Y: 0, W: 50, H: 50})
	b.AddRect(100, 100, 20, 20, 0xFFFFFFFF)
	if err := b.End(); err != nil {
		t.Fatalf("End: %v", err)
	}

	stats := b.Stats()
	if stats.DrawCalls != 0 {
		t.Fatalf("DrawCalls: got %d, want 0", stats.DrawCalls)
	}
	if stats.CulledElements != 1 {
		t.Fatalf("CulledElements: got %d, want 1", stats.CulledElements)
	}
}
