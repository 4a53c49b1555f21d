package batch

import (
	"encoding/binary"
	"math"
)

// clippedRect is an axis-aligned rect clipped against a scissor, in
// screen-pixel coordinates.
type clippedRect struct {
	X, Y, W, H float32
}

// clipRect clips an untextured rect against scissor. ok is false when the
// result has no area.
func clipRect(x, y, w, h float32, scissor ScissorRect) (clippedRect, bool) {
	r := ScissorRect{X: x, Y: y, W: w, H: h}.Clip(scissor)
	if !r.Valid() {
		return clippedRect{}, false
	}
	return clippedRect{X: r.X, Y: r.Y, W: r.W, H: r.H}, true
}

// clippedRectUV is a clipped textured rect, with UVs remapped to the
// clipped geometry so the sampled texels remain aligned to what would
// have been visible through the unclipped quad.
type clippedRectUV struct {
	x, y, w, h float32
	u0, u1     [2]float32
}

// clipRectUV clips a textured rect against scissor, proportionally
// remapping uv0/uv1 so the visible texel footprint matches the clipped
// geometry rather than stretching the full texture into the smaller quad.
func clipRectUV(x, y, w, h float32, uv0, uv1 [2]float32, scissor ScissorRect) (clippedRectUV, bool) {
	r := ScissorRect{X: x, Y: y, W: w, H: h}.Clip(scissor)
	if !r.Valid() {
		return clippedRectUV{}, false
	}
	if w <= 0 || h <= 0 {
		return clippedRectUV{}, false
	}

	tx0 := (r.X - x) / w
	ty0 := (r.Y - y) / h
	tx1 := (r.X + r.W - x) / w
	ty1 := (r.Y + r.H - y) / h

	lerp := func(a, b, t float32) float32 { return a + (b-a)*t }

	return clippedRectUV{
		x: r.X, y: r.Y, w: r.W, h: r.H,
		u0: [2]float32{lerp(uv0[0], uv1[0], tx0), lerp(uv0[1], uv1[1], ty0)},
		u1: [2]float32{lerp(uv0[0], uv1[0], tx1), lerp(uv0[1], uv1[1], ty1)},
	}, true
}

// vertexBytes serializes vertices into the Vertex wire layout (two
// float32, two float32, two uint32, little-endian) for WriteBuffer.
func vertexBytes(vertices []Vertex) []byte {
	out := make([]byte, len(vertices)*SizeOfVertex)
	for i, v := range vertices {
		o := i * SizeOfVertex
		binary.LittleEndian.PutUint32(out[o:], math.Float32bits(v.X))
		binary.LittleEndian.PutUint32(out[o+4:], math.Float32bits(v.Y))
		binary.LittleEndian.PutUint32(out[o+8:], math.Float32bits(v.U))
		binary.LittleEndian.PutUint32(out[o+12:], math.Float32bits(v.V))
		binary.LittleEndian.PutUint32(out[o+16:], v.Color)
		binary.LittleEndian.PutUint32(out[o+20:], v.TexSlot)
	}
	return out
}

// indexBytes serializes a 32-bit index buffer, little-endian.
func indexBytes(indices []uint32) []byte {
	out := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(out[i*4:], idx)
	}
	return out
}
