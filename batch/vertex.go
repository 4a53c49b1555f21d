package batch

// MaxTextures is the number of texture slots a single batch can bind
// simultaneously.
const MaxTextures = 8

// NoTexture is the sentinel TexSlot value meaning "use vertex color only,
// no texture sample."
const NoTexture = MaxTextures

// Vertex is the packed 2D vertex the batcher writes into the ring buffer:
// clip-space position, texture coordinates, a memory-layout RGBA color,
// and a texture slot index.
//
// Once written, a vertex's TexSlot must match the slot bound when its
// batch is flushed — the batcher enforces this by flushing before any
// slot rebind that would invalidate already-written vertices.
type Vertex struct {
	X, Y    float32
	U, V    float32
	Color   uint32
	TexSlot uint32
}

// SizeOfVertex is sizeof(Vertex) in bytes, used for buffer strides and
// ring-buffer allocation sizing.
const SizeOfVertex = 4*4 + 4 + 4

// ColorARGBToRGBA converts a packed 0xAARRGGBB color into the vertex
// memory layout: byte0=R, byte1=G, byte2=B, byte3=A (ascending memory
// addresses), which on a little-endian target places A in the
// high-order byte of the returned word.
func ColorARGBToRGBA(argb uint32) uint32 {
	a := (argb >> 24) & 0xFF
	r := (argb >> 16) & 0xFF
	g := (argb >> 8) & 0xFF
	b := argb & 0xFF
	return r | (g << 8) | (b << 16) | (a << 24)
}

// ToClipX converts a screen-space x coordinate (origin top-left, pixels)
// to normalized device x in [-1, +1].
func ToClipX(px, screenW float32) float32 {
	return (px/screenW)*2 - 1
}

// ToClipY converts a screen-space y coordinate (origin top-left, pixels,
// y-down) to normalized device y in [-1, +1], y-up.
func ToClipY(py, screenH float32) float32 {
	return 1 - (py/screenH)*2
}
