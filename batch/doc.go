// Package batch implements the immediate-mode 2D UI batcher: callers push
// rects, quads, and shaped text between Begin and End, and the Batcher
// coalesces them into as few indexed draw calls as geometry, texture
// bindings, and scissor state allow.
//
// A Batcher owns a pair of ring buffers for transient vertex and index
// storage and a small set of lazily built pipeline variants (opaque,
// textured, text-SDF). It never stores an rhi.Context across frames: Begin
// opens one from the device and End submits it.
//
//	b, err := batch.New(device, batch.DefaultConfig())
//	b.Begin()
//	b.SetScreenSize(800, 600)
//	b.AddRect(100, 100, 200, 50, 0xFFFF0000)
//	b.AddText(10, 10, "hello", 0xFFFFFFFF, font, 16, shaper, atlasMgr)
//	b.End()
package batch
