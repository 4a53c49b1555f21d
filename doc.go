// Package engine provides the shared color type and logging facade used
// across the engine's subsystems, and documents the module as a whole.
//
// # Subsystems
//
//   - [github.com/kairoui/engine/rhi]: a thin, backend-agnostic GPU
//     contract (buffers, textures, pipelines, draw submission), with a
//     rhi/null implementation for tests.
//   - [github.com/kairoui/engine/ringbuffer]: per-frame transient GPU
//     buffer allocation on top of an rhi.Device.
//   - [github.com/kairoui/engine/batch]: an immediate-mode 2D UI batcher
//     that coalesces rects, quads, and shaped text into indexed draw
//     calls.
//   - [github.com/kairoui/engine/atlas]: glyph rasterization into a
//     signed-distance-field texture atlas, plus text shaping and line
//     wrapping.
//   - [github.com/kairoui/engine/asset]: an async, memory-budgeted cache
//     for textures, fonts, and other loaded resources.
//   - [github.com/kairoui/engine/internal/pool]: the priority-aware
//     worker pool asset loads and other background work run on.
//
// # Logging
//
// The asset cache and kairoprof log through a shared logger that is silent
// by default; call [SetLogger] to route their output somewhere, or set
// asset.Config.Logger to give one cache its own logger. The batch package
// logs through slog's default logger.
package engine
