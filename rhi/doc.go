// Package rhi is the render hardware interface that the ui batcher, the
// glyph atlas, and the asset texture loader all target. It intentionally
// exposes a small surface: resource creation, one ring buffer abstraction,
// and a per-frame command recorder. Backends implement Device; rhi/null
// provides a deterministic backend for tests.
package rhi
