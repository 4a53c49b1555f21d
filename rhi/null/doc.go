// Package null implements rhi.Device with no GPU: buffers and textures are
// byte slices, draw calls are recorded rather than executed. It is the
// backend used by every test in this module and by headless tooling.
package null
