// Package fixgl is the fixed-point rendering pipeline shared by the tftscenes demos.
//
// It is meant for small SPI panels driven from a microcontroller: no floating point at
// runtime, no allocations in the frame path, and bit-stable output on every target.
//
// Pipeline (per frame):
//
//	static geometry → Rotate* → Perspective.Project → Framebuffer primitives → Display.
//
// Scalars are integers scaled by One (1024). Division uses FloorDiv so that the
// rounding bias of every transform is the same on every platform; results are not
// "corrected" towards nearest.
//
// The framebuffer stores big-endian RGB565 (pixel.RGB565BE), the order the panel
// controller expects on its serial interface, so buffers are transferred as-is.
package fixgl
