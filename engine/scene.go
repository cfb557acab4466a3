// Package engine drives a scene through the frame loop: update, render,
// transfer, pace, and a clean black screen on stop.
package engine

import (
	"time"

	"tftscenes/fixgl"
)

// Scene is one animated demo. Build runs once before the loop; Update and
// Render run every frame and must not allocate.
type Scene interface {
	Name() string
	// FrameBudget is the target frame period used for pacing.
	FrameBudget() time.Duration
	// Build creates geometry and validates configuration.
	Build() error
	// Update advances animation state to frame.
	Update(frame uint32)
	// Render draws the current state into fb.
	Render(fb *fixgl.Framebuffer)
}
