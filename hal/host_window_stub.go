//go:build !tinygo && !cgo

package hal

import (
	"context"
	"errors"
)

// WindowConfig controls the desktop viewer.
type WindowConfig struct {
	Title string
	Scale int
}

func RunWindow(_ context.Context, _ *Host, _ Runner, _ WindowConfig) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
