package hal

import (
	"errors"
	"time"

	"tinygo.org/x/drivers"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

var ErrNotImplemented = errors.New("not implemented")

// ErrWindow reports an address window outside the panel or with inverted corners.
var ErrWindow = errors.New("hal: invalid address window")

// PanelConfig is the one-time controller setup.
type PanelConfig struct {
	Width    int
	Height   int
	Rotation drivers.Rotation
	// BGR selects blue-first subpixel order in the controller's memory access control.
	BGR     bool
	ClockHz uint32
}

// DefaultPanelConfig is a 2.4" 240×320 ILI9341 module in portrait on a 40 MHz bus.
func DefaultPanelConfig() PanelConfig {
	return PanelConfig{
		Width:    240,
		Height:   320,
		Rotation: drivers.Rotation0,
		BGR:      true,
		ClockHz:  40_000_000,
	}
}

// Display moves RGB565 pixels into the panel.
//
// SetWindow selects an inclusive rectangle; WritePixels then streams row-major
// pixels into it, two bytes per pixel, high byte first. WritePixels blocks until
// the bytes are on the wire.
type Display interface {
	SetWindow(x0, y0, x1, y1 int) error
	WritePixels(buf []byte) error
}

// Panel is a Display that must be configured once before use.
type Panel interface {
	Display
	Configure(cfg PanelConfig) error
	Size() (w, h int)
}

// Clock provides wall time and the end-of-frame sleep.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// StopSignal is polled once per frame.
type StopSignal interface {
	StopRequested() bool
}

// HAL provides the only contact point between the scenes and the outside world.
type HAL interface {
	Logger() Logger
	LED() LED
	GPIO() GPIO
	Panel() Panel
	Clock() Clock
}

// Pin names looked up through GPIO.
const (
	// KillPinName is the active-low stop input.
	KillPinName = "KILL"
	// DeadlinePinName is an optional input that drops low when a run time limit expires.
	DeadlinePinName = "DEADLINE"
)

// StopAny trips when any of its signals trips. Nil entries are skipped.
type StopAny []StopSignal

func (s StopAny) StopRequested() bool {
	for _, sig := range s {
		if sig != nil && sig.StopRequested() {
			return true
		}
	}
	return false
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }
