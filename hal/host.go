//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Runner drives an application against a HAL until it finishes.
type Runner func(ctx context.Context, h HAL) error

// HostConfig describes the emulated board.
type HostConfig struct {
	Panel PanelConfig
	// Deadline, when positive, drops the DEADLINE pin after it elapses.
	Deadline time.Duration
	// Verbose logs heartbeat LED toggles.
	Verbose bool
	// Log receives log lines; nil means stderr.
	Log io.Writer
}

func DefaultHostConfig() HostConfig {
	return HostConfig{Panel: DefaultPanelConfig()}
}

// Host is the desktop HAL: an emulated panel, a kill pin driven by the
// viewer, and the system clock.
type Host struct {
	cfg    HostConfig
	logger *hostLogger
	led    *hostLED
	gpio   GPIO
	kill   *virtualPin
	panel  *hostPanel
}

func NewHost(cfg HostConfig) *Host {
	w := cfg.Log
	if w == nil {
		w = os.Stderr
	}
	logger := &hostLogger{w: w}
	led := &hostLED{logger: logger, verbose: cfg.Verbose}
	kill := newVirtualPin(KillPinName, GPIOCapInput|GPIOCapPullUp)

	pins := []GPIOPin{newLEDPin("LED", led), kill}
	if cfg.Deadline > 0 {
		pins = append(pins, newSignalPin(DeadlinePinName, 2*cfg.Deadline, cfg.Deadline))
	}
	return &Host{
		cfg:    cfg,
		logger: logger,
		led:    led,
		gpio:   newVirtualGPIO(pins),
		kill:   kill,
		panel:  newHostPanel(),
	}
}

func (h *Host) Logger() Logger { return h.logger }
func (h *Host) LED() LED       { return h.led }
func (h *Host) GPIO() GPIO     { return h.gpio }
func (h *Host) Panel() Panel   { return h.panel }
func (h *Host) Clock() Clock   { return systemClock{} }

// PanelConfig is the configuration the application should apply.
func (h *Host) PanelConfig() PanelConfig { return h.cfg.Panel }

// RequestStop pulls the kill pin to ground.
func (h *Host) RequestStop() { h.kill.drive(false) }

// Frames reports how many complete frames reached the panel.
func (h *Host) Frames() uint64 { return h.panel.frameCount() }

type hostLogger struct {
	mu      sync.Mutex
	w       io.Writer
	held    bool
	pending []string
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held {
		l.pending = append(l.pending, s)
		return
	}
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.WriteLineString(string(b))
}

// hold queues lines while a full-screen view owns the terminal.
func (l *hostLogger) hold() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.held = true
}

func (l *hostLogger) release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.held = false
	for _, s := range l.pending {
		fmt.Fprintln(l.w, s)
	}
	l.pending = nil
}

type hostLED struct {
	mu      sync.Mutex
	on      bool
	verbose bool
	logger  *hostLogger
}

func (l *hostLED) High() { l.set(true) }
func (l *hostLED) Low()  { l.set(false) }

func (l *hostLED) set(on bool) {
	l.mu.Lock()
	l.on = on
	l.mu.Unlock()
	if !l.verbose {
		return
	}
	if on {
		l.logger.WriteLineString("led: HIGH")
	} else {
		l.logger.WriteLineString("led: LOW")
	}
}
