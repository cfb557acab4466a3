package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"tftscenes/fixgl"
	"tftscenes/hal"
)

// State is the loop lifecycle.
type State uint8

const (
	StateRunning State = iota
	StateStoppingRequested
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateStoppingRequested:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Control is the result of one Tick.
type Control uint8

const (
	// Continue means a frame was rendered and transferred.
	Continue Control = iota
	// Stopping means a stop was observed; the next Tick blanks the panel.
	Stopping
	// Stopped means the loop is finished and Tick does nothing.
	Stopped
)

// Config holds loop tuning. The zero value is usable.
type Config struct {
	Width  int
	Height int
	// StartupDelay is a stop window before the first frame, polled every PollInterval.
	StartupDelay time.Duration
	PollInterval time.Duration
	// MaxFrames stops the loop after that many frames (0 = unlimited).
	MaxFrames uint32
	// MaintenanceEvery is the frame interval of the maintenance pass.
	MaintenanceEvery uint32
	// CollectGarbage runs runtime.GC during maintenance.
	CollectGarbage bool
	// MinSleep is the yield used when a frame overruns its budget.
	MinSleep time.Duration
}

// DefaultConfig is a 240×320 panel with the 1 s stop window.
func DefaultConfig() Config {
	return Config{
		Width:            240,
		Height:           320,
		StartupDelay:     time.Second,
		PollInterval:     20 * time.Millisecond,
		MaintenanceEvery: 32,
		MinSleep:         time.Millisecond,
	}
}

// Devices are the hardware capabilities a loop drives.
type Devices struct {
	Display hal.Display
	Stop    hal.StopSignal
	Clock   hal.Clock
	Logger  hal.Logger
	// Heartbeat toggles on every maintenance pass when set.
	Heartbeat hal.LED
}

// Stats counts loop activity.
type Stats struct {
	Frames         uint32
	Overruns       uint32
	TransferErrors uint32
	LastFrame      time.Duration
}

// Loop owns the framebuffer and runs one scene against one display.
type Loop struct {
	scene Scene
	dev   Devices
	cfg   Config
	fb    *fixgl.Framebuffer

	state     State
	frame     uint32
	stopAsked bool
	beat      bool
	stats     Stats
}

var errNoDisplay = errors.New("engine: no display")

// New builds scene and allocates the framebuffer. Configuration errors are
// returned here so nothing fails once the loop is running.
func New(scene Scene, dev Devices, cfg Config) (*Loop, error) {
	if scene == nil {
		return nil, errors.New("engine: no scene")
	}
	if dev.Display == nil {
		return nil, errNoDisplay
	}
	if dev.Clock == nil {
		return nil, errors.New("engine: no clock")
	}
	if cfg.Width == 0 && cfg.Height == 0 {
		def := DefaultConfig()
		cfg.Width, cfg.Height = def.Width, def.Height
	}
	if cfg.MaintenanceEvery == 0 {
		cfg.MaintenanceEvery = 32
	}
	if cfg.MinSleep <= 0 {
		cfg.MinSleep = time.Millisecond
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 20 * time.Millisecond
	}

	fb, err := fixgl.NewFramebuffer(cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	if err := scene.Build(); err != nil {
		return nil, fmt.Errorf("engine: build %s: %w", scene.Name(), err)
	}
	return &Loop{scene: scene, dev: dev, cfg: cfg, fb: fb}, nil
}

func (l *Loop) Framebuffer() *fixgl.Framebuffer { return l.fb }
func (l *Loop) State() State                    { return l.state }
func (l *Loop) Frame() uint32                   { return l.frame }
func (l *Loop) Stats() Stats                    { return l.stats }
func (l *Loop) Scene() Scene                    { return l.scene }

// RequestStop asks the loop to stop at the start of the next frame.
func (l *Loop) RequestStop() { l.stopAsked = true }

// Tick runs one step of the state machine.
func (l *Loop) Tick() Control {
	switch l.state {
	case StateStopped:
		return Stopped
	case StateStoppingRequested:
		l.blank()
		l.state = StateStopped
		l.logf("engine: %s stopped after %d frames", l.scene.Name(), l.frame)
		return Stopped
	}

	start := l.dev.Clock.Now()
	if l.shouldStop() {
		l.state = StateStoppingRequested
		return Stopping
	}

	l.scene.Update(l.frame)
	l.scene.Render(l.fb)
	l.transfer()

	l.frame++
	l.stats.Frames = l.frame
	if l.frame%l.cfg.MaintenanceEvery == 0 {
		l.maintain()
	}

	elapsed := l.dev.Clock.Now().Sub(start)
	l.stats.LastFrame = elapsed
	if budget := l.scene.FrameBudget(); elapsed < budget {
		l.dev.Clock.Sleep(budget - elapsed)
	} else {
		l.stats.Overruns++
		l.dev.Clock.Sleep(l.cfg.MinSleep)
	}
	return Continue
}

// Run waits out the startup window, then ticks until the loop stops. Context
// cancellation requests a stop, so the panel is still blanked.
func (l *Loop) Run(ctx context.Context) error {
	l.logf("engine: %s starting (%dx%d, budget %v)", l.scene.Name(), l.cfg.Width, l.cfg.Height, l.scene.FrameBudget())
	l.startupWindow(ctx)
	for {
		if ctx.Err() != nil {
			l.RequestStop()
		}
		if l.Tick() == Stopped {
			return nil
		}
	}
}

func (l *Loop) startupWindow(ctx context.Context) {
	for waited := time.Duration(0); waited < l.cfg.StartupDelay; waited += l.cfg.PollInterval {
		if ctx.Err() != nil || l.shouldStop() {
			return
		}
		l.dev.Clock.Sleep(l.cfg.PollInterval)
	}
}

func (l *Loop) shouldStop() bool {
	if l.stopAsked {
		return true
	}
	if l.cfg.MaxFrames > 0 && l.frame >= l.cfg.MaxFrames {
		return true
	}
	return l.dev.Stop != nil && l.dev.Stop.StopRequested()
}

func (l *Loop) blank() {
	l.fb.Fill(fixgl.Black)
	l.transfer()
}

func (l *Loop) transfer() {
	err := l.dev.Display.SetWindow(0, 0, l.fb.Width()-1, l.fb.Height()-1)
	if err == nil {
		err = l.dev.Display.WritePixels(l.fb.Bytes())
	}
	if err != nil {
		l.stats.TransferErrors++
		l.logf("engine: transfer frame %d: %v", l.frame, err)
	}
}

func (l *Loop) maintain() {
	if l.cfg.CollectGarbage {
		runtime.GC()
	}
	if l.dev.Heartbeat != nil {
		l.beat = !l.beat
		if l.beat {
			l.dev.Heartbeat.High()
		} else {
			l.dev.Heartbeat.Low()
		}
	}
}

func (l *Loop) logf(format string, args ...any) {
	if l.dev.Logger == nil {
		return
	}
	l.dev.Logger.WriteLineString(fmt.Sprintf(format, args...))
}
