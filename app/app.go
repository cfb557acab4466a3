// Package app wires a scene, the frame loop and the board together.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tinygo.org/x/tinyterm"

	"tftscenes/engine"
	"tftscenes/fixgl"
	"tftscenes/hal"
	"tftscenes/internal/buildinfo"
	"tftscenes/scenes"
)

type Config struct {
	// Scene is a registered scene name; empty selects the default.
	Scene string
	Panel hal.PanelConfig
	Loop  engine.Config
	// Banner draws the startup console during the loop's stop window.
	Banner bool
}

func DefaultConfig() Config {
	return Config{
		Panel:  hal.DefaultPanelConfig(),
		Loop:   engine.DefaultConfig(),
		Banner: true,
	}
}

var errNoKillPin = errors.New("app: board has no " + hal.KillPinName + " pin")

// New configures the panel and stop inputs and returns a ready loop for the
// configured scene.
func New(h hal.HAL, cfg Config) (*engine.Loop, error) {
	scene, err := scenes.New(cfg.Scene)
	if err != nil {
		return nil, err
	}

	panel := h.Panel()
	if panel == nil {
		return nil, errors.New("app: board has no panel")
	}
	if err := panel.Configure(cfg.Panel); err != nil {
		return nil, fmt.Errorf("app: configure panel: %w", err)
	}
	cfg.Loop.Width, cfg.Loop.Height = panel.Size()

	stop, err := stopInputs(h.GPIO())
	if err != nil {
		return nil, err
	}

	loop, err := engine.New(scene, engine.Devices{
		Display:   panel,
		Stop:      stop,
		Clock:     h.Clock(),
		Logger:    h.Logger(),
		Heartbeat: h.LED(),
	}, cfg.Loop)
	if err != nil {
		return nil, err
	}

	if cfg.Banner {
		drawBanner(loop.Framebuffer(), scene.Name(), cfg.Loop.StartupDelay)
		if err := panel.SetWindow(0, 0, cfg.Loop.Width-1, cfg.Loop.Height-1); err == nil {
			err = panel.WritePixels(loop.Framebuffer().Bytes())
		}
		if err != nil {
			h.Logger().WriteLineString(fmt.Sprintf("app: banner: %v", err))
		}
	}
	return loop, nil
}

func stopInputs(g hal.GPIO) (hal.StopAny, error) {
	kill, err := hal.NewKillSwitch(hal.FindPin(g, hal.KillPinName))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errNoKillPin, err)
	}
	stop := hal.StopAny{kill}
	if pin := hal.FindPin(g, hal.DeadlinePinName); pin != nil {
		deadline, err := hal.NewKillSwitch(pin)
		if err != nil {
			return nil, fmt.Errorf("app: deadline: %w", err)
		}
		stop = append(stop, deadline)
	}
	return stop, nil
}

// newConsole returns a software-scrolling terminal drawing into fb.
func newConsole(fb *fixgl.Framebuffer) *tinyterm.Terminal {
	term := tinyterm.NewTerminal(fb.Displayer())
	term.Configure(&tinyterm.Config{
		Font:              fixgl.TextFont,
		FontHeight:        10,
		FontOffset:        6,
		UseSoftwareScroll: true,
	})
	return term
}

func drawBanner(fb *fixgl.Framebuffer, scene string, delay time.Duration) {
	fb.Fill(fixgl.Black)
	con := newConsole(fb)
	con.Printf("\x1b[36mtftscenes\x1b[0m %s\r\n", buildinfo.Short())
	con.Printf("scene: \x1b[33m%s\x1b[0m\r\n", scene)
	con.Printf("panel: %dx%d rgb565\r\n", fb.Width(), fb.Height())
	if delay > 0 {
		con.Printf("starting in %v\r\n", delay)
	}
	con.Printf("pull %s low to stop\r\n", hal.KillPinName)
}

// Runner adapts New to the host runners.
func Runner(cfg Config) hal.Runner {
	return func(ctx context.Context, h hal.HAL) error {
		loop, err := New(h, cfg)
		if err != nil {
			return err
		}
		if err := loop.Run(ctx); err != nil {
			return err
		}
		st := loop.Stats()
		h.Logger().WriteLineString(fmt.Sprintf("app: %d frames, %d overruns, %d transfer errors",
			st.Frames, st.Overruns, st.TransferErrors))
		return nil
	}
}

// Run drives the loop on the board and then parks; a finished demo leaves
// the panel black until reset, a failed one shows the fault screen.
func Run(h hal.HAL, cfg Config) {
	if err := Runner(cfg)(context.Background(), h); err != nil {
		showFault(h, cfg, err)
	}
	select {}
}
