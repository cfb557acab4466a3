//go:build !tinygo

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"tftscenes/app"
	"tftscenes/hal"
	"tftscenes/scenes"
)

func main() {
	cfg := app.DefaultConfig()
	var (
		mode     string
		frames   uint
		duration time.Duration
		snapshot string
		scale    int
		list     bool
		verbose  bool
		delay    time.Duration
	)
	flag.StringVar(&cfg.Scene, "scene", scenes.Default, "Scene to run ("+strings.Join(scenes.Names(), ", ")+").")
	flag.StringVar(&mode, "mode", "window", "Viewer: window, terminal or headless.")
	flag.UintVar(&frames, "frames", 0, "Stop after N frames (0 = run until stopped).")
	flag.DurationVar(&duration, "duration", 0, "Stop after this long (0 = no limit).")
	flag.StringVar(&snapshot, "snapshot", "", "Headless mode: write the last frame to this PNG file.")
	flag.IntVar(&scale, "scale", 2, "Window and snapshot scale factor.")
	flag.DurationVar(&delay, "delay", cfg.Loop.StartupDelay, "Startup window before the first frame.")
	flag.BoolVar(&list, "list", false, "List scenes and exit.")
	flag.BoolVar(&verbose, "v", false, "Log heartbeat LED toggles.")
	flag.Parse()

	if list {
		for _, name := range scenes.Names() {
			fmt.Println(name)
		}
		return
	}
	if _, err := scenes.New(cfg.Scene); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if mode == "headless" && frames == 0 && duration == 0 {
		fmt.Fprintln(os.Stderr, "headless mode needs -frames or -duration")
		os.Exit(2)
	}
	cfg.Loop.MaxFrames = uint32(frames)
	cfg.Loop.StartupDelay = delay

	hcfg := hal.DefaultHostConfig()
	hcfg.Panel = cfg.Panel
	hcfg.Deadline = duration
	hcfg.Verbose = verbose
	h := hal.NewHost(hcfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	run := app.Runner(cfg)
	var err error
	switch mode {
	case "window":
		err = hal.RunWindow(ctx, h, run, hal.WindowConfig{Title: cfg.Scene, Scale: scale})
	case "terminal":
		err = hal.RunTerminal(ctx, h, run, hal.TerminalConfig{})
	case "headless":
		err = hal.RunHeadless(ctx, h, run, hal.HeadlessConfig{Snapshot: snapshot, Scale: scale})
	default:
		err = fmt.Errorf("unknown mode %q", mode)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
