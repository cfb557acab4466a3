package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tftscenes/fixgl"
)

type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

type fakeDisplay struct {
	windows   [][4]int
	transfers [][]byte
	err       error
}

func (d *fakeDisplay) SetWindow(x0, y0, x1, y1 int) error {
	d.windows = append(d.windows, [4]int{x0, y0, x1, y1})
	return nil
}

func (d *fakeDisplay) WritePixels(buf []byte) error {
	if d.err != nil {
		return d.err
	}
	d.transfers = append(d.transfers, append([]byte(nil), buf...))
	return nil
}

type stopFunc func() bool

func (f stopFunc) StopRequested() bool { return f() }

type fakeLogger struct {
	lines []string
}

func (l *fakeLogger) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *fakeLogger) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

type fakeLED struct {
	high, low int
}

func (l *fakeLED) High() { l.high++ }
func (l *fakeLED) Low()  { l.low++ }

type fakeScene struct {
	clock    *fakeClock
	cost     time.Duration
	budget   time.Duration
	buildErr error
	updates  []uint32
	renders  int
}

func (s *fakeScene) Name() string               { return "fake" }
func (s *fakeScene) FrameBudget() time.Duration { return s.budget }
func (s *fakeScene) Build() error               { return s.buildErr }
func (s *fakeScene) Update(frame uint32)        { s.updates = append(s.updates, frame) }

func (s *fakeScene) Render(fb *fixgl.Framebuffer) {
	s.renders++
	fb.Fill(fixgl.RGB(255, 255, 255))
	if s.clock != nil {
		s.clock.now = s.clock.now.Add(s.cost)
	}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 8, 4
	cfg.StartupDelay = 0
	return cfg
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

func TestStopMidLoopBlanksOnce(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	disp := &fakeDisplay{}
	scene := &fakeScene{clock: clock, budget: 25 * time.Millisecond, cost: 5 * time.Millisecond}
	stop := stopFunc(func() bool { return scene.renders >= 3 })

	l, err := New(scene, Devices{Display: disp, Clock: clock, Stop: stop}, testConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if scene.renders != 3 {
		t.Fatalf("renders = %d, want 3", scene.renders)
	}
	if len(disp.transfers) != 4 {
		t.Fatalf("transfers = %d, want 4", len(disp.transfers))
	}
	for i := 0; i < 3; i++ {
		if allZero(disp.transfers[i]) {
			t.Fatalf("frame %d transferred black", i)
		}
	}
	if !allZero(disp.transfers[3]) {
		t.Fatal("final transfer is not all black")
	}
	if l.State() != StateStopped {
		t.Fatalf("state = %v, want stopped", l.State())
	}

	if got := l.Tick(); got != Stopped {
		t.Fatalf("Tick after stop = %v, want Stopped", got)
	}
	if len(disp.transfers) != 4 || scene.renders != 3 {
		t.Fatal("loop did work after stopping")
	}
	for _, w := range disp.windows {
		if w != [4]int{0, 0, 7, 3} {
			t.Fatalf("window = %v, want full frame", w)
		}
	}
}

func TestTickStateSequence(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	disp := &fakeDisplay{}
	scene := &fakeScene{budget: 25 * time.Millisecond}
	stopped := false
	l, err := New(scene, Devices{Display: disp, Clock: clock, Stop: stopFunc(func() bool { return stopped })}, testConfig())
	if err != nil {
		t.Fatal(err)
	}

	if got := l.Tick(); got != Continue {
		t.Fatalf("Tick = %v, want Continue", got)
	}
	stopped = true
	if got := l.Tick(); got != Stopping {
		t.Fatalf("Tick = %v, want Stopping", got)
	}
	if l.State() != StateStoppingRequested {
		t.Fatalf("state = %v", l.State())
	}
	if len(disp.transfers) != 1 {
		t.Fatalf("stop observation transferred a frame")
	}
	if got := l.Tick(); got != Stopped {
		t.Fatalf("Tick = %v, want Stopped", got)
	}
	if len(disp.transfers) != 2 || !allZero(disp.transfers[1]) {
		t.Fatal("expected one black transfer on stop")
	}
	if len(scene.updates) != 1 || scene.updates[0] != 0 {
		t.Fatalf("updates = %v, want [0]", scene.updates)
	}
}

func TestPacing(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	scene := &fakeScene{clock: clock, budget: 25 * time.Millisecond, cost: 10 * time.Millisecond}
	l, err := New(scene, Devices{Display: &fakeDisplay{}, Clock: clock}, testConfig())
	if err != nil {
		t.Fatal(err)
	}

	l.Tick()
	if len(clock.sleeps) != 1 || clock.sleeps[0] != 15*time.Millisecond {
		t.Fatalf("sleeps = %v, want [15ms]", clock.sleeps)
	}

	scene.cost = 40 * time.Millisecond
	l.Tick()
	if clock.sleeps[1] != time.Millisecond {
		t.Fatalf("overrun sleep = %v, want 1ms", clock.sleeps[1])
	}
	st := l.Stats()
	if st.Overruns != 1 || st.Frames != 2 || st.LastFrame != 40*time.Millisecond {
		t.Fatalf("stats = %+v", st)
	}
}

func TestMaxFramesAndMaintenance(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	led := &fakeLED{}
	disp := &fakeDisplay{}
	scene := &fakeScene{budget: time.Millisecond}
	cfg := testConfig()
	cfg.MaxFrames = 64
	l, err := New(scene, Devices{Display: disp, Clock: clock, Heartbeat: led}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if scene.renders != 64 || len(disp.transfers) != 65 {
		t.Fatalf("renders=%d transfers=%d, want 64/65", scene.renders, len(disp.transfers))
	}
	if led.high != 1 || led.low != 1 {
		t.Fatalf("heartbeat high=%d low=%d, want 1/1", led.high, led.low)
	}
	if got := scene.updates[63]; got != 63 {
		t.Fatalf("last update frame = %d, want 63", got)
	}
}

func TestTransferErrorsAreLogged(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	log := &fakeLogger{}
	disp := &fakeDisplay{err: errors.New("spi timeout")}
	cfg := testConfig()
	cfg.MaxFrames = 2
	l, err := New(&fakeScene{budget: time.Millisecond}, Devices{Display: disp, Clock: clock, Logger: log}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := l.Stats().TransferErrors; got != 3 {
		t.Fatalf("TransferErrors = %d, want 3", got)
	}
	found := false
	for _, line := range log.lines {
		if strings.Contains(line, "spi timeout") {
			found = true
		}
	}
	if !found {
		t.Fatalf("transfer error not logged: %q", log.lines)
	}
}

func TestCancelledContextStillBlanks(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	disp := &fakeDisplay{}
	scene := &fakeScene{budget: time.Millisecond}
	cfg := testConfig()
	cfg.StartupDelay = time.Second
	l, err := New(scene, Devices{Display: disp, Clock: clock}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if scene.renders != 0 {
		t.Fatalf("renders = %d, want 0", scene.renders)
	}
	if len(disp.transfers) != 1 || !allZero(disp.transfers[0]) {
		t.Fatal("expected a single black transfer")
	}
	if len(clock.sleeps) != 0 {
		t.Fatalf("startup window slept %v after cancel", clock.sleeps)
	}
}

func TestStartupWindowPollsStop(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	polls := 0
	stop := stopFunc(func() bool {
		polls++
		return polls >= 3
	})
	cfg := testConfig()
	cfg.StartupDelay = time.Second
	cfg.PollInterval = 100 * time.Millisecond
	scene := &fakeScene{budget: time.Millisecond}
	l, err := New(scene, Devices{Display: &fakeDisplay{}, Clock: clock, Stop: stop}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if scene.renders != 0 {
		t.Fatalf("renders = %d, want 0", scene.renders)
	}
	if len(clock.sleeps) != 2 {
		t.Fatalf("startup sleeps = %v, want 2 polls", clock.sleeps)
	}
}

func TestNewFailsFast(t *testing.T) {
	clock := &fakeClock{}
	buildErr := errors.New("bad ring")
	_, err := New(&fakeScene{buildErr: buildErr}, Devices{Display: &fakeDisplay{}, Clock: clock}, testConfig())
	if !errors.Is(err, buildErr) {
		t.Fatalf("New err = %v, want wrapped build error", err)
	}
	if _, err := New(&fakeScene{}, Devices{Clock: clock}, testConfig()); err == nil {
		t.Fatal("expected error without display")
	}
	cfg := testConfig()
	cfg.Width = -1
	if _, err := New(&fakeScene{}, Devices{Display: &fakeDisplay{}, Clock: clock}, cfg); err == nil {
		t.Fatal("expected error for bad size")
	}
}
