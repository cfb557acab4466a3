//go:build !tinygo

package hal

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func quietHost(cfg HostConfig) (*Host, *bytes.Buffer) {
	var buf bytes.Buffer
	cfg.Log = &buf
	return NewHost(cfg), &buf
}

// drawFrames configures the panel and sends one red frame then one black one.
func drawFrames(ctx context.Context, h HAL) error {
	p := h.Panel()
	if err := p.Configure(PanelConfig{Width: 4, Height: 2}); err != nil {
		return err
	}
	red := bytes.Repeat([]byte{0xF8, 0x00}, 8)
	if err := p.SetWindow(0, 0, 3, 1); err != nil {
		return err
	}
	if err := p.WritePixels(red); err != nil {
		return err
	}
	if err := p.SetWindow(0, 0, 3, 1); err != nil {
		return err
	}
	return p.WritePixels(make([]byte, 16))
}

func TestHostKillPin(t *testing.T) {
	h, _ := quietHost(DefaultHostConfig())
	ks, err := NewKillSwitch(FindPin(h.GPIO(), KillPinName))
	if err != nil {
		t.Fatal(err)
	}
	if ks.StopRequested() {
		t.Fatal("kill switch tripped at rest")
	}
	h.RequestStop()
	if !ks.StopRequested() {
		t.Fatal("RequestStop did not pull the kill pin low")
	}
	if FindPin(h.GPIO(), DeadlinePinName) != nil {
		t.Fatal("deadline pin present without a deadline")
	}
}

func TestHostDeadlinePin(t *testing.T) {
	cfg := DefaultHostConfig()
	cfg.Deadline = time.Hour
	h, _ := quietHost(cfg)
	ks, err := NewKillSwitch(FindPin(h.GPIO(), DeadlinePinName))
	if err != nil {
		t.Fatal(err)
	}
	if ks.StopRequested() {
		t.Fatal("deadline tripped early")
	}
}

func TestHostLoggerHold(t *testing.T) {
	h, buf := quietHost(DefaultHostConfig())
	h.logger.hold()
	h.Logger().WriteLineString("app: one")
	h.Logger().WriteLineBytes([]byte("app: two"))
	if buf.Len() != 0 {
		t.Fatalf("held logger wrote %q", buf.String())
	}
	h.logger.release()
	if got := buf.String(); got != "app: one\napp: two\n" {
		t.Fatalf("released output = %q", got)
	}
}

func TestRunHeadlessSnapshotSkipsBlackFrame(t *testing.T) {
	h, _ := quietHost(DefaultHostConfig())
	path := filepath.Join(t.TempDir(), "shot.png")
	if err := RunHeadless(context.Background(), h, drawFrames, HeadlessConfig{Snapshot: path, Scale: 3}); err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if h.Frames() != 2 {
		t.Fatalf("frames = %d, want 2", h.Frames())
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 6 {
		t.Fatalf("snapshot size = %v, want 12x6", b)
	}
	r, g, b, _ := img.At(11, 5).RGBA()
	if r>>8 != 255 || g != 0 || b != 0 {
		t.Fatalf("snapshot pixel = %d,%d,%d, want red", r>>8, g>>8, b>>8)
	}
}

func TestRunHeadlessWithoutFrames(t *testing.T) {
	h, _ := quietHost(DefaultHostConfig())
	path := filepath.Join(t.TempDir(), "shot.png")
	idle := func(context.Context, HAL) error { return nil }
	err := RunHeadless(context.Background(), h, idle, HeadlessConfig{Snapshot: path})
	if err == nil || !strings.Contains(err.Error(), "no frame") {
		t.Fatalf("err = %v, want no frame error", err)
	}
}

func TestStopKeys(t *testing.T) {
	for _, tc := range []struct {
		ev   *tcell.EventKey
		stop bool
	}{
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), true},
		{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), true},
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), true},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), false},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), false},
	} {
		if got := isStopKey(tc.ev); got != tc.stop {
			t.Fatalf("isStopKey(%s) = %v, want %v", tc.ev.Name(), got, tc.stop)
		}
	}
}

func TestDrawPreviewHalfBlocks(t *testing.T) {
	h, _ := quietHost(DefaultHostConfig())
	p := h.panel
	if err := p.Configure(PanelConfig{Width: 4, Height: 4}); err != nil {
		t.Fatal(err)
	}
	frame := make([]byte, 32)
	copy(frame[0:], []byte{0xF8, 0x00}) // (0,0) red
	copy(frame[8:], []byte{0x00, 0x1F}) // (0,1) blue
	if err := p.WritePixels(frame); err != nil {
		t.Fatal(err)
	}

	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	defer s.Fini()
	s.SetSize(4, 2)
	drawPreview(s, p, nil)
	s.Show()

	cells, w, _ := s.GetContents()
	if w != 4 {
		t.Fatalf("screen width = %d", w)
	}
	c := cells[0]
	if len(c.Runes) == 0 || c.Runes[0] != '▀' {
		t.Fatalf("cell rune = %q, want upper half block", c.Runes)
	}
	fg, bg, _ := c.Style.Decompose()
	if fg != tcell.NewRGBColor(255, 0, 0) || bg != tcell.NewRGBColor(0, 0, 255) {
		t.Fatalf("cell colours = %v/%v, want red over blue", fg, bg)
	}
}

func TestRunTerminalStopsOnEscape(t *testing.T) {
	h, buf := quietHost(DefaultHostConfig())
	s := tcell.NewSimulationScreen("")
	ks, err := NewKillSwitch(FindPin(h.GPIO(), KillPinName))
	if err != nil {
		t.Fatal(err)
	}

	run := func(ctx context.Context, hh HAL) error {
		hh.Logger().WriteLineString("app: running")
		s.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
		deadline := time.Now().Add(5 * time.Second)
		for !ks.StopRequested() {
			if time.Now().After(deadline) {
				return context.DeadlineExceeded
			}
			time.Sleep(time.Millisecond)
		}
		return nil
	}
	if err := runTerminal(context.Background(), s, h, run, TerminalConfig{Refresh: 5 * time.Millisecond}); err != nil {
		t.Fatalf("runTerminal: %v", err)
	}
	if got := buf.String(); got != "app: running\n" {
		t.Fatalf("log after release = %q", got)
	}
}
