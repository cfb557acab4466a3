//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"sync"

	xdraw "golang.org/x/image/draw"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	// Snapshot, if set, receives a PNG of the last non-blank frame.
	Snapshot string
	// Scale enlarges the snapshot with nearest-neighbour sampling.
	Scale int
}

// RunHeadless runs the application without any viewer. The run ends when the
// application returns, normally after a frame limit or the DEADLINE pin.
func RunHeadless(ctx context.Context, h *Host, run Runner, cfg HeadlessConfig) error {
	var (
		mu   sync.Mutex
		last []byte
	)
	if cfg.Snapshot != "" {
		h.panel.setFrameHook(func(frame []byte) {
			// The final stop frame is all black; keep the scene.
			if allZero(frame) {
				return
			}
			mu.Lock()
			last = append(last[:0], frame...)
			mu.Unlock()
		})
		defer h.panel.setFrameHook(nil)
	}

	err := run(ctx, h)

	if cfg.Snapshot != "" {
		mu.Lock()
		defer mu.Unlock()
		if last == nil {
			return fmt.Errorf("hal: snapshot %s: no frame was drawn", cfg.Snapshot)
		}
		w, hh := h.panel.Size()
		if werr := writeSnapshot(cfg.Snapshot, last, w, hh, cfg.Scale); werr != nil && err == nil {
			err = werr
		}
	}
	return err
}

func snapshotImage(frame []byte, w, h, scale int) image.Image {
	src := image.NewRGBA(image.Rect(0, 0, w, h))
	expandRGB565BE(src.Pix, frame)
	if scale <= 1 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

func writeSnapshot(path string, frame []byte, w, h, scale int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("hal: snapshot: %w", err)
	}
	if err := png.Encode(f, snapshotImage(frame, w, h, scale)); err != nil {
		f.Close()
		return fmt.Errorf("hal: snapshot %s: %w", path, err)
	}
	return f.Close()
}
