package app

import (
	"fmt"
	"strings"

	"tftscenes/fixgl"
	"tftscenes/hal"
)

var (
	faultBG = fixgl.RGB(255, 255, 255)
	faultFG = fixgl.RGB(0, 0, 0)
	faultHd = fixgl.RGB(200, 0, 0)
)

// showFault logs err and paints it on the panel so a board without a serial
// console still reports why it stopped.
func showFault(h hal.HAL, cfg Config, err error) {
	if l := h.Logger(); l != nil {
		l.WriteLineString(fmt.Sprintf("app: fault: %v", err))
	}
	panel := h.Panel()
	if panel == nil {
		return
	}
	w, ht := panel.Size()
	if w <= 0 || ht <= 0 {
		if panel.Configure(cfg.Panel) != nil {
			return
		}
		w, ht = panel.Size()
	}
	fb, ferr := fixgl.NewFramebuffer(w, ht)
	if ferr != nil {
		return
	}
	drawFault(fb, err)
	if panel.SetWindow(0, 0, w-1, ht-1) == nil {
		_ = panel.WritePixels(fb.Bytes())
	}
}

func drawFault(fb *fixgl.Framebuffer, err error) {
	fb.Fill(faultBG)
	fb.DrawText(0, 0, "tftscenes fault", faultHd)

	cols := fb.Width() / fixgl.TextCell
	if cols < 1 {
		cols = 1
	}
	y := 2 * fixgl.TextCell
	for _, line := range wrapText(err.Error(), cols) {
		if y+fixgl.TextCell > fb.Height() {
			return
		}
		fb.DrawText(0, y, line, faultFG)
		y += fixgl.TextCell + 2
	}
}

// wrapText splits s on ": " chains and then hard-wraps to cols characters.
func wrapText(s string, cols int) []string {
	var out []string
	for _, part := range strings.Split(s, ": ") {
		for len(part) > cols {
			out = append(out, part[:cols])
			part = strings.TrimLeft(part[cols:], " ")
		}
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
