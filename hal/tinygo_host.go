//go:build tinygo && !baremetal

package hal

import (
	"fmt"
	"runtime"
)

type tinyGoHostHAL struct {
	logger *tinyGoHostLogger
	led    *tinyGoHostLED
	gpio   GPIO
	panel  *hostPanel
}

// New returns a TinyGo-on-host HAL implementation.
//
// This is used by `tinygo run` targets like linux/wasm where there is no MCU
// pin mapping. Frames go to an in-memory panel and the kill pin idles high.
func New() HAL {
	l := &tinyGoHostLogger{}
	led := &tinyGoHostLED{logger: l}
	return &tinyGoHostHAL{
		logger: l,
		led:    led,
		gpio: newVirtualGPIO([]GPIOPin{
			newLEDPin("LED", led),
			newVirtualPin(KillPinName, GPIOCapInput|GPIOCapPullUp),
		}),
		panel: newHostPanel(),
	}
}

func (h *tinyGoHostHAL) Logger() Logger { return h.logger }
func (h *tinyGoHostHAL) LED() LED       { return h.led }
func (h *tinyGoHostHAL) GPIO() GPIO     { return h.gpio }
func (h *tinyGoHostHAL) Panel() Panel   { return h.panel }
func (h *tinyGoHostHAL) Clock() Clock   { return systemClock{} }

type tinyGoHostLogger struct{}

func (l *tinyGoHostLogger) WriteLineString(s string) {
	println(s)
}

func (l *tinyGoHostLogger) WriteLineBytes(b []byte) {
	println(string(b))
}

type tinyGoHostLED struct {
	on     bool
	logger *tinyGoHostLogger
}

func (l *tinyGoHostLED) High() {
	l.on = true
	l.logger.WriteLineString(fmt.Sprintf("led: HIGH (tinygo/%s)", runtime.GOOS))
}

func (l *tinyGoHostLED) Low() {
	l.on = false
	l.logger.WriteLineString(fmt.Sprintf("led: LOW (tinygo/%s)", runtime.GOOS))
}
