//go:build tinygo && baremetal

package hal

import (
	"machine"
)

type tinyGoHAL struct {
	logger *uartLogger
	led    *pinLED
	gpio   GPIO
	panel  *spiPanel
}

// New returns the Raspberry Pi Pico HAL.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// Kill switch: GP22 to ground.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	led := &pinLED{pin: ledPin}
	return &tinyGoHAL{
		logger: &uartLogger{uart: uart},
		led:    led,
		gpio: newVirtualGPIO([]GPIOPin{
			newLEDPin("LED", led),
			newMachinePin(KillPinName, machine.GP22),
		}),
		panel: newSPIPanel(),
	}
}

func (h *tinyGoHAL) Logger() Logger { return h.logger }
func (h *tinyGoHAL) LED() LED       { return h.led }
func (h *tinyGoHAL) GPIO() GPIO     { return h.gpio }
func (h *tinyGoHAL) Panel() Panel   { return h.panel }
func (h *tinyGoHAL) Clock() Clock   { return systemClock{} }
