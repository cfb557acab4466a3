package hal

import (
	"errors"
	"fmt"
)

// KillSwitch is an active-low stop input: the pin idles high on its pull-up and
// a button or jumper to ground requests a stop. Once tripped it stays tripped.
type KillSwitch struct {
	pin     GPIOPin
	tripped bool
}

// NewKillSwitch configures pin as a pulled-up input.
func NewKillSwitch(pin GPIOPin) (*KillSwitch, error) {
	if pin == nil {
		return nil, errors.New("hal: kill switch: no pin")
	}
	if err := pin.Configure(GPIOModeInput, GPIOPullUp); err != nil {
		return nil, fmt.Errorf("hal: kill switch %s: %w", pin.Name(), err)
	}
	return &KillSwitch{pin: pin}, nil
}

// StopRequested samples the pin. A read error is treated as "not pressed".
func (k *KillSwitch) StopRequested() bool {
	if k == nil {
		return false
	}
	if k.tripped {
		return true
	}
	level, err := k.pin.Read()
	if err != nil {
		return false
	}
	if !level {
		k.tripped = true
	}
	return k.tripped
}
