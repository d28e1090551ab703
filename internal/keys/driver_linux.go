//go:build linux

package keys

import (
	"fmt"

	"github.com/ThomasT75/uinput"
)

// uinputDriver synthesizes key and scroll events through a virtual
// keyboard and mouse created via /dev/uinput.
type uinputDriver struct {
	keyboard uinput.Keyboard
	mouse    uinput.Mouse
}

// NewSystemDriver creates the Linux uinput-backed Driver.
func NewSystemDriver() (Driver, error) {
	keyboard, err := uinput.CreateKeyboard("/dev/uinput", []byte("tourboxd Virtual Keyboard"))
	if err != nil {
		return nil, fmt.Errorf("create virtual keyboard: %w", err)
	}

	mouse, err := uinput.CreateMouse("/dev/uinput", []byte("tourboxd Virtual Mouse"))
	if err != nil {
		keyboard.Close()
		return nil, fmt.Errorf("create virtual mouse: %w", err)
	}

	return &uinputDriver{keyboard: keyboard, mouse: mouse}, nil
}

func (d *uinputDriver) PressKey(code HostKey) error {
	return d.keyboard.KeyDown(int(code))
}

func (d *uinputDriver) ReleaseKey(code HostKey) error {
	return d.keyboard.KeyUp(int(code))
}

func (d *uinputDriver) Scroll(delta int) error {
	return d.mouse.Wheel(false, int32(delta))
}

func (d *uinputDriver) Close() error {
	keyErr := d.keyboard.Close()
	mouseErr := d.mouse.Close()
	if keyErr != nil {
		return keyErr
	}
	return mouseErr
}
