package transport

import (
	"context"
	"fmt"

	"github.com/tourboxd/tourboxd/config/models"
)

// NewOpener builds the Opener for Run from the configured device union,
// dispatching in a single switch per spec.md §9 ("Tagged device union
// ... dispatch in a single startup switch").
func NewOpener(device models.Device) (Opener, error) {
	switch device.Kind {
	case models.DeviceWinUSB:
		vid, pid := device.WinUSB.VID, device.WinUSB.PID
		return func(ctx context.Context) (Transport, error) {
			return OpenUSB(ctx, vid, pid)
		}, nil
	case models.DeviceSerial:
		port, baud := device.Serial.SerialPort, device.Serial.BaudRate
		return func(ctx context.Context) (Transport, error) {
			return OpenSerial(ctx, port, baud)
		}, nil
	default:
		return nil, fmt.Errorf("transport: unrecognized device kind %v", device.Kind)
	}
}
