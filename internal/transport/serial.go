package transport

import (
	"context"
	"fmt"
	"time"

	"go.bug.st/serial"
)

// serialReadTimeout is the short, non-error read timeout spec.md §6.2
// requires for the serial transport.
const serialReadTimeout = 10 * time.Millisecond

// SerialTransport delivers bytes from an 8N1 serial port, per spec.md
// §6.2: DTR and RTS are deasserted before the init command is sent.
type SerialTransport struct {
	port serial.Port
}

// OpenSerial opens portName at baud, configures the port per the wire
// contract, and sends the init command, discarding any immediate
// response.
func OpenSerial(ctx context.Context, portName string, baud uint32) (*SerialTransport, error) {
	mode := &serial.Mode{
		BaudRate: int(baud),
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", portName, err)
	}

	if err := port.SetDTR(false); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("deassert DTR on %s: %w", portName, err)
	}
	if err := port.SetRTS(false); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("deassert RTS on %s: %w", portName, err)
	}
	if err := port.SetReadTimeout(serialReadTimeout); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", portName, err)
	}

	if _, err := port.Write(initCommand); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("send init command on %s: %w", portName, err)
	}
	drainImmediateResponse(port)

	return &SerialTransport{port: port}, nil
}

// drainImmediateResponse discards whatever the device writes back right
// after the init command, per spec.md §6.2 ("discards any immediate
// response").
func drainImmediateResponse(port serial.Port) {
	var scratch [64]byte
	_, _ = port.Read(scratch[:])
}

// ReadByte blocks until one byte arrives or the configured read
// timeout elapses, surfaced as ErrTimeout (benign, per spec.md §7).
func (t *SerialTransport) ReadByte() (byte, error) {
	var buf [1]byte
	n, err := t.port.Read(buf[:])
	if err != nil {
		return 0, fmt.Errorf("serial read: %w", err)
	}
	if n == 0 {
		return 0, ErrTimeout
	}
	return buf[0], nil
}

// Close releases the serial port.
func (t *SerialTransport) Close() error {
	return t.port.Close()
}
