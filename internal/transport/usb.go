package transport

import (
	"context"
	"fmt"
	"time"

	"github.com/google/gousb"
)

// usbInterfaceNumber is the vendor-specific bulk interface the device
// exposes its protocol on, per spec.md §6.2.
const usbInterfaceNumber = 1

// usbBulkTimeout is the 1s bulk read timeout spec.md §6.2 specifies.
const usbBulkTimeout = 1 * time.Second

// USBTransport delivers bytes from the device's vendor-specific bulk
// endpoint, discovered by scanning the first configuration's interface
// 1 for its bulk IN/OUT pair.
type USBTransport struct {
	ctx   *gousb.Context
	dev   *gousb.Device
	cfg   *gousb.Config
	intf  *gousb.Interface
	inEp  *gousb.InEndpoint
	outEp *gousb.OutEndpoint

	pending byteReader
}

// OpenUSB opens the device identified by vid/pid, claims interface 1,
// detaches an active kernel driver if present, and sends the init
// command over the discovered bulk OUT endpoint.
func OpenUSB(ctx context.Context, vid, pid uint16) (*USBTransport, error) {
	usbCtx := gousb.NewContext()

	dev, err := usbCtx.OpenDeviceWithVIDPID(gousb.ID(vid), gousb.ID(pid))
	if err != nil {
		usbCtx.Close()
		return nil, fmt.Errorf("open USB device %04x:%04x: %w", vid, pid, err)
	}
	if dev == nil {
		usbCtx.Close()
		return nil, fmt.Errorf("USB device %04x:%04x not found", vid, pid)
	}

	if err := dev.SetAutoDetach(true); err != nil {
		dev.Close()
		usbCtx.Close()
		return nil, fmt.Errorf("enable auto kernel-driver detach: %w", err)
	}

	cfgNum, err := dev.ActiveConfigNum()
	if err != nil {
		cfgNum = 1
	}
	cfg, err := dev.Config(cfgNum)
	if err != nil {
		dev.Close()
		usbCtx.Close()
		return nil, fmt.Errorf("claim config %d: %w", cfgNum, err)
	}

	intf, err := cfg.Interface(usbInterfaceNumber, 0)
	if err != nil {
		cfg.Close()
		dev.Close()
		usbCtx.Close()
		return nil, fmt.Errorf("claim interface %d: %w", usbInterfaceNumber, err)
	}

	inEp, outEp, err := findBulkEndpoints(intf)
	if err != nil {
		intf.Close()
		cfg.Close()
		dev.Close()
		usbCtx.Close()
		return nil, err
	}

	t := &USBTransport{ctx: usbCtx, dev: dev, cfg: cfg, intf: intf, inEp: inEp, outEp: outEp}

	if _, err := t.outEp.Write(initCommand); err != nil {
		t.Close()
		return nil, fmt.Errorf("send init command: %w", err)
	}
	t.drainImmediateResponse()

	return t, nil
}

// findBulkEndpoints scans interface 1's single alt setting for the
// bulk IN/OUT endpoint pair, per spec.md §6.2 ("endpoints discovered by
// scanning the first configuration").
func findBulkEndpoints(intf *gousb.Interface) (*gousb.InEndpoint, *gousb.OutEndpoint, error) {
	var inAddr, outAddr gousb.EndpointAddress
	var haveIn, haveOut bool

	for _, ep := range intf.Setting.Endpoints {
		if ep.TransferType != gousb.TransferTypeBulk {
			continue
		}
		switch ep.Direction {
		case gousb.EndpointDirectionIn:
			inAddr = ep.Address
			haveIn = true
		case gousb.EndpointDirectionOut:
			outAddr = ep.Address
			haveOut = true
		}
	}
	if !haveIn || !haveOut {
		return nil, nil, fmt.Errorf("no bulk IN/OUT endpoint pair found on interface %d", usbInterfaceNumber)
	}

	inEp, err := intf.InEndpoint(inAddr.Number())
	if err != nil {
		return nil, nil, fmt.Errorf("open bulk IN endpoint: %w", err)
	}
	outEp, err := intf.OutEndpoint(outAddr.Number())
	if err != nil {
		return nil, nil, fmt.Errorf("open bulk OUT endpoint: %w", err)
	}
	return inEp, outEp, nil
}

func (t *USBTransport) drainImmediateResponse() {
	ctx, cancel := context.WithTimeout(context.Background(), usbBulkTimeout)
	defer cancel()
	var scratch [64]byte
	_, _ = t.inEp.ReadContext(ctx, scratch[:])
}

// byteReader buffers bulk reads one transfer at a time so ReadByte can
// hand out a single byte per call without re-issuing a USB transfer for
// every byte.
type byteReader struct {
	buf [64]byte
	n   int
	pos int
}

// ReadByte blocks until one byte arrives, the bulk read timeout
// elapses (ErrTimeout), or the device errors.
func (t *USBTransport) ReadByte() (byte, error) {
	if t.pending.pos < t.pending.n {
		b := t.pending.buf[t.pending.pos]
		t.pending.pos++
		return b, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), usbBulkTimeout)
	defer cancel()

	n, err := t.inEp.ReadContext(ctx, t.pending.buf[:])
	if err != nil {
		if ctx.Err() != nil {
			return 0, ErrTimeout
		}
		return 0, fmt.Errorf("USB bulk read: %w", err)
	}
	if n == 0 {
		return 0, ErrTimeout
	}

	t.pending.n = n
	t.pending.pos = 1
	return t.pending.buf[0], nil
}

// Close releases the claimed interface, configuration, device, and
// context, in that order, per spec.md §5 ("releases the interface
// first for USB").
func (t *USBTransport) Close() error {
	if t.intf != nil {
		t.intf.Close()
	}
	var err error
	if t.cfg != nil {
		err = t.cfg.Close()
	}
	if t.dev != nil {
		if cerr := t.dev.Close(); err == nil {
			err = cerr
		}
	}
	if t.ctx != nil {
		if cerr := t.ctx.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
