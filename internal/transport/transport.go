// Package transport delivers the raw byte stream from a TourBox-class
// device over either a USB bulk endpoint or a serial port (spec.md
// §6.2). It owns the device handle exclusively and reconnects on
// failure; it never interprets the bytes it reads.
package transport

import (
	"context"
	"time"
)

// initCommand is the 8-byte handshake both transports send on open,
// per spec.md §6.2. Any immediate response is discarded.
var initCommand = []byte{0xB5, 0x00, 0x07, 0x04, 0x00, 0x09, 0x00, 0xFE}

// reconnectBackoff is the fixed delay between open attempts, per
// spec.md §5/§7 ("retry with 5s backoff, forever"). A var, not a
// const, solely so tests can shrink it instead of waiting out the
// real backoff.
var reconnectBackoff = 5 * time.Second

// Transport is the narrow boundary between the wire protocol and the
// decoder: a source of raw bytes with no knowledge of device key names
// or mapping state.
type Transport interface {
	// ReadByte blocks until one byte is available, a benign read timeout
	// elapses (returned as ErrTimeout), or the device is gone.
	ReadByte() (byte, error)
	// Close releases the underlying device handle.
	Close() error
}

// Opener constructs a fresh Transport, performing the device-open
// sequence (port/endpoint discovery, the init command) each time it is
// called. Run calls it again after every I/O failure.
type Opener func(ctx context.Context) (Transport, error)

// ErrTimeout is returned by ReadByte when no data arrived within the
// transport's read timeout. Run treats it as "no data", not an error.
var ErrTimeout = errTimeout{}

type errTimeout struct{}

func (errTimeout) Error() string   { return "transport: read timeout" }
func (errTimeout) Timeout() bool   { return true }
func (errTimeout) Temporary() bool { return true }

// Run owns the reconnect-with-backoff loop (spec.md §5/§7): it opens a
// transport via open, reads bytes and forwards them to out until an I/O
// error occurs (closing the transport before reopening) or ctx is
// cancelled. It returns when ctx is cancelled, releasing the transport
// first.
//
// Adapted from the teacher's provider-fallback retry shape in
// hotkeys/manager/provider_fallback.go, looped indefinitely against a
// single transport identity instead of swapping to a different
// provider — the spec's device identity is fixed by configuration, not
// discovered (see DESIGN.md).
func Run(ctx context.Context, open Opener, out chan<- byte, onWarn func(format string, args ...any)) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		t, err := open(ctx)
		if err != nil {
			onWarn("transport: open failed: %v; retrying in %s", err, reconnectBackoff)
			if !sleepOrDone(ctx, reconnectBackoff) {
				return ctx.Err()
			}
			continue
		}

		if !readLoop(ctx, t, out, onWarn) {
			_ = t.Close()
			return ctx.Err()
		}
		_ = t.Close()
	}
}

// readLoop reads bytes from t until I/O failure or ctx cancellation.
// It returns false when the caller should stop retrying (ctx done),
// true when it should reopen and retry.
func readLoop(ctx context.Context, t Transport, out chan<- byte, onWarn func(format string, args ...any)) bool {
	for {
		if ctx.Err() != nil {
			return false
		}

		b, err := t.ReadByte()
		if err != nil {
			if isTimeout(err) {
				continue
			}
			onWarn("transport: read error: %v; reconnecting in %s", err, reconnectBackoff)
			if !sleepOrDone(ctx, reconnectBackoff) {
				return false
			}
			return true
		}

		select {
		case out <- b:
		case <-ctx.Done():
			return false
		}
	}
}

func isTimeout(err error) bool {
	type timeouter interface{ Timeout() bool }
	t, ok := err.(timeouter)
	return ok && t.Timeout()
}

func sleepOrDone(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
