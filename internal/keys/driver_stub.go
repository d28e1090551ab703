//go:build !linux

package keys

import (
	"errors"
	"log"
)

// ErrUnsupportedPlatform is returned by stubDriver's PressKey, ReleaseKey
// and Scroll on platforms with no wired-up key-synthesis backend.
var ErrUnsupportedPlatform = errors.New("keys: no host driver available on this platform")

// stubDriver implements Driver with every input method failing (Close
// succeeds as a no-op), mirroring the
// teacher's manager_stub.go fallback idiom (a build-tag stand-in rather
// than a construction-time error) so cross-compilation still succeeds.
type stubDriver struct{}

// NewSystemDriver returns a Driver on non-Linux platforms whose input
// methods all fail; there is no synthetic-input backend for them.
func NewSystemDriver() (Driver, error) {
	log.Printf("[WARNING] keys: no synthetic-input backend on this platform; key injection is disabled")
	return stubDriver{}, nil
}

func (stubDriver) PressKey(HostKey) error   { return ErrUnsupportedPlatform }
func (stubDriver) ReleaseKey(HostKey) error { return ErrUnsupportedPlatform }
func (stubDriver) Scroll(int) error         { return ErrUnsupportedPlatform }
func (stubDriver) Close() error             { return nil }
