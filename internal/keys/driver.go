package keys

// Driver is the narrow boundary between the Injector and the host's
// synthetic input device. Implementations must be safe to call from a
// single goroutine only; the Injector never calls concurrently.
type Driver interface {
	PressKey(code HostKey) error
	ReleaseKey(code HostKey) error
	Scroll(delta int) error
	Close() error
}
