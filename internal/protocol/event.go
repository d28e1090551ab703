// Package protocol decodes the TourBox byte stream into logical input events.
package protocol

// Kind distinguishes a key press from a key release.
type Kind int

const (
	// Pressed means the device key transitioned to the held state.
	Pressed Kind = iota
	// Released means the device key transitioned out of the held state.
	Released
)

func (k Kind) String() string {
	if k == Pressed {
		return "Pressed"
	}
	return "Released"
}

// Event is the decoder's output: a single named device key changing state.
type Event struct {
	Kind Kind
	Name string
}
