package protocol

import (
	"errors"
	"testing"
)

func tables() CodeTables {
	return CodeTables{
		Stateless: map[byte]string{0x10: "short"},
		Stateful:  map[byte]string{0x01: "tall", 0x02: "top"},
	}
}

func TestDecodeStatelessIsAlwaysPressed(t *testing.T) {
	d := New(tables())
	ev, err := d.Decode(0x10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Kind != Pressed || ev.Name != "short" {
		t.Fatalf("got %+v", ev)
	}
}

func TestDecodeStatefulPress(t *testing.T) {
	d := New(tables())
	ev, err := d.Decode(0x01)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Kind != Pressed || ev.Name != "tall" {
		t.Fatalf("got %+v", ev)
	}
}

// S6 — Decoder release bit.
func TestDecodeStatefulRelease(t *testing.T) {
	d := New(tables())
	ev, err := d.Decode(0x81)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Kind != Released || ev.Name != "tall" {
		t.Fatalf("got %+v", ev)
	}
}

func TestDecodeUnknownCodeDropsByte(t *testing.T) {
	d := New(tables())
	_, err := d.Decode(0x7F)
	var unknown *ErrUnknownCode
	if !errors.As(err, &unknown) {
		t.Fatalf("expected ErrUnknownCode, got %v", err)
	}
}

// Guards the unsigned-subtraction edge case from spec.md §9 Open Question 1:
// a code below 0x80 must never be treated as a release, even if
// code - 0x80 would (if wrapped) land on a valid stateful entry.
func TestDecodeLowByteNeverWrapsIntoRelease(t *testing.T) {
	d := New(CodeTables{
		Stateful: map[byte]string{0x81: "wrap-target"},
	})
	_, err := d.Decode(0x01)
	var unknown *ErrUnknownCode
	if !errors.As(err, &unknown) {
		t.Fatalf("expected ErrUnknownCode for low byte, got %v", err)
	}
}

// Global invariant 4.
func TestDecodeInvariant4(t *testing.T) {
	d := New(tables())
	for c := 0x80; c <= 0xFF; c++ {
		code := byte(c)
		ev, err := d.Decode(code)
		stateless := d.tables.Stateless[code]
		stateful := d.tables.Stateful[code]
		if stateless == "" && stateful == "" {
			if name, ok := d.tables.Stateful[code-0x80]; ok {
				if err != nil || ev.Kind != Released || ev.Name != name {
					t.Fatalf("code 0x%02x: expected Released(%s), got %+v, %v", code, name, ev, err)
				}
			}
		}
	}
}
