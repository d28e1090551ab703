package protocol

import "fmt"

// CodeTables are the two device code tables from the configuration:
// stateless codes report only a momentary edge, stateful codes report
// press as the code itself and release as the code with the high bit set.
type CodeTables struct {
	Stateless map[byte]string
	Stateful  map[byte]string
}

// Decoder turns a single incoming byte into at most one Event. It is
// stateless across bytes: two decoders built from the same tables behave
// identically regardless of prior input.
type Decoder struct {
	tables CodeTables
}

// New builds a Decoder from the configured code tables.
func New(tables CodeTables) *Decoder {
	return &Decoder{tables: tables}
}

// ErrUnknownCode is returned when a byte matches neither code table.
// Callers should warn and drop the byte, per spec.
type ErrUnknownCode struct {
	Code byte
}

func (e *ErrUnknownCode) Error() string {
	return fmt.Sprintf("unknown device code: 0x%02x", e.Code)
}

// Decode resolves one byte into an Event, following this precedence:
//  1. stateless[code] exists           -> Pressed(name)
//  2. stateful[code] exists            -> Pressed(name)
//  3. code >= 0x80 && stateful[code-0x80] exists -> Released(name)
//  4. otherwise                        -> ErrUnknownCode
//
// Step 3 is explicitly guarded on code >= 0x80 (spec.md §9 Open Question 1):
// an unguarded `code - 0x80` on a byte below 0x80 would wrap and could
// spuriously match a stateful entry that was never intended to be reached
// this way.
func (d *Decoder) Decode(code byte) (Event, error) {
	if name, ok := d.tables.Stateless[code]; ok {
		return Event{Kind: Pressed, Name: name}, nil
	}
	if name, ok := d.tables.Stateful[code]; ok {
		return Event{Kind: Pressed, Name: name}, nil
	}
	if code >= 0x80 {
		if name, ok := d.tables.Stateful[code-0x80]; ok {
			return Event{Kind: Released, Name: name}, nil
		}
	}
	return Event{}, &ErrUnknownCode{Code: code}
}
