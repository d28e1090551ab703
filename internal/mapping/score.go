package mapping

import "github.com/tourboxd/tourboxd/internal/protocol"

// score ranks a candidate entry for a given event. Expressed as a pure
// helper (spec.md §9 design note) so it can be property-tested in
// isolation from the processor's stateful bookkeeping.
//
// score(e) = len(e.modifiers) + bonus(e.trigger, event.kind)
//
// The bonus term ensures that on a Press event, OnPress/OnHold entries
// outrank OnRelease ones (and vice versa on Release); among equally-timed
// candidates, the one requiring more modifiers wins.
func score(e Entry, kind protocol.Kind) int {
	return len(e.Modifiers) + bonus(e.Trigger, kind)
}

func bonus(trigger Trigger, kind protocol.Kind) int {
	switch trigger {
	case OnPress:
		if kind == protocol.Pressed {
			return 1000
		}
		return -1000
	case OnHold:
		return 1000
	case OnRelease:
		if kind == protocol.Released {
			return 1000
		}
		return -1000
	default:
		return 0
	}
}
