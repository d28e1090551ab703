package mapping

import (
	"testing"

	"github.com/tourboxd/tourboxd/internal/protocol"
)

func TestScoreOrdering(t *testing.T) {
	cases := []struct {
		name    string
		entry   Entry
		kind    protocol.Kind
		greater Entry
	}{
		{
			name:    "on_hold outranks on_release on press",
			entry:   Entry{Trigger: OnHold},
			kind:    protocol.Pressed,
			greater: Entry{Trigger: OnRelease},
		},
		{
			name:    "on_release outranks on_press on release",
			entry:   Entry{Trigger: OnRelease},
			kind:    protocol.Released,
			greater: Entry{Trigger: OnPress},
		},
		{
			name:    "more modifiers wins among equally-timed candidates",
			entry:   Entry{Trigger: OnPress, Modifiers: []string{"ctrl"}},
			kind:    protocol.Pressed,
			greater: Entry{Trigger: OnPress},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if score(c.entry, c.kind) <= score(c.greater, c.kind) {
				t.Fatalf("expected %+v to outscore %+v for %v", c.entry, c.greater, c.kind)
			}
		})
	}
}
