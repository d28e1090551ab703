// Package mapping implements the stateful key-combination resolver: the
// component that knows about modifier combinations, trigger timing, and
// OnHold lifecycle.
package mapping

import "strings"

// Trigger is the timing mode of a mapping entry.
type Trigger int

const (
	// OnPress emits a click the moment the trigger key is pressed.
	OnPress Trigger = iota
	// OnHold presses the action's host keys while the trigger is held.
	OnHold
	// OnRelease emits a click the moment the trigger key is released.
	OnRelease
)

func (t Trigger) String() string {
	switch t {
	case OnPress:
		return "on_press"
	case OnHold:
		return "on_hold"
	case OnRelease:
		return "on_release"
	default:
		return "unknown"
	}
}

// Config is one mapping entry as it appears in the configuration file,
// before it is split into trigger_key/modifiers.
type Config struct {
	Keys    string
	Action  string
	Trigger Trigger
}

// Handle is a stable integer reference into the processor's flat entry
// table. Handles are trivially comparable and never point back at the
// index, keeping the mapping index -> entry relationship one-directional.
type Handle int

// Entry is an immutable mapping entry: a trigger key and its ordered
// modifier prefix, resolved from the "keys" token list. Disjointness of the
// two is not checked.
type Entry struct {
	TriggerKey string
	Modifiers  []string
	Action     string
	Trigger    Trigger
}

// ActionTokens splits the action string on '+' into host-key tokens.
func (e Entry) ActionTokens() []string {
	return splitPlus(e.Action)
}

// splitEntry splits a "+"-joined keys specification into its trigger key
// (the last token) and its modifiers (the ordered prefix).
func splitEntry(keys string) (triggerKey string, modifiers []string) {
	parts := splitPlus(keys)
	if len(parts) == 0 {
		return "", nil
	}
	triggerKey = parts[len(parts)-1]
	modifiers = parts[:len(parts)-1]
	return triggerKey, modifiers
}

func splitPlus(s string) []string {
	raw := strings.Split(s, "+")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
