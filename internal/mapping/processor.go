package mapping

import (
	"fmt"
	"math"

	"github.com/tourboxd/tourboxd/internal/protocol"
)

// Processor is the only component that knows about modifier combinations,
// trigger timing, and OnHold lifecycle. It is a pure function of
// (current state, event) -> (new state, action list); the state is held
// privately and mutated only inside Process.
type Processor struct {
	entries []Entry
	idx     index

	pressedKeys map[string]bool

	// held tracks membership; heldOrder preserves insertion order so
	// supersession iterates candidates deterministically.
	held      map[Handle]bool
	heldOrder []Handle
}

// NewProcessor builds a processor from an ordered list of mapping configs.
// Construction fails only on an empty keys string; a modifiers/trigger_key
// overlap is accepted (see the note in the loop below).
func NewProcessor(configs []Config) (*Processor, error) {
	p := &Processor{
		idx:         make(index),
		pressedKeys: make(map[string]bool),
		held:        make(map[Handle]bool),
	}

	for i, c := range configs {
		triggerKey, modifiers := splitEntry(c.Keys)
		if triggerKey == "" {
			return nil, fmt.Errorf("mapping %d: empty keys specification", i)
		}
		// Note: a modifier colliding with the trigger key (or repeating) is
		// not rejected here. spec.md §3 states modifiers/trigger_key are
		// disjoint as an invariant, but spec.md §9 Open Question 2 documents
		// that the source never actually enforces it and leaves the
		// resulting release-time self-match as undefined behavior rather
		// than a construction-time error; see DESIGN.md.

		entry := Entry{
			TriggerKey: triggerKey,
			Modifiers:  modifiers,
			Action:     c.Action,
			Trigger:    c.Trigger,
		}
		h := Handle(len(p.entries))
		p.entries = append(p.entries, entry)
		p.idx[triggerKey] = append(p.idx[triggerKey], h)
	}

	return p, nil
}

// Process consumes one decoded input event and returns the ordered list
// of output actions it produces, per spec.md §4.2.
func (p *Processor) Process(ev protocol.Event) []Action {
	switch ev.Kind {
	case protocol.Pressed:
		return p.onPress(ev.Name)
	case protocol.Released:
		return p.onRelease(ev.Name)
	default:
		return nil
	}
}

// selectEntry finds the highest-scoring candidate entry for key k given the
// event kind, filtering candidates whose modifiers are not all currently
// pressed. Ties break toward the first occurrence in the candidate list.
func (p *Processor) selectEntry(k string, kind protocol.Kind) (Handle, bool) {
	candidates := p.idx.candidates(k)
	best := Handle(-1)
	bestScore := math.MinInt
	for _, h := range candidates {
		e := p.entries[h]
		if !p.allPressed(e.Modifiers) {
			continue
		}
		s := score(e, kind)
		if s > bestScore {
			bestScore = s
			best = h
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

func (p *Processor) allPressed(keys []string) bool {
	for _, k := range keys {
		if !p.pressedKeys[k] {
			return false
		}
	}
	return true
}

func (p *Processor) onPress(k string) []Action {
	var actions []Action

	if h, ok := p.selectEntry(k, protocol.Pressed); ok {
		e := p.entries[h]
		switch e.Trigger {
		case OnPress:
			actions = append(actions, Action{Kind: Click, Token: e.Action})
		case OnHold:
			actions = append(actions, p.supersedeAndHold(h, e)...)
		case OnRelease:
			// nothing emitted on press
		}
	}

	p.pressedKeys[k] = true
	return actions
}

// supersedeAndHold implements the OnHold branch of spec.md §4.2: release
// any held entry that shares a modifier (or whose trigger key is one of
// the new entry's modifiers), carrying over tokens common to both
// actions, then press the new entry's tokens and record it as held.
func (p *Processor) supersedeAndHold(h Handle, e Entry) []Action {
	var actions []Action

	newKeys := e.ActionTokens()
	newKeysSet := toSet(newKeys)

	var superseded []Handle
	for _, hh := range p.heldOrder {
		he := p.entries[hh]
		if sharesAny(he.Modifiers, e.Modifiers) || containsString(e.Modifiers, he.TriggerKey) {
			superseded = append(superseded, hh)
		}
	}

	for _, hh := range superseded {
		he := p.entries[hh]
		for _, tok := range he.ActionTokens() {
			if !newKeysSet[tok] {
				actions = append(actions, Action{Kind: Release, Token: tok})
			}
		}
		p.removeHeld(hh)
	}

	for _, tok := range newKeys {
		actions = append(actions, Action{Kind: Press, Token: tok})
	}
	p.insertHeld(h)

	return actions
}

func (p *Processor) onRelease(k string) []Action {
	var actions []Action

	if h, ok := p.selectEntry(k, protocol.Released); ok {
		e := p.entries[h]
		if e.Trigger == OnRelease {
			actions = append(actions, Action{Kind: Click, Token: e.Action})
		}
	}

	var dependents []Handle
	for _, hh := range p.heldOrder {
		he := p.entries[hh]
		if he.TriggerKey == k || containsString(he.Modifiers, k) {
			dependents = append(dependents, hh)
		}
	}
	for _, hh := range dependents {
		he := p.entries[hh]
		for _, tok := range he.ActionTokens() {
			actions = append(actions, Action{Kind: Release, Token: tok})
		}
		p.removeHeld(hh)
	}

	delete(p.pressedKeys, k)
	return actions
}

func (p *Processor) insertHeld(h Handle) {
	p.held[h] = true
	p.heldOrder = append(p.heldOrder, h)
}

func (p *Processor) removeHeld(h Handle) {
	if !p.held[h] {
		return
	}
	delete(p.held, h)
	for i, hh := range p.heldOrder {
		if hh == h {
			p.heldOrder = append(p.heldOrder[:i], p.heldOrder[i+1:]...)
			break
		}
	}
}

func toSet(xs []string) map[string]bool {
	s := make(map[string]bool, len(xs))
	for _, x := range xs {
		s[x] = true
	}
	return s
}

func containsString(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func sharesAny(a, b []string) bool {
	bs := toSet(b)
	for _, v := range a {
		if bs[v] {
			return true
		}
	}
	return false
}
