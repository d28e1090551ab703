// Package sink implements the diagnostic tap (spec.md §2/§5): every
// output action the mapping Processor emits is also forwarded here for
// display/diagnostics. A send failure on this path is logged, not
// fatal to the pipeline (spec.md §5 — "the UI has gone away").
package sink

import "github.com/tourboxd/tourboxd/internal/mapping"

// Sink receives a copy of every emitted action.
type Sink interface {
	Publish(action mapping.Action) error
	Close() error
}
