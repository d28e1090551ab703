// Package pipeline wires Transport -> Decoder -> Processor -> Injector
// (+ Sink tap) on goroutines and channels, per spec.md §2/§5, and owns
// their coordinated shutdown.
package pipeline

import (
	"context"
	"time"

	"github.com/tourboxd/tourboxd/internal/keys"
	"github.com/tourboxd/tourboxd/internal/logger"
	"github.com/tourboxd/tourboxd/internal/mapping"
	"github.com/tourboxd/tourboxd/internal/protocol"
	"github.com/tourboxd/tourboxd/internal/sink"
	"github.com/tourboxd/tourboxd/internal/transport"
	"github.com/tourboxd/tourboxd/internal/utils"
)

// byteQueueSize and eventQueueSize size the unidirectional queues
// between stages (spec.md §2 "queues between stages carry the
// events"). Small, bounded buffers are enough: the processor consumes
// strictly faster than a human can press buttons.
const (
	byteQueueSize  = 64
	eventQueueSize = 64
)

// Pipeline owns the transport, decode and process stage goroutines and
// the channels between them; the injector and the sink tap are called
// synchronously from the process stage.
type Pipeline struct {
	decoder   *protocol.Decoder
	processor *mapping.Processor
	injector  *keys.Injector
	sink      sink.Sink
	open      transport.Opener
	log       logger.Logger
}

// New builds a Pipeline from its already-constructed collaborators.
// Construction of those collaborators (from config) is the caller's
// job — Pipeline only wires the already-built pieces together.
func New(open transport.Opener, decoder *protocol.Decoder, processor *mapping.Processor, injector *keys.Injector, sink sink.Sink, log logger.Logger) *Pipeline {
	return &Pipeline{
		decoder:   decoder,
		processor: processor,
		injector:  injector,
		sink:      sink,
		open:      open,
		log:       log,
	}
}

// Run starts the three stage goroutines and blocks until ctx is
// cancelled, then waits up to shutdownGrace for every stage to exit
// before returning. Goroutine lifecycle
// bookkeeping is adapted from the teacher's internal/utils/async.go
// generation-counter Go/WaitAll helpers.
func (p *Pipeline) Run(ctx context.Context) {
	bytes := make(chan byte, byteQueueSize)
	events := make(chan protocol.Event, eventQueueSize)

	utils.Go(func() {
		if err := transport.Run(ctx, p.open, bytes, p.log.Warning); err != nil {
			p.log.Info("transport: stopped: %v", err)
		}
		close(bytes)
	})

	utils.Go(func() { p.decode(ctx, bytes, events) })
	utils.Go(func() { p.process(ctx, events) })

	<-ctx.Done()
	utils.WaitAll(shutdownGrace)
}

// shutdownGrace bounds how long Run waits for in-flight stages to
// drain after cancellation before giving up.
const shutdownGrace = 2 * time.Second

// decode is the decoder stage: it turns bytes into events. A byte that
// matches neither code table is dropped with a warning (spec.md §4.1
// step 4); the decoder is never fatal.
func (p *Pipeline) decode(ctx context.Context, bytes <-chan byte, events chan<- protocol.Event) {
	for {
		select {
		case b, ok := <-bytes:
			if !ok {
				return
			}
			ev, err := p.decoder.Decode(b)
			if err != nil {
				p.log.Warning("decoder: %v", err)
				continue
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// process is the processor stage: for every input event it resolves
// the action list and hands it to the injector and the sink tap, in
// order, before observing the next event (spec.md §5 atomicity: no
// suspension between the first and last action of one event).
func (p *Pipeline) process(ctx context.Context, events <-chan protocol.Event) {
	defer func() {
		if err := p.injector.Close(); err != nil {
			p.log.Warning("injector: close: %v", err)
		}
		if err := p.sink.Close(); err != nil {
			p.log.Warning("sink: close: %v", err)
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			for _, action := range p.processor.Process(ev) {
				p.injector.Execute(action)
				if err := p.sink.Publish(action); err != nil {
					p.log.Error("sink: publish: %v", err)
				}
			}
		case <-ctx.Done():
			return
		}
	}
}
