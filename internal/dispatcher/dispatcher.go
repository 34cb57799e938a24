// Package dispatcher implements the bounded multi-producer/single-consumer
// queue between connection handlers and the Executor described in
// spec.md §4.6: a channel of (Request, reply-handle) envelopes.
package dispatcher

import (
	"context"

	"github.com/kiba-db/kiba/internal/protocol"
)

// Envelope pairs a Request with a private, per-request reply channel.
// The reply channel is buffered to size 1 so the Executor's send never
// blocks even if the submitting connection has already gone away.
type Envelope struct {
	Request protocol.Request
	Reply   chan protocol.Response
}

// Dispatcher is the bounded channel itself. Its capacity is the
// "cbound" config key from spec.md §6; a full Dispatcher makes Submit
// block, which is the system's only back-pressure mechanism.
type Dispatcher struct {
	queue chan Envelope
}

// New creates a Dispatcher with the given capacity.
func New(capacity int) *Dispatcher {
	return &Dispatcher{queue: make(chan Envelope, capacity)}
}

// Submit enqueues req and blocks until the Executor replies or ctx is
// done. It is safe to call concurrently from many connection handlers.
func (d *Dispatcher) Submit(ctx context.Context, req protocol.Request) (protocol.Response, error) {
	envelope := Envelope{Request: req, Reply: make(chan protocol.Response, 1)}

	select {
	case d.queue <- envelope:
	case <-ctx.Done():
		return protocol.Response{}, ctx.Err()
	}

	select {
	case resp := <-envelope.Reply:
		return resp, nil
	case <-ctx.Done():
		return protocol.Response{}, ctx.Err()
	}
}

// Envelopes exposes the receive side for the Executor's loop. Only the
// Executor goroutine should range over this channel.
func (d *Dispatcher) Envelopes() <-chan Envelope {
	return d.queue
}
