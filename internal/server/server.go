// Package server implements the connection-accept loop and per-client
// handler of spec.md §4.5: many lightweight goroutines, one per TCP
// connection, each owning one end of the dispatcher channel and a
// private reply channel. None of this package's non-test code imports
// internal/store directly — only internal/dispatcher, per the
// Connection Handler's "MUST NOT touch the Store directly" rule.
package server

import (
	"context"
	"errors"
	"net"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kiba-db/kiba/internal/dispatcher"
)

// Server runs the accept loop against a pre-bound listener.
type Server struct {
	listener net.Listener
	dispatch *dispatcher.Dispatcher
	log      *logrus.Logger

	wg sync.WaitGroup
}

// New wraps an already-bound listener. Binding happens in
// cmd/kiba-server so that a bind failure is reported as the fatal
// startup error spec.md §7 describes, before Serve is ever called.
func New(listener net.Listener, d *dispatcher.Dispatcher, log *logrus.Logger) *Server {
	return &Server{listener: listener, dispatch: d, log: log}
}

// Serve accepts connections until ctx is canceled or the listener is
// closed, spawning one handler goroutine per connection. It blocks
// until every in-flight handler has returned.
func (s *Server) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.listener.Close()
	}()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				s.wg.Wait()
				return nil
			}
			s.log.WithError(err).Warn("accept error")
			continue
		}

		connID := uuid.New().String()
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(ctx, conn, connID)
		}()
	}
}
