package server

import (
	"bufio"
	"context"
	"io"
	"net"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/kiba-db/kiba/internal/protocol"
)

// handleConn is the per-client loop from spec.md §4.5: read a line,
// lex it, parse it, submit it to the dispatcher, await the reply, and
// write it back. It never reconnects and never retains state once the
// connection closes — there is nothing to flush.
func (s *Server) handleConn(ctx context.Context, conn net.Conn, connID string) {
	defer conn.Close()

	log := s.log.WithFields(logrus.Fields{
		"conn_id":     connID,
		"remote_addr": conn.RemoteAddr().String(),
	})
	log.Info("connection opened")
	defer log.Info("connection closed")

	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				log.WithError(err).Debug("read error")
			}
			return
		}

		trimmed := strings.TrimRight(line, "\r\n")

		if handlePing(conn, trimmed) {
			continue
		}

		req := protocol.Parse(protocol.Lex([]byte(trimmed)))

		resp, err := s.dispatch.Submit(ctx, req)
		if err != nil {
			// Context canceled: the server is shutting down.
			return
		}

		if _, err := conn.Write([]byte(protocol.Encode(resp))); err != nil {
			log.WithError(err).Debug("write error")
			return
		}
	}
}

// handlePing answers PING directly at the connection boundary, per
// SPEC_FULL.md §9: it is a liveness/echo command with no value-store
// semantics, so it never reaches the Executor's Store-backed dispatch
// and is not part of the Parser's command table.
func handlePing(conn net.Conn, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 || !strings.EqualFold(fields[0], "PING") {
		return false
	}
	switch len(fields) {
	case 1:
		conn.Write([]byte("PONG\n"))
	case 2:
		conn.Write([]byte(fields[1] + "\n"))
	default:
		conn.Write([]byte("(error) ERR wrong number of arguments for 'PING'\n"))
	}
	return true
}
