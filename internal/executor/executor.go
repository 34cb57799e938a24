// Package executor implements the single thread of control that owns
// the Store, per spec.md §4.2. Exactly one goroutine ever calls Run;
// no other code holds a reference to the underlying store.Store, which
// is what lets the Store skip locking entirely.
package executor

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/kiba-db/kiba/internal/dispatcher"
	"github.com/kiba-db/kiba/internal/protocol"
	"github.com/kiba-db/kiba/internal/store"
)

// Executor consumes (Request, reply-handle) envelopes from a Dispatcher
// and drives a Store to answer them.
type Executor struct {
	store *store.Store
	in    <-chan dispatcher.Envelope
	log   *logrus.Logger
}

// New builds an Executor bound to s and d. s must not be touched by any
// other goroutine for the lifetime of the Executor.
func New(s *store.Store, d *dispatcher.Dispatcher, log *logrus.Logger) *Executor {
	return &Executor{store: s, in: d.Envelopes(), log: log}
}

// Run is the Executor's loop: receive, dispatch, reply, repeat. It
// returns when ctx is canceled or the dispatcher channel is closed.
// Command order is channel-receive order, which is the commit order —
// there is no reordering or batching inside this loop.
func (e *Executor) Run(ctx context.Context) {
	for {
		select {
		case env, ok := <-e.in:
			if !ok {
				return
			}
			resp := e.dispatch(env.Request)
			// Reply is buffered to 1, so this never blocks even if the
			// submitting connection already dropped it.
			env.Reply <- resp
		case <-ctx.Done():
			return
		}
	}
}

func (e *Executor) dispatch(req protocol.Request) protocol.Response {
	switch req.Op {
	case protocol.OpNoOp:
		return protocol.Ok()
	case protocol.OpInvalid:
		return protocol.Err(req.InvalidMessage)

	case protocol.OpGet:
		val, found, err := e.store.Get(req.Key)
		if err != nil {
			return storeErr(err)
		}
		if !found {
			return protocol.Nil()
		}
		return protocol.Bulk(val)

	case protocol.OpSet:
		e.store.Set(req.Key, req.Value)
		return protocol.Ok()

	case protocol.OpIncr:
		return e.incrBy(req.Key, 1)
	case protocol.OpDecr:
		return e.incrBy(req.Key, -1)
	case protocol.OpIncrBy, protocol.OpDecrBy:
		return e.incrBy(req.Key, req.Delta)

	case protocol.OpExists:
		if e.store.Exists(req.Key) {
			return protocol.Integer(1)
		}
		return protocol.Integer(0)

	case protocol.OpDel:
		if e.store.Del(req.Key) {
			return protocol.Integer(1)
		}
		return protocol.Integer(0)

	case protocol.OpLPush:
		n, err := e.store.LPush(req.Key, req.Value)
		if err != nil {
			return storeErr(err)
		}
		return protocol.Integer(int64(n))

	case protocol.OpRPush:
		n, err := e.store.RPush(req.Key, req.Value)
		if err != nil {
			return storeErr(err)
		}
		return protocol.Integer(int64(n))

	case protocol.OpLPop:
		val, found, err := e.store.LPop(req.Key)
		if err != nil {
			return storeErr(err)
		}
		if !found {
			return protocol.Nil()
		}
		return protocol.Bulk(val)

	case protocol.OpRPop:
		val, found, err := e.store.RPop(req.Key)
		if err != nil {
			return storeErr(err)
		}
		if !found {
			return protocol.Nil()
		}
		return protocol.Bulk(val)

	case protocol.OpLLen:
		n, err := e.store.LLen(req.Key)
		if err != nil {
			return storeErr(err)
		}
		return protocol.Integer(int64(n))

	case protocol.OpLRange:
		vals, err := e.store.LRange(req.Key, req.Start, req.End)
		if err != nil {
			return storeErr(err)
		}
		return protocol.Array(vals)

	case protocol.OpSAdd:
		n, err := e.store.SAdd(req.Key, req.Value)
		if err != nil {
			return storeErr(err)
		}
		return protocol.Integer(int64(n))

	case protocol.OpSRem:
		n, err := e.store.SRem(req.Key, req.Value)
		if err != nil {
			return storeErr(err)
		}
		return protocol.Integer(int64(n))

	case protocol.OpSMembers:
		vals, err := e.store.SMembers(req.Key)
		if err != nil {
			return storeErr(err)
		}
		return protocol.Array(vals)

	case protocol.OpSIsMember:
		ok, err := e.store.SIsMember(req.Key, req.Value)
		if err != nil {
			return storeErr(err)
		}
		if ok {
			return protocol.Integer(1)
		}
		return protocol.Integer(0)

	case protocol.OpSCard:
		n, err := e.store.SCard(req.Key)
		if err != nil {
			return storeErr(err)
		}
		return protocol.Integer(int64(n))

	case protocol.OpHSet:
		n, err := e.store.HSet(req.Key, req.Field, req.Value)
		if err != nil {
			return storeErr(err)
		}
		return protocol.Integer(int64(n))

	case protocol.OpHGet:
		val, found, err := e.store.HGet(req.Key, req.Field)
		if err != nil {
			return storeErr(err)
		}
		if !found {
			return protocol.Nil()
		}
		return protocol.Bulk(val)

	case protocol.OpHDel:
		n, err := e.store.HDel(req.Key, req.Fields...)
		if err != nil {
			return storeErr(err)
		}
		return protocol.Integer(int64(n))

	case protocol.OpHExists:
		ok, err := e.store.HExists(req.Key, req.Field)
		if err != nil {
			return storeErr(err)
		}
		if ok {
			return protocol.Integer(1)
		}
		return protocol.Integer(0)

	case protocol.OpHKeys:
		vals, err := e.store.HKeys(req.Key)
		if err != nil {
			return storeErr(err)
		}
		return protocol.Array(vals)

	case protocol.OpHVals:
		vals, err := e.store.HVals(req.Key)
		if err != nil {
			return storeErr(err)
		}
		return protocol.Array(vals)

	case protocol.OpHLen:
		n, err := e.store.HLen(req.Key)
		if err != nil {
			return storeErr(err)
		}
		return protocol.Integer(int64(n))

	default:
		return protocol.Err("ERR internal: unhandled request")
	}
}

func (e *Executor) incrBy(key string, delta int64) protocol.Response {
	n, err := e.store.IncrBy(key, delta)
	if err != nil {
		return storeErr(err)
	}
	return protocol.Integer(n)
}

// storeErr maps a store.Error to the "(error) <category>: <detail>"
// shape from spec.md §4.2/§7.
func storeErr(err error) protocol.Response {
	var storeErr *store.Error
	if errors.As(err, &storeErr) {
		return protocol.Err(storeErr.Error())
	}
	return protocol.Err("ERR " + err.Error())
}
