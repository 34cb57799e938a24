package protocol

import (
	"fmt"
	"strconv"
)

// unboundedArgs marks a variadic command's maximum argument count.
const unboundedArgs = -1

type commandSpec struct {
	minArgs, maxArgs int
	build            func(args []string) (Request, error)
}

// commandTable is the Parser's per-operator validation table from
// spec.md §4.3: minimum/maximum argument count, argument kinds, and the
// Request constructor. Lex uses its keys as the closed keyword set.
var commandTable = map[string]commandSpec{
	"GET":    {1, 1, func(a []string) (Request, error) { return Request{Op: OpGet, Key: a[0]}, nil }},
	"SET":    {2, 2, func(a []string) (Request, error) { return Request{Op: OpSet, Key: a[0], Value: a[1]}, nil }},
	"INCR":   {1, 1, func(a []string) (Request, error) { return Request{Op: OpIncr, Key: a[0]}, nil }},
	"DECR":   {1, 1, func(a []string) (Request, error) { return Request{Op: OpDecr, Key: a[0]}, nil }},
	"INCRBY": {2, 2, buildDelta(OpIncrBy)},
	"DECRBY": {2, 2, buildDelta(OpDecrBy)},
	"EXISTS": {1, 1, func(a []string) (Request, error) { return Request{Op: OpExists, Key: a[0]}, nil }},
	"DEL":    {1, 1, func(a []string) (Request, error) { return Request{Op: OpDel, Key: a[0]}, nil }},

	"LPUSH": {2, 2, func(a []string) (Request, error) { return Request{Op: OpLPush, Key: a[0], Value: a[1]}, nil }},
	"RPUSH": {2, 2, func(a []string) (Request, error) { return Request{Op: OpRPush, Key: a[0], Value: a[1]}, nil }},
	"LPOP":  {1, 1, func(a []string) (Request, error) { return Request{Op: OpLPop, Key: a[0]}, nil }},
	"RPOP":  {1, 1, func(a []string) (Request, error) { return Request{Op: OpRPop, Key: a[0]}, nil }},
	"LLEN":  {1, 1, func(a []string) (Request, error) { return Request{Op: OpLLen, Key: a[0]}, nil }},
	"LRANGE": {3, 3, func(a []string) (Request, error) {
		start, err := parseInt("LRANGE", a[1])
		if err != nil {
			return Request{}, err
		}
		end, err := parseInt("LRANGE", a[2])
		if err != nil {
			return Request{}, err
		}
		return Request{Op: OpLRange, Key: a[0], Start: int(start), End: int(end)}, nil
	}},

	"SADD":      {2, 2, func(a []string) (Request, error) { return Request{Op: OpSAdd, Key: a[0], Value: a[1]}, nil }},
	"SREM":      {2, 2, func(a []string) (Request, error) { return Request{Op: OpSRem, Key: a[0], Value: a[1]}, nil }},
	"SMEMBERS":  {1, 1, func(a []string) (Request, error) { return Request{Op: OpSMembers, Key: a[0]}, nil }},
	"SISMEMBER": {2, 2, func(a []string) (Request, error) { return Request{Op: OpSIsMember, Key: a[0], Value: a[1]}, nil }},
	"SCARD":     {1, 1, func(a []string) (Request, error) { return Request{Op: OpSCard, Key: a[0]}, nil }},

	"HSET":    {3, 3, func(a []string) (Request, error) { return Request{Op: OpHSet, Key: a[0], Field: a[1], Value: a[2]}, nil }},
	"HGET":    {2, 2, func(a []string) (Request, error) { return Request{Op: OpHGet, Key: a[0], Field: a[1]}, nil }},
	"HDEL":    {2, unboundedArgs, func(a []string) (Request, error) { return Request{Op: OpHDel, Key: a[0], Fields: a[1:]}, nil }},
	"HEXISTS": {2, 2, func(a []string) (Request, error) { return Request{Op: OpHExists, Key: a[0], Field: a[1]}, nil }},
	"HKEYS":   {1, 1, func(a []string) (Request, error) { return Request{Op: OpHKeys, Key: a[0]}, nil }},
	"HVALS":   {1, 1, func(a []string) (Request, error) { return Request{Op: OpHVals, Key: a[0]}, nil }},
	"HLEN":    {1, 1, func(a []string) (Request, error) { return Request{Op: OpHLen, Key: a[0]}, nil }},
}

func buildDelta(op Op) func([]string) (Request, error) {
	return func(a []string) (Request, error) {
		n, err := parseInt("INCRBY/DECRBY", a[1])
		if err != nil {
			return Request{}, err
		}
		delta := n
		if op == OpDecrBy {
			delta = -n
		}
		return Request{Op: op, Key: a[0], Delta: delta}, nil
	}
}

func parseInt(command, token string) (int64, error) {
	n, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("value is not an integer or out of range")
	}
	return n, nil
}

// IsKnownCommand reports whether op (already uppercased) is in the
// closed command keyword set from spec.md §6.
func IsKnownCommand(op string) bool {
	_, ok := commandTable[op]
	return ok
}

// Parse converts a LexResult into a Request. It never rejects: every
// failure becomes an Invalid Request carrying a human-readable message,
// per spec.md §4.3.
func Parse(lex LexResult) Request {
	switch lex.Kind {
	case LexEmpty:
		return noOpRequest()
	case LexUnrecognized:
		if lex.Err != "" {
			return invalidRequest(fmt.Sprintf("ERR syntax error: %s", lex.Err))
		}
		return invalidRequest(fmt.Sprintf("ERR unknown command '%s'", lex.Word))
	default:
		return parseTokens(lex.Op, lex.Args)
	}
}

func parseTokens(op string, args []string) Request {
	spec, ok := commandTable[op]
	if !ok {
		// Unreachable: Lex only emits LexTokens for operators in
		// commandTable.
		return invalidRequest(fmt.Sprintf("ERR unknown command '%s'", op))
	}

	if len(args) < spec.minArgs || (spec.maxArgs != unboundedArgs && len(args) > spec.maxArgs) {
		return invalidRequest(fmt.Sprintf("ERR wrong number of arguments for '%s'", op))
	}

	req, err := spec.build(args)
	if err != nil {
		return invalidRequest(fmt.Sprintf("ERR %s", err.Error()))
	}
	return req
}
