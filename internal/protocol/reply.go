package protocol

import (
	"fmt"
	"strings"
)

// Encode renders a Response as the client-visible text from spec.md §6.
// Every line is newline-terminated; CRLF framing on the wire is purely
// the connection handler's concern (see internal/server).
func Encode(r Response) string {
	switch r.Kind {
	case RespOk:
		return "OK\n"
	case RespNil:
		return "(nil)\n"
	case RespInteger:
		return fmt.Sprintf("(integer) %d\n", r.Integer)
	case RespBulk:
		return fmt.Sprintf("\"%s\"\n", r.Bulk)
	case RespArray:
		return encodeArray(r.Array)
	case RespError:
		return fmt.Sprintf("(error) %s\n", r.ErrMsg)
	default:
		return fmt.Sprintf("(error) ERR internal: unrecognized response kind %d\n", r.Kind)
	}
}

// encodeArray leads with a "*<n>" count line so a line-oriented reader
// knows exactly how many element lines follow it — plain newlines alone
// can't self-delimit a multi-line reply the way spec.md §6 describes
// element formatting. Each element line after that is numbered from 1
// and quoted like Bulk.
func encodeArray(xs []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "*%d\n", len(xs))
	for i, x := range xs {
		fmt.Fprintf(&sb, "%d) \"%s\"\n", i+1, x)
	}
	return sb.String()
}
