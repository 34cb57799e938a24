// Command kiba-client is an interactive line client for kiba-server,
// adapted from the teacher's RedisClient: a readline prompt that sends
// one line per command and prints back whatever the server replies.
package main

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/chzyer/readline"
)

// check prints the error message (if not nil) and exits gracefully,
// matching the teacher's fatal-client-error convention.
func check(err error) {
	if err == nil {
		return
	}
	fmt.Printf("Fatal Client Error: %v\n", err)
	os.Exit(1)
}

// Client holds the connection and prompt for one interactive session.
type Client struct {
	conn net.Conn
	r    *bufio.Reader
	rl   *readline.Instance
}

// NewClient dials addr and instantiates the readline prompt.
func NewClient(addr string) *Client {
	conn, err := net.Dial("tcp", addr)
	check(err)
	rl, err := readline.New("kiba " + addr + "> ")
	check(err)
	return &Client{conn: conn, r: bufio.NewReader(conn), rl: rl}
}

// readReply consumes exactly one reply from the server: either a single
// line, or — when the line begins with "*" — a count header followed by
// that many element lines, per the array-framing decision recorded in
// DESIGN.md.
func (c *Client) readReply() (string, error) {
	line, err := c.r.ReadString('\n')
	if err != nil {
		return "", err
	}

	if !strings.HasPrefix(line, "*") {
		return line, nil
	}

	var n int
	if _, err := fmt.Sscanf(line, "*%d\n", &n); err != nil {
		return line, nil
	}

	var sb strings.Builder
	sb.WriteString(line)
	for i := 0; i < n; i++ {
		item, err := c.r.ReadString('\n')
		if err != nil {
			return sb.String(), err
		}
		sb.WriteString(item)
	}
	return sb.String(), nil
}

func main() {
	addr := "127.0.0.1:6464"
	if len(os.Args) > 1 {
		addr = os.Args[1]
	}

	client := NewClient(addr)
	defer client.conn.Close()
	defer client.rl.Close()

	for {
		line, err := client.rl.Readline()
		if err != nil {
			return
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		_, err = client.conn.Write([]byte(line + "\n"))
		check(err)

		reply, err := client.readReply()
		check(err)
		fmt.Print(reply)
	}
}
