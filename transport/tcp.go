package transport

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"time"
)

// TCP is a Transport backed by a plain TCP socket, grounded on the
// consumer-app pattern of dialing a WiFi ELM327 bridge directly
// (net.Dial("tcp", addr)); the framing rule is the same prompt byte as
// every other transport.
type TCP struct {
	addr    string
	dialer  net.Dialer
	conn    net.Conn
	state   *stateBroadcaster
	readBuf bytes.Buffer
}

// NewTCP creates a TCP transport that will dial addr (host:port) on Connect.
func NewTCP(addr string) *TCP {
	return &TCP{
		addr:  addr,
		state: newStateBroadcaster(),
	}
}

func (t *TCP) State() <-chan State {
	return t.state.channel()
}

func (t *TCP) Connect(ctx context.Context) error {
	t.state.set(Connecting)

	conn, err := t.dialer.DialContext(ctx, "tcp", t.addr)
	if err != nil {
		t.state.set(Disconnected)
		return fmt.Errorf("elm327/transport: dial %s: %w", t.addr, err)
	}

	t.conn = conn
	t.state.set(ConnectedToAdapter)

	return nil
}

func (t *TCP) Write(ctx context.Context, data []byte) error {
	if t.conn == nil {
		return fmt.Errorf("elm327/transport: tcp write before connect")
	}

	if deadline, ok := ctx.Deadline(); ok {
		t.conn.SetWriteDeadline(deadline)
	} else {
		t.conn.SetWriteDeadline(time.Time{})
	}

	_, err := t.conn.Write(data)
	if err != nil {
		return fmt.Errorf("elm327/transport: tcp write: %w", err)
	}

	return nil
}

func (t *TCP) ReadUntil(ctx context.Context, delim byte) ([]byte, error) {
	if t.conn == nil {
		return nil, fmt.Errorf("elm327/transport: tcp read before connect")
	}

	if deadline, ok := ctx.Deadline(); ok {
		t.conn.SetReadDeadline(deadline)
	} else {
		t.conn.SetReadDeadline(time.Time{})
	}

	t.readBuf.Reset()
	chunk := make([]byte, 256)

	for {
		n, err := t.conn.Read(chunk)
		if n > 0 {
			t.readBuf.Write(chunk[:n])
			if chunk[n-1] == delim {
				return append([]byte{}, t.readBuf.Bytes()...), nil
			}
		}
		if err != nil {
			return nil, fmt.Errorf("elm327/transport: tcp read: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
	}
}

func (t *TCP) Disconnect() error {
	if t.conn == nil {
		return nil
	}

	err := t.conn.Close()
	t.conn = nil
	t.state.set(Disconnected)

	return err
}
