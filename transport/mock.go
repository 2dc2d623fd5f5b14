package transport

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
)

// Mock is a scriptable Transport: register a reply for a command prefix
// and Mock echoes it back, terminated by the prompt byte, exactly like a
// real adapter. Used by this module's own tests and available to
// downstream consumers for theirs.
type Mock struct {
	mu       sync.Mutex
	scripts  map[string]string
	fallback string
	pending  bytes.Buffer
	state    *stateBroadcaster
}

// NewMock creates an empty Mock transport. Register replies with Script
// before calling Connect.
func NewMock() *Mock {
	return &Mock{
		scripts: make(map[string]string),
		state:   newStateBroadcaster(),
	}
}

// Script registers the raw reply (without the trailing prompt byte, which
// Mock appends automatically) for any command that starts with prefix. An
// exact command match wins over a shorter prefix.
func (m *Mock) Script(prefix, reply string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scripts[strings.ToUpper(prefix)] = reply
}

// SetFallback registers the reply used for any command with no matching
// script. Without a fallback such a command gets an empty reply: just the
// prompt byte.
func (m *Mock) SetFallback(reply string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallback = reply
}

func (m *Mock) State() <-chan State {
	return m.state.channel()
}

func (m *Mock) Connect(ctx context.Context) error {
	m.state.set(Connecting)
	m.state.set(ConnectedToAdapter)
	return nil
}

func (m *Mock) Write(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cmd := strings.ToUpper(strings.TrimRight(string(data), "\r\n"))

	reply, ok := m.bestMatch(cmd)
	if !ok {
		reply = m.fallback
	}

	m.pending.Reset()
	m.pending.WriteString(reply)
	m.pending.WriteByte('>')

	return nil
}

func (m *Mock) bestMatch(cmd string) (string, bool) {
	if reply, ok := m.scripts[cmd]; ok {
		return reply, true
	}

	best := ""
	bestLen := -1
	found := false

	for prefix, reply := range m.scripts {
		if strings.HasPrefix(cmd, prefix) && len(prefix) > bestLen {
			best, bestLen, found = reply, len(prefix), true
		}
	}

	return best, found
}

func (m *Mock) ReadUntil(ctx context.Context, delim byte) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pending.Len() == 0 {
		return nil, fmt.Errorf("elm327/transport: mock has no pending reply; call Write first")
	}

	out := append([]byte{}, m.pending.Bytes()...)
	m.pending.Reset()

	return out, nil
}

func (m *Mock) Disconnect() error {
	m.state.set(Disconnected)
	return nil
}
