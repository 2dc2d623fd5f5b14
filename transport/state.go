package transport

import "sync"

// stateBroadcaster fans a single current State out to one subscriber
// channel, a single event stream owned by the transport rather than a
// dual observable+delegate mechanism.
type stateBroadcaster struct {
	mu      sync.Mutex
	current State
	ch      chan State
}

func newStateBroadcaster() *stateBroadcaster {
	b := &stateBroadcaster{
		ch: make(chan State, 8),
	}
	b.ch <- Disconnected
	return b
}

func (b *stateBroadcaster) set(s State) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.current = s

	select {
	case b.ch <- s:
	default:
		// Drop the oldest pending value rather than block the writer; a
		// subscriber only ever needs the latest state.
		select {
		case <-b.ch:
		default:
		}
		b.ch <- s
	}
}

func (b *stateBroadcaster) channel() <-chan State {
	return b.ch
}
