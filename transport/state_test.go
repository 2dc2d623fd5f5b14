package transport

import "testing"

func TestStateBroadcasterStartsDisconnected(t *testing.T) {
	b := newStateBroadcaster()
	assertEqual(t, <-b.channel(), Disconnected)
}

func TestStateBroadcasterDropsOldestWhenFull(t *testing.T) {
	b := newStateBroadcaster()
	<-b.channel() // drain the initial Disconnected

	for i := 0; i < 20; i++ {
		if i%2 == 0 {
			b.set(Connecting)
		} else {
			b.set(ConnectedToAdapter)
		}
	}

	// The broadcaster must never block on set regardless of how many
	// updates outrun a slow subscriber; the channel should still yield
	// the most recent value once drained.
	var last State
	for {
		select {
		case last = <-b.channel():
			continue
		default:
		}
		break
	}
	assertEqual(t, last, ConnectedToAdapter)
}

func TestStateString(t *testing.T) {
	assertEqual(t, Connecting.String(), "connecting")
	assertEqual(t, ConnectedToAdapter.String(), "connected_to_adapter")
	assertEqual(t, Disconnected.String(), "disconnected")
}
