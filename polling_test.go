package elm327

import (
	"context"
	"testing"
)

// Batched poll: request "010C0D" replies with both RPM and speed
// in one compound message; each PID's own echo byte is verified before its
// value bytes are consumed.
func TestPollBatchedScenario(t *testing.T) {
	send := func(ctx context.Context, wire string) ([]Message, error) {
		assertEqual(t, wire, "010C0D")
		return []Message{{
			Data: []byte{0x41, 0x0C, 0x0F, 0xA0, 0x0D, 0x32},
		}}, nil
	}

	poller := NewPoller(send, DefaultConfig())

	result, err := poller.PollOnce(context.Background(), []CommandId{"010C", "010D"}, StrategyBatched)
	assertSuccess(t, err)

	rpm, ok := result["010C"]
	assert(t, ok, "expected an RPM result")
	assertEqual(t, rpm.Value, float64(1000))

	speed, ok := result["010D"]
	assert(t, ok, "expected a speed result")
	assertEqual(t, speed.Value, float64(50))
}

func TestPollBatchedSkipsPIDWithMismatchedEcho(t *testing.T) {
	send := func(ctx context.Context, wire string) ([]Message, error) {
		// 010D's echo byte is missing/garbled; RPM should still decode.
		return []Message{{Data: []byte{0x41, 0x0C, 0x0F, 0xA0, 0xFF, 0x32}}}, nil
	}

	poller := NewPoller(send, DefaultConfig())
	result, err := poller.PollOnce(context.Background(), []CommandId{"010C", "010D"}, StrategyBatched)
	assertSuccess(t, err)

	_, hasRPM := result["010C"]
	assert(t, hasRPM, "expected RPM to still decode")

	_, hasSpeed := result["010D"]
	assert(t, !hasSpeed, "expected speed to be skipped on echo mismatch")
}

func TestPollBatchedEmptyIDs(t *testing.T) {
	send := func(ctx context.Context, wire string) ([]Message, error) {
		t.Fatal("should not send a request for an empty id list")
		return nil, nil
	}

	poller := NewPoller(send, DefaultConfig())
	result, err := poller.PollOnce(context.Background(), nil, StrategyBatched)
	assertSuccess(t, err)
	assertEqual(t, len(result), 0)
}

func TestPollSequential(t *testing.T) {
	send := func(ctx context.Context, wire string) ([]Message, error) {
		switch wire {
		case "010C":
			return []Message{{Data: []byte{0x41, 0x0C, 0x0F, 0xA0}}}, nil
		case "010D":
			return []Message{{Data: []byte{0x41, 0x0D, 0x32}}}, nil
		}
		return nil, nil
	}

	poller := NewPoller(send, DefaultConfig())
	result, err := poller.PollOnce(context.Background(), []CommandId{"010C", "010D"}, StrategySequential)
	assertSuccess(t, err)

	assertEqual(t, result["010C"].Value, float64(1000))
	assertEqual(t, result["010D"].Value, float64(50))
}

func TestNextPollIntervalFixed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AdaptivePolling = false
	got := nextPollInterval(cfg, 999)
	assertEqual(t, got, cfg.PollInterval)
}

func TestNextPollIntervalClampsToFloorAndCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AdaptivePolling = true

	low := nextPollInterval(cfg, 1)
	assertEqual(t, low, cfg.MinPollInterval)

	high := nextPollInterval(cfg, cfg.MaxPollInterval*10)
	assertEqual(t, high, cfg.MaxPollInterval)
}
