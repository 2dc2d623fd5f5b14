package elm327

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// PollingBatch is an ordered list of Mode 01 PIDs intended to be serviced
// by a single compound request.
type PollingBatch struct {
	PIDs []CommandId
}

// PollStrategy selects how the Poller services a PollingBatch.
type PollStrategy int

const (
	StrategyBatched PollStrategy = iota
	StrategySequential
)

// Poller schedules batched requests against a single half-duplex link,
// issuing one combined request for several PIDs at once plus adaptive
// pacing between polls.
type Poller struct {
	send func(ctx context.Context, wire string) ([]Message, error)
	cfg  Config
}

// NewPoller creates a Poller that issues requests through send, which is
// expected to run one LineSession.Send cycle and parse the reply with
// whatever frame parser matches the detected protocol.
func NewPoller(send func(ctx context.Context, wire string) ([]Message, error), cfg Config) *Poller {
	return &Poller{send: send, cfg: cfg}
}

// PollOnce requests every id in ids and returns however many decoded
// successfully; a PID whose payload is missing, short, or undecodable is
// silently omitted rather than failing the whole batch.
func (p *Poller) PollOnce(ctx context.Context, ids []CommandId, strategy PollStrategy) (map[CommandId]MeasurementResult, error) {
	if strategy == StrategySequential {
		return p.pollSequential(ctx, ids)
	}
	return p.pollBatched(ctx, ids)
}

func (p *Poller) pollBatched(ctx context.Context, ids []CommandId) (map[CommandId]MeasurementResult, error) {
	result := make(map[CommandId]MeasurementResult)
	if len(ids) == 0 {
		return result, nil
	}

	specs := make([]CommandSpec, 0, len(ids))
	var wire strings.Builder
	wire.WriteString("01")

	for _, id := range ids {
		spec, ok := Lookup(id)
		if !ok || !strings.HasPrefix(spec.Wire, "01") {
			continue
		}
		specs = append(specs, spec)
		wire.WriteString(strings.TrimPrefix(spec.Wire, "01"))
	}

	if len(specs) == 0 {
		return result, nil
	}

	messages, err := p.send(ctx, wire.String())
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return result, nil
	}

	payload := messages[0].Payload()
	pos := 0

	for _, spec := range specs {
		pidByte, err := pidHexByte(spec.Wire)
		if err != nil {
			continue
		}

		if pos >= len(payload) || payload[pos] != pidByte {
			continue
		}
		pos++

		if pos+spec.ByteWidth > len(payload) {
			continue
		}

		tv, err := decode(spec.Decoder, payload[pos:pos+spec.ByteWidth], p.cfg.Units)
		pos += spec.ByteWidth

		if err != nil || tv.Kind != KindMeasurement {
			continue
		}

		result[spec.ID] = tv.Measurement
	}

	return result, nil
}

func (p *Poller) pollSequential(ctx context.Context, ids []CommandId) (map[CommandId]MeasurementResult, error) {
	result := make(map[CommandId]MeasurementResult)

	for _, id := range ids {
		spec, ok := Lookup(id)
		if !ok {
			continue
		}

		messages, err := p.send(ctx, spec.Wire)
		if err != nil {
			return nil, err
		}
		if len(messages) == 0 {
			continue
		}

		payload := messages[0].Payload()
		if len(payload) < 1+spec.ByteWidth {
			continue
		}

		tv, err := decode(spec.Decoder, payload[1:1+spec.ByteWidth], p.cfg.Units)
		if err != nil || tv.Kind != KindMeasurement {
			continue
		}

		result[spec.ID] = tv.Measurement
	}

	return result, nil
}

// pidHexByte parses the last two hex characters of a Mode 01 wire string
// (its PID) into a byte.
func pidHexByte(wire string) (byte, error) {
	if len(wire) < 4 {
		return 0, ErrInvalidResponse
	}
	n, err := strconv.ParseUint(wire[2:4], 16, 8)
	if err != nil {
		return 0, err
	}
	return byte(n), nil
}

// nextPollInterval applies the adaptive pacing formula:
// clamp(elapsed*SafetyFactor, floor, cap).
func nextPollInterval(cfg Config, elapsed time.Duration) time.Duration {
	if !cfg.AdaptivePolling {
		return cfg.PollInterval
	}

	next := time.Duration(float64(elapsed) * cfg.SafetyFactor)

	if next < cfg.MinPollInterval {
		return cfg.MinPollInterval
	}
	if next > cfg.MaxPollInterval {
		return cfg.MaxPollInterval
	}
	return next
}
