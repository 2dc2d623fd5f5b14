package elm327

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/obdkit/elm327/transport"
)

// LineSession frames a Transport's raw bytes into ASCII command/response
// exchanges terminated by the ELM327 prompt. It works over any
// transport.Transport, with a context.Context layered on top for
// cancellation and deadlines.
type LineSession struct {
	transport transport.Transport
	cfg       Config
	mu        sync.Mutex
}

// NewLineSession wraps t with single in-flight command/response discipline.
func NewLineSession(t transport.Transport, cfg Config) *LineSession {
	return &LineSession{transport: t, cfg: cfg}
}

// Send issues cmd and returns its cleaned response lines. At most one Send
// may be in flight at a time; a concurrent caller gets ErrAdapterBusy
// immediately rather than queuing.
func (s *LineSession) Send(ctx context.Context, cmd string) ([]string, error) {
	if !s.mu.TryLock() {
		return nil, ErrAdapterBusy
	}
	defer s.mu.Unlock()

	var lastErr error

	for attempt := 0; attempt <= s.cfg.RetryCount; attempt++ {
		lines, err := s.attempt(ctx, cmd)
		if err == nil {
			return lines, nil
		}

		lastErr = err

		if !retryable(err) {
			return nil, err
		}
		if attempt == s.cfg.RetryCount {
			break
		}

		s.cfg.logger().Printf("elm327: retrying %q after %v (attempt %d/%d)", cmd, err, attempt+1, s.cfg.RetryCount)

		if err := sleepOrCancel(ctx, s.cfg.RetryBackoff); err != nil {
			s.drain(ctx)
			return nil, err
		}
	}

	return nil, lastErr
}

func (s *LineSession) attempt(ctx context.Context, cmd string) ([]string, error) {
	cctx := ctx
	var cancel context.CancelFunc
	if s.cfg.CommandTimeout > 0 {
		cctx, cancel = context.WithTimeout(ctx, s.cfg.CommandTimeout)
		defer cancel()
	}

	if err := s.transport.Write(cctx, []byte(cmd+"\r")); err != nil {
		return nil, s.classifyTransportErr(err)
	}

	raw, err := s.transport.ReadUntil(cctx, '>')
	if err != nil {
		if cctx.Err() != nil {
			s.drain(ctx)
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, s.classifyTransportErr(err)
	}

	lines := parseAdapterLines(raw)

	return classifyLines(lines)
}

// classifyTransportErr wraps an opaque transport error as a LinkError,
// since the Transport interface does not itself distinguish failure
// causes. A read cut off by the command deadline is reported as Timeout by
// attempt, not here.
func (s *LineSession) classifyTransportErr(err error) error {
	return fmt.Errorf("%w: %v", ErrLinkError, err)
}

// drain best-effort reads until the next prompt so a cancelled command
// leaves the transport usable for the next Send.
func (s *LineSession) drain(ctx context.Context) {
	dctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, _ = s.transport.ReadUntil(dctx, '>')
	_ = ctx
}

func sleepOrCancel(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// parseAdapterLines splits raw adapter output on CR/LF, trims whitespace,
// and drops empty lines and the trailing lone-prompt line.
func parseAdapterLines(raw []byte) []string {
	text := strings.TrimSuffix(string(raw), ">")

	var lines []string
	for _, part := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '\r' || r == '\n'
	}) {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" || trimmed == ">" {
			continue
		}
		lines = append(lines, trimmed)
	}

	return lines
}

// classifyLines inspects the first response line: NO DATA/SEARCHING...
// succeed with an empty result, ?/UNABLE TO CONNECT are InvalidResponse,
// STOPPED/BUS INIT: ERROR/CAN ERROR are LinkError.
func classifyLines(lines []string) ([]string, error) {
	if len(lines) == 0 {
		return nil, nil
	}

	first := strings.ToUpper(lines[0])

	switch {
	case strings.Contains(first, "NO DATA"), strings.Contains(first, "SEARCHING"):
		return nil, nil
	case strings.Contains(first, "UNABLE TO CONNECT"), first == "?":
		return nil, fmt.Errorf("%w: %q", ErrInvalidResponse, lines[0])
	case strings.Contains(first, "STOPPED"), strings.Contains(first, "BUS INIT"), strings.Contains(first, "CAN ERROR"):
		return nil, fmt.Errorf("%w: %q", ErrLinkError, lines[0])
	default:
		return lines, nil
	}
}
