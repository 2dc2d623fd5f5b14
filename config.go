package elm327

import (
	"io"
	"log"
	"time"
)

// Config is an immutable settings value threaded into Connect, captured
// once by the session rather than held as global mutable settings.
type Config struct {
	// PreferredProtocol, if non-nil, is tried before protocol auto-detect.
	PreferredProtocol *OBDProtocol

	// CommandTimeout bounds a single command's write+read-until-prompt
	// cycle.
	CommandTimeout time.Duration

	// RetryCount is how many additional attempts a Transport timeout or
	// LinkError gets before the error propagates.
	RetryCount int

	// RetryBackoff is the delay before a retried command is resent.
	RetryBackoff time.Duration

	// InitDelay is the post-command pause after ATZ, which needs longer
	// than the other init commands to let the adapter actually reset.
	InitDelay time.Duration

	// AdapterIncludesChecksum configures legacy frame parsing: whether the
	// adapter appends a trailing checksum byte to raw frames.
	AdapterIncludesChecksum bool

	// EmulatorMode relaxes legacy frame parsing for software emulators
	// that omit multi-frame sequence bytes. Never enable against a real
	// vehicle.
	EmulatorMode bool

	// Units selects Metric or Imperial for every MeasurementResult.
	Units UnitSystem

	// PollInterval is the minimum spacing between polling batches.
	PollInterval time.Duration

	// AdaptivePolling enables the clamp(elapsed*SafetyFactor, floor, cap)
	// pacing strategy instead of a fixed PollInterval.
	AdaptivePolling bool
	SafetyFactor    float64
	MinPollInterval time.Duration
	MaxPollInterval time.Duration

	// Logger receives debug traces. Defaults to discarding output.
	Logger *log.Logger
}

// DefaultConfig returns a Config with conservative defaults: a 5 second
// command timeout, an 800ms ATZ settle time, and a 300ms default poll
// interval.
func DefaultConfig() Config {
	return Config{
		CommandTimeout:  5 * time.Second,
		RetryCount:      2,
		RetryBackoff:    100 * time.Millisecond,
		InitDelay:       800 * time.Millisecond,
		Units:           Metric,
		PollInterval:    300 * time.Millisecond,
		SafetyFactor:    1.5,
		MinPollInterval: 100 * time.Millisecond,
		MaxPollInterval: 2 * time.Second,
		Logger:          log.New(io.Discard, "", 0),
	}
}

func (c Config) logger() *log.Logger {
	if c.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return c.Logger
}
