package elm327

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/obdkit/elm327/transport"
)

// SessionState is one stage of the public connection lifecycle.
type SessionState int

const (
	Disconnected SessionState = iota
	Connecting
	ConnectedToAdapter
	ConnectedToVehicle
)

func (s SessionState) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case ConnectedToAdapter:
		return "connected_to_adapter"
	case ConnectedToVehicle:
		return "connected_to_vehicle"
	default:
		return "disconnected"
	}
}

// OBDInfo summarizes what Connect learned about the vehicle: its VIN (if
// decodable), the supported PIDs across every responding ECU, the
// negotiated protocol, and the tx-id-to-role ECU map.
type OBDInfo struct {
	VIN            string
	SupportedPIDs  map[CommandId]bool
	Protocol       OBDProtocol
	ECUMap         map[uint32]ECUKind
	AdapterVersion string
}

// Client is the public façade over a Transport: Connect, SendCommand and
// RequestPIDs are driven through a LineSession plus the protocol detector,
// frame parsers and PID catalogue.
type Client struct {
	cfg   Config
	tr    transport.Transport
	line  *LineSession
	state chan SessionState

	mu       sync.Mutex
	protocol OBDProtocol
	ecuRoles map[uint32]ECUKind
	info     OBDInfo
}

// NewClient creates a Client over t. Call Connect before issuing any other
// operation.
func NewClient(t transport.Transport, cfg Config) *Client {
	if cfg.CommandTimeout == 0 {
		cfg = DefaultConfig()
	}

	ch := make(chan SessionState, 8)
	ch <- Disconnected

	return &Client{
		cfg:   cfg,
		tr:    t,
		line:  NewLineSession(t, cfg),
		state: ch,
	}
}

// State returns the client's lifecycle transition stream. It starts with
// Disconnected and then carries every transition in order; it buffers up to
// 8 unread values, and when it is full the oldest unread value is dropped.
func (c *Client) State() <-chan SessionState {
	return c.state
}

func (c *Client) setState(s SessionState) {
	select {
	case c.state <- s:
	default:
		select {
		case <-c.state:
		default:
		}
		c.state <- s
	}
}

// Connect drives adapter initialization, protocol detection, ECU mapping
// and vehicle readiness.
func (c *Client) Connect(ctx context.Context) (OBDInfo, error) {
	c.setState(Connecting)

	if err := c.tr.Connect(ctx); err != nil {
		c.setState(Disconnected)
		return OBDInfo{}, fmt.Errorf("%w: %v", ErrConnectFailed, err)
	}

	initCmds := []struct {
		cmd   string
		delay time.Duration
	}{
		{"ATZ", c.cfg.InitDelay},
		{"ATE0", 0},
		{"ATL0", 0},
		{"ATS0", 0},
		{"ATH1", 0},
	}

	for _, step := range initCmds {
		if _, err := c.line.Send(ctx, step.cmd); err != nil {
			c.setState(Disconnected)
			return OBDInfo{}, fmt.Errorf("%w: %q: %v", ErrAdapterInitFailed, step.cmd, err)
		}
		if step.delay > 0 {
			if err := sleepOrCancel(ctx, step.delay); err != nil {
				c.setState(Disconnected)
				return OBDInfo{}, err
			}
		}
	}

	version, _ := c.line.Send(ctx, "ATI")
	if len(version) > 0 {
		c.info.AdapterVersion = version[0]
	}

	c.setState(ConnectedToAdapter)

	sendFn := func(cmd string) ([]string, error) {
		return c.line.Send(ctx, cmd)
	}

	protocol, probeLines, err := detectProtocol(sendFn, c.cfg.PreferredProtocol)
	if err != nil {
		c.setState(Disconnected)
		return OBDInfo{}, err
	}

	c.mu.Lock()
	c.protocol = protocol
	c.mu.Unlock()

	messages, err := c.parseLines(probeLines)
	if err != nil {
		c.setState(Disconnected)
		return OBDInfo{}, err
	}

	roles := assignECURoles(messages)
	c.mu.Lock()
	c.ecuRoles = roles
	c.mu.Unlock()

	ecuMap := make(map[uint32]ECUKind, len(roles))
	for id, kind := range roles {
		ecuMap[id] = kind
	}

	vinMessages, err := c.sendAndParse(ctx, "0902")
	vin := ""
	if err == nil {
		for _, m := range vinMessages {
			if v, ok := decodeVIN(m.Payload()); ok {
				vin = v
				break
			}
		}
	}

	supported, err := discoverSupportedPIDs(func(wire string) ([]Message, error) {
		return c.sendAndParse(ctx, wire)
	})
	if err != nil {
		c.setState(Disconnected)
		return OBDInfo{}, err
	}

	info := OBDInfo{
		VIN:            vin,
		SupportedPIDs:  supported,
		Protocol:       protocol,
		ECUMap:         ecuMap,
		AdapterVersion: c.info.AdapterVersion,
	}

	c.mu.Lock()
	c.info = info
	c.mu.Unlock()

	c.setState(ConnectedToVehicle)

	return info, nil
}

// Disconnect releases the transport and returns the client to Disconnected.
func (c *Client) Disconnect() error {
	err := c.tr.Disconnect()
	c.setState(Disconnected)
	return err
}

// parseLines reassembles already-read response lines using whichever frame
// parser matches the currently negotiated protocol.
func (c *Client) parseLines(lines []string) ([]Message, error) {
	c.mu.Lock()
	protocol := c.protocol
	c.mu.Unlock()

	if protocol.IsCAN() {
		return ParseCANMessages(lines, CANOptions{HeadersOn: true})
	}
	return ParseLegacyMessages(lines, LegacyOptions{
		AdapterIncludesChecksum: c.cfg.AdapterIncludesChecksum,
		EmulatorMode:            c.cfg.EmulatorMode,
	})
}

// sendAndParse issues wire and reassembles the reply into Messages.
func (c *Client) sendAndParse(ctx context.Context, wire string) ([]Message, error) {
	lines, err := c.line.Send(ctx, wire)
	if err != nil {
		return nil, err
	}
	return c.parseLines(lines)
}

// SendCommand issues a single catalogue command and decodes its reply.
func (c *Client) SendCommand(ctx context.Context, id CommandId) (TypedValue, error) {
	spec, ok := Lookup(id)
	if !ok {
		return TypedValue{}, newCommandError(string(id), ErrUnsupportedDecoder)
	}

	messages, err := c.sendAndParse(ctx, spec.Wire)
	if err != nil {
		return TypedValue{}, newCommandError(spec.Wire, err)
	}
	if len(messages) == 0 {
		return TypedValue{}, newCommandError(spec.Wire, ErrNoData)
	}

	// Mode 01/06/09 single-PID getters echo the requested PID as the first
	// payload byte; strip it before decoding, the same as polling.go and
	// discovery.go do. Mode 03/04 carry no PID. DecodeEncodedString gets the
	// unstripped payload; it drops the echo and count bytes along with every
	// other non-printable byte.
	payload := messages[0].Payload()
	if len(spec.Wire) > 2 && spec.Decoder != DecodeEncodedString && len(payload) > 0 {
		payload = payload[1:]
	}

	tv, err := decode(spec.Decoder, payload, c.cfg.Units)
	if err != nil {
		return TypedValue{}, newCommandError(spec.Wire, err)
	}

	return tv, nil
}

// RequestPIDs fetches every id in one batched request where possible.
func (c *Client) RequestPIDs(ctx context.Context, ids []CommandId) (map[CommandId]MeasurementResult, error) {
	poller := NewPoller(func(ctx context.Context, wire string) ([]Message, error) {
		return c.sendAndParse(ctx, wire)
	}, c.cfg)

	return poller.PollOnce(ctx, ids, StrategyBatched)
}

// ContinuousUpdates starts a background polling loop and returns a channel
// of snapshots; closing ctx stops the loop and drains the transport.
func (c *Client) ContinuousUpdates(ctx context.Context, ids []CommandId, adaptive bool) <-chan map[CommandId]MeasurementResult {
	out := make(chan map[CommandId]MeasurementResult)

	cfg := c.cfg
	cfg.AdaptivePolling = adaptive

	poller := NewPoller(func(ctx context.Context, wire string) ([]Message, error) {
		return c.sendAndParse(ctx, wire)
	}, cfg)

	go func() {
		defer close(out)

		interval := cfg.PollInterval

		for {
			start := time.Now()

			snapshot, err := poller.PollOnce(ctx, ids, StrategyBatched)
			if err == nil {
				select {
				case out <- snapshot:
				case <-ctx.Done():
					return
				}
			}

			elapsed := time.Since(start)
			interval = nextPollInterval(cfg, elapsed)

			if err := sleepOrCancel(ctx, interval); err != nil {
				return
			}
		}
	}()

	return out
}

// ScanTroubleCodes requests Mode 03 and groups decoded codes by ECU.
func (c *Client) ScanTroubleCodes(ctx context.Context) (map[ECUID][]TroubleCode, error) {
	messages, err := c.sendAndParse(ctx, "03")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScanFailed, err)
	}

	result := make(map[ECUID][]TroubleCode)

	for _, m := range messages {
		codes, err := decodeDTCList(m.Payload())
		if err != nil {
			continue
		}
		result[m.ECU] = codes
	}

	return result, nil
}

// ClearTroubleCodes issues Mode 04.
func (c *Client) ClearTroubleCodes(ctx context.Context) error {
	_, err := c.sendAndParse(ctx, "04")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrClearFailed, err)
	}
	return nil
}

// Status requests Mode 01 PID 01 and decodes the readiness frame.
func (c *Client) Status(ctx context.Context) (Status, error) {
	tv, err := c.SendCommand(ctx, "0101")
	if err != nil {
		return Status{}, err
	}
	if tv.Kind != KindStatus {
		return Status{}, ErrNoData
	}
	return tv.Status, nil
}

// SupportedPIDs returns the set of CommandIds Connect discovered as
// supported across every responding ECU.
func (c *Client) SupportedPIDs() map[CommandId]bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.info.SupportedPIDs
}

// AdapterVersion returns the ATI banner text captured during Connect.
func (c *Client) AdapterVersion() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.info.AdapterVersion
}

// BatteryVoltage issues AT RV and parses the adapter's reported voltage,
// e.g. "12.6V".
func (c *Client) BatteryVoltage(ctx context.Context) (float64, error) {
	lines, err := c.line.Send(ctx, "AT RV")
	if err != nil {
		return 0, err
	}
	if len(lines) == 0 {
		return 0, ErrNoData
	}

	text := strings.TrimSuffix(strings.ToUpper(strings.TrimSpace(lines[0])), "V")
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: AT RV reply %q", ErrInvalidResponse, lines[0])
	}

	return v, nil
}
