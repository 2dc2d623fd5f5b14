package elm327

import (
	"fmt"
	"regexp"
	"strings"
)

// OBDProtocol is one of the in-vehicle protocols the ELM327 can negotiate,
// carrying the adapter's single-hex-digit protocol id and the ATSP command
// that selects it.
type OBDProtocol struct {
	name  string
	elmID byte
	isCAN bool
}

func (p OBDProtocol) String() string { return p.name }

// ATSP returns the AT command that selects this protocol explicitly.
func (p OBDProtocol) ATSP() string {
	return fmt.Sprintf("ATSP%X", p.elmID)
}

// IsCAN reports whether this protocol uses ISO 15765-2 frame multiplexing
// rather than the legacy 11-bit frame format.
func (p OBDProtocol) IsCAN() bool { return p.isCAN }

// The closed set of protocols ELM327 v1.x supports, plus Auto and Unknown.
var (
	ProtoAuto      = OBDProtocol{name: "auto", elmID: 0x0}
	ProtoJ1850PWM  = OBDProtocol{name: "sae_j1850_pwm", elmID: 0x1}
	ProtoJ1850VPW  = OBDProtocol{name: "sae_j1850_vpw", elmID: 0x2}
	ProtoISO9141_2 = OBDProtocol{name: "iso_9141_2", elmID: 0x3}
	ProtoKWP5Baud  = OBDProtocol{name: "iso_14230_4_kwp_5baud", elmID: 0x4}
	ProtoKWPFast   = OBDProtocol{name: "iso_14230_4_kwp_fast", elmID: 0x5}
	ProtoCAN11_500 = OBDProtocol{name: "iso_15765_4_can_11_500", elmID: 0x6, isCAN: true}
	ProtoCAN29_500 = OBDProtocol{name: "iso_15765_4_can_29_500", elmID: 0x7, isCAN: true}
	ProtoCAN11_250 = OBDProtocol{name: "iso_15765_4_can_11_250", elmID: 0x8, isCAN: true}
	ProtoCAN29_250 = OBDProtocol{name: "iso_15765_4_can_29_250", elmID: 0x9, isCAN: true}
	ProtoUnknown   = OBDProtocol{name: "unknown", elmID: 0xF}
)

// manualProtocols is the probe order TryManual walks: 1..5, 6, 7, 8, 9.
var manualProtocols = []OBDProtocol{
	ProtoJ1850PWM,
	ProtoJ1850VPW,
	ProtoISO9141_2,
	ProtoKWP5Baud,
	ProtoKWPFast,
	ProtoCAN11_500,
	ProtoCAN29_500,
	ProtoCAN11_250,
	ProtoCAN29_250,
}

// protocolByDPNLetter maps the single-character reply to ATDPN (e.g. "6" or
// "A6" for the auto-detected-then-confirmed form) to a concrete protocol.
var protocolByDPNLetter = map[byte]OBDProtocol{
	'1': ProtoJ1850PWM,
	'2': ProtoJ1850VPW,
	'3': ProtoISO9141_2,
	'4': ProtoKWP5Baud,
	'5': ProtoKWPFast,
	'6': ProtoCAN11_500,
	'7': ProtoCAN29_500,
	'8': ProtoCAN11_250,
	'9': ProtoCAN29_250,
}

// protocolByDPN parses an ATDPN reply such as "6" or "A6" (the leading "A"
// means "automatically found").
func protocolByDPN(reply string) (OBDProtocol, bool) {
	reply = strings.TrimSpace(reply)
	reply = strings.TrimPrefix(reply, "A")

	if len(reply) != 1 {
		return ProtoUnknown, false
	}

	p, ok := protocolByDPNLetter[reply[0]]

	return p, ok
}

// mode01PID00Response matches a positive Mode 01 PID 0x00 response
// ("41 00 ...") anywhere in a reply line, tolerating the spaceless-header
// variants the adapter may emit.
var mode01PID00Response = regexp.MustCompile(`41\s*00`)

// acceptsProtocolReply reports whether lines contains an accepted positive
// "0100" probe response.
func acceptsProtocolReply(lines []string) bool {
	for _, l := range lines {
		if mode01PID00Response.MatchString(strings.ToUpper(l)) {
			return true
		}
	}
	return false
}

// detectionState names the states of the protocol-detection state machine.
type detectionState int

const (
	stateIdle detectionState = iota
	stateTryPreferred
	stateTryAuto
	stateTryManual
	stateReady
	stateNoProtocolFound
)

// detectProtocol drives the Idle -> {TryPreferred,TryAuto} -> TryManual ->
// Ready|NoProtocolFound state machine. sendFn issues one command and
// returns its response lines (or an error); it is the LineSession's Send,
// injected so this function has no I/O of its own and can be unit tested
// against a scripted sendFn.
func detectProtocol(sendFn func(cmd string) ([]string, error), preferred *OBDProtocol) (OBDProtocol, []string, error) {
	try := func(p OBDProtocol) ([]string, bool, error) {
		if _, err := sendFn(p.ATSP()); err != nil {
			return nil, false, err
		}

		lines, err := sendFn("0100")
		if err != nil {
			return nil, false, err
		}

		return lines, acceptsProtocolReply(lines), nil
	}

	state := stateIdle

	if preferred != nil {
		state = stateTryPreferred
	} else {
		state = stateTryAuto
	}

	if state == stateTryPreferred {
		lines, ok, err := try(*preferred)
		if err != nil {
			return ProtoUnknown, nil, err
		}
		if ok {
			return *preferred, lines, nil
		}
		state = stateTryAuto
	}

	if state == stateTryAuto {
		lines, ok, err := try(ProtoAuto)
		if err != nil {
			return ProtoUnknown, nil, err
		}
		if ok {
			dpnLines, err := sendFn("ATDPN")
			if err == nil && len(dpnLines) > 0 {
				if p, found := protocolByDPN(dpnLines[0]); found {
					return p, lines, nil
				}
			}
			// Accepted a reply but couldn't resolve a concrete letter;
			// still usable, just unidentified.
			return ProtoUnknown, lines, nil
		}
		state = stateTryManual
	}

	for _, p := range manualProtocols {
		lines, ok, err := try(p)
		if err != nil {
			return ProtoUnknown, nil, err
		}
		if ok {
			return p, lines, nil
		}
	}

	return ProtoUnknown, nil, ErrNoProtocolFound
}

// assignECURoles applies the ECU map rule: if exactly one
// ECU responded it is Engine; otherwise tx id 0 is Engine and tx id 1 is
// Transmission if present, else the ECU with the most set bits in its PID
// support bitmap becomes Engine and the rest Transmission.
func assignECURoles(messages []Message) map[uint32]ECUKind {
	roles := make(map[uint32]ECUKind)

	ids := make([]uint32, 0, len(messages))
	seen := make(map[uint32]bool)
	byID := make(map[uint32]Message)

	for _, m := range messages {
		if seen[m.ECU.TxID] {
			continue
		}
		seen[m.ECU.TxID] = true
		ids = append(ids, m.ECU.TxID)
		byID[m.ECU.TxID] = m
	}

	if len(ids) == 1 {
		roles[ids[0]] = ECUEngine
		return roles
	}

	hasZero, hasOne := seen[0], seen[1]

	if hasZero {
		roles[0] = ECUEngine
		for _, id := range ids {
			if id != 0 {
				roles[id] = ECUTransmission
			}
		}
		_ = hasOne
		return roles
	}

	var engineID uint32
	maxBits := -1

	for _, id := range ids {
		bits := countSetBits(byID[id].Data)
		if bits > maxBits {
			maxBits = bits
			engineID = id
		}
	}

	for _, id := range ids {
		if id == engineID {
			roles[id] = ECUEngine
		} else {
			roles[id] = ECUTransmission
		}
	}

	return roles
}

func countSetBits(data []byte) int {
	count := 0
	for _, b := range data {
		for b != 0 {
			count += int(b & 1)
			b >>= 1
		}
	}
	return count
}
