package elm327

import "fmt"

// LegacyOptions configures legacy (non-CAN) frame cleanup and reassembly,
// as explicit per-connection settings rather than adapter-wide globals.
type LegacyOptions struct {
	// AdapterIncludesChecksum, when true, means every raw frame's trailing
	// byte is a checksum to be dropped before reassembly.
	AdapterIncludesChecksum bool

	// EmulatorMode relaxes the minimum cleaned-line length to 4 hex
	// characters and enables the no-sequence-byte quirk some software
	// emulators exhibit. Never enable against a real vehicle.
	EmulatorMode bool
}

type legacyRawFrame struct {
	Priority byte
	RxID     byte
	TxID     uint32
	Payload  []byte
}

// cleanLegacyLines cleans every line and enforces a 4..12-byte bound,
// silently dropping lines that don't survive cleanup (adapter noise,
// blank lines).
func cleanLegacyLines(lines []string, opts LegacyOptions) []legacyRawFrame {
	minLen := 12
	if opts.EmulatorMode {
		minLen = 4
	}

	var frames []legacyRawFrame

	for _, line := range lines {
		clean, ok := cleanLine(line, minLen)
		if !ok {
			continue
		}

		b := hexToBytes(clean)

		if len(b) < 4 || len(b) > 12 {
			continue
		}

		frames = append(frames, legacyRawFrame{
			Priority: b[0],
			RxID:     b[1],
			TxID:     uint32(b[2] & 0x07),
			Payload:  b[3:],
		})
	}

	return frames
}

// ParseLegacyMessages reassembles cleaned adapter lines produced while
// talking one of the five legacy protocols into logical per-ECU Messages.
// It never returns a partial Message: every group either fully
// reassembles or yields a Parse-kind error.
func ParseLegacyMessages(lines []string, opts LegacyOptions) ([]Message, error) {
	frames := cleanLegacyLines(lines, opts)

	order := make([]uint32, 0, 4)
	groups := make(map[uint32][]legacyRawFrame)

	for _, f := range frames {
		if _, ok := groups[f.TxID]; !ok {
			order = append(order, f.TxID)
		}
		groups[f.TxID] = append(groups[f.TxID], f)
	}

	messages := make([]Message, 0, len(order))

	for _, txID := range order {
		data, err := reassembleLegacyGroup(groups[txID], opts)
		if err != nil {
			return nil, err
		}
		if data == nil {
			continue
		}
		messages = append(messages, Message{
			ECU:  legacyECUID(byte(txID)),
			Data: data,
		})
	}

	return messages, nil
}

func payloadsWithChecksumStripped(frames []legacyRawFrame, opts LegacyOptions) [][]byte {
	out := make([][]byte, len(frames))
	for i, f := range frames {
		p := f.Payload
		if opts.AdapterIncludesChecksum && len(p) > 0 {
			p = p[:len(p)-1]
		}
		out[i] = p
	}
	return out
}

func reassembleLegacyGroup(frames []legacyRawFrame, opts LegacyOptions) ([]byte, error) {
	if len(frames) == 0 {
		return nil, nil
	}

	payloads := payloadsWithChecksumStripped(frames, opts)

	if len(payloads) == 1 {
		return reassembleLegacySingle(payloads[0])
	}

	if opts.EmulatorMode && allLengthsIn(payloads, 4, 5) {
		var data []byte
		for _, p := range payloads {
			data = append(data, p...)
		}
		return data, nil
	}

	return reassembleLegacyMultiframe(payloads)
}

func reassembleLegacySingle(payload []byte) ([]byte, error) {
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: empty legacy frame payload", ErrShortFrame)
	}

	if payload[0] == 0x43 {
		data := []byte{0x43, 0x00}
		if len(payload) > 1 {
			data = append(data, payload[1:]...)
		}
		return data, nil
	}

	return payload, nil
}

// reassembleLegacyMultiframe implements §4.2.2's generic multi-frame rule:
// the sequence number lives at payload[2], frames must be contiguous
// starting at 1, and the reassembled Data is the first frame's
// service+PID-echo header (payload[0:2]) followed by every sorted frame's
// payload[3:] in order. (Every frame repeats the service+echo header, so
// it is kept once, from the first frame, instead of being dropped with
// the rest of each frame's payload[0:3].)
func reassembleLegacyMultiframe(payloads [][]byte) ([]byte, error) {
	type seqFrame struct {
		seq     byte
		payload []byte
	}

	frames := make([]seqFrame, 0, len(payloads))

	for _, p := range payloads {
		if len(p) < 3 {
			return nil, fmt.Errorf("%w: multi-frame payload shorter than sequence header", ErrShortFrame)
		}
		frames = append(frames, seqFrame{seq: p[2], payload: p})
	}

	for i := 0; i < len(frames); i++ {
		for j := i + 1; j < len(frames); j++ {
			if frames[j].seq < frames[i].seq {
				frames[i], frames[j] = frames[j], frames[i]
			}
		}
	}

	if frames[0].seq != 1 {
		return nil, fmt.Errorf("%w: first legacy frame sequence is %d, want 1", ErrBadSequence, frames[0].seq)
	}

	for i := 1; i < len(frames); i++ {
		if frames[i].seq != frames[i-1].seq+1 {
			return nil, fmt.Errorf("%w: legacy frame sequence %d does not follow %d", ErrBadSequence, frames[i].seq, frames[i-1].seq)
		}
	}

	if len(frames[0].payload) < 2 {
		return nil, fmt.Errorf("%w: first legacy frame too short for service+PID header", ErrShortFrame)
	}

	data := append([]byte{}, frames[0].payload[0:2]...)

	for _, f := range frames {
		if len(f.payload) > 3 {
			data = append(data, f.payload[3:]...)
		}
	}

	return data, nil
}

func allLengthsIn(payloads [][]byte, a, b int) bool {
	for _, p := range payloads {
		if len(p) != a && len(p) != b {
			return false
		}
	}
	return true
}
