package elm327

import "strings"

// Message is a reassembled logical response from one ECU. Data[0] is the
// service response byte (request service + 0x40); subsequent bytes are the
// service payload.
type Message struct {
	ECU  ECUID
	Data []byte
}

// Payload returns the message's service payload, i.e. everything after the
// service response byte. Callers that need the raw service byte use Data[0]
// directly.
func (m Message) Payload() []byte {
	if len(m.Data) == 0 {
		return nil
	}
	return m.Data[1:]
}

// Service returns the request service this message answers (the response
// byte minus 0x40), or 0 if Data is empty.
func (m Message) Service() byte {
	if len(m.Data) == 0 {
		return 0
	}
	return m.Data[0] - 0x40
}

// cleanLine upper-cases a raw adapter line, strips whitespace and
// "SEARCHING..." noise, and keeps it only if it is an even-length hex
// string of at least minLen characters. Returns the
// cleaned hex string and true on success.
func cleanLine(line string, minLen int) (string, bool) {
	line = strings.ToUpper(line)
	line = strings.ReplaceAll(line, " ", "")
	line = strings.ReplaceAll(line, "\t", "")

	if idx := strings.Index(line, "SEARCHING"); idx >= 0 {
		line = line[:idx] + line[idx+len("SEARCHING..."):]
	}
	line = strings.TrimSpace(line)

	if len(line) < minLen || len(line)%2 != 0 {
		return "", false
	}

	for _, r := range line {
		if !isHexDigit(r) {
			return "", false
		}
	}

	return line, true
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'A' && r <= 'F')
}

// hexToBytes decodes a clean, even-length uppercase hex string into bytes.
// It assumes cleanLine has already validated the input.
func hexToBytes(hexStr string) []byte {
	out := make([]byte, len(hexStr)/2)
	for i := range out {
		out[i] = hexNibble(hexStr[2*i])<<4 | hexNibble(hexStr[2*i+1])
	}
	return out
}

func hexNibble(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}
