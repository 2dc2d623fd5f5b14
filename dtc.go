package elm327

import (
	"fmt"
)

// TroubleCode is a decoded diagnostic trouble code, e.g. "P0133".
type TroubleCode struct {
	Code string
	Raw  uint16
}

var dtcLetters = []byte{'P', 'C', 'B', 'U'}

var dtcLetterIndex = map[byte]byte{
	'P': 0,
	'C': 1,
	'B': 2,
	'U': 3,
}

// decodeDTCPair unpacks a 2-byte DTC: the top two
// bits of byte A select the letter, the next two bits are the first digit,
// and the low 4 bits of A together with all 8 bits of B form the last three
// hex digits.
func decodeDTCPair(a, b byte) TroubleCode {
	letter := dtcLetters[a>>6]
	firstDigit := (a >> 4) & 0x03
	remainder := uint16(a&0x0F)<<8 | uint16(b)

	return TroubleCode{
		Code: fmt.Sprintf("%c%d%03X", letter, firstDigit, remainder),
		Raw:  uint16(a)<<8 | uint16(b),
	}
}

// encodeDTC is the P2 round-trip inverse of decodeDTCPair: it turns a code
// string of the form "Pxxxx"/"Cxxxx"/"Bxxxx"/"Uxxxx" back into its two-byte
// wire representation.
func encodeDTC(code string) ([2]byte, error) {
	if len(code) != 5 {
		return [2]byte{}, fmt.Errorf("%w: DTC code %q is not 5 characters", ErrOutOfRange, code)
	}

	idx, ok := dtcLetterIndex[code[0]]
	if !ok {
		return [2]byte{}, fmt.Errorf("%w: DTC code %q has unknown letter prefix", ErrOutOfRange, code)
	}

	var firstDigit byte
	if code[1] < '0' || code[1] > '3' {
		return [2]byte{}, fmt.Errorf("%w: DTC code %q has invalid first digit", ErrOutOfRange, code)
	}
	firstDigit = code[1] - '0'

	var remainder uint16
	for i := 2; i < 5; i++ {
		c := code[i]
		var nibble uint16
		switch {
		case c >= '0' && c <= '9':
			nibble = uint16(c - '0')
		case c >= 'A' && c <= 'F':
			nibble = uint16(c-'A') + 10
		default:
			return [2]byte{}, fmt.Errorf("%w: DTC code %q has non-hex digit %q", ErrOutOfRange, code, c)
		}
		remainder = remainder<<4 | nibble
	}

	a := idx<<6 | firstDigit<<4 | byte(remainder>>8)
	b := byte(remainder & 0xFF)

	return [2]byte{a, b}, nil
}

// decodeSingleDTC reads exactly one DTC pair from the front of payload.
func decodeSingleDTC(payload []byte) (TroubleCode, error) {
	if len(payload) < 2 {
		return TroubleCode{}, ErrInsufficientBytes
	}
	return decodeDTCPair(payload[0], payload[1]), nil
}

// decodeDTCList implements the "dtc_list" decoder: payload[0] is a
// count/reserved byte (the synthetic count inserted by legacy single-frame
// reassembly, or the real adapter count byte on CAN); DTC pairs follow.
// "00 00" pairs are padding: they are skipped and decoding continues with
// the next pair.
func decodeDTCList(payload []byte) ([]TroubleCode, error) {
	if len(payload) < 1 {
		return nil, ErrInsufficientBytes
	}

	body := payload[1:]

	var codes []TroubleCode

	for i := 0; i+1 < len(body); i += 2 {
		a, b := body[i], body[i+1]
		if a == 0 && b == 0 {
			continue
		}
		codes = append(codes, decodeDTCPair(a, b))
	}

	return codes, nil
}
