package elm327

import "testing"

// Reply "43 01 33 00 00 00 00" decodes to [P0133].
func TestDecodeDTCListScenario(t *testing.T) {
	payload := []byte{0x00, 0x01, 0x33, 0x00, 0x00, 0x00, 0x00}

	codes, err := decodeDTCList(payload)
	assertSuccess(t, err)
	assertEqual(t, len(codes), 1)
	assertEqual(t, codes[0].Code, "P0133")
}

func TestDecodeDTCListSkipsTerminatorPairs(t *testing.T) {
	payload := []byte{0x00, 0x01, 0x33, 0x00, 0x00, 0x44, 0x21}

	codes, err := decodeDTCList(payload)
	assertSuccess(t, err)
	assertEqual(t, len(codes), 2)
	assertEqual(t, codes[0].Code, "P0133")
	assertEqual(t, codes[1].Code, "C0421")
}

func TestDecodeDTCPairAllLetters(t *testing.T) {
	scenarios := []struct {
		a, b byte
		want string
	}{
		{0x01, 0x33, "P0133"},
		{0x44, 0x21, "C0421"},
		{0x81, 0x00, "B0100"},
		{0xC2, 0x34, "U0234"},
	}

	for _, scen := range scenarios {
		got := decodeDTCPair(scen.a, scen.b)
		assertEqual(t, got.Code, scen.want)
	}
}

func TestEncodeDTCRoundTrip(t *testing.T) {
	codes := []string{"P0133", "C0421", "B0100", "U0234"}

	for _, code := range codes {
		bytes, err := encodeDTC(code)
		assertSuccess(t, err)

		got := decodeDTCPair(bytes[0], bytes[1])
		assertEqual(t, got.Code, code)
	}
}

func TestEncodeDTCRejectsMalformedCode(t *testing.T) {
	_, err := encodeDTC("X0133")
	assert(t, err != nil, "expected an error for an unknown letter prefix")

	_, err = encodeDTC("P9133")
	assert(t, err != nil, "expected an error for an out-of-range first digit")

	_, err = encodeDTC("P013")
	assert(t, err != nil, "expected an error for a short code")
}

func TestDecodeSingleDTC(t *testing.T) {
	dtc, err := decodeSingleDTC([]byte{0x01, 0x33})
	assertSuccess(t, err)
	assertEqual(t, dtc.Code, "P0133")
}
