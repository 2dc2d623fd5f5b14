package elm327

import "testing"

// Headers-off CAN reply is the message body
// directly; 0x41's high nibble isn't a valid PCI type, so this line cannot
// be PCI-framed.
func TestParseCANMessagesHeadersOff(t *testing.T) {
	messages, err := ParseCANMessages([]string{"41 0D 32"}, CANOptions{HeadersOn: false})
	assertSuccess(t, err)
	assertEqual(t, len(messages), 1)
	assertEqual(t, len(messages[0].Data), 3)
	assertEqual(t, messages[0].Payload()[1], byte(0x32))
}

func TestParseCANMessagesSingleFrameHeadersOn(t *testing.T) {
	// PCI 0x03 -> single frame, 3 data bytes.
	messages, err := ParseCANMessages([]string{"7E8 03 41 0D 32"}, CANOptions{HeadersOn: true})
	assertSuccess(t, err)
	assertEqual(t, len(messages), 1)
	assertEqual(t, len(messages[0].Data), 3)
	assertEqual(t, messages[0].Data[0], byte(0x41))
}

// A 3-frame CAN VIN reassembly via First Frame +
// 2 Consecutive Frames.
func TestParseCANMessagesMultiFrame(t *testing.T) {
	lines := []string{
		"7E8 10 14 49 02 01 31 47 31 4A",
		"7E8 21 43 35 34 34 34 52 37",
		"7E8 22 32 35 32 33 36 37 00",
	}

	messages, err := ParseCANMessages(lines, CANOptions{HeadersOn: true})
	assertSuccess(t, err)
	assertEqual(t, len(messages), 1)

	vin, ok := decodeVIN(messages[0].Payload())
	assert(t, ok, "expected a decodable VIN")
	assertEqual(t, vin, "1G1JC5444R7252367")
}

func TestParseCANMessagesSkipsFlowControlFrames(t *testing.T) {
	lines := []string{
		"7E8 03 41 0D 32",
		"7E8 30 00 00",
	}

	messages, err := ParseCANMessages(lines, CANOptions{HeadersOn: true})
	assertSuccess(t, err)
	assertEqual(t, len(messages), 1)
}

func TestParseCANMessages29BitHeader(t *testing.T) {
	// 8-hex-char (even) arbitration id disambiguates as 29-bit by parity.
	messages, err := ParseCANMessages([]string{"18DAF110 03 41 0D 32"}, CANOptions{HeadersOn: true})
	assertSuccess(t, err)
	assertEqual(t, len(messages), 1)
	assertEqual(t, messages[0].ECU.TxID, uint32(0x18DAF110))
}

func TestParseCANMessagesBadSequenceErrors(t *testing.T) {
	lines := []string{
		"7E8 10 14 49 02 01 31 47 31 4A",
		"7E8 22 32 35 32 33 36 37 00",
	}

	_, err := ParseCANMessages(lines, CANOptions{HeadersOn: true})
	assert(t, err != nil, "expected a bad-sequence error for a missing consecutive frame")
}
