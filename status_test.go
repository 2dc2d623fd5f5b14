package elm327

import "testing"

// Readiness reply "41 01 82 07 E5 00".
func TestDecodeStatusReadiness(t *testing.T) {
	st, err := decodeStatus([]byte{0x82, 0x07, 0xE5, 0x00})
	assertSuccess(t, err)

	assertEqual(t, st.MIL, true)
	assertEqual(t, st.DTCCount, uint8(2))
	assertEqual(t, st.IgnitionType, IgnitionSpark)

	misfire := st.Tests[MonitorMisfire]
	assertEqual(t, misfire.Available, true)
	assertEqual(t, misfire.Complete, false)

	catalyst := st.Tests[MonitorCatalyst]
	assertEqual(t, catalyst.Available, true)
	assertEqual(t, catalyst.Complete, false)
}

func TestDecodeStatusCompressionIgnition(t *testing.T) {
	// b bit 3 set selects the compression-specific monitor table.
	st, err := decodeStatus([]byte{0x00, 0x08, 0x01, 0x01})
	assertSuccess(t, err)

	assertEqual(t, st.IgnitionType, IgnitionCompression)

	nmhc := st.Tests[MonitorNMHCCatalyst]
	assertEqual(t, nmhc.Available, true)
	assertEqual(t, nmhc.Complete, true)

	// Sparse monitor table must not carry the spark-only names.
	_, present := st.Tests[MonitorCatalyst]
	assertEqual(t, present, false)
}

func TestDecodeStatusInsufficientBytes(t *testing.T) {
	_, err := decodeStatus([]byte{0x82, 0x07})
	assert(t, err == ErrInsufficientBytes, "expected ErrInsufficientBytes for a short status payload")
}

func TestDecodeMonitorTestFixedRecords(t *testing.T) {
	payload := []byte{
		0x01, 0x01, 0x05, 0x00, 0x64, 0x00, 0x00, 0x00, 0xFF,
	}

	tests, err := decodeMonitorTest(payload)
	assertSuccess(t, err)
	assertEqual(t, len(tests), 1)
	assertEqual(t, tests[0].TestID, byte(0x01))
	assertEqual(t, tests[0].ComponentID, byte(0x05))
	assertEqual(t, tests[0].Value, 0x0064)
	assertEqual(t, tests[0].MaxLimit, 0x00FF)
}

func TestDecodeMonitorTestTooShort(t *testing.T) {
	_, err := decodeMonitorTest([]byte{0x01, 0x01, 0x05})
	assert(t, err != nil, "expected an error for a payload shorter than one record")
}
