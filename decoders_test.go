package elm327

import "testing"

func TestDecodeRPM(t *testing.T) {
	tv, err := decode(DecodeRPM, []byte{0x0F, 0xA0}, Metric)
	assertSuccess(t, err)
	assertEqual(t, tv.Kind, KindMeasurement)
	assertEqual(t, tv.Measurement.Value, float64(1000))
	assertEqual(t, tv.Measurement.Unit, UnitRPM)
}

func TestDecodeSpeedKmhScenario(t *testing.T) {
	// "41 0D 32" -> speed 50 km/h.
	tv, err := decode(DecodeSpeedKmh, []byte{0x32}, Metric)
	assertSuccess(t, err)
	assertEqual(t, tv.Measurement.Value, float64(50))
}

func TestDecodeSpeedKmhImperialConvertsToMph(t *testing.T) {
	tv, err := decode(DecodeSpeedKmh, []byte{0x64}, Imperial)
	assertSuccess(t, err)
	assertEqual(t, tv.Measurement.Unit, UnitMph)
}

func TestDecodePercentCentered(t *testing.T) {
	tv, err := decode(DecodePercentCentered, []byte{0x80}, Metric)
	assertSuccess(t, err)
	assertEqual(t, tv.Measurement.Value, float64(0))
}

func TestDecodeTempC(t *testing.T) {
	tv, err := decode(DecodeTempC, []byte{0x28}, Metric)
	assertSuccess(t, err)
	assertEqual(t, tv.Measurement.Value, float64(0))
}

func TestDecodeUASDispatch(t *testing.T) {
	// UAS code 0x0F: scale 1, offset -40, celsius.
	tv, err := decode(DecodeUAS, []byte{0x0F, 0x00, 0x64}, Metric)
	assertSuccess(t, err)
	assertEqual(t, tv.Measurement.Value, float64(60))
	assertEqual(t, tv.Measurement.Unit, UnitCelsius)
}

func TestDecodeUASUnknownCodeErrors(t *testing.T) {
	_, err := decode(DecodeUAS, []byte{0xFE, 0x00, 0x01}, Metric)
	assert(t, err != nil, "expected an error for an unmapped UAS code")
}

func TestDecodeStatusDispatch(t *testing.T) {
	tv, err := decode(DecodeStatus, []byte{0x82, 0x07, 0xE5, 0x00}, Metric)
	assertSuccess(t, err)
	assertEqual(t, tv.Kind, KindStatus)
	assertEqual(t, tv.Status.MIL, true)
}

func TestDecodeDTCListDispatch(t *testing.T) {
	tv, err := decode(DecodeDTCList, []byte{0x00, 0x01, 0x33}, Metric)
	assertSuccess(t, err)
	assertEqual(t, tv.Kind, KindTroubleCodes)
	assertEqual(t, len(tv.TroubleCodes), 1)
}

func TestDecodeEncodedStringDispatch(t *testing.T) {
	tv, err := decode(DecodeEncodedString, []byte{0x02, 0x01, 'A', 'B', 'C'}, Metric)
	assertSuccess(t, err)
	assertEqual(t, tv.Kind, KindEncodedString)
	assertEqual(t, tv.EncodedString, "ABC")
}

func TestDecodePIDSupportBitmapDispatch(t *testing.T) {
	tv, err := decode(DecodePIDSupportBitmap, []byte{0xBE, 0x1F, 0xA8, 0x13}, Metric)
	assertSuccess(t, err)
	assertEqual(t, tv.Kind, KindRaw)
	assertEqual(t, len(tv.Raw), 4)
	assertEqual(t, tv.Raw[0], byte(0xBE))
}

func TestDecodeNoneReturnsRawPassthrough(t *testing.T) {
	tv, err := decode(DecodeNone, []byte{0x01, 0x02}, Metric)
	assertSuccess(t, err)
	assertEqual(t, tv.Kind, KindRaw)
	assertEqual(t, len(tv.Raw), 2)
}

func TestDecodeInsufficientBytesNeverPanics(t *testing.T) {
	ids := []DecoderID{
		DecodePercent, DecodeTempC, DecodeRPM, DecodeMAF,
		DecodeSensorVoltageWide, DecodeCurrentCentered, DecodeUAS,
		DecodePIDSupportBitmap,
	}

	for _, id := range ids {
		_, err := decode(id, nil, Metric)
		assert(t, err == ErrInsufficientBytes, "expected ErrInsufficientBytes for decoder "+id.String()+" given an empty payload")
	}
}

func TestDecodeUnsupportedDecoderErrors(t *testing.T) {
	_, err := decode(DecoderID(9999), []byte{0x01}, Metric)
	assert(t, err != nil, "expected an error for an unknown decoder id")
}
