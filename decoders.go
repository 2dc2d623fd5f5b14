package elm327

import "fmt"

// TypedValueKind tags which field of a TypedValue is populated.
type TypedValueKind int

const (
	KindMeasurement TypedValueKind = iota
	KindStatus
	KindTroubleCodes
	KindMonitorTests
	KindEncodedString
	KindRaw
)

// TypedValue is the closed union of shapes a decoder can produce. Exactly
// one field is meaningful, selected by Kind; this mirrors a tagged union
// without resorting to an interface-plus-type-assertion dance at every
// call site.
type TypedValue struct {
	Kind          TypedValueKind
	Measurement   MeasurementResult
	Status        Status
	TroubleCodes  []TroubleCode
	MonitorTests  []MonitorTest
	EncodedString string
	Raw           []byte
}

func measurementValue(v float64, unit Unit, sys UnitSystem) TypedValue {
	return TypedValue{
		Kind:        KindMeasurement,
		Measurement: convertUnitSystem(MeasurementResult{Value: v, Unit: unit}, sys),
	}
}

// decode dispatches on id, running the named pure decoder against payload.
// Every branch is bounds-checked; a payload too short for its decoder
// yields ErrInsufficientBytes rather than a panic or out-of-range read
// (invariant P1).
func decode(id DecoderID, payload []byte, sys UnitSystem) (TypedValue, error) {
	switch id {
	case DecodeNone:
		return TypedValue{Kind: KindRaw, Raw: payload}, nil

	case DecodePercent:
		if len(payload) < 1 {
			return TypedValue{}, ErrInsufficientBytes
		}
		return measurementValue(float64(payload[0])*100/255, UnitPercent, sys), nil

	case DecodePercentCentered:
		if len(payload) < 1 {
			return TypedValue{}, ErrInsufficientBytes
		}
		return measurementValue((float64(payload[0])-128)*100/128, UnitPercent, sys), nil

	case DecodeTempC:
		if len(payload) < 1 {
			return TypedValue{}, ErrInsufficientBytes
		}
		return measurementValue(float64(payload[0])-40, UnitCelsius, sys), nil

	case DecodePressureKpa:
		if len(payload) < 1 {
			return TypedValue{}, ErrInsufficientBytes
		}
		return measurementValue(float64(payload[0]), UnitKPa, sys), nil

	case DecodeFuelPressure:
		if len(payload) < 1 {
			return TypedValue{}, ErrInsufficientBytes
		}
		return measurementValue(float64(payload[0])*3, UnitKPa, sys), nil

	case DecodeEvapPressure:
		if len(payload) < 2 {
			return TypedValue{}, ErrInsufficientBytes
		}
		raw := int16(uint16(payload[0])<<8 | uint16(payload[1]))
		return measurementValue(float64(raw)/4, UnitPa, sys), nil

	case DecodeEvapPressureAlt:
		if len(payload) < 2 {
			return TypedValue{}, ErrInsufficientBytes
		}
		raw := uint16(payload[0])<<8 | uint16(payload[1])
		return measurementValue(float64(raw)/1000, UnitKPa, sys), nil

	case DecodeRPM:
		if len(payload) < 2 {
			return TypedValue{}, ErrInsufficientBytes
		}
		raw := uint16(payload[0])<<8 | uint16(payload[1])
		return measurementValue(float64(raw)/4, UnitRPM, sys), nil

	case DecodeSpeedKmh:
		if len(payload) < 1 {
			return TypedValue{}, ErrInsufficientBytes
		}
		return measurementValue(float64(payload[0]), UnitKmh, sys), nil

	case DecodeTimingAdvance:
		if len(payload) < 1 {
			return TypedValue{}, ErrInsufficientBytes
		}
		return measurementValue(float64(payload[0])/2-64, UnitDegree, sys), nil

	case DecodeMAF:
		if len(payload) < 2 {
			return TypedValue{}, ErrInsufficientBytes
		}
		raw := uint16(payload[0])<<8 | uint16(payload[1])
		return measurementValue(float64(raw)/100, UnitGramsPerSec, sys), nil

	case DecodeSensorVoltage:
		if len(payload) < 2 {
			return TypedValue{}, ErrInsufficientBytes
		}
		return measurementValue(float64(payload[0])/200, UnitVolt, sys), nil

	case DecodeSensorVoltageWide:
		if len(payload) < 4 {
			return TypedValue{}, ErrInsufficientBytes
		}
		b := uint16(payload[2])<<8 | uint16(payload[3])
		return measurementValue(float64(b)*8/65535, UnitVolt, sys), nil

	case DecodeCurrentCentered:
		if len(payload) < 4 {
			return TypedValue{}, ErrInsufficientBytes
		}
		raw := uint16(payload[2])<<8 | uint16(payload[3])
		return measurementValue(float64(raw)/256-128, UnitMilliAmp, sys), nil

	case DecodeUAS:
		if len(payload) < 3 {
			return TypedValue{}, ErrInsufficientBytes
		}
		entry, ok := lookupUAS(payload[0])
		if !ok {
			return TypedValue{}, fmt.Errorf("%w: unknown UAS code 0x%02X", ErrUnsupportedDecoder, payload[0])
		}
		raw := uint16(payload[1])<<8 | uint16(payload[2])
		return measurementValue(entry.Scale*float64(raw)+entry.Offset, entry.Unit, sys), nil

	case DecodeO2SensorsPresent:
		if len(payload) < 1 {
			return TypedValue{}, ErrInsufficientBytes
		}
		return TypedValue{Kind: KindRaw, Raw: payload[:1]}, nil

	case DecodeOBDCompliance, DecodeFuelStatus, DecodeFuelType, DecodeAirStatus, DecodeCVN, DecodeCount:
		if len(payload) < 1 {
			return TypedValue{}, ErrInsufficientBytes
		}
		return TypedValue{Kind: KindRaw, Raw: payload}, nil

	case DecodeStatus:
		st, err := decodeStatus(payload)
		if err != nil {
			return TypedValue{}, err
		}
		return TypedValue{Kind: KindStatus, Status: st}, nil

	case DecodeSingleDTC:
		dtc, err := decodeSingleDTC(payload)
		if err != nil {
			return TypedValue{}, err
		}
		return TypedValue{Kind: KindTroubleCodes, TroubleCodes: []TroubleCode{dtc}}, nil

	case DecodeDTCList:
		codes, err := decodeDTCList(payload)
		if err != nil {
			return TypedValue{}, err
		}
		return TypedValue{Kind: KindTroubleCodes, TroubleCodes: codes}, nil

	case DecodeMonitorTest:
		tests, err := decodeMonitorTest(payload)
		if err != nil {
			return TypedValue{}, err
		}
		return TypedValue{Kind: KindMonitorTests, MonitorTests: tests}, nil

	case DecodeEncodedString:
		return TypedValue{Kind: KindEncodedString, EncodedString: decodeEncodedString(payload)}, nil

	case DecodePIDSupportBitmap:
		if len(payload) < 4 {
			return TypedValue{}, ErrInsufficientBytes
		}
		return TypedValue{Kind: KindRaw, Raw: payload[:4]}, nil

	default:
		return TypedValue{}, fmt.Errorf("%w: decoder id %v", ErrUnsupportedDecoder, id)
	}
}
