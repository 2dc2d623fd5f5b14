package elm327

// DecoderID names one of the closed set of pure byte-to-value decoders a
// CommandSpec may reference.
type DecoderID int

const (
	DecodeNone DecoderID = iota
	DecodePercent
	DecodePercentCentered
	DecodeTempC
	DecodePressureKpa
	DecodeFuelPressure
	DecodeEvapPressure
	DecodeEvapPressureAlt
	DecodeRPM
	DecodeSpeedKmh
	DecodeTimingAdvance
	DecodeMAF
	DecodeSensorVoltage
	DecodeSensorVoltageWide
	DecodeCurrentCentered
	DecodeUAS
	DecodeO2SensorsPresent
	DecodeOBDCompliance
	DecodeFuelStatus
	DecodeFuelType
	DecodeAirStatus
	DecodeStatus
	DecodeSingleDTC
	DecodeDTCList
	DecodeMonitorTest
	DecodeEncodedString
	DecodeCVN
	DecodeCount
	DecodePIDSupportBitmap
)

func (d DecoderID) String() string {
	switch d {
	case DecodeNone:
		return "none"
	case DecodePercent:
		return "percent"
	case DecodePercentCentered:
		return "percent_centered"
	case DecodeTempC:
		return "temp_c"
	case DecodePressureKpa:
		return "pressure_kpa"
	case DecodeFuelPressure:
		return "fuel_pressure"
	case DecodeEvapPressure:
		return "evap_pressure"
	case DecodeEvapPressureAlt:
		return "evap_pressure_alt"
	case DecodeRPM:
		return "rpm"
	case DecodeSpeedKmh:
		return "speed_kmh"
	case DecodeTimingAdvance:
		return "timing_advance_deg"
	case DecodeMAF:
		return "maf_gs"
	case DecodeSensorVoltage:
		return "sensor_voltage"
	case DecodeSensorVoltageWide:
		return "sensor_voltage_wide"
	case DecodeCurrentCentered:
		return "current_centered"
	case DecodeUAS:
		return "uas"
	case DecodeO2SensorsPresent:
		return "o2_sensors_present"
	case DecodeOBDCompliance:
		return "obd_compliance"
	case DecodeFuelStatus:
		return "fuel_status"
	case DecodeFuelType:
		return "fuel_type"
	case DecodeAirStatus:
		return "air_status"
	case DecodeStatus:
		return "status"
	case DecodeSingleDTC:
		return "single_dtc"
	case DecodeDTCList:
		return "dtc_list"
	case DecodeMonitorTest:
		return "monitor_test"
	case DecodeEncodedString:
		return "encoded_string"
	case DecodeCVN:
		return "cvn"
	case DecodeCount:
		return "count"
	case DecodePIDSupportBitmap:
		return "pid_support_bitmap"
	default:
		return "unknown"
	}
}
