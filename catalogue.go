package elm327

import "strings"

// CommandId identifies a command by its ASCII wire string, e.g. "010C" for
// Mode 01 PID 0x0C (engine RPM), rather than a separate numeric id space.
type CommandId string

// CommandSpec is one row of the PID catalogue: wire string, documentation,
// wire shape and the decoder that turns its payload into a TypedValue.
type CommandSpec struct {
	ID               CommandId
	Wire             string
	Description      string
	ShortDescription string
	ByteWidth        int
	Decoder          DecoderID
	Live             bool
	Min              float64
	Max              float64
}

// commandTable is the static PID catalogue. It is an order of magnitude
// smaller than a full SAE J1979 table. It carries at least one entry for
// every DecoderID except DecodeFuelStatus and DecodeSingleDTC, which no row
// uses.
var commandTable = []CommandSpec{
	// Mode 01 - live data, plus its chained PID-support-bitmap getters.
	{ID: "0100", Wire: "0100", Description: "PIDs supported [01-20]", ShortDescription: "pids_supported_01_20", ByteWidth: 4, Decoder: DecodePIDSupportBitmap},
	{ID: "0101", Wire: "0101", Description: "Monitor status since DTCs cleared", ShortDescription: "status", ByteWidth: 4, Decoder: DecodeStatus, Live: true},
	{ID: "0104", Wire: "0104", Description: "Calculated engine load", ShortDescription: "engine_load", ByteWidth: 1, Decoder: DecodePercent, Live: true, Min: 0, Max: 100},
	{ID: "0105", Wire: "0105", Description: "Engine coolant temperature", ShortDescription: "coolant_temp", ByteWidth: 1, Decoder: DecodeTempC, Live: true, Min: -40, Max: 215},
	{ID: "0106", Wire: "0106", Description: "Short term fuel trim, bank 1", ShortDescription: "short_fuel_trim_1", ByteWidth: 1, Decoder: DecodePercentCentered, Live: true, Min: -100, Max: 100},
	{ID: "0107", Wire: "0107", Description: "Long term fuel trim, bank 1", ShortDescription: "long_fuel_trim_1", ByteWidth: 1, Decoder: DecodePercentCentered, Live: true, Min: -100, Max: 100},
	{ID: "0108", Wire: "0108", Description: "Short term fuel trim, bank 2", ShortDescription: "short_fuel_trim_2", ByteWidth: 1, Decoder: DecodePercentCentered, Live: true, Min: -100, Max: 100},
	{ID: "0109", Wire: "0109", Description: "Long term fuel trim, bank 2", ShortDescription: "long_fuel_trim_2", ByteWidth: 1, Decoder: DecodePercentCentered, Live: true, Min: -100, Max: 100},
	{ID: "010A", Wire: "010A", Description: "Fuel pressure", ShortDescription: "fuel_pressure", ByteWidth: 1, Decoder: DecodeFuelPressure, Live: true, Min: 0, Max: 765},
	{ID: "010B", Wire: "010B", Description: "Intake manifold absolute pressure", ShortDescription: "intake_manifold_pressure", ByteWidth: 1, Decoder: DecodePressureKpa, Live: true, Min: 0, Max: 255},
	{ID: "010C", Wire: "010C", Description: "Engine RPM", ShortDescription: "rpm", ByteWidth: 2, Decoder: DecodeRPM, Live: true, Min: 0, Max: 16383.75},
	{ID: "010D", Wire: "010D", Description: "Vehicle speed", ShortDescription: "speed", ByteWidth: 1, Decoder: DecodeSpeedKmh, Live: true, Min: 0, Max: 255},
	{ID: "010E", Wire: "010E", Description: "Timing advance", ShortDescription: "timing_advance", ByteWidth: 1, Decoder: DecodeTimingAdvance, Live: true, Min: -64, Max: 63.5},
	{ID: "010F", Wire: "010F", Description: "Intake air temperature", ShortDescription: "intake_air_temp", ByteWidth: 1, Decoder: DecodeTempC, Live: true, Min: -40, Max: 215},
	{ID: "0110", Wire: "0110", Description: "MAF air flow rate", ShortDescription: "maf", ByteWidth: 2, Decoder: DecodeMAF, Live: true, Min: 0, Max: 655.35},
	{ID: "0111", Wire: "0111", Description: "Throttle position", ShortDescription: "throttle_position", ByteWidth: 1, Decoder: DecodePercent, Live: true, Min: 0, Max: 100},
	{ID: "0113", Wire: "0113", Description: "Oxygen sensors present (2 banks)", ShortDescription: "o2_sensors_present", ByteWidth: 1, Decoder: DecodeO2SensorsPresent, Live: true},
	{ID: "0114", Wire: "0114", Description: "Oxygen sensor 1, voltage and trim", ShortDescription: "o2_sensor_1", ByteWidth: 2, Decoder: DecodeSensorVoltage, Live: true, Min: 0, Max: 1.275},
	{ID: "011C", Wire: "011C", Description: "OBD standards this vehicle conforms to", ShortDescription: "obd_standards", ByteWidth: 1, Decoder: DecodeOBDCompliance, Live: true},
	{ID: "011F", Wire: "011F", Description: "Runtime since engine start", ShortDescription: "runtime_since_start", ByteWidth: 2, Decoder: DecodeUAS, Live: true, Min: 0, Max: 65535},
	{ID: "0121", Wire: "0121", Description: "Distance traveled with MIL on", ShortDescription: "dist_since_mil", ByteWidth: 2, Decoder: DecodeUAS, Live: true, Min: 0, Max: 65535},
	{ID: "012F", Wire: "012F", Description: "Fuel tank level input", ShortDescription: "fuel_level", ByteWidth: 1, Decoder: DecodePercent, Live: true, Min: 0, Max: 100},
	{ID: "0131", Wire: "0131", Description: "Distance traveled since codes cleared", ShortDescription: "dist_since_dtc_clear", ByteWidth: 2, Decoder: DecodeUAS, Live: true, Min: 0, Max: 65535},
	{ID: "0133", Wire: "0133", Description: "Absolute barometric pressure", ShortDescription: "barometric_pressure", ByteWidth: 1, Decoder: DecodePressureKpa, Live: true, Min: 0, Max: 255},
	{ID: "0142", Wire: "0142", Description: "Control module voltage", ShortDescription: "control_module_voltage", ByteWidth: 2, Decoder: DecodeUAS, Live: true, Min: 0, Max: 65.535},
	{ID: "0143", Wire: "0143", Description: "Absolute load value", ShortDescription: "absolute_load", ByteWidth: 2, Decoder: DecodeUAS, Live: true, Min: 0, Max: 25700},
	{ID: "0145", Wire: "0145", Description: "Relative throttle position", ShortDescription: "relative_throttle_position", ByteWidth: 1, Decoder: DecodePercent, Live: true, Min: 0, Max: 100},
	{ID: "0146", Wire: "0146", Description: "Ambient air temperature", ShortDescription: "ambient_air_temp", ByteWidth: 1, Decoder: DecodeTempC, Live: true, Min: -40, Max: 215},
	{ID: "0151", Wire: "0151", Description: "Fuel type", ShortDescription: "fuel_type", ByteWidth: 1, Decoder: DecodeFuelType, Live: true},
	{ID: "015C", Wire: "015C", Description: "Engine oil temperature", ShortDescription: "engine_oil_temp", ByteWidth: 1, Decoder: DecodeTempC, Live: true, Min: -40, Max: 215},
	{ID: "0167", Wire: "0167", Description: "Engine coolant temperature, bank selectable", ShortDescription: "coolant_temp_bank", ByteWidth: 3, Decoder: DecodeTempC, Live: true, Min: -40, Max: 215},
	{ID: "0120", Wire: "0120", Description: "PIDs supported [21-40]", ShortDescription: "pids_supported_21_40", ByteWidth: 4, Decoder: DecodePIDSupportBitmap},
	{ID: "0140", Wire: "0140", Description: "PIDs supported [41-60]", ShortDescription: "pids_supported_41_60", ByteWidth: 4, Decoder: DecodePIDSupportBitmap},
	{ID: "0160", Wire: "0160", Description: "PIDs supported [61-80]", ShortDescription: "pids_supported_61_80", ByteWidth: 4, Decoder: DecodePIDSupportBitmap},

	// Mode 02 is "freeze frame", same PID space as Mode 01; no operation
	// exposes it, so it is omitted from the catalogue.

	// Mode 03 - stored trouble codes.
	{ID: "03", Wire: "03", Description: "Show stored diagnostic trouble codes", ShortDescription: "dtcs", Decoder: DecodeDTCList},

	// Mode 04 - clear codes, no payload to decode.
	{ID: "04", Wire: "04", Description: "Clear diagnostic trouble codes and stored values", ShortDescription: "clear_dtcs", Decoder: DecodeNone},

	// Mode 06 - on-board monitoring test results.
	{ID: "0600", Wire: "0600", Description: "On-board monitoring test IDs supported [01-20]", ShortDescription: "monitor_ids_supported", ByteWidth: 4, Decoder: DecodePIDSupportBitmap},
	{ID: "0601", Wire: "0601", Description: "Oxygen sensor monitor bank 1 sensor 1", ShortDescription: "monitor_o2_b1s1", Decoder: DecodeMonitorTest},
	{ID: "0602", Wire: "0602", Description: "Oxygen sensor monitor bank 1 sensor 2", ShortDescription: "monitor_o2_b1s2", Decoder: DecodeMonitorTest},

	// Mode 09 - vehicle information.
	{ID: "0900", Wire: "0900", Description: "Mode 09 PIDs supported [01-20]", ShortDescription: "mode9_pids_supported", ByteWidth: 4, Decoder: DecodePIDSupportBitmap},
	{ID: "0902", Wire: "0902", Description: "Vehicle Identification Number", ShortDescription: "vin", Decoder: DecodeEncodedString},
	{ID: "0904", Wire: "0904", Description: "Calibration ID", ShortDescription: "calibration_id", Decoder: DecodeEncodedString},
	{ID: "0906", Wire: "0906", Description: "Calibration Verification Numbers", ShortDescription: "cvn", Decoder: DecodeCVN},
	{ID: "0908", Wire: "0908", Description: "In-use performance tracking count", ShortDescription: "performance_count", ByteWidth: 2, Decoder: DecodeCount},

	// Readiness-monitor air-status companion, decoded from a payload byte
	// shared with the PID 0x12 secondary air status request.
	{ID: "0112", Wire: "0112", Description: "Commanded secondary air status", ShortDescription: "air_status", ByteWidth: 1, Decoder: DecodeAirStatus, Live: true},

	// Wide-range and centered-current variants exercised by O2 sensor PIDs
	// on vehicles that report air-fuel ratio rather than voltage.
	{ID: "0124", Wire: "0124", Description: "Oxygen sensor 1, air-fuel ratio and voltage", ShortDescription: "o2_sensor_1_wide", ByteWidth: 4, Decoder: DecodeSensorVoltageWide, Live: true},
	{ID: "013C", Wire: "013C", Description: "Catalyst temperature, bank 1 sensor 1", ShortDescription: "catalyst_temp_b1s1", ByteWidth: 2, Decoder: DecodeUAS, Live: true, Min: -40, Max: 6513.5},
	{ID: "0134", Wire: "0134", Description: "Oxygen sensor 1, air-fuel equivalence ratio and current", ShortDescription: "o2_sensor_1_current", ByteWidth: 4, Decoder: DecodeCurrentCentered, Live: true, Min: -128, Max: 128},

	// EVAP system pressures use two different scalings across model years.
	{ID: "0132", Wire: "0132", Description: "Evap system vapor pressure", ShortDescription: "evap_pressure", ByteWidth: 2, Decoder: DecodeEvapPressure, Live: true},
	{ID: "0154", Wire: "0154", Description: "Evap system vapor pressure, alternate scaling", ShortDescription: "evap_pressure_alt", ByteWidth: 2, Decoder: DecodeEvapPressureAlt, Live: true},
}

var (
	byWireIndex map[string]CommandSpec
	byIDIndex   map[CommandId]CommandSpec
)

func init() {
	byWireIndex = make(map[string]CommandSpec, len(commandTable))
	byIDIndex = make(map[CommandId]CommandSpec, len(commandTable))

	for _, spec := range commandTable {
		byWireIndex[spec.Wire] = spec
		byIDIndex[spec.ID] = spec
	}
}

// Lookup returns the CommandSpec for id, if the catalogue has one.
func Lookup(id CommandId) (CommandSpec, bool) {
	spec, ok := byIDIndex[id]
	return spec, ok
}

// ByWire returns the CommandSpec whose wire string matches wire exactly.
func ByWire(wire string) (CommandSpec, bool) {
	spec, ok := byWireIndex[wire]
	return spec, ok
}

// Mode01PIDs returns every live Mode 01 CommandSpec, excluding the chained
// PID-support-bitmap getters themselves.
func Mode01PIDs() []CommandSpec {
	var out []CommandSpec
	for _, spec := range commandTable {
		if strings.HasPrefix(spec.Wire, "01") && spec.Decoder != DecodePIDSupportBitmap {
			out = append(out, spec)
		}
	}
	return out
}

// GetterCommands returns every CommandSpec whose decoder is
// pid_support_bitmap, across every mode that has one (01, 06, 09).
func GetterCommands() []CommandSpec {
	var out []CommandSpec
	for _, spec := range commandTable {
		if spec.Decoder == DecodePIDSupportBitmap {
			out = append(out, spec)
		}
	}
	return out
}
