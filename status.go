package elm327

// IgnitionType distinguishes the fuel-type-dependent half of the readiness
// monitor table.
type IgnitionType int

const (
	IgnitionSpark IgnitionType = iota
	IgnitionCompression
)

func (t IgnitionType) String() string {
	if t == IgnitionCompression {
		return "compression"
	}
	return "spark"
}

// MonitorName identifies one readiness self-test reported by Mode 01 PID 01.
type MonitorName string

const (
	MonitorMisfire         MonitorName = "misfire"
	MonitorFuelSystem      MonitorName = "fuel_system"
	MonitorComponents      MonitorName = "components"
	MonitorCatalyst        MonitorName = "catalyst"
	MonitorHeatedCatalyst  MonitorName = "heated_catalyst"
	MonitorEvapSystem      MonitorName = "evaporative_system"
	MonitorSecondaryAir    MonitorName = "secondary_air_system"
	MonitorO2Sensor        MonitorName = "oxygen_sensor"
	MonitorO2SensorHeater  MonitorName = "oxygen_sensor_heater"
	MonitorEGRSystem       MonitorName = "egr_system"
	MonitorPMFilter        MonitorName = "pm_filter"
	MonitorEGRVVT          MonitorName = "egr_vvt_system"
	MonitorNMHCCatalyst    MonitorName = "nmhc_catalyst"
	MonitorNOxSCRMonitor   MonitorName = "nox_scr_monitor"
	MonitorBoostPressure   MonitorName = "boost_pressure"
	MonitorExhaustGasSensr MonitorName = "exhaust_gas_sensor"
)

// MonitorState is one readiness monitor's availability and completion.
type MonitorState struct {
	Available bool
	Complete  bool
}

// Status is the decoded Mode 01 PID 01 readiness frame.
type Status struct {
	MIL          bool
	DTCCount     uint8
	IgnitionType IgnitionType
	Tests        map[MonitorName]MonitorState
}

var sparkMonitorBits = []MonitorName{
	MonitorCatalyst,
	MonitorHeatedCatalyst,
	MonitorEvapSystem,
	MonitorSecondaryAir,
	"", // reserved
	MonitorO2Sensor,
	MonitorO2SensorHeater,
	MonitorEGRSystem,
}

var compressionMonitorBits = []MonitorName{
	MonitorNMHCCatalyst,
	MonitorNOxSCRMonitor,
	"", // reserved
	MonitorBoostPressure,
	"", // reserved
	MonitorExhaustGasSensr,
	MonitorPMFilter,
	MonitorEGRVVT,
}

// decodeStatus decodes Mode 01 PID 01's readiness frame: byte A's bit
// 7 is MIL, low 7 bits are DTC count; byte B's bit 3 selects ignition type
// and bits 0-2/4-6 are the availability/completeness of the three common
// monitors (misfire, fuel system, components); bytes C and D are,
// bit-for-bit, the availability and completeness of the eight
// ignition-type-specific monitors. Completeness is direct: bit=1 means the
// test has completed (see DESIGN.md for why this departs from the inverted
// convention some OBD-II tooling uses).
func decodeStatus(payload []byte) (Status, error) {
	if len(payload) < 4 {
		return Status{}, ErrInsufficientBytes
	}

	a, b, c, d := payload[0], payload[1], payload[2], payload[3]

	st := Status{
		MIL:      a&0x80 != 0,
		DTCCount: a & 0x7F,
		Tests:    make(map[MonitorName]MonitorState),
	}

	if b&0x08 != 0 {
		st.IgnitionType = IgnitionCompression
	} else {
		st.IgnitionType = IgnitionSpark
	}

	commonBits := []MonitorName{MonitorMisfire, MonitorFuelSystem, MonitorComponents}
	for i, name := range commonBits {
		st.Tests[name] = MonitorState{
			Available: b&(1<<uint(i)) != 0,
			Complete:  b&(1<<uint(i+4)) != 0,
		}
	}

	specific := sparkMonitorBits
	if st.IgnitionType == IgnitionCompression {
		specific = compressionMonitorBits
	}

	for i, name := range specific {
		if name == "" {
			continue
		}
		st.Tests[name] = MonitorState{
			Available: c&(1<<uint(i)) != 0,
			Complete:  d&(1<<uint(i)) != 0,
		}
	}

	return st, nil
}

// MonitorTest is one Mode 06 on-board monitoring test result.
type MonitorTest struct {
	TestID    byte
	ComponentID byte
	Value     int
	MinLimit  int
	MaxLimit  int
}

// decodeMonitorTest implements the Mode 06 "monitor_test" decoder: each test
// result is a fixed 9-byte record `{_, tid, cid, value_hi, value_lo, min_hi,
// min_lo, max_hi, max_lo}` whose first byte is not decoded. A partial
// trailing record is dropped rather than erroring, since it is common
// adapter noise; a payload with no complete record yields
// ErrInsufficientBytes.
func decodeMonitorTest(payload []byte) ([]MonitorTest, error) {
	const recordLen = 9

	var out []MonitorTest

	for i := 0; i+recordLen <= len(payload); i += recordLen {
		r := payload[i : i+recordLen]
		out = append(out, MonitorTest{
			TestID:      r[1],
			ComponentID: r[2],
			Value:       int(r[3])<<8 | int(r[4]),
			MinLimit:    int(r[5])<<8 | int(r[6]),
			MaxLimit:    int(r[7])<<8 | int(r[8]),
		})
	}

	if len(out) == 0 {
		return nil, ErrInsufficientBytes
	}

	return out, nil
}
