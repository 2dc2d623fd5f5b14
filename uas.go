package elm327

// uasEntry is one row of the SAE J1979 "Unit and Scaling" table: decoded
// value = scale*raw + offset, tagged with unit.
type uasEntry struct {
	Scale  float64
	Offset float64
	Unit   Unit
}

// uasTable is a representative slice of the full SAE J1979 UAS table,
// covering the scaling shapes (linear, pure-scale, pure-offset) that show
// up across the PID catalogue's uas-tagged entries.
var uasTable = map[byte]uasEntry{
	0x01: {Scale: 1, Offset: 0, Unit: UnitNone},
	0x05: {Scale: 1.0 / 65535, Offset: 0, Unit: UnitRatio},
	0x09: {Scale: 0.001, Offset: 0, Unit: UnitVolt},
	0x0B: {Scale: 0.01, Offset: 0, Unit: UnitVolt},
	0x0F: {Scale: 1, Offset: -40, Unit: UnitCelsius},
	0x12: {Scale: 1, Offset: 0, Unit: UnitSecond},
	0x1B: {Scale: 1.0 / 128, Offset: 0, Unit: UnitGramsPerSec},
	0x20: {Scale: 0.01, Offset: 0, Unit: UnitKPa},
	0x23: {Scale: 1, Offset: 0, Unit: UnitMinute},
	0x25: {Scale: 0.001, Offset: 0, Unit: UnitRatio},
	0x27: {Scale: 0.01, Offset: -327.68, Unit: UnitDegree},
}

// lookupUAS returns the table entry for code, or false if the catalogue
// never references that code (a closed, explicit failure rather than a
// zero-value entry masquerading as "no scaling").
func lookupUAS(code byte) (uasEntry, bool) {
	e, ok := uasTable[code]
	return e, ok
}
