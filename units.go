package elm327

import "fmt"

// Unit identifies the physical unit carried by a MeasurementResult.
type Unit int

// The closed set of units a decoder can attach to a MeasurementResult.
const (
	UnitNone Unit = iota
	UnitPercent
	UnitCelsius
	UnitKelvin
	UnitKPa
	UnitPa
	UnitRPM
	UnitKmh
	UnitMph
	UnitGramsPerSec
	UnitVolt
	UnitMilliAmp
	UnitDegree
	UnitSecond
	UnitMinute
	UnitKilometer
	UnitLiterPerHour
	UnitRatio
)

var unitSymbols = map[Unit]string{
	UnitNone:         "",
	UnitPercent:      "%",
	UnitCelsius:      "°C",
	UnitKelvin:       "K",
	UnitKPa:          "kPa",
	UnitPa:           "Pa",
	UnitRPM:          "rpm",
	UnitKmh:          "km/h",
	UnitMph:          "mph",
	UnitGramsPerSec:  "g/s",
	UnitVolt:         "V",
	UnitMilliAmp:     "mA",
	UnitDegree:       "°",
	UnitSecond:       "s",
	UnitMinute:       "min",
	UnitKilometer:    "km",
	UnitLiterPerHour: "L/h",
	UnitRatio:        "",
}

var unitNames = map[Unit]string{
	UnitNone:         "none",
	UnitPercent:      "percent",
	UnitCelsius:      "celsius",
	UnitKelvin:       "kelvin",
	UnitKPa:          "kilopascal",
	UnitPa:           "pascal",
	UnitRPM:          "rpm",
	UnitKmh:          "kilometer_per_hour",
	UnitMph:          "mile_per_hour",
	UnitGramsPerSec:  "gram_per_second",
	UnitVolt:         "volt",
	UnitMilliAmp:     "milliamp",
	UnitDegree:       "degree",
	UnitSecond:       "second",
	UnitMinute:       "minute",
	UnitKilometer:    "kilometer",
	UnitLiterPerHour: "liter_per_hour",
	UnitRatio:        "ratio",
}

// String returns the unit's canonical lowercase name.
func (u Unit) String() string {
	if name, ok := unitNames[u]; ok {
		return name
	}
	return fmt.Sprintf("unit(%d)", int(u))
}

// Symbol returns the short display symbol for the unit, e.g. "°C" or "%".
func (u Unit) Symbol() string {
	return unitSymbols[u]
}

// UnitSystem selects which system a MeasurementResult is reported in at the
// decode boundary; decoders themselves stay pure and metric, and the
// caller's requested system is applied via a conversion table at the
// boundary.
type UnitSystem int

const (
	Metric UnitSystem = iota
	Imperial
)

// MeasurementResult is a decoded scalar value together with its physical
// unit.
type MeasurementResult struct {
	Value float64
	Unit  Unit
}

// convertUnitSystem applies the metric->imperial conversion for speed.
// Every other unit is left untouched.
func convertUnitSystem(m MeasurementResult, sys UnitSystem) MeasurementResult {
	if sys != Imperial {
		return m
	}

	switch m.Unit {
	case UnitKmh:
		return MeasurementResult{Value: m.Value * 0.621371, Unit: UnitMph}
	default:
		return m
	}
}
