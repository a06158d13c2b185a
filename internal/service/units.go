package service

import (
	"fmt"
	"strings"

	"github.com/GLPer-Ltd/loganhealth-intake/internal/model"
)

type unitKind string

const (
	unitKindLength unitKind = "length"
	unitKindMass   unitKind = "mass"
)

type unitDef struct {
	kind       unitKind
	toBaseUnit float64
}

var unitTable = map[string]unitDef{
	// length (base = cm)
	"cm": {kind: unitKindLength, toBaseUnit: 1},
	"ft": {kind: unitKindLength, toBaseUnit: 30.48},
	"in": {kind: unitKindLength, toBaseUnit: 2.54},

	// mass (base = kg)
	"kg": {kind: unitKindMass, toBaseUnit: 1},
	"st": {kind: unitKindMass, toBaseUnit: 6.35029},
	"lb": {kind: unitKindMass, toBaseUnit: 0.453592},
	"lbs": {
		kind:       unitKindMass,
		toBaseUnit: 0.453592,
	},
}

// ToCm converts feet and inches to centimetres. The result is unknown when
// feet is absent or zero, so a blank imperial height never reads as 0 cm.
func ToCm(feet, inches float64) (float64, bool) {
	return combine(feet, "ft", inches, "in")
}

// ToKg converts stone and pounds to kilograms, unknown when stone is absent.
func ToKg(stone, pounds float64) (float64, bool) {
	return combine(stone, "st", pounds, "lb")
}

func combine(major float64, majorUnit string, minor float64, minorUnit string) (float64, bool) {
	if major <= 0 {
		return 0, false
	}
	return major*unitTable[majorUnit].toBaseUnit + minor*unitTable[minorUnit].toBaseUnit, true
}

// HeightCm reads a height field in whichever unit it was entered.
func HeightCm(m model.Measurement) (float64, bool) {
	if m.Unit == model.UnitImperial {
		return ToCm(m.Major, m.Minor)
	}
	return metricValue(m.Metric)
}

// WeightKg reads a weight field in whichever unit it was entered.
func WeightKg(m model.Measurement) (float64, bool) {
	if m.Unit == model.UnitImperial {
		return ToKg(m.Major, m.Minor)
	}
	return metricValue(m.Metric)
}

func metricValue(v float64) (float64, bool) {
	if v <= 0 {
		return 0, false
	}
	return v, true
}

func MetricHeight(cm float64) model.Measurement {
	return model.Measurement{Unit: model.UnitMetric, Metric: cm}
}

func ImperialHeight(feet, inches float64) model.Measurement {
	return model.Measurement{Unit: model.UnitImperial, Major: feet, Minor: inches}
}

func MetricWeight(kg float64) model.Measurement {
	return model.Measurement{Unit: model.UnitMetric, Metric: kg}
}

func ImperialWeight(stone, pounds float64) model.Measurement {
	return model.Measurement{Unit: model.UnitImperial, Major: stone, Minor: pounds}
}

// ParseMeasureUnit accepts the toggle names and the unit symbols either side uses.
func ParseMeasureUnit(unit string) (model.MeasureUnit, error) {
	u := strings.ToLower(strings.TrimSpace(unit))
	switch u {
	case "", "metric", "cm", "kg":
		return model.UnitMetric, nil
	case "imperial", "ft", "in", "st", "lb", "lbs":
		return model.UnitImperial, nil
	default:
		return "", fmt.Errorf("invalid unit %q (use metric or imperial)", unit)
	}
}

// ConvertLength converts between cm, ft and in.
func ConvertLength(value float64, fromUnit, toUnit string) (float64, error) {
	return convert(unitKindLength, value, fromUnit, toUnit)
}

// ConvertMass converts between kg, st and lb.
func ConvertMass(value float64, fromUnit, toUnit string) (float64, error) {
	return convert(unitKindMass, value, fromUnit, toUnit)
}

func convert(kind unitKind, value float64, fromUnit, toUnit string) (float64, error) {
	if value < 0 {
		return 0, fmt.Errorf("value must be >= 0")
	}
	from, ok := resolveUnit(fromUnit)
	if !ok || from.kind != kind {
		return 0, fmt.Errorf("unsupported %s unit %q", kind, fromUnit)
	}
	to, ok := resolveUnit(toUnit)
	if !ok || to.kind != kind {
		return 0, fmt.Errorf("unsupported %s unit %q", kind, toUnit)
	}
	return value * from.toBaseUnit / to.toBaseUnit, nil
}

func resolveUnit(unit string) (unitDef, bool) {
	u := strings.ToLower(strings.TrimSpace(unit))
	def, ok := unitTable[u]
	return def, ok
}
