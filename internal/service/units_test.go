package service_test

import (
	"math"
	"testing"

	"github.com/GLPer-Ltd/loganhealth-intake/internal/model"
	"github.com/GLPer-Ltd/loganhealth-intake/internal/service"
)

func TestToCmFeetAndInches(t *testing.T) {
	t.Parallel()
	cm, ok := service.ToCm(5, 10)
	if !ok {
		t.Fatalf("expected known height")
	}
	if math.Abs(cm-177.8) > 0.001 {
		t.Fatalf("expected 177.8 cm, got %.4f", cm)
	}
}

func TestToCmMissingFeetIsUnknown(t *testing.T) {
	t.Parallel()
	if _, ok := service.ToCm(0, 11); ok {
		t.Fatalf("expected unknown height when feet is missing")
	}
}

func TestToKgStoneAndPounds(t *testing.T) {
	t.Parallel()
	kg, ok := service.ToKg(15, 10)
	if !ok {
		t.Fatalf("expected known weight")
	}
	if math.Abs(kg-99.79027) > 0.0001 {
		t.Fatalf("expected ~99.79 kg, got %.5f", kg)
	}
	if _, ok := service.ToKg(0, 5); ok {
		t.Fatalf("expected unknown weight when stone is missing")
	}
}

func TestHeightAndWeightReadEitherUnit(t *testing.T) {
	t.Parallel()
	if cm, ok := service.HeightCm(service.MetricHeight(182)); !ok || cm != 182 {
		t.Fatalf("expected metric height 182, got %v %v", cm, ok)
	}
	if _, ok := service.HeightCm(service.MetricHeight(0)); ok {
		t.Fatalf("expected blank metric height to be unknown")
	}
	if kg, ok := service.WeightKg(service.ImperialWeight(10, 0)); !ok || math.Abs(kg-63.5029) > 0.0001 {
		t.Fatalf("expected 10st to be 63.5029 kg, got %v %v", kg, ok)
	}
	// A zero-value measurement reads as metric and unknown.
	if _, ok := service.WeightKg(model.Measurement{}); ok {
		t.Fatalf("expected empty measurement to be unknown")
	}
}

func TestParseMeasureUnit(t *testing.T) {
	t.Parallel()
	cases := map[string]model.MeasureUnit{
		"":         model.UnitMetric,
		"Metric":   model.UnitMetric,
		"kg":       model.UnitMetric,
		"imperial": model.UnitImperial,
		" lbs ":    model.UnitImperial,
		"ft":       model.UnitImperial,
	}
	for in, want := range cases {
		got, err := service.ParseMeasureUnit(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if got != want {
			t.Fatalf("parse %q: expected %s, got %s", in, want, got)
		}
	}
	if _, err := service.ParseMeasureUnit("furlong"); err == nil {
		t.Fatalf("expected invalid unit error")
	}
}

func TestConvertLengthAndMass(t *testing.T) {
	t.Parallel()
	out, err := service.ConvertLength(1, "ft", "in")
	if err != nil {
		t.Fatalf("convert ft to in: %v", err)
	}
	if math.Abs(out-12) > 0.0001 {
		t.Fatalf("expected 12 in, got %.4f", out)
	}
	out, err = service.ConvertMass(14, "lb", "st")
	if err != nil {
		t.Fatalf("convert lb to st: %v", err)
	}
	if math.Abs(out-1) > 0.001 {
		t.Fatalf("expected ~1 st, got %.4f", out)
	}
}

func TestConvertRejectsCrossDimension(t *testing.T) {
	t.Parallel()
	if _, err := service.ConvertLength(1, "kg", "cm"); err == nil {
		t.Fatalf("expected unsupported unit error")
	}
	if _, err := service.ConvertMass(-1, "kg", "lb"); err == nil {
		t.Fatalf("expected negative value error")
	}
}
