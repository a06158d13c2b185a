package service_test

import (
	"strings"
	"testing"

	"github.com/GLPer-Ltd/loganhealth-intake/internal/model"
	"github.com/GLPer-Ltd/loganhealth-intake/internal/service"
)

func scenarioRecord(age int, ethnicity string, heightCm, weightKg float64, conditions ...string) model.AnswerRecord {
	r := eligibleRecord()
	r.Age = intPtr(age)
	r.Ethnicity = ethnicity
	r.HeightCm = floatPtr(heightCm)
	r.WeightKg = floatPtr(weightKg)
	r.Conditions = model.Selection(conditions)
	return r
}

func TestEvaluateScenarios(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name       string
		record     model.AnswerRecord
		verdict    model.Verdict
		reasonPart string
	}{
		{
			name:    "standard threshold met",
			record:  scenarioRecord(30, "white", 170, 95),
			verdict: model.VerdictEligible,
		},
		{
			name:    "adjusted threshold with weight-related condition",
			record:  scenarioRecord(30, "asian", 170, 75, "type2diabetes"),
			verdict: model.VerdictEligible,
		},
		{
			name:       "adjusted threshold without condition",
			record:     scenarioRecord(30, "asian", 170, 75),
			verdict:    model.VerdictNotEligible,
			reasonPart: "minimum BMI requirement is 27.5 (or 25 with weight-related health conditions)",
		},
		{
			name:       "under minimum age regardless of BMI",
			record:     scenarioRecord(16, "white", 170, 120),
			verdict:    model.VerdictNotEligible,
			reasonPart: "at least 18 years old",
		},
		{
			name:       "over maximum age",
			record:     scenarioRecord(86, "white", 170, 120),
			verdict:    model.VerdictNotEligible,
			reasonPart: "over 85",
		},
		{
			name:       "low BMI",
			record:     scenarioRecord(40, "white", 170, 70),
			verdict:    model.VerdictNotEligible,
			reasonPart: "Based on your BMI of 24.2",
		},
		{
			name:       "non weight-related condition does not lower the threshold",
			record:     scenarioRecord(40, "white", 170, 80, "acidreflux"),
			verdict:    model.VerdictNotEligible,
			reasonPart: "minimum BMI requirement is 30 (or 27 with weight-related health conditions)",
		},
		{
			name:    "pancreatitis keeps eligible with a note",
			record:  scenarioRecord(30, "white", 170, 95, "pancreatitis"),
			verdict: model.VerdictEligible,

			reasonPart: "pharmacist",
		},
	}
	for _, tc := range cases {
		got := service.Evaluate(tc.record)
		if got.Verdict != tc.verdict {
			t.Fatalf("%s: expected verdict %q, got %q (%s)", tc.name, tc.verdict, got.Verdict, got.Reason)
		}
		if tc.reasonPart == "" && got.Reason != "" {
			t.Fatalf("%s: expected empty reason, got %q", tc.name, got.Reason)
		}
		if !strings.Contains(got.Reason, tc.reasonPart) {
			t.Fatalf("%s: expected reason to contain %q, got %q", tc.name, tc.reasonPart, got.Reason)
		}
	}
}

func TestEvaluateSafetyAnswerDowngradesToReview(t *testing.T) {
	t.Parallel()
	for _, set := range []func(*model.AnswerRecord){
		func(r *model.AnswerRecord) { r.EatingDisorder = service.AnswerYes },
		func(r *model.AnswerRecord) { r.KidneyDisease = service.AnswerYes },
		func(r *model.AnswerRecord) { r.PregnantOrTrying = service.AnswerYes },
	} {
		r := scenarioRecord(30, "white", 170, 95, "pancreatitis")
		set(&r)
		got := service.Evaluate(r)
		if got.Verdict != model.VerdictReview {
			t.Fatalf("expected review verdict, got %q", got.Verdict)
		}
		if got.Reason != service.ReasonReview {
			t.Fatalf("expected review reason, got %q", got.Reason)
		}
	}
}

func TestEvaluateUnsureIsNotAffirmative(t *testing.T) {
	t.Parallel()
	r := scenarioRecord(30, "white", 170, 95)
	r.KidneyDisease = service.AnswerUnsure
	if got := service.Evaluate(r); got.Verdict != model.VerdictEligible {
		t.Fatalf("expected eligible for an unsure answer, got %q", got.Verdict)
	}
}

func TestEvaluateSafetyDoesNotRescueLowBMI(t *testing.T) {
	t.Parallel()
	r := scenarioRecord(30, "white", 170, 60)
	r.EatingDisorder = service.AnswerYes
	if got := service.Evaluate(r); got.Verdict != model.VerdictNotEligible {
		t.Fatalf("expected not eligible, got %q", got.Verdict)
	}
}

func TestEvaluateHighestWeightCanMeetThreshold(t *testing.T) {
	t.Parallel()
	r := scenarioRecord(45, "white", 170, 80)
	r.HighestWeightKg = floatPtr(90)
	if got := service.Evaluate(r); got.Verdict != model.VerdictEligible {
		t.Fatalf("expected eligible from highest BMI 31.1, got %q (%s)", got.Verdict, got.Reason)
	}
}

func TestEvaluateUnknownDerivedValues(t *testing.T) {
	t.Parallel()
	r := eligibleRecord()
	r.Age = nil
	if got := service.Evaluate(r); got.Verdict != model.VerdictNotEligible || got.Reason != service.ReasonUnknownAge {
		t.Fatalf("expected unknown age rejection, got %+v", got)
	}

	r = eligibleRecord()
	r.HeightCm = nil
	if got := service.Evaluate(r); got.Verdict != model.VerdictNotEligible || got.Reason != service.ReasonUnknownBMI {
		t.Fatalf("expected unknown BMI rejection, got %+v", got)
	}

	if got := service.Evaluate(model.AnswerRecord{}); got.Verdict != model.VerdictNotEligible {
		t.Fatalf("expected empty record to be not eligible, got %+v", got)
	}
}

func TestBMIThresholds(t *testing.T) {
	t.Parallel()
	for _, eth := range []string{"asian", "black", "middleeastern"} {
		if base, cond := service.BMIThresholds(eth); base != 27.5 || cond != 25 {
			t.Fatalf("%s: expected 27.5/25, got %g/%g", eth, base, cond)
		}
	}
	for _, eth := range []string{"white", "prefernottosay", "noneofabove", ""} {
		if base, cond := service.BMIThresholds(eth); base != 30 || cond != 27 {
			t.Fatalf("%q: expected 30/27, got %g/%g", eth, base, cond)
		}
	}
}

func TestStatusLabel(t *testing.T) {
	t.Parallel()
	if service.StatusLabel(model.VerdictReview) != "NEEDS REVIEW" {
		t.Fatalf("unexpected review label")
	}
	if service.StatusLabel(model.VerdictNotEligible) != "NOT ELIGIBLE" {
		t.Fatalf("unexpected not eligible label")
	}
}
