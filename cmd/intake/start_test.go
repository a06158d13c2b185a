package intake

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/GLPer-Ltd/loganhealth-intake/internal/model"
	"github.com/GLPer-Ltd/loganhealth-intake/internal/service"
)

func fixedNow() time.Time {
	return time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)
}

func TestRunWizardScriptedMaleSkipsContraception(t *testing.T) {
	t.Parallel()

	script := strings.Join([]string{
		"1", "upto1stone", // motivation
		"back", // measurements: return to motivation
		"", "", // motivation again, keep answers
		"metric", "170", "", "100", // measurements
		"1", "1", "2015", "white", "male", // personal: too young
		"", "", "1990", "", "", // personal retried
		"", "", "", "", // weight history
		"none",                       // conditions
		"no", "no", "no", "", "", "", // safety
		"none_history", "no", "no", "no", "", "", // history
		"", "no", "no", // lifestyle
		"y",                                                                // important info
		"John Smith", "john@example.com", "07123 456789", "", "y", "y", "", // contact
	}, "\n") + "\n"

	out := &bytes.Buffer{}
	s := service.NewSession(service.SessionOptions{Now: fixedNow})
	if err := runWizard(context.Background(), s, newPrompter(strings.NewReader(script), out)); err != nil {
		t.Fatalf("run wizard: %v\n%s", err, out.String())
	}

	text := out.String()
	for _, want := range []string{
		"Step 10 of 11: Important information",
		"You must be between 18 and 85 years old",
		"Status: ELIGIBLE",
		"BMI: 34.6 (Obese (Class I))",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in output:\n%s", want, text)
		}
	}
	if strings.Contains(text, "Step 9 of 11") {
		t.Fatalf("contraception step shown to a male respondent:\n%s", text)
	}
	if strings.Count(text, "Step 1 of 11") != 2 {
		t.Fatalf("expected motivation step to be shown twice after back:\n%s", text)
	}

	r := s.Record()
	if r.ContactMethod != service.ContactEmail {
		t.Fatalf("expected contact method to default to email, got %q", r.ContactMethod)
	}
	if r.WeightLossReason != "health" || r.WeightLossGoal != "upto1stone" {
		t.Fatalf("motivation answers lost across back navigation: %+v", r)
	}
	if !s.Closed() {
		t.Fatalf("expected session to be closed after submit")
	}
}

func TestRunWizardBackKeepsAnswersTypedOnStep(t *testing.T) {
	t.Parallel()

	script := strings.Join([]string{
		"1", "upto1stone", // motivation
		"metric", "170", "", "100", // measurements
		"1", "1", "1990", "white", "male", // personal
		"", "", "", "", // weight history
		"none",                        // conditions
		"yes", "binge eating", "back", // safety, abandoned part way
	}, "\n") + "\n"

	s := service.NewSession(service.SessionOptions{Now: fixedNow})
	err := runWizard(context.Background(), s, newPrompter(strings.NewReader(script), &bytes.Buffer{}))
	if err == nil {
		t.Fatalf("expected error when input ends on the conditions step")
	}
	if s.Step() != service.StepConditions {
		t.Fatalf("expected to be back on step %d, got %d", service.StepConditions, s.Step())
	}
	r := s.Record()
	if r.EatingDisorder != service.AnswerYes || r.EatingDisorderDetails != "binge eating" {
		t.Fatalf("answers typed before back were lost: eatingDisorder=%q details=%q", r.EatingDisorder, r.EatingDisorderDetails)
	}
}

func TestRunWizardStopsOnEndOfInput(t *testing.T) {
	t.Parallel()

	s := service.NewSession(service.SessionOptions{Now: fixedNow})
	err := runWizard(context.Background(), s, newPrompter(strings.NewReader("health\n"), &bytes.Buffer{}))
	if err == nil {
		t.Fatalf("expected error when input ends mid-step")
	}
	if s.Step() != service.StepMotivation {
		t.Fatalf("expected to remain on step 1, got %d", s.Step())
	}
}

func TestPrompterCheckboxesAcceptNumbersAndNone(t *testing.T) {
	t.Parallel()

	p := newPrompter(strings.NewReader("1, highbloodpressure\nbogus\nnone\n"), &bytes.Buffer{})
	sel := p.checkboxes("Conditions", service.Conditions, nil)
	if err := p.takeErr(); err != nil {
		t.Fatalf("checkboxes: %v", err)
	}
	if want := (model.Selection{"type2diabetes", "highbloodpressure"}); !equalSelection(sel, want) {
		t.Fatalf("expected %v, got %v", want, sel)
	}

	sel = p.checkboxes("Conditions", service.Conditions, sel)
	if err := p.takeErr(); err != nil {
		t.Fatalf("checkboxes: %v", err)
	}
	if want := (model.Selection{"none"}); !equalSelection(sel, want) {
		t.Fatalf("expected %v after an invalid answer and none, got %v", want, sel)
	}
}

func equalSelection(a, b model.Selection) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
