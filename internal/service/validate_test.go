package service_test

import (
	"testing"

	"github.com/GLPer-Ltd/loganhealth-intake/internal/model"
	"github.com/GLPer-Ltd/loganhealth-intake/internal/service"
)

func TestValidateCompleteRecordPassesEveryStep(t *testing.T) {
	t.Parallel()
	r := eligibleRecord()
	for step := service.StepMotivation; step <= service.TotalSteps; step++ {
		if res := service.ValidateStep(step, r); !res.OK {
			t.Fatalf("step %d: unexpected failure %q", step, res.Message)
		}
	}
}

func TestValidateReportsLastFailingCheck(t *testing.T) {
	t.Parallel()
	res := service.ValidateStep(service.StepMotivation, model.AnswerRecord{})
	if res.OK {
		t.Fatalf("expected failure")
	}
	if res.Message != "Please select your weight loss goal" {
		t.Fatalf("expected goal message to win, got %q", res.Message)
	}

	res = service.ValidateStep(service.StepContact, model.AnswerRecord{})
	if res.Message != "Please agree to the data processing terms" {
		t.Fatalf("expected data consent message to win, got %q", res.Message)
	}
}

func TestValidateMeasurementRanges(t *testing.T) {
	t.Parallel()
	cases := []struct {
		height, weight float64
		ok             bool
	}{
		{110, 30, true},
		{234, 300, true},
		{109.9, 80, false},
		{170, 300.1, false},
	}
	for _, tc := range cases {
		r := eligibleRecord()
		r.HeightCm = floatPtr(tc.height)
		r.WeightKg = floatPtr(tc.weight)
		if res := service.ValidateStep(service.StepMeasurements, r); res.OK != tc.ok {
			t.Fatalf("height %.1f weight %.1f: expected ok=%v, got %+v", tc.height, tc.weight, tc.ok, res)
		}
	}

	r := eligibleRecord()
	r.WeightKg = nil
	if res := service.ValidateStep(service.StepMeasurements, r); res.Message != "Please enter a valid weight" {
		t.Fatalf("expected unknown weight to fail, got %+v", res)
	}
}

func TestValidatePersonalAgeBounds(t *testing.T) {
	t.Parallel()
	for age, ok := range map[int]bool{17: false, 18: true, 85: true, 86: false} {
		r := eligibleRecord()
		r.Age = intPtr(age)
		res := service.ValidateStep(service.StepPersonal, r)
		if res.OK != ok {
			t.Fatalf("age %d: expected ok=%v, got %+v", age, ok, res)
		}
		if !ok && res.Message != "You must be between 18 and 85 years old" {
			t.Fatalf("age %d: unexpected message %q", age, res.Message)
		}
	}
}

func TestValidatePersonalRejectsOutOfRangeDOB(t *testing.T) {
	t.Parallel()
	for _, dob := range []model.DateOfBirth{
		{Day: 45, Month: 13, Year: 1990},
		{Day: 32, Month: 1, Year: 1990},
		{Day: 1, Month: 13, Year: 1990},
		{Day: 0, Month: 6, Year: 1990},
	} {
		r := eligibleRecord()
		r.DOB = &dob
		res := service.ValidateStep(service.StepPersonal, r)
		if res.OK || res.Message != "Please enter your date of birth" {
			t.Fatalf("dob %+v: expected date of birth error, got %+v", dob, res)
		}
	}

	s := service.NewSession(service.SessionOptions{Now: fixedClock})
	forms := completeForms(service.SexMale)
	forms[service.StepPersonal] = service.PersonalForm{DOB: model.DateOfBirth{Day: 45, Month: 13, Year: 1990}, Ethnicity: "white", Sex: service.SexMale}
	for _, step := range []int{service.StepMotivation, service.StepMeasurements} {
		if res, err := s.Next(forms[step]); err != nil || !res.OK {
			t.Fatalf("step %d: %+v %v", step, res, err)
		}
	}
	res, err := s.Next(forms[service.StepPersonal])
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if res.OK || res.Message != "Please enter your date of birth" || s.Step() != service.StepPersonal {
		t.Fatalf("expected rolled-over dob to block step 3, got %+v at step %d", res, s.Step())
	}
}

func TestValidatePersonalAcceptsDay31InAnyMonth(t *testing.T) {
	t.Parallel()
	r := eligibleRecord()
	r.DOB = &model.DateOfBirth{Day: 31, Month: 2, Year: 1990}
	if res := service.ValidateStep(service.StepPersonal, r); !res.OK {
		t.Fatalf("expected 31 Feb to pass like the day picker, got %+v", res)
	}
}

func TestValidateOptionalSteps(t *testing.T) {
	t.Parallel()
	for _, step := range []int{service.StepWeightHistory, service.StepConditions, service.StepHistory} {
		if res := service.ValidateStep(step, model.AnswerRecord{}); !res.OK {
			t.Fatalf("step %d should be optional, got %q", step, res.Message)
		}
	}
}

func TestValidateContraceptionOnlyForFemale(t *testing.T) {
	t.Parallel()
	r := eligibleRecord()
	if res := service.ValidateStep(service.StepContraception, r); !res.OK {
		t.Fatalf("expected contraception to pass for male, got %q", res.Message)
	}

	r.Sex = service.SexFemale
	if res := service.ValidateStep(service.StepContraception, r); res.Message != "Please answer the contraception question" {
		t.Fatalf("expected unanswered message, got %q", res.Message)
	}
	r.ContraceptionAgreement = service.AnswerNo
	res := service.ValidateStep(service.StepContraception, r)
	if res.OK || res.Message != "You must agree to use alternative contraception while taking Mounjaro to proceed" {
		t.Fatalf("expected refusal to block, got %+v", res)
	}
	r.ContraceptionAgreement = service.AnswerYes
	if res := service.ValidateStep(service.StepContraception, r); !res.OK {
		t.Fatalf("expected agreement to pass, got %q", res.Message)
	}
}

func TestValidateUnknownStep(t *testing.T) {
	t.Parallel()
	if res := service.ValidateStep(12, eligibleRecord()); res.OK {
		t.Fatalf("expected unknown step to fail")
	}
}

func TestIsValidEmail(t *testing.T) {
	t.Parallel()
	for email, ok := range map[string]bool{
		"jane@example.com":    true,
		" jane@example.co.uk": true,
		"jane@example":        false,
		"jane example@x.com":  false,
		"":                    false,
	} {
		if got := service.IsValidEmail(email); got != ok {
			t.Fatalf("%q: expected %v, got %v", email, ok, got)
		}
	}
}

func TestIsValidUKPhone(t *testing.T) {
	t.Parallel()
	for phone, ok := range map[string]bool{
		"07123456789":     true,
		"07123 456 789":   true,
		"+447123456789":   true,
		"0207946000":      true,
		"7123456789":      false,
		"+4471234567890a": false,
		"071234":          false,
	} {
		if got := service.IsValidUKPhone(phone); got != ok {
			t.Fatalf("%q: expected %v, got %v", phone, ok, got)
		}
	}
}
