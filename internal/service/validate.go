package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/GLPer-Ltd/loganhealth-intake/internal/model"
)

const (
	MinHeightCm = 110
	MaxHeightCm = 234
	MinWeightKg = 30
	MaxWeightKg = 300
	MinAge      = 18
	MaxAge      = 85
)

var (
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	ukPhonePattern = regexp.MustCompile(`^(?:\+44|0)\d{9,10}$`)
	whitespace     = regexp.MustCompile(`\s`)
)

// StepResult is the outcome of checking one step. Only one message is kept:
// when several checks fail, the last one evaluated is reported.
type StepResult struct {
	Step    int
	OK      bool
	Message string
}

func (r *StepResult) fail(msg string) {
	r.OK = false
	r.Message = msg
}

// ValidateStep checks the record, as saved, against the rules of one step.
func ValidateStep(step int, r model.AnswerRecord) StepResult {
	res := StepResult{Step: step, OK: true}
	switch step {
	case StepMotivation:
		if !WeightLossReasons.Has(r.WeightLossReason) {
			res.fail("Please select your main reason for wanting to lose weight")
		}
		if !WeightLossGoals.Has(r.WeightLossGoal) {
			res.fail("Please select your weight loss goal")
		}

	case StepMeasurements:
		if !inRange(r.HeightCm, MinHeightCm, MaxHeightCm) {
			res.fail("Please enter a valid height")
		}
		if !inRange(r.WeightKg, MinWeightKg, MaxWeightKg) {
			res.fail("Please enter a valid weight")
		}

	case StepPersonal:
		if r.DOB == nil || !r.DOB.Complete() {
			res.fail("Please enter your date of birth")
		} else if r.Age == nil || *r.Age < MinAge || *r.Age > MaxAge {
			res.fail(fmt.Sprintf("You must be between %d and %d years old", MinAge, MaxAge))
		}
		if !Ethnicities.Has(r.Ethnicity) {
			res.fail("Please select your ethnic background")
		}
		if !Sexes.Has(r.Sex) {
			res.fail("Please select your sex assigned at birth")
		}

	case StepWeightHistory, StepConditions, StepHistory:
		// optional

	case StepSafety:
		if !ScreeningAnswers.Has(r.EatingDisorder) {
			res.fail("Please answer the eating disorder question")
		}
		if !ScreeningAnswers.Has(r.KidneyDisease) {
			res.fail("Please answer the kidney disease question")
		}
		if !ScreeningAnswers.Has(r.PregnantOrTrying) {
			res.fail("Please answer the pregnancy question")
		}

	case StepLifestyle:
		if !YesNo.Has(r.Smoker) {
			res.fail("Please answer the smoking question")
		}
		if !YesNo.Has(r.RecentInjectableWeightLoss) {
			res.fail("Please answer the injectable weight loss medication question")
		}

	case StepContraception:
		if !ContraceptionApplies(r) {
			break
		}
		switch r.ContraceptionAgreement {
		case AnswerYes:
		case AnswerNo:
			res.fail("You must agree to use alternative contraception while taking Mounjaro to proceed")
		default:
			res.fail("Please answer the contraception question")
		}

	case StepImportantInfo:
		if !r.ImportantInfoConfirmed {
			res.fail("Please confirm you have read and understood the important information")
		}

	case StepContact:
		if len([]rune(strings.TrimSpace(r.FullName))) < 2 {
			res.fail("Please enter your full name")
		}
		if !IsValidEmail(r.Email) {
			res.fail("Please enter a valid email address")
		}
		if !IsValidUKPhone(r.Phone) {
			res.fail("Please enter a valid UK phone number")
		}
		if !r.TermsAgreement {
			res.fail("Please agree to the Terms and Conditions and Privacy Policy")
		}
		if !r.DataConsent {
			res.fail("Please agree to the data processing terms")
		}

	default:
		res.fail(fmt.Sprintf("Unknown step %d", step))
	}
	return res
}

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// IsValidUKPhone accepts +44 or 0 followed by 9-10 digits, ignoring spaces.
func IsValidUKPhone(phone string) bool {
	return ukPhonePattern.MatchString(whitespace.ReplaceAllString(phone, ""))
}

func inRange(v *float64, lo, hi float64) bool {
	return v != nil && *v >= lo && *v <= hi
}
