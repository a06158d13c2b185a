package service

import (
	"fmt"

	"github.com/GLPer-Ltd/loganhealth-intake/internal/model"
)

const (
	standardBMIThreshold          = 30
	standardConditionBMIThreshold = 27
	adjustedBMIThreshold          = 27.5
	adjustedConditionBMIThreshold = 25

	// EligibleMessage is shown in place of an empty reason for an eligible verdict.
	EligibleMessage = "Meets all criteria"

	ReasonMinimumAge  = "You must be at least 18 years old to be eligible for GLP-1 treatment."
	ReasonMaximumAge  = "GLP-1 treatments are not recommended for individuals over 85 years old."
	ReasonUnknownAge  = "We could not confirm your age from the date of birth provided."
	ReasonUnknownBMI  = "We could not calculate your BMI from the height and weight provided."
	ReasonReview      = "Based on your responses, you may not be eligible for this treatment. However, you can speak with one of our health team to discuss your options and find the right path forward."
	ReasonPharmacist  = "Based on your medical history, our pharmacist will need to conduct a thorough assessment to determine your suitability for GLP-1 treatment."
	pancreatitisTag   = "pancreatitis"
	lowBMIReasonShape = "Based on your BMI of %.1f, you may not currently meet the eligibility criteria for GLP-1 treatment. The minimum BMI requirement is %s (or %s with weight-related health conditions)."
)

// Ethnic groups with lower intervention thresholds.
var adjustedThresholdEthnicities = map[string]bool{
	"asian":         true,
	"black":         true,
	"middleeastern": true,
}

var weightRelatedConditions = []string{
	"type2diabetes",
	"highbloodpressure",
	"heartdisease",
	"prediabetes",
	"highcholesterol",
	"sleepapnoea",
	"osteoarthritis",
}

// BMIThresholds returns the base threshold and the threshold that applies
// when a weight-related condition is present.
func BMIThresholds(ethnicity string) (base, withCondition float64) {
	if adjustedThresholdEthnicities[ethnicity] {
		return adjustedBMIThreshold, adjustedConditionBMIThreshold
	}
	return standardBMIThreshold, standardConditionBMIThreshold
}

func HasWeightRelatedCondition(conditions model.Selection) bool {
	for _, c := range weightRelatedConditions {
		if conditions.Has(c) {
			return true
		}
	}
	return false
}

// Evaluate maps a completed record to a verdict. Rules are checked in order
// and the first that decides wins.
func Evaluate(r model.AnswerRecord) model.Eligibility {
	if r.Age == nil {
		return notEligible(ReasonUnknownAge)
	}
	if *r.Age < MinAge {
		return notEligible(ReasonMinimumAge)
	}
	if *r.Age > MaxAge {
		return notEligible(ReasonMaximumAge)
	}

	bmi, ok := RecordBMI(r)
	if !ok {
		return notEligible(ReasonUnknownBMI)
	}
	base, withCondition := BMIThresholds(r.Ethnicity)
	highest := highestBMI(r, bmi)

	switch {
	case bmi >= base || highest >= base:
	case bmi >= withCondition && HasWeightRelatedCondition(r.Conditions):
	default:
		return notEligible(fmt.Sprintf(lowBMIReasonShape, bmi, formatThreshold(base), formatThreshold(withCondition)))
	}

	if r.EatingDisorder == AnswerYes || r.KidneyDisease == AnswerYes || r.PregnantOrTrying == AnswerYes {
		return model.Eligibility{Verdict: model.VerdictReview, Reason: ReasonReview}
	}
	// Pancreatitis keeps the eligible verdict and only attaches the pharmacist note.
	if r.Conditions.Has(pancreatitisTag) {
		return model.Eligibility{Verdict: model.VerdictEligible, Reason: ReasonPharmacist}
	}
	return model.Eligibility{Verdict: model.VerdictEligible}
}

// StatusLabel is the verdict as the relay and the results screen name it.
func StatusLabel(v model.Verdict) string {
	switch v {
	case model.VerdictEligible:
		return "ELIGIBLE"
	case model.VerdictReview:
		return "NEEDS REVIEW"
	default:
		return "NOT ELIGIBLE"
	}
}

func notEligible(reason string) model.Eligibility {
	return model.Eligibility{Verdict: model.VerdictNotEligible, Reason: reason}
}

func formatThreshold(v float64) string {
	return fmt.Sprintf("%g", v)
}
