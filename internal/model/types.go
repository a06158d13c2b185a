package model

import "time"

type MeasureUnit string

const (
	UnitMetric   MeasureUnit = "metric"
	UnitImperial MeasureUnit = "imperial"
)

// Measurement is one height or weight field as entered. Metric holds cm or kg,
// Major/Minor hold feet/inches or stone/pounds depending on Unit.
type Measurement struct {
	Unit   MeasureUnit `json:"unit,omitempty"`
	Metric float64     `json:"metric,omitempty"`
	Major  float64     `json:"major,omitempty"`
	Minor  float64     `json:"minor,omitempty"`
}

type DateOfBirth struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

// Complete reports whether every part is present and within the ranges the
// day and month pickers offer. Day 31 is allowed for every month.
func (d DateOfBirth) Complete() bool {
	return d.Day >= 1 && d.Day <= 31 && d.Month >= 1 && d.Month <= 12 && d.Year > 0
}

func (d DateOfBirth) IsZero() bool {
	return d == DateOfBirth{}
}

// Selection is the checked members of one checkbox group, in vocabulary order.
type Selection []string

func (s Selection) Has(tag string) bool {
	for _, v := range s {
		if v == tag {
			return true
		}
	}
	return false
}

type AnswerRecord struct {
	WeightLossReason string `json:"weightLossReason,omitempty"`
	WeightLossGoal   string `json:"weightLossGoal,omitempty"`

	Height   Measurement `json:"height"`
	Weight   Measurement `json:"weight"`
	HeightCm *float64    `json:"heightCm,omitempty"`
	WeightKg *float64    `json:"weightKg,omitempty"`

	DOB       *DateOfBirth `json:"dob,omitempty"`
	Age       *int         `json:"age,omitempty"`
	Ethnicity string       `json:"ethnicity,omitempty"`
	Sex       string       `json:"sex,omitempty"`

	HighestWeight   Measurement `json:"highestWeight"`
	TargetWeight    Measurement `json:"targetWeight"`
	HighestWeightKg *float64    `json:"highestWeightKg,omitempty"`
	TargetWeightKg  *float64    `json:"targetWeightKg,omitempty"`

	Conditions Selection `json:"conditions,omitempty"`

	EatingDisorder          string `json:"eatingDisorder,omitempty"`
	EatingDisorderDetails   string `json:"eatingDisorderDetails,omitempty"`
	KidneyDisease           string `json:"kidneyDisease,omitempty"`
	KidneyDiseaseDetails    string `json:"kidneyDiseaseDetails,omitempty"`
	PregnantOrTrying        string `json:"pregnantOrTrying,omitempty"`
	PregnantOrTryingDetails string `json:"pregnantOrTryingDetails,omitempty"`
	OtherConditions         string `json:"otherConditions,omitempty"`
	Medications             string `json:"medications,omitempty"`
	Allergies               string `json:"allergies,omitempty"`

	MedicalHistory    Selection `json:"medicalHistory,omitempty"`
	ThyroidOrLiver    string    `json:"thyroidOrLiver,omitempty"`
	DiabetesInsulin   string    `json:"diabetesInsulin,omitempty"`
	DiabetesOtherMeds string    `json:"diabetesOtherMeds,omitempty"`
	GallbladderIssues Selection `json:"gallbladderIssues,omitempty"`
	AdditionalHistory Selection `json:"additionalHistory,omitempty"`

	SpecificMedications        Selection `json:"specificMedications,omitempty"`
	Smoker                     string    `json:"isSmoker,omitempty"`
	RecentInjectableWeightLoss string    `json:"recentInjectableWeightLoss,omitempty"`

	ContraceptionAgreement string `json:"contraceptionAgreement,omitempty"`

	ImportantInfoConfirmed bool `json:"importantInfoConfirmed"`

	FullName         string `json:"fullName,omitempty"`
	Email            string `json:"email,omitempty"`
	Phone            string `json:"phone,omitempty"`
	ContactMethod    string `json:"contactMethod,omitempty"`
	DataConsent      bool   `json:"consent"`
	TermsAgreement   bool   `json:"termsAgreement"`
	MarketingConsent bool   `json:"marketing"`
}

type Verdict string

const (
	VerdictUnset       Verdict = ""
	VerdictEligible    Verdict = "eligible"
	VerdictReview      Verdict = "review"
	VerdictNotEligible Verdict = "not_eligible"
)

type Eligibility struct {
	Verdict Verdict `json:"verdict"`
	Reason  string  `json:"reason,omitempty"`
}

// Snapshot is the advisory backup written around each submission.
type Snapshot struct {
	SessionID string       `json:"session_id"`
	Data      AnswerRecord `json:"data"`
	Eligible  Verdict      `json:"eligible"`
	Reason    string       `json:"reason,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

type SubmissionAttempt struct {
	ID          int64
	SessionID   string
	Status      string
	HTTPStatus  int
	Error       string
	AttemptedAt time.Time
}
