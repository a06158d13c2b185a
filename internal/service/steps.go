package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/GLPer-Ltd/loganhealth-intake/internal/model"
)

const (
	StepMotivation = iota + 1
	StepMeasurements
	StepPersonal
	StepWeightHistory
	StepConditions
	StepSafety
	StepHistory
	StepLifestyle
	StepContraception
	StepImportantInfo
	StepContact

	TotalSteps = StepContact
)

var stepTitles = map[int]string{
	StepMotivation:    "Motivation & goals",
	StepMeasurements:  "Height & weight",
	StepPersonal:      "About you",
	StepWeightHistory: "Weight history",
	StepConditions:    "Medical conditions",
	StepSafety:        "Safety screening",
	StepHistory:       "Medical history",
	StepLifestyle:     "Medications & lifestyle",
	StepContraception: "Contraception",
	StepImportantInfo: "Important information",
	StepContact:       "Your details",
}

func StepTitle(step int) string {
	return stepTitles[step]
}

// StepForm is the set of fields shown on one step. Saving a form replaces all
// of that step's fields in the record.
type StepForm interface {
	Step() int
	save(r *model.AnswerRecord, today time.Time)
}

type MotivationForm struct {
	Reason string
	Goal   string
}

func (MotivationForm) Step() int { return StepMotivation }

func (f MotivationForm) save(r *model.AnswerRecord, _ time.Time) {
	r.WeightLossReason = f.Reason
	r.WeightLossGoal = f.Goal
}

type MeasurementsForm struct {
	Height model.Measurement
	Weight model.Measurement
}

func (MeasurementsForm) Step() int { return StepMeasurements }

func (f MeasurementsForm) save(r *model.AnswerRecord, _ time.Time) {
	r.Height = f.Height
	r.Weight = f.Weight
	r.HeightCm = optional(HeightCm(f.Height))
	r.WeightKg = optional(WeightKg(f.Weight))
}

type PersonalForm struct {
	DOB       model.DateOfBirth
	Ethnicity string
	Sex       string
}

func (PersonalForm) Step() int { return StepPersonal }

func (f PersonalForm) save(r *model.AnswerRecord, today time.Time) {
	r.Ethnicity = f.Ethnicity
	r.Sex = f.Sex
	r.DOB = nil
	r.Age = nil
	if f.DOB.Complete() {
		dob := f.DOB
		r.DOB = &dob
		refreshAge(r, today)
	}
}

type WeightHistoryForm struct {
	Highest model.Measurement
	Target  model.Measurement
}

func (WeightHistoryForm) Step() int { return StepWeightHistory }

func (f WeightHistoryForm) save(r *model.AnswerRecord, _ time.Time) {
	r.HighestWeight = f.Highest
	r.TargetWeight = f.Target
	r.HighestWeightKg = optional(WeightKg(f.Highest))
	r.TargetWeightKg = optional(WeightKg(f.Target))
}

type ConditionsForm struct {
	Conditions model.Selection
}

func (ConditionsForm) Step() int { return StepConditions }

func (f ConditionsForm) save(r *model.AnswerRecord, _ time.Time) {
	r.Conditions = Conditions.Normalize(f.Conditions)
}

type SafetyForm struct {
	EatingDisorder          string
	EatingDisorderDetails   string
	KidneyDisease           string
	KidneyDiseaseDetails    string
	PregnantOrTrying        string
	PregnantOrTryingDetails string
	OtherConditions         string
	Medications             string
	Allergies               string
}

func (SafetyForm) Step() int { return StepSafety }

func (f SafetyForm) save(r *model.AnswerRecord, _ time.Time) {
	r.EatingDisorder = f.EatingDisorder
	r.EatingDisorderDetails = detailFor(f.EatingDisorder, f.EatingDisorderDetails)
	r.KidneyDisease = f.KidneyDisease
	r.KidneyDiseaseDetails = detailFor(f.KidneyDisease, f.KidneyDiseaseDetails)
	r.PregnantOrTrying = f.PregnantOrTrying
	r.PregnantOrTryingDetails = detailFor(f.PregnantOrTrying, f.PregnantOrTryingDetails)
	r.OtherConditions = strings.TrimSpace(f.OtherConditions)
	r.Medications = strings.TrimSpace(f.Medications)
	r.Allergies = strings.TrimSpace(f.Allergies)
}

type HistoryForm struct {
	MedicalHistory    model.Selection
	ThyroidOrLiver    string
	DiabetesInsulin   string
	DiabetesOtherMeds string
	GallbladderIssues model.Selection
	AdditionalHistory model.Selection
}

func (HistoryForm) Step() int { return StepHistory }

func (f HistoryForm) save(r *model.AnswerRecord, _ time.Time) {
	r.MedicalHistory = MedicalHistory.Normalize(f.MedicalHistory)
	r.ThyroidOrLiver = f.ThyroidOrLiver
	r.DiabetesInsulin = f.DiabetesInsulin
	r.DiabetesOtherMeds = f.DiabetesOtherMeds
	r.GallbladderIssues = GallbladderIssues.Normalize(f.GallbladderIssues)
	r.AdditionalHistory = AdditionalHistory.Normalize(f.AdditionalHistory)
}

type LifestyleForm struct {
	SpecificMedications        model.Selection
	Smoker                     string
	RecentInjectableWeightLoss string
}

func (LifestyleForm) Step() int { return StepLifestyle }

func (f LifestyleForm) save(r *model.AnswerRecord, _ time.Time) {
	r.SpecificMedications = SpecificMedications.Normalize(f.SpecificMedications)
	r.Smoker = f.Smoker
	r.RecentInjectableWeightLoss = f.RecentInjectableWeightLoss
}

type ContraceptionForm struct {
	Agreement string
}

func (ContraceptionForm) Step() int { return StepContraception }

func (f ContraceptionForm) save(r *model.AnswerRecord, _ time.Time) {
	r.ContraceptionAgreement = f.Agreement
}

type ImportantInfoForm struct {
	Confirmed bool
}

func (ImportantInfoForm) Step() int { return StepImportantInfo }

func (f ImportantInfoForm) save(r *model.AnswerRecord, _ time.Time) {
	r.ImportantInfoConfirmed = f.Confirmed
}

type ContactForm struct {
	FullName       string
	Email          string
	Phone          string
	ContactMethod  string
	DataConsent    bool
	TermsAgreement bool
	Marketing      bool
}

func (ContactForm) Step() int { return StepContact }

func (f ContactForm) save(r *model.AnswerRecord, _ time.Time) {
	r.FullName = strings.TrimSpace(f.FullName)
	r.Email = strings.TrimSpace(f.Email)
	r.Phone = strings.TrimSpace(f.Phone)
	r.ContactMethod = f.ContactMethod
	if r.ContactMethod == "" {
		r.ContactMethod = ContactEmail
	}
	r.DataConsent = f.DataConsent
	r.TermsAgreement = f.TermsAgreement
	r.MarketingConsent = f.Marketing
}

// FormFor rebuilds the form of a step from what the record holds, so a step
// revisited shows exactly what was saved.
func FormFor(step int, r model.AnswerRecord) (StepForm, error) {
	switch step {
	case StepMotivation:
		return MotivationForm{Reason: r.WeightLossReason, Goal: r.WeightLossGoal}, nil
	case StepMeasurements:
		return MeasurementsForm{Height: r.Height, Weight: r.Weight}, nil
	case StepPersonal:
		f := PersonalForm{Ethnicity: r.Ethnicity, Sex: r.Sex}
		if r.DOB != nil {
			f.DOB = *r.DOB
		}
		return f, nil
	case StepWeightHistory:
		return WeightHistoryForm{Highest: r.HighestWeight, Target: r.TargetWeight}, nil
	case StepConditions:
		return ConditionsForm{Conditions: cloneSelection(r.Conditions)}, nil
	case StepSafety:
		return SafetyForm{
			EatingDisorder:          r.EatingDisorder,
			EatingDisorderDetails:   r.EatingDisorderDetails,
			KidneyDisease:           r.KidneyDisease,
			KidneyDiseaseDetails:    r.KidneyDiseaseDetails,
			PregnantOrTrying:        r.PregnantOrTrying,
			PregnantOrTryingDetails: r.PregnantOrTryingDetails,
			OtherConditions:         r.OtherConditions,
			Medications:             r.Medications,
			Allergies:               r.Allergies,
		}, nil
	case StepHistory:
		return HistoryForm{
			MedicalHistory:    cloneSelection(r.MedicalHistory),
			ThyroidOrLiver:    r.ThyroidOrLiver,
			DiabetesInsulin:   r.DiabetesInsulin,
			DiabetesOtherMeds: r.DiabetesOtherMeds,
			GallbladderIssues: cloneSelection(r.GallbladderIssues),
			AdditionalHistory: cloneSelection(r.AdditionalHistory),
		}, nil
	case StepLifestyle:
		return LifestyleForm{
			SpecificMedications:        cloneSelection(r.SpecificMedications),
			Smoker:                     r.Smoker,
			RecentInjectableWeightLoss: r.RecentInjectableWeightLoss,
		}, nil
	case StepContraception:
		return ContraceptionForm{Agreement: r.ContraceptionAgreement}, nil
	case StepImportantInfo:
		return ImportantInfoForm{Confirmed: r.ImportantInfoConfirmed}, nil
	case StepContact:
		return ContactForm{
			FullName:       r.FullName,
			Email:          r.Email,
			Phone:          r.Phone,
			ContactMethod:  r.ContactMethod,
			DataConsent:    r.DataConsent,
			TermsAgreement: r.TermsAgreement,
			Marketing:      r.MarketingConsent,
		}, nil
	default:
		return nil, fmt.Errorf("step %d out of range 1..%d", step, TotalSteps)
	}
}

// ContraceptionApplies reports whether the contraception step is part of the
// questionnaire for this record.
func ContraceptionApplies(r model.AnswerRecord) bool {
	return r.Sex == SexFemale
}

func refreshAge(r *model.AnswerRecord, today time.Time) {
	r.Age = nil
	if r.DOB == nil {
		return
	}
	if age, ok := ComputeAge(*r.DOB, today); ok {
		r.Age = &age
	}
}

func detailFor(answer, detail string) string {
	if answer != AnswerYes {
		return ""
	}
	return strings.TrimSpace(detail)
}

func optional(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}

func cloneSelection(sel model.Selection) model.Selection {
	if sel == nil {
		return nil
	}
	out := make(model.Selection, len(sel))
	copy(out, sel)
	return out
}

func cloneRecord(r model.AnswerRecord) model.AnswerRecord {
	out := r
	out.HeightCm = cloneFloat(r.HeightCm)
	out.WeightKg = cloneFloat(r.WeightKg)
	out.HighestWeightKg = cloneFloat(r.HighestWeightKg)
	out.TargetWeightKg = cloneFloat(r.TargetWeightKg)
	if r.DOB != nil {
		dob := *r.DOB
		out.DOB = &dob
	}
	if r.Age != nil {
		age := *r.Age
		out.Age = &age
	}
	out.Conditions = cloneSelection(r.Conditions)
	out.MedicalHistory = cloneSelection(r.MedicalHistory)
	out.GallbladderIssues = cloneSelection(r.GallbladderIssues)
	out.AdditionalHistory = cloneSelection(r.AdditionalHistory)
	out.SpecificMedications = cloneSelection(r.SpecificMedications)
	return out
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
