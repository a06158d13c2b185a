package service

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/GLPer-Ltd/loganhealth-intake/internal/model"
)

// AnswerFile is a whole questionnaire written down ahead of time, one section
// per step. It is replayed through a Session, so every step is still validated.
type AnswerFile struct {
	Motivation struct {
		Reason string `yaml:"reason"`
		Goal   string `yaml:"goal"`
	} `yaml:"motivation"`

	Measurements struct {
		Height heightEntry `yaml:"height"`
		Weight weightEntry `yaml:"weight"`
	} `yaml:"measurements"`

	Personal struct {
		DOB       model.DateOfBirth `yaml:"dob"`
		Ethnicity string            `yaml:"ethnicity"`
		Sex       string            `yaml:"sex"`
	} `yaml:"personal"`

	WeightHistory struct {
		Highest weightEntry `yaml:"highest"`
		Target  weightEntry `yaml:"target"`
	} `yaml:"weight_history"`

	Conditions []string `yaml:"conditions"`

	Safety struct {
		EatingDisorder          string `yaml:"eating_disorder"`
		EatingDisorderDetails   string `yaml:"eating_disorder_details"`
		KidneyDisease           string `yaml:"kidney_disease"`
		KidneyDiseaseDetails    string `yaml:"kidney_disease_details"`
		PregnantOrTrying        string `yaml:"pregnant_or_trying"`
		PregnantOrTryingDetails string `yaml:"pregnant_or_trying_details"`
		OtherConditions         string `yaml:"other_conditions"`
		Medications             string `yaml:"medications"`
		Allergies               string `yaml:"allergies"`
	} `yaml:"safety"`

	History struct {
		MedicalHistory    []string `yaml:"medical_history"`
		ThyroidOrLiver    string   `yaml:"thyroid_or_liver"`
		DiabetesInsulin   string   `yaml:"diabetes_insulin"`
		DiabetesOtherMeds string   `yaml:"diabetes_other_meds"`
		GallbladderIssues []string `yaml:"gallbladder_issues"`
		AdditionalHistory []string `yaml:"additional_history"`
	} `yaml:"history"`

	Lifestyle struct {
		SpecificMedications        []string `yaml:"specific_medications"`
		Smoker                     string   `yaml:"smoker"`
		RecentInjectableWeightLoss string   `yaml:"recent_injectable_weight_loss"`
	} `yaml:"lifestyle"`

	Contraception string `yaml:"contraception"`

	ImportantInfoConfirmed bool `yaml:"important_info_confirmed"`

	Contact struct {
		FullName       string `yaml:"full_name"`
		Email          string `yaml:"email"`
		Phone          string `yaml:"phone"`
		ContactMethod  string `yaml:"contact_method"`
		DataConsent    bool   `yaml:"data_consent"`
		TermsAgreement bool   `yaml:"terms_agreement"`
		Marketing      bool   `yaml:"marketing"`
	} `yaml:"contact"`
}

type heightEntry struct {
	Unit   string  `yaml:"unit"`
	Cm     float64 `yaml:"cm"`
	Feet   float64 `yaml:"feet"`
	Inches float64 `yaml:"inches"`
}

type weightEntry struct {
	Unit   string  `yaml:"unit"`
	Kg     float64 `yaml:"kg"`
	Stone  float64 `yaml:"stone"`
	Pounds float64 `yaml:"pounds"`
}

func ReadAnswerFile(r io.Reader) (AnswerFile, error) {
	var f AnswerFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return AnswerFile{}, fmt.Errorf("decode answer file: %w", err)
	}
	return f, nil
}

// Forms converts the file into one form per step, indexed by step number.
// Unknown answers and checkbox tags are rejected here rather than later.
func (f AnswerFile) Forms() (map[int]StepForm, error) {
	p := &answerParser{}

	height := p.height(f.Measurements.Height)
	weight := p.weight(f.Measurements.Weight)
	highest := p.weight(f.WeightHistory.Highest)
	target := p.weight(f.WeightHistory.Target)

	forms := map[int]StepForm{
		StepMotivation: MotivationForm{
			Reason: p.enum(WeightLossReasons, f.Motivation.Reason),
			Goal:   p.enum(WeightLossGoals, f.Motivation.Goal),
		},
		StepMeasurements: MeasurementsForm{Height: height, Weight: weight},
		StepPersonal: PersonalForm{
			DOB:       p.dob(f.Personal.DOB),
			Ethnicity: p.enum(Ethnicities, f.Personal.Ethnicity),
			Sex:       p.enum(Sexes, f.Personal.Sex),
		},
		StepWeightHistory: WeightHistoryForm{Highest: highest, Target: target},
		StepConditions:    ConditionsForm{Conditions: p.selection(Conditions, f.Conditions)},
		StepSafety: SafetyForm{
			EatingDisorder:          p.enum(ScreeningAnswers, f.Safety.EatingDisorder),
			EatingDisorderDetails:   f.Safety.EatingDisorderDetails,
			KidneyDisease:           p.enum(ScreeningAnswers, f.Safety.KidneyDisease),
			KidneyDiseaseDetails:    f.Safety.KidneyDiseaseDetails,
			PregnantOrTrying:        p.enum(ScreeningAnswers, f.Safety.PregnantOrTrying),
			PregnantOrTryingDetails: f.Safety.PregnantOrTryingDetails,
			OtherConditions:         f.Safety.OtherConditions,
			Medications:             f.Safety.Medications,
			Allergies:               f.Safety.Allergies,
		},
		StepHistory: HistoryForm{
			MedicalHistory:    p.selection(MedicalHistory, f.History.MedicalHistory),
			ThyroidOrLiver:    p.enum(ScreeningAnswers, f.History.ThyroidOrLiver),
			DiabetesInsulin:   p.enum(ScreeningAnswers, f.History.DiabetesInsulin),
			DiabetesOtherMeds: p.enum(ScreeningAnswers, f.History.DiabetesOtherMeds),
			GallbladderIssues: p.selection(GallbladderIssues, f.History.GallbladderIssues),
			AdditionalHistory: p.selection(AdditionalHistory, f.History.AdditionalHistory),
		},
		StepLifestyle: LifestyleForm{
			SpecificMedications:        p.selection(SpecificMedications, f.Lifestyle.SpecificMedications),
			Smoker:                     p.enum(YesNo, f.Lifestyle.Smoker),
			RecentInjectableWeightLoss: p.enum(YesNo, f.Lifestyle.RecentInjectableWeightLoss),
		},
		StepContraception: ContraceptionForm{Agreement: p.enum(YesNo, f.Contraception)},
		StepImportantInfo: ImportantInfoForm{Confirmed: f.ImportantInfoConfirmed},
		StepContact: ContactForm{
			FullName:       f.Contact.FullName,
			Email:          f.Contact.Email,
			Phone:          f.Contact.Phone,
			ContactMethod:  p.enum(ContactMethods, f.Contact.ContactMethod),
			DataConsent:    f.Contact.DataConsent,
			TermsAgreement: f.Contact.TermsAgreement,
			Marketing:      f.Contact.Marketing,
		},
	}
	if p.err != nil {
		return nil, p.err
	}
	return forms, nil
}

// answerParser keeps the first error so Forms reads as a single expression.
type answerParser struct {
	err error
}

func (p *answerParser) enum(v Vocabulary, value string) string {
	out, err := v.Parse(value)
	p.keep(err)
	return out
}

func (p *answerParser) selection(g CheckboxGroup, tags []string) model.Selection {
	sel, err := g.Select(tags...)
	p.keep(err)
	return sel
}

// dob leaves an absent date for step validation to report.
func (p *answerParser) dob(d model.DateOfBirth) model.DateOfBirth {
	if !d.IsZero() && !d.Complete() {
		p.keep(fmt.Errorf("invalid dob %d/%d/%d: day must be 1-31, month 1-12 and year set", d.Day, d.Month, d.Year))
	}
	return d
}

func (p *answerParser) height(e heightEntry) model.Measurement {
	unit := p.unit(e.Unit, e.Cm == 0 && (e.Feet > 0 || e.Inches > 0))
	if unit == model.UnitImperial {
		return ImperialHeight(e.Feet, e.Inches)
	}
	return MetricHeight(e.Cm)
}

func (p *answerParser) weight(e weightEntry) model.Measurement {
	unit := p.unit(e.Unit, e.Kg == 0 && (e.Stone > 0 || e.Pounds > 0))
	if unit == model.UnitImperial {
		return ImperialWeight(e.Stone, e.Pounds)
	}
	return MetricWeight(e.Kg)
}

func (p *answerParser) unit(unit string, looksImperial bool) model.MeasureUnit {
	if unit == "" && looksImperial {
		return model.UnitImperial
	}
	u, err := ParseMeasureUnit(unit)
	p.keep(err)
	return u
}

func (p *answerParser) keep(err error) {
	if p.err == nil && err != nil {
		p.err = err
	}
}
