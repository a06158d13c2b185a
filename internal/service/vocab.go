package service

import (
	"fmt"
	"strings"
)

type Option struct {
	Value string
	Label string
}

// Vocabulary is a fixed, ordered set of answer values with display labels.
type Vocabulary struct {
	name    string
	options []Option
}

func newVocabulary(name string, options ...Option) Vocabulary {
	return Vocabulary{name: name, options: options}
}

func (v Vocabulary) Name() string {
	return v.name
}

func (v Vocabulary) Options() []Option {
	out := make([]Option, len(v.options))
	copy(out, v.options)
	return out
}

func (v Vocabulary) Has(value string) bool {
	return v.index(value) >= 0
}

// Label returns the display label, or the raw value when it is not in the vocabulary.
func (v Vocabulary) Label(value string) string {
	if i := v.index(value); i >= 0 {
		return v.options[i].Label
	}
	return value
}

// Parse normalizes an answer and rejects values outside the vocabulary. An
// empty answer is left empty so the step validator can report it.
func (v Vocabulary) Parse(value string) (string, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return "", nil
	}
	if !v.Has(value) {
		return "", fmt.Errorf("unknown %s %q", v.name, value)
	}
	return value, nil
}

func (v Vocabulary) index(value string) int {
	for i, o := range v.options {
		if o.Value == value {
			return i
		}
	}
	return -1
}

const (
	AnswerYes    = "yes"
	AnswerNo     = "no"
	AnswerUnsure = "unsure"

	SexMale   = "male"
	SexFemale = "female"

	ContactEmail = "email"
)

var (
	WeightLossReasons = newVocabulary("weight loss reason",
		Option{"health", "Improve my long-term health"},
		Option{"confidence", "Feel more confident in my body"},
		Option{"energy", "Feel stronger, more energised, and rested"},
		Option{"mobility", "Improve my mobility and reduce pain"},
		Option{"exercise", "Make it easier to move around and exercise"},
		Option{"healthissues", "Address specific health issues"},
		Option{"mentalwellbeing", "Improve my mental wellbeing"},
		Option{"other", "Other"},
	)

	WeightLossGoals = newVocabulary("weight loss goal",
		Option{"upto1stone", "Up to 1 stone (approx. 6.5 kg)"},
		Option{"1to3.5stone", "1 to 3.5 stone (approx. 6.5 to 22 kg)"},
		Option{"morethan3.5stone", "More than 3.5 stone (approx. 22 kg)"},
		Option{"notsure", "Not sure, just want to lose some weight"},
	)

	Ethnicities = newVocabulary("ethnicity",
		Option{"prefernottosay", "Prefer not to say"},
		Option{"asian", "Asian or Asian British"},
		Option{"black", "Black, Black British, Caribbean, African"},
		Option{"middleeastern", "Middle Eastern"},
		Option{"white", "White"},
		Option{"noneofabove", "None of the above"},
	)

	Sexes = newVocabulary("sex",
		Option{SexMale, "Male"},
		Option{SexFemale, "Female"},
	)

	ContactMethods = newVocabulary("contact method",
		Option{ContactEmail, "Email"},
		Option{"phone", "Phone call"},
		Option{"sms", "Text message"},
	)

	// Safety screening and the thyroid/liver and diabetes questions.
	ScreeningAnswers = newVocabulary("answer",
		Option{AnswerYes, "Yes"},
		Option{AnswerNo, "No"},
		Option{AnswerUnsure, "Not sure"},
	)

	YesNo = newVocabulary("yes/no answer",
		Option{AnswerYes, "Yes"},
		Option{AnswerNo, "No"},
	)
)

var (
	Conditions = newCheckboxGroup("condition", "none",
		Option{"type2diabetes", "Type 2 Diabetes"},
		Option{"highbloodpressure", "High Blood Pressure"},
		Option{"heartdisease", "Heart Disease"},
		Option{"thyroid", "Thyroid Conditions"},
		Option{"pancreatitis", "Pancreatitis (current or history)"},
		Option{"prediabetes", "Prediabetes"},
		Option{"type1diabetes", "Type 1 Diabetes"},
		Option{"highcholesterol", "High Cholesterol"},
		Option{"previousstroke", "Previous Stroke"},
		Option{"sleepapnoea", "Obstructive Sleep Apnoea"},
		Option{"acidreflux", "Acid Reflux or GORD"},
		Option{"masld", "MASLD (Metabolic Dysfunction-Associated Steatotic Liver Disease)"},
		Option{"osteoarthritis", "Osteoarthritis"},
		Option{"depression", "Depression (on regular medication)"},
		Option{"pcos", "Polycystic Ovary Syndrome (PCOS)"},
		Option{"none", "None of these"},
	)

	MedicalHistory = newCheckboxGroup("medical history item", "none_history",
		Option{"weightlosssurgery", "Weight loss procedures/surgery in last 12 months"},
		Option{"thyroidcancer", "Medullary thyroid cancer or MEN2 syndrome history"},
		Option{"activecancer", "Cancer currently being treated"},
		Option{"retinopathy", "Active retinopathy"},
		Option{"none_history", "None of the above"},
	)

	GallbladderIssues = newCheckboxGroup("gallbladder issue", "none_gallbladder",
		Option{"gallstones", "Gallstones (not removed)"},
		Option{"blockedbile", "Blocked bile flow (cholelithiasis)"},
		Option{"gallbladderinfection", "Gallbladder infection (cholecystitis)"},
		Option{"gallbladdersurgery", "Gallbladder surgery in past 12 months"},
		Option{"none_gallbladder", "None of the above"},
	)

	AdditionalHistory = newCheckboxGroup("additional history item", "none_additional",
		Option{"chronickidney", "Chronic kidney disease (eGFR < 30ml/min)"},
		Option{"severegiissue", "Severe gastrointestinal disease / IBD / gastroparesis"},
		Option{"malabsorption", "Chronic malabsorption syndrome"},
		Option{"livercirrhosis", "Liver cirrhosis or transplant"},
		Option{"endocrinedisorder", "Endocrine (hormone) disorder"},
		Option{"alcoholrehab", "Treatment/rehabilitation for excessive alcohol use"},
		Option{"cognitiveimpairment", "Cognitive or memory impairment"},
		Option{"none_additional", "None of the above"},
	)

	SpecificMedications = newCheckboxGroup("medication", "none_meds",
		Option{"amiodarone", "Amiodarone"},
		Option{"carbamazepine", "Carbamazepine"},
		Option{"ciclosporin", "Ciclosporin"},
		Option{"clozapine", "Clozapine"},
		Option{"digoxin", "Digoxin"},
		Option{"fenfluramine", "Fenfluramine"},
		Option{"lithium", "Lithium"},
		Option{"mycophenolate", "Mycophenolate mofetil"},
		Option{"methotrexate", "Oral methotrexate"},
		Option{"phenobarbital", "Phenobarbital"},
		Option{"phenytoin", "Phenytoin"},
		Option{"somatrogon", "Somatrogon"},
		Option{"tacrolimus", "Tacrolimus"},
		Option{"theophylline", "Theophylline"},
		Option{"warfarin", "Warfarin"},
		Option{"none_meds", "None of the above"},
	)
)

// CheckboxGroups lists every group that carries a "none" sentinel.
func CheckboxGroups() []CheckboxGroup {
	return []CheckboxGroup{Conditions, MedicalHistory, GallbladderIssues, AdditionalHistory, SpecificMedications}
}
