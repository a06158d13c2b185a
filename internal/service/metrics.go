package service

import (
	"time"

	"github.com/GLPer-Ltd/loganhealth-intake/internal/model"
)

type BMICategory string

const (
	BMIUnderweight BMICategory = "Underweight"
	BMIHealthy     BMICategory = "Healthy"
	BMIOverweight  BMICategory = "Overweight"
	BMIObeseI      BMICategory = "Obese (Class I)"
	BMIObeseII     BMICategory = "Obese (Class II)"
	BMIObeseIII    BMICategory = "Obese (Class III)"
)

// ComputeAge counts full years elapsed between dob and today. A date of birth
// with any component missing has no age.
func ComputeAge(dob model.DateOfBirth, today time.Time) (int, bool) {
	if !dob.Complete() {
		return 0, false
	}
	// time.Date rolls impossible days over (31 Feb -> 3 Mar), like a browser Date.
	born := time.Date(dob.Year, time.Month(dob.Month), dob.Day, 0, 0, 0, 0, today.Location())
	age := today.Year() - born.Year()
	if today.Month() < born.Month() || (today.Month() == born.Month() && today.Day() < born.Day()) {
		age--
	}
	return age, true
}

// ComputeBMI is weight / height(m)^2, defined only for positive inputs.
func ComputeBMI(heightCm, weightKg float64) (float64, bool) {
	if heightCm <= 0 || weightKg <= 0 {
		return 0, false
	}
	heightM := heightCm / 100
	return weightKg / (heightM * heightM), true
}

func ClassifyBMI(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25:
		return BMIHealthy
	case bmi < 30:
		return BMIOverweight
	case bmi < 35:
		return BMIObeseI
	case bmi < 40:
		return BMIObeseII
	default:
		return BMIObeseIII
	}
}

// RecordBMI derives the current BMI from the record's saved height and weight.
func RecordBMI(r model.AnswerRecord) (float64, bool) {
	if r.HeightCm == nil || r.WeightKg == nil {
		return 0, false
	}
	return ComputeBMI(*r.HeightCm, *r.WeightKg)
}

// highestBMI falls back to the current BMI when no highest weight was given.
func highestBMI(r model.AnswerRecord, current float64) float64 {
	if r.HighestWeightKg == nil || r.HeightCm == nil {
		return current
	}
	if bmi, ok := ComputeBMI(*r.HeightCm, *r.HighestWeightKg); ok {
		return bmi
	}
	return current
}
