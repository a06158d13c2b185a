package service_test

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/GLPer-Ltd/loganhealth-intake/internal/db"
	"github.com/GLPer-Ltd/loganhealth-intake/internal/model"
	"github.com/GLPer-Ltd/loganhealth-intake/internal/service"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "intake.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}

var testToday = time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testToday }

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

// eligibleRecord is a complete record for a 36 year old man with a BMI of 34.6.
func eligibleRecord() model.AnswerRecord {
	return model.AnswerRecord{
		WeightLossReason: "health",
		WeightLossGoal:   "1to3.5stone",
		Height:           service.MetricHeight(170),
		Weight:           service.MetricWeight(100),
		HeightCm:         floatPtr(170),
		WeightKg:         floatPtr(100),
		DOB:              &model.DateOfBirth{Day: 1, Month: 1, Year: 1990},
		Age:              intPtr(36),
		Ethnicity:        "white",
		Sex:              service.SexMale,
		EatingDisorder:   service.AnswerNo,
		KidneyDisease:    service.AnswerNo,
		PregnantOrTrying: service.AnswerNo,
		Smoker:           service.AnswerNo,

		RecentInjectableWeightLoss: service.AnswerNo,
		ImportantInfoConfirmed:     true,

		FullName:       "Jane Doe",
		Email:          "jane@example.com",
		Phone:          "07123456789",
		ContactMethod:  service.ContactEmail,
		DataConsent:    true,
		TermsAgreement: true,
	}
}

// completeForms answers every step so that a replay reaches an eligible verdict.
func completeForms(sex string) map[int]service.StepForm {
	return map[int]service.StepForm{
		service.StepMotivation:    service.MotivationForm{Reason: "health", Goal: "upto1stone"},
		service.StepMeasurements:  service.MeasurementsForm{Height: service.MetricHeight(170), Weight: service.MetricWeight(100)},
		service.StepPersonal:      service.PersonalForm{DOB: model.DateOfBirth{Day: 1, Month: 1, Year: 1990}, Ethnicity: "white", Sex: sex},
		service.StepWeightHistory: service.WeightHistoryForm{},
		service.StepConditions:    service.ConditionsForm{Conditions: model.Selection{"none"}},
		service.StepSafety: service.SafetyForm{
			EatingDisorder:   service.AnswerNo,
			KidneyDisease:    service.AnswerNo,
			PregnantOrTrying: service.AnswerNo,
		},
		service.StepHistory:       service.HistoryForm{},
		service.StepLifestyle:     service.LifestyleForm{Smoker: service.AnswerNo, RecentInjectableWeightLoss: service.AnswerNo},
		service.StepContraception: service.ContraceptionForm{Agreement: service.AnswerYes},
		service.StepImportantInfo: service.ImportantInfoForm{Confirmed: true},
		service.StepContact: service.ContactForm{
			FullName:       "Jane Doe",
			Email:          "jane@example.com",
			Phone:          "07123 456789",
			DataConsent:    true,
			TermsAgreement: true,
		},
	}
}
