package service_test

import (
	"testing"

	"github.com/GLPer-Ltd/loganhealth-intake/internal/model"
	"github.com/GLPer-Ltd/loganhealth-intake/internal/service"
)

func TestRunDoctorReportsAndFixes(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if _, err := db.Exec(`INSERT INTO app_config(key, value) VALUES('barcode_provider', 'usda')`); err != nil {
		t.Fatalf("seed config: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO backup_slots(name, payload_json, created_at) VALUES(?, '{"data": 3}', '2026-10-16T00:00:00Z')`, service.BackupSlot); err != nil {
		t.Fatalf("seed backup: %v", err)
	}
	for _, a := range []model.SubmissionAttempt{
		{SessionID: "a", Status: service.SubmissionFailed},
		{SessionID: "a", Status: service.SubmissionFailed},
		{SessionID: "b", Status: service.SubmissionFailed},
		{SessionID: "b", Status: service.SubmissionSent},
	} {
		if _, err := service.RecordSubmissionAttempt(db, a); err != nil {
			t.Fatalf("seed attempt: %v", err)
		}
	}

	report, err := service.RunDoctor(db, false)
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if report.UnknownConfigKeys != 1 || !report.CorruptBackup || report.UnsentSubmissions != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}

	report, err = service.RunDoctor(db, true)
	if err != nil {
		t.Fatalf("doctor fix: %v", err)
	}
	if report.FixedConfigKeys != 1 || !report.ClearedBackup {
		t.Fatalf("unexpected fix report: %+v", report)
	}

	report, err = service.RunDoctor(db, false)
	if err != nil {
		t.Fatalf("doctor recheck: %v", err)
	}
	if report.UnknownConfigKeys != 0 || report.CorruptBackup {
		t.Fatalf("expected clean report after fix, got %+v", report)
	}
}
