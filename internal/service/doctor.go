package service

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/GLPer-Ltd/loganhealth-intake/internal/model"
)

type DoctorReport struct {
	UnknownConfigKeys int
	CorruptBackup     bool
	UnsentSubmissions int
	FixedConfigKeys   int
	ClearedBackup     bool
}

// RunDoctor checks the local database for problems the CLI cannot recover from
// on its own. With fix set, unknown config keys are deleted and an unreadable
// backup slot is cleared. Unsent submissions are only reported.
func RunDoctor(db *sql.DB, fix bool) (DoctorReport, error) {
	report := DoctorReport{}

	stored, err := ListConfig(db)
	if err != nil {
		return report, fmt.Errorf("doctor config check: %w", err)
	}
	var unknown []string
	for key := range stored {
		if _, ok := configDefaults[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	report.UnknownConfigKeys = len(unknown)

	var payload string
	err = db.QueryRow(`SELECT payload_json FROM backup_slots WHERE name = ?`, BackupSlot).Scan(&payload)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return report, fmt.Errorf("doctor backup check: %w", err)
	default:
		var snap model.Snapshot
		if json.Unmarshal([]byte(payload), &snap) != nil || snap.SessionID == "" {
			report.CorruptBackup = true
		}
	}

	// Sessions whose every attempt failed.
	if err := db.QueryRow(`
SELECT COUNT(1) FROM (
  SELECT session_id
  FROM submission_log
  GROUP BY session_id
  HAVING SUM(CASE WHEN status = 'sent' THEN 1 ELSE 0 END) = 0
)
`).Scan(&report.UnsentSubmissions); err != nil {
		return report, fmt.Errorf("doctor submission check: %w", err)
	}

	if !fix {
		return report, nil
	}
	if len(unknown) > 0 {
		tx, err := db.Begin()
		if err != nil {
			return report, fmt.Errorf("doctor fix begin tx: %w", err)
		}
		for _, key := range unknown {
			if _, err := tx.Exec(`DELETE FROM app_config WHERE key = ?`, key); err != nil {
				_ = tx.Rollback()
				return report, fmt.Errorf("doctor fix config key %q: %w", key, err)
			}
			report.FixedConfigKeys++
		}
		if err := tx.Commit(); err != nil {
			return report, fmt.Errorf("doctor fix commit: %w", err)
		}
	}
	if report.CorruptBackup {
		if err := ClearBackup(db); err != nil {
			return report, err
		}
		report.ClearedBackup = true
	}
	return report, nil
}
