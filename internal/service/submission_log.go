package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/GLPer-Ltd/loganhealth-intake/internal/model"
)

const (
	SubmissionSent   = "sent"
	SubmissionFailed = "failed"
)

func RecordSubmissionAttempt(db *sql.DB, a model.SubmissionAttempt) (int64, error) {
	if strings.TrimSpace(a.SessionID) == "" {
		return 0, fmt.Errorf("session id is required")
	}
	if a.Status != SubmissionSent && a.Status != SubmissionFailed {
		return 0, fmt.Errorf("invalid submission status %q", a.Status)
	}
	if a.AttemptedAt.IsZero() {
		a.AttemptedAt = time.Now()
	}
	res, err := db.Exec(`
INSERT INTO submission_log(session_id, status, http_status, error, attempted_at)
VALUES(?, ?, ?, ?, ?)
`, a.SessionID, a.Status, a.HTTPStatus, a.Error, a.AttemptedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("record submission attempt: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve submission attempt id: %w", err)
	}
	return id, nil
}

func ListSubmissionAttempts(db *sql.DB, limit int) ([]model.SubmissionAttempt, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Query(`
SELECT id, session_id, status, http_status, IFNULL(error, ''), attempted_at
FROM submission_log
ORDER BY attempted_at DESC, id DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list submission attempts: %w", err)
	}
	defer rows.Close()

	items := make([]model.SubmissionAttempt, 0)
	for rows.Next() {
		var a model.SubmissionAttempt
		var attemptedRaw string
		if err := rows.Scan(&a.ID, &a.SessionID, &a.Status, &a.HTTPStatus, &a.Error, &attemptedRaw); err != nil {
			return nil, fmt.Errorf("scan submission attempt: %w", err)
		}
		attempted, err := time.Parse(time.RFC3339, attemptedRaw)
		if err != nil {
			return nil, fmt.Errorf("parse attempted_at: %w", err)
		}
		a.AttemptedAt = attempted
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submission attempts: %w", err)
	}
	return items, nil
}
