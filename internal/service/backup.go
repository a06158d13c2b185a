package service

import (
	"crypto/sha256"
	"database/sql"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/GLPer-Ltd/loganhealth-intake/internal/model"
)

// BackupSlot is the single named slot the last submission is written to.
const BackupSlot = "pe_logan_questionnaire_backup"

type BackupInfo struct {
	Path      string    `json:"path"`
	Format    string    `json:"format"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"`
}

// SaveBackup overwrites the backup slot with snap.
func SaveBackup(db *sql.DB, snap model.Snapshot) error {
	if snap.Timestamp.IsZero() {
		snap.Timestamp = time.Now()
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal backup snapshot: %w", err)
	}
	_, err = db.Exec(`
INSERT INTO backup_slots(name, payload_json, created_at)
VALUES(?, ?, ?)
ON CONFLICT(name) DO UPDATE SET payload_json=excluded.payload_json, created_at=excluded.created_at
`, BackupSlot, string(payload), snap.Timestamp.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save backup snapshot: %w", err)
	}
	return nil
}

// GetBackup reads the backup slot. The bool is false when the slot is empty.
func GetBackup(db *sql.DB) (model.Snapshot, bool, error) {
	var payload string
	err := db.QueryRow(`SELECT payload_json FROM backup_slots WHERE name = ?`, BackupSlot).Scan(&payload)
	if err == sql.ErrNoRows {
		return model.Snapshot{}, false, nil
	}
	if err != nil {
		return model.Snapshot{}, false, fmt.Errorf("get backup snapshot: %w", err)
	}
	var snap model.Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return model.Snapshot{}, false, fmt.Errorf("decode backup snapshot: %w", err)
	}
	return snap, true, nil
}

func ClearBackup(db *sql.DB) error {
	if _, err := db.Exec(`DELETE FROM backup_slots WHERE name = ?`, BackupSlot); err != nil {
		return fmt.Errorf("clear backup snapshot: %w", err)
	}
	return nil
}

// ExportBackup writes the backup slot to outPath, as the raw snapshot (json)
// or as the relay's label/value pairs (csv), next to a .sha256 checksum file.
func ExportBackup(db *sql.DB, outPath, format, source string) (BackupInfo, error) {
	if strings.TrimSpace(outPath) == "" {
		return BackupInfo{}, fmt.Errorf("export output path is required")
	}
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "csv" {
		return BackupInfo{}, fmt.Errorf("invalid export format %q (use json or csv)", format)
	}
	snap, ok, err := GetBackup(db)
	if err != nil {
		return BackupInfo{}, err
	}
	if !ok {
		return BackupInfo{}, fmt.Errorf("no backup snapshot to export")
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return BackupInfo{}, fmt.Errorf("create export directory: %w", err)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("create export file: %w", err)
	}
	switch format {
	case "json":
		err = writeSnapshotJSON(f, snap)
	case "csv":
		err = writeSubmissionCSV(f, FormatSubmission(snap, source))
	}
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close export file: %w", cerr)
	}
	if err != nil {
		return BackupInfo{}, err
	}

	checksum, err := fileSHA256(outPath)
	if err != nil {
		return BackupInfo{}, err
	}
	if err := os.WriteFile(outPath+".sha256", []byte(checksum+"\n"), 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write checksum file: %w", err)
	}
	st, err := os.Stat(outPath)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("stat export: %w", err)
	}
	return BackupInfo{Path: outPath, Format: format, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()}, nil
}

// VerifyExport checks an exported file against its .sha256 companion.
func VerifyExport(path string) error {
	expected, err := os.ReadFile(path + ".sha256")
	if err != nil {
		return fmt.Errorf("read checksum file: %w", err)
	}
	actual, err := fileSHA256(path)
	if err != nil {
		return err
	}
	if strings.TrimSpace(string(expected)) != actual {
		return fmt.Errorf("export checksum mismatch")
	}
	return nil
}

func writeSnapshotJSON(w io.Writer, snap model.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("write export json: %w", err)
	}
	return nil
}

func writeSubmissionCSV(w io.Writer, fields map[string]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"label", "value"}); err != nil {
		return fmt.Errorf("write export csv header: %w", err)
	}
	for _, label := range SubmissionLabels {
		if err := cw.Write([]string{label, fields[label]}); err != nil {
			return fmt.Errorf("write export csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush export csv: %w", err)
	}
	return nil
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for checksum: %w", err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
