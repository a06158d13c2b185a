package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	appDirName = "loganhealth-intake"
	dbFileName = "intake.db"

	// DBPathEnv overrides the default database location when --db is not given.
	DBPathEnv = "INTAKE_DB_PATH"
)

func DefaultDBPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(DBPathEnv)); p != "" {
		return p, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName, dbFileName), nil
}

// EnsureDBDir creates the database directory readable only by the owner.
func EnsureDBDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return nil
}
