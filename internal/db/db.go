package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open opens the intake database with secure_delete on, so a cleared backup
// is zeroed on disk.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open intake database: %w", err)
	}
	// The relay goroutine logs attempts while the wizard may still be writing.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping intake database: %w", err)
	}
	for _, pragma := range []string{
		`PRAGMA busy_timeout = 5000;`,
		`PRAGMA secure_delete = ON;`,
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply %s: %w", pragma, err)
		}
	}
	return db, nil
}
