package intake

import (
	"database/sql"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/GLPer-Ltd/loganhealth-intake/internal/app"
	"github.com/GLPer-Ltd/loganhealth-intake/internal/db"
	"github.com/GLPer-Ltd/loganhealth-intake/internal/provider/relay"
	"github.com/GLPer-Ltd/loganhealth-intake/internal/service"
)

func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(sqldb)
}

// parseToday reads --today; empty means the wall clock.
func parseToday(value string) (func() time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Now, nil
	}
	day, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid --today %q (expected YYYY-MM-DD)", value)
	}
	// Keep the time of day so submission timestamps stay meaningful.
	return func() time.Time {
		now := time.Now()
		return time.Date(day.Year(), day.Month(), day.Day(), now.Hour(), now.Minute(), now.Second(), 0, time.Local)
	}, nil
}

// newCoordinator wires the backup slot and, when send is set, the relay client.
func newCoordinator(sqldb *sql.DB, settings service.Settings, send bool, logOut io.Writer) *service.Coordinator {
	c := &service.Coordinator{
		DB:     sqldb,
		Source: settings.SourceURL,
		Logger: log.New(logOut, "intake: ", log.LstdFlags),
	}
	if send {
		c.Relay = &relay.Client{Endpoint: settings.RelayEndpoint}
	}
	return c
}
