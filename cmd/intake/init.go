package intake

import (
	"fmt"
	"strings"

	"github.com/GLPer-Ltd/loganhealth-intake/internal/app"
	"github.com/GLPer-Ltd/loganhealth-intake/internal/db"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize local intake database",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		version, err := db.SchemaVersion(sqldb)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Initialized intake database at %s (schema v%d)\n", path, version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

// resolveDBPath prefers --db, then INTAKE_DB_PATH, then the user config dir.
func resolveDBPath() (string, error) {
	if p := strings.TrimSpace(dbPath); p != "" {
		return p, nil
	}
	return app.DefaultDBPath()
}
