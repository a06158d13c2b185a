package intake

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/GLPer-Ltd/loganhealth-intake/internal/service"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Inspect the last-submission backup slot",
}

var (
	backupOut    string
	backupFormat string
)

var backupGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the backed-up submission",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			snap, ok, err := service.GetBackup(sqldb)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "No backup stored")
				return nil
			}
			r := snap.Data
			fmt.Fprintf(cmd.OutOrStdout(), "Session: %s\n", snap.SessionID)
			fmt.Fprintf(cmd.OutOrStdout(), "Saved: %s\n", snap.Timestamp.Format(time.RFC3339))
			fmt.Fprintf(cmd.OutOrStdout(), "Name: %s\n", r.FullName)
			fmt.Fprintf(cmd.OutOrStdout(), "Email: %s\n", r.Email)
			fmt.Fprintf(cmd.OutOrStdout(), "Status: %s\n", service.StatusLabel(snap.Eligible))
			fmt.Fprintf(cmd.OutOrStdout(), "Reason: %s\n", snap.Reason)
			return nil
		})
	},
}

var backupClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the backed-up submission",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.ClearBackup(sqldb); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared backup")
			return nil
		})
	},
}

var backupExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the backed-up submission with a checksum file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		out := backupOut
		if out == "" {
			ext := backupFormat
			if ext == "" {
				ext = "json"
			}
			out = filepath.Join(filepath.Dir(path), "exports", fmt.Sprintf("intake-%s.%s", time.Now().Format("20060102-150405"), ext))
		}
		return withDB(func(sqldb *sql.DB) error {
			settings, err := service.LoadSettings(sqldb)
			if err != nil {
				return err
			}
			info, err := service.ExportBackup(sqldb, out, backupFormat, settings.SourceURL)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported backup: %s\n", info.Path)
			fmt.Fprintf(cmd.OutOrStdout(), "Checksum: %s\n", info.Checksum)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupGetCmd, backupClearCmd, backupExportCmd)

	backupExportCmd.Flags().StringVar(&backupOut, "out", "", "Output file path")
	backupExportCmd.Flags().StringVar(&backupFormat, "format", "json", "Export format: json or csv")
}
