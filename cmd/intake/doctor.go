package intake

import (
	"database/sql"
	"fmt"

	"github.com/GLPer-Ltd/loganhealth-intake/internal/service"
	"github.com/spf13/cobra"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run local data integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.RunDoctor(sqldb, doctorFix)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unknown config keys: %d\n", report.UnknownConfigKeys)
			fmt.Fprintf(cmd.OutOrStdout(), "Corrupt backup: %t\n", report.CorruptBackup)
			fmt.Fprintf(cmd.OutOrStdout(), "Unsent submissions: %d\n", report.UnsentSubmissions)
			if doctorFix {
				fmt.Fprintf(cmd.OutOrStdout(), "Fixed config keys: %d\n", report.FixedConfigKeys)
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared backup: %t\n", report.ClearedBackup)
				// Re-check after fixes so exit status reflects final state.
				report, err = service.RunDoctor(sqldb, false)
				if err != nil {
					return err
				}
			}
			if report.UnknownConfigKeys > 0 || report.CorruptBackup {
				return fmt.Errorf("doctor found integrity issues")
			}
			if report.UnsentSubmissions > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Unsent submissions can be recovered with `intake backup export`")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Attempt safe auto-fixes")
}
