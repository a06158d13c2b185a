package intake

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/GLPer-Ltd/loganhealth-intake/internal/service"
	"github.com/spf13/cobra"
)

var submissionsLimit int

var submissionsCmd = &cobra.Command{
	Use:   "submissions",
	Short: "List relay delivery attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			items, err := service.ListSubmissionAttempts(sqldb, submissionsLimit)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tTIME\tSESSION\tSTATUS\tHTTP\tERROR")
			for _, it := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\t%d\t%s\n",
					it.ID, it.AttemptedAt.Format(time.RFC3339), it.SessionID, it.Status, it.HTTPStatus, it.Error)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(submissionsCmd)
	submissionsCmd.Flags().IntVar(&submissionsLimit, "limit", 20, "Maximum attempts to show")
}
