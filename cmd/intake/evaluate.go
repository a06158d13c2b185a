package intake

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/GLPer-Ltd/loganhealth-intake/internal/service"
	"github.com/spf13/cobra"
)

var (
	evalFile  string
	evalSend  bool
	evalToday string
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Run a questionnaire from an answers file and show the verdict",
	RunE: func(cmd *cobra.Command, args []string) error {
		if evalFile == "" {
			return fmt.Errorf("--file is required")
		}
		now, err := parseToday(evalToday)
		if err != nil {
			return err
		}
		f, err := os.Open(evalFile)
		if err != nil {
			return fmt.Errorf("open answers file: %w", err)
		}
		answers, err := service.ReadAnswerFile(f)
		f.Close()
		if err != nil {
			return err
		}
		forms, err := answers.Forms()
		if err != nil {
			return err
		}

		return withDB(func(sqldb *sql.DB) error {
			settings, err := service.LoadSettings(sqldb)
			if err != nil {
				return err
			}
			s := service.NewSession(service.SessionOptions{
				Now:       now,
				Submitter: newCoordinator(sqldb, settings, evalSend, cmd.ErrOrStderr()),
			})
			out, err := service.Replay(cmd.Context(), s, forms)
			if err != nil {
				return err
			}
			if !out.Result.OK {
				return fmt.Errorf("step %d (%s): %s", out.Result.Step, service.StepTitle(out.Result.Step), out.Result.Message)
			}
			printResults(cmd.OutOrStdout(), s.Record(), out.Eligibility)
			reportDelivery(cmd.Context(), cmd.OutOrStdout(), out.Delivery)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
	evaluateCmd.Flags().StringVar(&evalFile, "file", "", "YAML answers file")
	evaluateCmd.Flags().BoolVar(&evalSend, "send", false, "Post the submission to the configured relay")
	evaluateCmd.Flags().StringVar(&evalToday, "today", "", "Evaluate as of this date (YYYY-MM-DD)")
}
