package intake

import (
	"database/sql"
	"fmt"

	"github.com/GLPer-Ltd/loganhealth-intake/internal/model"
	"github.com/GLPer-Ltd/loganhealth-intake/internal/service"
	"github.com/spf13/cobra"
)

var (
	paymentPlan  string
	paymentName  string
	paymentEmail string
)

var paymentCmd = &cobra.Command{
	Use:   "payment",
	Short: "Print the pre-filled payment form link for the last submission",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			settings, err := service.LoadSettings(sqldb)
			if err != nil {
				return err
			}
			formURL, err := settings.PaymentURL(paymentPlan)
			if err != nil {
				return err
			}

			name, email := paymentName, paymentEmail
			if !cmd.Flags().Changed("name") || !cmd.Flags().Changed("email") {
				snap, ok, err := service.GetBackup(sqldb)
				if err != nil {
					return err
				}
				if ok {
					if snap.Eligible != model.VerdictEligible {
						return fmt.Errorf("payment is only available after an eligible result (last result: %s)", service.StatusLabel(snap.Eligible))
					}
					if !cmd.Flags().Changed("name") {
						name = snap.Data.FullName
					}
					if !cmd.Flags().Changed("email") {
						email = snap.Data.Email
					}
				}
			}

			link, err := service.PaymentHandoffURL(formURL, paymentPlan, name, email)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), link)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(paymentCmd)
	paymentCmd.Flags().StringVar(&paymentPlan, "plan", service.PlanOneOff, "Payment plan: one-off or subscription")
	paymentCmd.Flags().StringVar(&paymentName, "name", "", "Full name (defaults to the last submission)")
	paymentCmd.Flags().StringVar(&paymentEmail, "email", "", "Email (defaults to the last submission)")
}
