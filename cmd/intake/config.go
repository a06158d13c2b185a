package intake

import (
	"database/sql"
	"fmt"

	"github.com/GLPer-Ltd/loganhealth-intake/internal/service"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage intake local configuration",
}

var (
	cfgRelayEndpoint          string
	cfgPaymentURLOneOff       string
	cfgPaymentURLSubscription string
	cfgSourceURL              string
)

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set configuration values",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			updates := 0
			for _, u := range []struct {
				flag  string
				key   string
				value string
			}{
				{"relay-endpoint", service.ConfigRelayEndpoint, cfgRelayEndpoint},
				{"payment-url-one-off", service.ConfigPaymentURLOneOff, cfgPaymentURLOneOff},
				{"payment-url-subscription", service.ConfigPaymentURLSubscription, cfgPaymentURLSubscription},
				{"source-url", service.ConfigSourceURL, cfgSourceURL},
			} {
				if !cmd.Flags().Changed(u.flag) {
					continue
				}
				if err := service.SetConfig(sqldb, u.key, u.value); err != nil {
					return err
				}
				updates++
			}
			if updates == 0 {
				return fmt.Errorf("set at least one flag")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d config value(s)\n", updates)
			return nil
		})
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			s, err := service.LoadSettings(sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "KEY\tVALUE")
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", service.ConfigPaymentURLOneOff, s.PaymentURLOneOff)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", service.ConfigPaymentURLSubscription, s.PaymentURLSubscription)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", service.ConfigRelayEndpoint, s.RelayEndpoint)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", service.ConfigSourceURL, s.SourceURL)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd, configGetCmd)

	configSetCmd.Flags().StringVar(&cfgRelayEndpoint, "relay-endpoint", "", "Form relay endpoint submissions are posted to")
	configSetCmd.Flags().StringVar(&cfgPaymentURLOneOff, "payment-url-one-off", "", "Payment form for one-off purchases")
	configSetCmd.Flags().StringVar(&cfgPaymentURLSubscription, "payment-url-subscription", "", "Payment form for subscriptions")
	configSetCmd.Flags().StringVar(&cfgSourceURL, "source-url", "", "Value reported as Source URL in submissions")
}
