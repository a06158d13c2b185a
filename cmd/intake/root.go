package intake

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "intake",
	Short: "intake runs the Logan Health weight-loss consultation questionnaire",
	Long:  "intake walks a patient through the GLP-1 weight-loss questionnaire, decides eligibility, forwards the answers to the clinic and hands off to payment.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
}
