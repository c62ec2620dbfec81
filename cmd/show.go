package cmd

import (
	"github.com/spf13/cobra"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print every semester with its GPA and the overall CGPA",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printSummary(cmd, tracker.Summary())
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
