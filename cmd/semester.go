package cmd

import (
	"strconv"

	"github.com/openswoop/cgpa/pkg/report"
	"github.com/spf13/cobra"
)

var assumeYes bool

var semesterCmd = &cobra.Command{
	Use:   "semester",
	Short: "Add or remove semesters",
}

var semesterAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Append a semester with two blank subjects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printSummary(cmd, tracker.AddSemester())
	},
}

var semesterRmCmd = &cobra.Command{
	Use:   "rm SEMESTER",
	Short: "Remove a semester and all of its subjects",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		if !assumeYes && !confirm(cmd, "Remove "+report.Title(id)+"?") {
			return nil
		}
		summary, err := tracker.RemoveSemester(id)
		if err != nil {
			return err
		}
		return printSummary(cmd, summary)
	},
}

func init() {
	rootCmd.AddCommand(semesterCmd)
	semesterCmd.AddCommand(semesterAddCmd, semesterRmCmd)

	semesterRmCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")
}
