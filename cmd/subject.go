package cmd

import (
	"strconv"

	"github.com/openswoop/cgpa/pkg/session"
	"github.com/spf13/cobra"
)

var subjectCmd = &cobra.Command{
	Use:   "subject",
	Short: "Add, remove or edit the subjects of a semester",
}

var subjectAddCmd = &cobra.Command{
	Use:   "add SEMESTER",
	Short: "Append a blank subject worth 3 credits",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		summary, err := tracker.AddSubject(ids[0])
		if err != nil {
			return err
		}
		return printSummary(cmd, summary)
	},
}

var subjectRmCmd = &cobra.Command{
	Use:   "rm SEMESTER SUBJECT",
	Short: "Remove a subject",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		summary, err := tracker.RemoveSubject(ids[0], ids[1])
		if err != nil {
			return err
		}
		return printSummary(cmd, summary)
	},
}

var subjectSetCmd = &cobra.Command{
	Use:   "set SEMESTER SUBJECT FIELD VALUE",
	Short: "Set the name, credits, grade, marks or isFR of a subject",
	Long: `Sets one field of a subject. FIELD is one of name, credits, grade,
marks or isFR (fr for short). Picking the FR grade marks the subject
as withdrawn and setting isFR to true sets the FR grade. Use an empty
VALUE ("") to clear credits, grade or marks.`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args[:2])
		if err != nil {
			return err
		}
		field, err := session.ParseField(args[2])
		if err != nil {
			return err
		}
		summary, err := tracker.UpdateSubject(ids[0], ids[1], field, args[3])
		if err != nil {
			return err
		}
		return printSummary(cmd, summary)
	},
}

func parseIDs(args []string) ([]int, error) {
	ids := make([]int, len(args))
	for i, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

func init() {
	rootCmd.AddCommand(subjectCmd)
	subjectCmd.AddCommand(subjectAddCmd, subjectRmCmd, subjectSetCmd)
}
