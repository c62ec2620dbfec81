package report

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteTable prints the semester cards followed by the overall CGPA line.
func WriteTable(w io.Writer, s Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, card := range s.Semesters {
		fmt.Fprintf(tw, "%s\tGPA: %.2f\tCREDITS: %s\n", card.Title, card.GPA, formatFloat(card.Credits))
		fmt.Fprintln(tw, "ID\tSUBJECT\tCREDITS\tGRADE\tMARKS\tFR\tGP")
		for _, row := range card.Subjects {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
				row.ID, dash(row.Name), dash(row.Credits.String()), gradeCell(row),
				dash(row.Marks.String()), yesNo(row.IsFR), gpCell(row.GP))
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "CGPA: %.2f  PERCENT: %.2f%%  CREDITS: %s\n",
		s.Overall.CGPA, s.Overall.Percent, formatFloat(s.Overall.Credits))
	if err != nil {
		return err
	}
	if line := Sparkline(s.Trend); line != "" {
		_, err = fmt.Fprintf(w, "TREND: %s\n", line)
	}
	return err
}

// gradeCell shows the picked grade, or the grade derived from marks in
// parentheses.
func gradeCell(row SubjectRow) string {
	if row.Grade != "" {
		return string(row.Grade)
	}
	if row.Effective != "" {
		return "(" + string(row.Effective) + ")"
	}
	return "-"
}

func gpCell(gp *float64) string {
	if gp == nil {
		return "-"
	}
	return formatFloat(*gp)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
