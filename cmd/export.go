package cmd

import (
	"fmt"
	"os"

	"github.com/openswoop/cgpa/pkg/report"
	"github.com/openswoop/cgpa/pkg/session"
	"github.com/spf13/cobra"
)

var output string

// stdout is the output name that writes to the terminal instead of a file
const stdout = "-"

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a JSON backup of every semester",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := tracker.Export()
		if err != nil {
			return err
		}
		return writeOutput(cmd, outputName(session.ExportFileName), data)
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write a CSV file with one row per subject",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		summary := tracker.Summary()
		name := outputName(report.CsvFileName)
		if name == stdout {
			data, err := report.MarshalCsv(summary)
			if err != nil {
				return err
			}
			return writeOutput(cmd, name, data)
		}
		if err := report.WriteCsv(report.CsvRows(summary), name); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Wrote to file", name)
		return nil
	},
}

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Draw the semester GPA trend as an SVG file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		trend := tracker.Summary().Trend
		svg, ok := report.Chart(trend)
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Not enough data: the chart needs two or more semesters with grades.")
			return nil
		}
		if err := writeOutput(cmd, outputName(report.ChartFileName), []byte(svg)); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), report.Sparkline(trend))
		return nil
	},
}

func outputName(def string) string {
	if output == "" {
		return def
	}
	return output
}

func writeOutput(cmd *cobra.Command, name string, data []byte) error {
	if name == stdout {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Wrote to file", name)
	return nil
}

func init() {
	for _, cmd := range []*cobra.Command{exportCmd, reportCmd, chartCmd} {
		rootCmd.AddCommand(cmd)
		cmd.Flags().StringVarP(&output, "output", "o", "", `Output file, or "-" for stdout`)
	}
}
