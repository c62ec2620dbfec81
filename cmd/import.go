package cmd

import (
	"os"
	"strings"

	"github.com/openswoop/cgpa/pkg/report"
	"github.com/openswoop/cgpa/pkg/scrape"
	"github.com/openswoop/cgpa/pkg/session"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var importHTML, importCSV bool

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace the session with a backup, CSV report or HTML transcript",
	Long: `Replaces every semester with the contents of FILE. By default FILE is
a JSON backup written by the export command. With --csv it is a report
written by the report command, and with --html it is a transcript page
(a local file or an http(s) URL) holding a table with the columns
Semester, Subject, Credits, Grade and Marks.

Nothing changes when the file cannot be read.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		var summary report.Summary
		var err error
		switch {
		case importHTML:
			summary, err = importTranscript(name)
		case importCSV:
			summary, err = importReport(name)
		default:
			summary, err = importBackup(name)
		}
		if errors.Is(err, session.ErrInvalidFile) {
			log.Debug("Import failed", zap.String("file", name), zap.Error(err))
			return session.ErrInvalidFile
		}
		if err != nil {
			return err
		}
		return printSummary(cmd, summary)
	},
}

func importBackup(name string) (report.Summary, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return report.Summary{}, err
	}
	return tracker.Import(data)
}

func importReport(name string) (report.Summary, error) {
	file, err := os.Open(name)
	if err != nil {
		return report.Summary{}, err
	}
	defer file.Close()

	s, err := report.ReadCsv(file)
	if err != nil {
		return report.Summary{}, err
	}
	return tracker.Replace(s), nil
}

func importTranscript(name string) (report.Summary, error) {
	var s session.Session
	var err error
	if strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://") {
		s, err = scrape.FromURL(c, name)
	} else {
		s, err = scrape.FromFile(name)
	}
	if err != nil {
		return report.Summary{}, err
	}
	return tracker.Replace(s), nil
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().BoolVar(&importHTML, "html", false, "FILE is an HTML transcript or its URL")
	importCmd.Flags().BoolVar(&importCSV, "csv", false, "FILE is a CSV report")
}
