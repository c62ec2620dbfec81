package report

import (
	"bytes"
	"io"
	"os"
	"strconv"

	"github.com/gocarina/gocsv"
	"github.com/openswoop/cgpa/pkg/grade"
	"github.com/openswoop/cgpa/pkg/session"
	"github.com/pkg/errors"
)

// CsvFileName is the default name of the exported report.
const CsvFileName = "cgpa_report.csv"

// CsvRow is one subject of the report. A semester without subjects is
// written as a single row with a zero subject id so that it survives a
// round trip.
type CsvRow struct {
	Semester    int    `csv:"semester"`
	Title       string `csv:"title"`
	SemesterGPA string `csv:"semester_gpa"`
	SubjectID   int    `csv:"subject_id"`
	Subject     string `csv:"subject"`
	Credits     string `csv:"credits"`
	Grade       string `csv:"grade"`
	Marks       string `csv:"marks"`
	FR          bool   `csv:"fr"`
	Effective   string `csv:"effective"`
	GP          string `csv:"gp"`
}

func CsvRows(s Summary) []CsvRow {
	var rows []CsvRow
	for _, card := range s.Semesters {
		gpa := strconv.FormatFloat(card.GPA, 'f', 2, 64)
		if len(card.Subjects) == 0 {
			rows = append(rows, CsvRow{Semester: card.ID, Title: card.Title, SemesterGPA: gpa})
			continue
		}
		for _, sub := range card.Subjects {
			row := CsvRow{
				Semester:    card.ID,
				Title:       card.Title,
				SemesterGPA: gpa,
				SubjectID:   sub.ID,
				Subject:     sub.Name,
				Credits:     sub.Credits.String(),
				Grade:       string(sub.Grade),
				Marks:       sub.Marks.String(),
				FR:          sub.IsFR,
				Effective:   string(sub.Effective),
			}
			if sub.GP != nil {
				row.GP = formatFloat(*sub.GP)
			}
			rows = append(rows, row)
		}
	}
	return rows
}

func MarshalCsv(s Summary) ([]byte, error) {
	var buf bytes.Buffer
	if err := gocsv.Marshal(CsvRows(s), &buf); err != nil {
		return nil, errors.Wrap(err, "encoding csv")
	}
	return buf.Bytes(), nil
}

func WriteCsv(in interface{}, fileName string) error {
	file, err := os.Create(fileName)
	if err != nil {
		return err
	}
	if err := gocsv.Marshal(in, file); err != nil {
		_ = file.Close()
		return errors.Wrap(err, "encoding csv")
	}
	return file.Close()
}

// ReadCsv rebuilds a session from a report written by MarshalCsv. Semesters
// keep the order in which they first appear.
func ReadCsv(r io.Reader) (session.Session, error) {
	var rows []CsvRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return session.Session{}, errors.Wrap(session.ErrInvalidFile, err.Error())
	}
	if len(rows) == 0 {
		return session.Session{}, errors.Wrap(session.ErrInvalidFile, "no rows")
	}

	var semesters []session.Semester
	index := make(map[int]int)
	for _, row := range rows {
		i, ok := index[row.Semester]
		if !ok {
			i = len(semesters)
			index[row.Semester] = i
			semesters = append(semesters, session.Semester{ID: row.Semester, Subjects: []session.Subject{}})
		}
		if row.SubjectID == 0 {
			continue
		}
		sub := session.Subject{
			ID:      row.SubjectID,
			Name:    row.Subject,
			Credits: grade.ParseNumber(row.Credits),
			Grade:   grade.Normalize(row.Grade),
			Marks:   grade.ParseNumber(row.Marks),
		}
		if row.FR {
			sub.Grade = grade.FR
		}
		semesters[i].Subjects = append(semesters[i].Subjects, sub)
	}
	return session.New(semesters), nil
}
