package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/openswoop/cgpa/pkg/grade"
	"github.com/openswoop/cgpa/pkg/session"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() session.Session {
	return session.New([]session.Semester{
		{ID: 1, Subjects: []session.Subject{
			{ID: 1, Name: "Maths", Credits: grade.NewNumber(4), Grade: grade.A},
			{ID: 2, Name: "Physics", Credits: grade.NewNumber(3), Marks: grade.NewNumber(65)},
			{ID: 3, Name: "Drawing", Credits: grade.NewNumber(2), Grade: grade.FR},
		}},
		{ID: 2, Subjects: []session.Subject{
			{ID: 4, Name: "Chemistry", Credits: grade.NewNumber(3), Grade: grade.B},
			{ID: 5, Credits: grade.NewNumber(3)},
		}},
		{ID: 3, Subjects: []session.Subject{
			{ID: 6, Credits: grade.NewNumber(3)},
		}},
	})
}

func TestSummarize(t *testing.T) {
	s := Summarize(fixture())

	require.Len(t, s.Semesters, 3)
	first := s.Semesters[0]
	assert.Equal(t, "SEMESTER 01", first.Title)
	assert.InDelta(t, 57.0/7.0, first.GPA, 1e-9)
	assert.Equal(t, 7.0, first.Credits)
	assert.True(t, first.HasData)

	physics := first.Subjects[1]
	assert.Equal(t, grade.B, physics.Effective)
	require.NotNil(t, physics.GP)
	assert.Equal(t, 7.0, *physics.GP)
	assert.Equal(t, "graded", physics.Status)

	drawing := first.Subjects[2]
	assert.True(t, drawing.IsFR)
	assert.Equal(t, "withdrawn", drawing.Status)
	require.NotNil(t, drawing.GP)
	assert.Equal(t, 0.0, *drawing.GP)

	blank := s.Semesters[1].Subjects[1]
	assert.Nil(t, blank.GP)
	assert.Equal(t, "ungraded", blank.Status)

	assert.False(t, s.Semesters[2].HasData)
	assert.Len(t, s.Trend, 2)
	assert.InDelta(t, 7.8, s.Overall.CGPA, 1e-9)
	assert.InDelta(t, 73.0, s.Overall.Percent, 1e-9)
	assert.Equal(t, 10.0, s.Overall.Credits)
}

func TestSummarize_JSON(t *testing.T) {
	out, err := json.Marshal(Summarize(session.Default()))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"semesters": [{
			"id": 1, "title": "SEMESTER 01", "gpa": 0, "credits": 0, "points": 0, "hasData": false,
			"subjects": [
				{"id": 1, "name": "", "credits": 3, "grade": "", "marks": "", "isFR": false, "status": "ungraded", "effective": "", "gp": null},
				{"id": 2, "name": "", "credits": 3, "grade": "", "marks": "", "isFR": false, "status": "ungraded", "effective": "", "gp": null},
				{"id": 3, "name": "", "credits": 3, "grade": "", "marks": "", "isFR": false, "status": "ungraded", "effective": "", "gp": null}
			]
		}],
		"overall": {"cgpa": 0, "percent": 0, "totalCredits": 0},
		"trend": []
	}`, string(out))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "SEMESTER 07", Title(7))
	assert.Equal(t, "SEMESTER 012", Title(12))
}

func TestChart(t *testing.T) {
	_, ok := Chart(nil)
	assert.False(t, ok)
	_, ok = Chart([]float64{8})
	assert.False(t, ok)

	points := ChartPoints([]float64{10, 5, 0})
	assert.Equal(t, []ChartPoint{{X: 0, Y: 0}, {X: 150, Y: 40}, {X: 300, Y: 80}}, points)

	svg, ok := Chart([]float64{10, 5, 0})
	require.True(t, ok)
	assert.Contains(t, svg, `viewBox="0 0 300 80"`)
	assert.Contains(t, svg, `points="0,0 150,40 300,80"`)
	assert.Equal(t, 3, strings.Count(svg, "<circle"))
	assert.Contains(t, svg, `<circle cx="150" cy="40" r="3"`)
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, "", Sparkline([]float64{9}))
	assert.Equal(t, "▁█", Sparkline([]float64{0, 10}))
	assert.Equal(t, "█▁", Sparkline([]float64{12, -1}))
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, Summarize(fixture())))

	out := buf.String()
	assert.Contains(t, out, "SEMESTER 01")
	assert.Contains(t, out, "GPA: 8.14")
	assert.Contains(t, out, "(B)")
	assert.Contains(t, out, "CGPA: 7.80  PERCENT: 73.00%  CREDITS: 10")
	assert.Contains(t, out, "TREND: ")
}

func TestCsv_RoundTrip(t *testing.T) {
	s := fixture()
	s, err := s.UpdateSubject(1, 2, session.FieldCredits, "1.5")
	require.NoError(t, err)
	s, err = s.UpdateSubject(2, 5, session.FieldGrade, "Q")
	require.NoError(t, err)

	data, err := MarshalCsv(Summarize(s))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "semester,title,semester_gpa,subject_id,subject,credits,grade,marks,fr,effective,gp\n"))

	got, err := ReadCsv(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, s.Semesters, got.Semesters)
}

func TestCsv_EmptySemester(t *testing.T) {
	s, err := session.Default().RemoveSubject(1, 1)
	require.NoError(t, err)
	s, err = s.RemoveSubject(1, 2)
	require.NoError(t, err)
	s, err = s.RemoveSubject(1, 3)
	require.NoError(t, err)
	s = s.AddSemester()

	data, err := MarshalCsv(Summarize(s))
	require.NoError(t, err)

	got, err := ReadCsv(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, got.Semesters, 2)
	assert.Empty(t, got.Semesters[0].Subjects)
	assert.Len(t, got.Semesters[1].Subjects, 2)

	// counters come from the file, so the next subject gets a fresh id
	got = got.AddSemester()
	assert.Equal(t, 3, got.Semesters[2].ID)
	assert.Equal(t, 6, got.Semesters[2].Subjects[0].ID)
}

func TestReadCsv_Invalid(t *testing.T) {
	_, err := ReadCsv(strings.NewReader(""))
	assert.True(t, errors.Is(err, session.ErrInvalidFile))

	_, err = ReadCsv(strings.NewReader("semester,subject_id\nfirst,1\n"))
	assert.True(t, errors.Is(err, session.ErrInvalidFile))
}
