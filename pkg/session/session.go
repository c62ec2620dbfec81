package session

import (
	"strconv"
	"strings"

	"github.com/openswoop/cgpa/pkg/grade"
	"github.com/pkg/errors"
)

const defaultCredits = 3

var (
	ErrSemesterNotFound = errors.New("semester not found")
	ErrSubjectNotFound  = errors.New("subject not found")
	ErrUnknownField     = errors.New("unknown subject field")
	ErrInvalidValue     = errors.New("invalid value")
)

// Status is the grading state of a subject.
type Status int

const (
	Ungraded Status = iota
	Graded
	Withdrawn
)

func (s Status) String() string {
	switch s {
	case Graded:
		return "graded"
	case Withdrawn:
		return "withdrawn"
	default:
		return "ungraded"
	}
}

// Subject is one row of a semester. A withdrawn (FR) subject is stored as the
// FR grade; the isFR flag of the file format is derived from it.
type Subject struct {
	ID      int
	Name    string
	Credits grade.Number
	Grade   grade.Letter
	Marks   grade.Number
}

func (s Subject) IsFR() bool {
	return s.Grade == grade.FR
}

func (s Subject) Status() Status {
	switch {
	case s.IsFR():
		return Withdrawn
	case s.Point().Valid:
		return Graded
	default:
		return Ungraded
	}
}

// Effective is the grade used for averaging, falling back to marks.
func (s Subject) Effective() grade.Letter {
	return grade.Effective(s.Grade, s.Marks)
}

func (s Subject) Point() grade.Point {
	return s.Input().Resolve()
}

func (s Subject) Input() grade.Input {
	return grade.Input{
		Grade:   s.Grade,
		Marks:   s.Marks,
		Credits: s.Credits,
		IsFR:    s.IsFR(),
	}
}

type Semester struct {
	ID       int
	Subjects []Subject
}

func (s Semester) Stats() grade.Stats {
	var acc grade.Accumulator
	for _, sub := range s.Subjects {
		acc.Add(sub.Input())
	}
	return acc.Stats()
}

func (s Semester) subject(id int) (int, bool) {
	for i, sub := range s.Subjects {
		if sub.ID == id {
			return i, true
		}
	}
	return 0, false
}

// Session is the ordered list of semesters being tracked. Values are treated
// as immutable: every mutation returns a new Session.
type Session struct {
	Semesters []Semester

	nextSemesterID int
	nextSubjectID  int
}

// New builds a session around existing semesters, deriving the ID counters
// from the largest IDs present.
func New(semesters []Semester) Session {
	s := Session{Semesters: semesters, nextSemesterID: 1, nextSubjectID: 1}
	for _, sem := range semesters {
		if sem.ID >= s.nextSemesterID {
			s.nextSemesterID = sem.ID + 1
		}
		for _, sub := range sem.Subjects {
			if sub.ID >= s.nextSubjectID {
				s.nextSubjectID = sub.ID + 1
			}
		}
	}
	return s
}

// Default is the session a new user starts with: one semester holding three
// blank subjects.
func Default() Session {
	s := New(nil)
	s, _ = s.appendSemester(3)
	return s
}

func (s Session) IsEmpty() bool {
	return len(s.Semesters) == 0
}

// Overall aggregates every subject of every semester in a single pass.
func (s Session) Overall() grade.Overall {
	var acc grade.Accumulator
	for _, sem := range s.Semesters {
		for _, sub := range sem.Subjects {
			acc.Add(sub.Input())
		}
	}
	return acc.Overall()
}

func (s Session) Semester(id int) (Semester, bool) {
	i, ok := s.semester(id)
	if !ok {
		return Semester{}, false
	}
	return s.Semesters[i], true
}

func (s Session) semester(id int) (int, bool) {
	for i, sem := range s.Semesters {
		if sem.ID == id {
			return i, true
		}
	}
	return 0, false
}

func (s Session) clone() Session {
	c := s
	c.Semesters = make([]Semester, len(s.Semesters))
	for i, sem := range s.Semesters {
		subjects := make([]Subject, len(sem.Subjects))
		copy(subjects, sem.Subjects)
		c.Semesters[i] = Semester{ID: sem.ID, Subjects: subjects}
	}
	return c
}

func (s *Session) blankSubject() Subject {
	sub := Subject{ID: s.nextSubjectID, Credits: grade.NewNumber(defaultCredits)}
	s.nextSubjectID++
	return sub
}

func (s Session) appendSemester(subjects int) (Session, Semester) {
	c := s.clone()
	sem := Semester{ID: c.nextSemesterID, Subjects: make([]Subject, 0, subjects)}
	c.nextSemesterID++
	for i := 0; i < subjects; i++ {
		sem.Subjects = append(sem.Subjects, c.blankSubject())
	}
	c.Semesters = append(c.Semesters, sem)
	return c, sem
}

// AddSemester appends a semester with two blank subjects.
func (s Session) AddSemester() Session {
	c, _ := s.appendSemester(2)
	return c
}

func (s Session) RemoveSemester(id int) (Session, error) {
	i, ok := s.semester(id)
	if !ok {
		return s, errors.Wrapf(ErrSemesterNotFound, "semester %d", id)
	}
	c := s.clone()
	c.Semesters = append(c.Semesters[:i], c.Semesters[i+1:]...)
	return c, nil
}

// AddSubject appends a blank subject worth the default credits.
func (s Session) AddSubject(semesterID int) (Session, error) {
	i, ok := s.semester(semesterID)
	if !ok {
		return s, errors.Wrapf(ErrSemesterNotFound, "semester %d", semesterID)
	}
	c := s.clone()
	c.Semesters[i].Subjects = append(c.Semesters[i].Subjects, c.blankSubject())
	return c, nil
}

func (s Session) RemoveSubject(semesterID, subjectID int) (Session, error) {
	i, ok := s.semester(semesterID)
	if !ok {
		return s, errors.Wrapf(ErrSemesterNotFound, "semester %d", semesterID)
	}
	j, ok := s.Semesters[i].subject(subjectID)
	if !ok {
		return s, errors.Wrapf(ErrSubjectNotFound, "subject %d in semester %d", subjectID, semesterID)
	}
	c := s.clone()
	subjects := c.Semesters[i].Subjects
	c.Semesters[i].Subjects = append(subjects[:j], subjects[j+1:]...)
	return c, nil
}

// Field names an editable column of a subject row.
type Field string

const (
	FieldName    Field = "name"
	FieldCredits Field = "credits"
	FieldGrade   Field = "grade"
	FieldMarks   Field = "marks"
	FieldFR      Field = "isFR"
)

var Fields = []Field{FieldName, FieldCredits, FieldGrade, FieldMarks, FieldFR}

func ParseField(s string) (Field, error) {
	for _, f := range Fields {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	// "fr" is accepted as a short alias for isFR
	if strings.EqualFold(s, "fr") {
		return FieldFR, nil
	}
	return "", errors.Wrapf(ErrUnknownField, "%q", s)
}

// UpdateSubject sets one field of a subject from its text form. Picking the FR
// grade marks the subject withdrawn and ticking isFR sets the FR grade.
// Unticking isFR changes nothing: a withdrawn subject only counts again once
// another grade is picked.
func (s Session) UpdateSubject(semesterID, subjectID int, field Field, value string) (Session, error) {
	i, ok := s.semester(semesterID)
	if !ok {
		return s, errors.Wrapf(ErrSemesterNotFound, "semester %d", semesterID)
	}
	j, ok := s.Semesters[i].subject(subjectID)
	if !ok {
		return s, errors.Wrapf(ErrSubjectNotFound, "subject %d in semester %d", subjectID, semesterID)
	}

	sub := s.Semesters[i].Subjects[j]
	switch field {
	case FieldName:
		sub.Name = value
	case FieldCredits:
		sub.Credits = grade.ParseNumber(value)
	case FieldMarks:
		sub.Marks = grade.ParseNumber(value)
	case FieldGrade:
		sub.Grade = grade.Normalize(value)
	case FieldFR:
		fr, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return s, errors.Wrapf(ErrInvalidValue, "isFR %q", value)
		}
		if fr {
			sub.Grade = grade.FR
		}
	default:
		return s, errors.Wrapf(ErrUnknownField, "%q", field)
	}

	c := s.clone()
	c.Semesters[i].Subjects[j] = sub
	return c, nil
}
