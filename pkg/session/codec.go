package session

import (
	"bytes"
	"encoding/json"

	"github.com/openswoop/cgpa/pkg/grade"
	"github.com/pkg/errors"
)

// ExportFileName is the name given to downloaded backups.
const ExportFileName = "neon_cgpa_backup.json"

var ErrInvalidFile = errors.New("invalid file")

type subjectJSON struct {
	ID      int          `json:"id"`
	Name    string       `json:"name"`
	Credits grade.Number `json:"credits"`
	Grade   grade.Letter `json:"grade"`
	Marks   grade.Number `json:"marks"`
	IsFR    bool         `json:"isFR"`
}

func (s Subject) MarshalJSON() ([]byte, error) {
	return json.Marshal(subjectJSON{
		ID:      s.ID,
		Name:    s.Name,
		Credits: s.Credits,
		Grade:   s.Grade,
		Marks:   s.Marks,
		IsFR:    s.IsFR(),
	})
}

func (s *Subject) UnmarshalJSON(data []byte) error {
	var v subjectJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Subject{
		ID:      v.ID,
		Name:    v.Name,
		Credits: v.Credits,
		Grade:   grade.Normalize(string(v.Grade)),
		Marks:   v.Marks,
	}
	if v.IsFR {
		s.Grade = grade.FR
	}
	return nil
}

type semesterJSON struct {
	ID       int       `json:"id"`
	Subjects []Subject `json:"subjects"`
}

func (s Semester) MarshalJSON() ([]byte, error) {
	subjects := s.Subjects
	if subjects == nil {
		subjects = []Subject{}
	}
	return json.Marshal(semesterJSON{ID: s.ID, Subjects: subjects})
}

func (s *Semester) UnmarshalJSON(data []byte) error {
	var v semesterJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Semester{ID: v.ID, Subjects: v.Subjects}
	return nil
}

func (s Session) MarshalJSON() ([]byte, error) {
	semesters := s.Semesters
	if semesters == nil {
		semesters = []Semester{}
	}
	return json.Marshal(semesters)
}

func (s *Session) UnmarshalJSON(data []byte) error {
	var semesters []Semester
	if err := json.Unmarshal(data, &semesters); err != nil {
		return err
	}
	*s = New(semesters)
	return nil
}

// Encode serializes the session as an indented JSON array of semesters.
func Encode(s Session) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Decode parses a serialized session. Anything that does not parse as a list
// of semesters, a bare null included, is reported as ErrInvalidFile.
func Decode(data []byte) (Session, error) {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return Session{}, errors.Wrap(ErrInvalidFile, "null session")
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, errors.Wrap(ErrInvalidFile, err.Error())
	}
	return s, nil
}
