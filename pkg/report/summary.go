package report

import (
	"fmt"

	"github.com/openswoop/cgpa/pkg/grade"
	"github.com/openswoop/cgpa/pkg/session"
)

// SubjectRow is one subject as displayed, with its resolved grade point. GP
// is nil when the subject has no usable grade.
type SubjectRow struct {
	ID        int          `json:"id"`
	Name      string       `json:"name"`
	Credits   grade.Number `json:"credits"`
	Grade     grade.Letter `json:"grade"`
	Marks     grade.Number `json:"marks"`
	IsFR      bool         `json:"isFR"`
	Status    string       `json:"status"`
	Effective grade.Letter `json:"effective"`
	GP        *float64     `json:"gp"`
}

type SemesterCard struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	grade.Stats
	Subjects []SubjectRow `json:"subjects"`
}

// Summary is everything a surface needs to render the session.
type Summary struct {
	Semesters []SemesterCard `json:"semesters"`
	Overall   grade.Overall  `json:"overall"`
	Trend     []float64      `json:"trend"`
}

func Title(semesterID int) string {
	return fmt.Sprintf("SEMESTER 0%d", semesterID)
}

func Summarize(s session.Session) Summary {
	summary := Summary{
		Semesters: make([]SemesterCard, 0, len(s.Semesters)),
		Overall:   s.Overall(),
		Trend:     []float64{},
	}
	for _, sem := range s.Semesters {
		card := SemesterCard{
			ID:       sem.ID,
			Title:    Title(sem.ID),
			Stats:    sem.Stats(),
			Subjects: make([]SubjectRow, 0, len(sem.Subjects)),
		}
		for _, sub := range sem.Subjects {
			card.Subjects = append(card.Subjects, toRow(sub))
		}
		if card.HasData {
			summary.Trend = append(summary.Trend, card.GPA)
		}
		summary.Semesters = append(summary.Semesters, card)
	}
	return summary
}

func toRow(sub session.Subject) SubjectRow {
	row := SubjectRow{
		ID:        sub.ID,
		Name:      sub.Name,
		Credits:   sub.Credits,
		Grade:     sub.Grade,
		Marks:     sub.Marks,
		IsFR:      sub.IsFR(),
		Status:    sub.Status().String(),
		Effective: sub.Effective(),
	}
	if p := sub.Point(); p.Valid {
		gp := p.GP
		row.GP = &gp
	}
	return row
}
