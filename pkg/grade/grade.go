package grade

import "strings"

// Letter is a letter grade as entered for a subject. The zero value means no
// grade has been picked yet.
type Letter string

const (
	None  Letter = ""
	APlus Letter = "A+"
	A     Letter = "A"
	BPlus Letter = "B+"
	B     Letter = "B"
	CPlus Letter = "C+"
	C     Letter = "C"
	D     Letter = "D"
	F     Letter = "F"
	FR    Letter = "FR"
)

// Letters lists the selectable grades in display order.
var Letters = []Letter{None, APlus, A, BPlus, B, CPlus, C, D, F, FR}

var points = map[Letter]float64{
	APlus: 10,
	A:     9,
	BPlus: 8,
	B:     7,
	CPlus: 6,
	C:     5,
	D:     4,
	F:     0,
}

// Normalize trims s and upper-cases it when the result is a known grade.
// Unknown text is kept as typed (trimmed) so that it survives a round trip.
func Normalize(s string) Letter {
	s = strings.TrimSpace(s)
	l := Letter(strings.ToUpper(s))
	if _, ok := points[l]; ok || l == FR {
		return l
	}
	return Letter(s)
}

// Point is the grade point resolved for a subject. When Valid is false the
// subject has no usable grade yet.
type Point struct {
	GP       float64
	Valid    bool
	Excluded bool
}

// ToPoint converts a grade into its grade point. Withdrawn subjects resolve
// to an excluded zero no matter what grade they carry.
func ToPoint(grade string, isFR bool) Point {
	l := Normalize(grade)
	if isFR || l == FR {
		return Point{GP: 0, Valid: true, Excluded: true}
	}
	if l == None {
		return Point{}
	}
	gp, ok := points[l]
	if !ok {
		return Point{}
	}
	return Point{GP: gp, Valid: true}
}

// Counts reports whether the point takes part in an average.
func (p Point) Counts() bool {
	return p.Valid && !p.Excluded
}

// FromMarks maps numeric marks to a letter grade using inclusive lower bounds.
func FromMarks(marks Number) (Letter, bool) {
	if !marks.Valid {
		return None, false
	}
	m := marks.Value
	switch {
	case m >= 91:
		return APlus, true
	case m >= 81:
		return A, true
	case m >= 71:
		return BPlus, true
	case m >= 61:
		return B, true
	case m >= 51:
		return CPlus, true
	case m >= 46:
		return C, true
	case m >= 40:
		return D, true
	default:
		return F, true
	}
}

// Effective resolves the grade used for a subject: the explicit grade when one
// is set, otherwise the grade derived from marks. An explicit grade always
// wins over marks.
func Effective(explicit Letter, marks Number) Letter {
	if strings.TrimSpace(string(explicit)) != "" {
		return explicit
	}
	l, _ := FromMarks(marks)
	return l
}
