package grade

// Input is the raw data of one subject row as far as averaging is concerned.
type Input struct {
	Grade   Letter
	Marks   Number
	Credits Number
	IsFR    bool
}

// Resolve returns the grade point the input would contribute.
func (in Input) Resolve() Point {
	return ToPoint(string(Effective(in.Grade, in.Marks)), in.IsFR)
}

// Accumulator sums credits and credit points over counted subjects.
type Accumulator struct {
	Credits float64
	Points  float64
}

// Add folds in one subject. Subjects without a countable grade point or
// without positive credits are skipped; Add reports whether it counted.
func (a *Accumulator) Add(in Input) bool {
	p := in.Resolve()
	if !p.Counts() || !in.Credits.Positive() {
		return false
	}
	a.Credits += in.Credits.Value
	a.Points += in.Credits.Value * p.GP
	return true
}

func (a Accumulator) HasData() bool {
	return a.Credits > 0
}

// GPA is the credit-weighted average, or 0 when nothing counted.
func (a Accumulator) GPA() float64 {
	if a.Credits <= 0 {
		return 0
	}
	return a.Points / a.Credits
}

func (a Accumulator) Stats() Stats {
	return Stats{
		GPA:     a.GPA(),
		Credits: a.Credits,
		Points:  a.Points,
		HasData: a.HasData(),
	}
}

func (a Accumulator) Overall() Overall {
	cgpa := a.GPA()
	return Overall{
		CGPA:    cgpa,
		Percent: Percent(cgpa, a.HasData()),
		Credits: a.Credits,
	}
}

type Stats struct {
	GPA     float64 `json:"gpa"`
	Credits float64 `json:"credits"`
	Points  float64 `json:"points"`
	HasData bool    `json:"hasData"`
}

type Overall struct {
	CGPA    float64 `json:"cgpa"`
	Percent float64 `json:"percent"`
	Credits float64 `json:"totalCredits"`
}

// Percent converts a CGPA on the 10 point scale to a percentage with the
// fixed (cgpa - 0.5) * 10 rule. Without any counted credits it is 0.
func Percent(cgpa float64, hasCredits bool) float64 {
	if !hasCredits {
		return 0
	}
	return (cgpa - 0.5) * 10
}
