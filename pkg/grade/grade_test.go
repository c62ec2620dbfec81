package grade

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPoint(t *testing.T) {
	tests := []struct {
		name  string
		grade string
		isFR  bool
		want  Point
	}{
		{name: "A+", grade: "A+", want: Point{GP: 10, Valid: true}},
		{name: "A", grade: "A", want: Point{GP: 9, Valid: true}},
		{name: "B+", grade: "B+", want: Point{GP: 8, Valid: true}},
		{name: "B", grade: "B", want: Point{GP: 7, Valid: true}},
		{name: "C+", grade: "C+", want: Point{GP: 6, Valid: true}},
		{name: "C", grade: "C", want: Point{GP: 5, Valid: true}},
		{name: "D", grade: "D", want: Point{GP: 4, Valid: true}},
		{name: "F", grade: "F", want: Point{GP: 0, Valid: true}},
		{name: "lower case and spaces", grade: "  b+ ", want: Point{GP: 8, Valid: true}},
		{name: "FR", grade: "FR", want: Point{GP: 0, Valid: true, Excluded: true}},
		{name: "flagged withdrawn", grade: "A+", isFR: true, want: Point{GP: 0, Valid: true, Excluded: true}},
		{name: "flagged withdrawn without grade", isFR: true, want: Point{GP: 0, Valid: true, Excluded: true}},
		{name: "empty", grade: "", want: Point{}},
		{name: "unknown", grade: "E", want: Point{}},
		{name: "unknown minus", grade: "A-", want: Point{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToPoint(tt.grade, tt.isFR))
		})
	}
}

func TestFromMarks(t *testing.T) {
	tests := []struct {
		marks  Number
		want   Letter
		wantOk bool
	}{
		{marks: NewNumber(100), want: APlus, wantOk: true},
		{marks: NewNumber(91), want: APlus, wantOk: true},
		{marks: NewNumber(90.99), want: A, wantOk: true},
		{marks: NewNumber(90.5), want: A, wantOk: true},
		{marks: NewNumber(81), want: A, wantOk: true},
		{marks: NewNumber(80.5), want: BPlus, wantOk: true},
		{marks: NewNumber(71), want: BPlus, wantOk: true},
		{marks: NewNumber(70.9), want: B, wantOk: true},
		{marks: NewNumber(61), want: B, wantOk: true},
		{marks: NewNumber(60), want: CPlus, wantOk: true},
		{marks: NewNumber(51), want: CPlus, wantOk: true},
		{marks: NewNumber(50), want: C, wantOk: true},
		{marks: NewNumber(46), want: C, wantOk: true},
		{marks: NewNumber(45.5), want: D, wantOk: true},
		{marks: NewNumber(40), want: D, wantOk: true},
		{marks: NewNumber(39.99), want: F, wantOk: true},
		{marks: NewNumber(0), want: F, wantOk: true},
		{marks: NewNumber(-5), want: F, wantOk: true},
		{marks: Number{}, want: None, wantOk: false},
		{marks: ParseNumber("abc"), want: None, wantOk: false},
	}
	for _, tt := range tests {
		t.Run(tt.marks.String(), func(t *testing.T) {
			got, ok := FromMarks(tt.marks)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOk, ok)
		})
	}
}

func TestEffective(t *testing.T) {
	// an explicit grade wins even when marks say otherwise
	assert.Equal(t, C, Effective(C, NewNumber(95)))
	assert.Equal(t, APlus, Effective(None, NewNumber(95)))
	assert.Equal(t, None, Effective(None, Number{}))
	assert.Equal(t, FR, Effective(FR, NewNumber(95)))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, APlus, Normalize(" a+ "))
	assert.Equal(t, FR, Normalize("fr"))
	assert.Equal(t, None, Normalize("   "))
	assert.Equal(t, Letter("Pass"), Normalize(" Pass "))
}
