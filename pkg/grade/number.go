package grade

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a numeric form value that may be left empty, like the credits
// or marks column of a subject row.
type Number struct {
	Value float64
	Valid bool
}

func NewNumber(f float64) Number {
	return Number{Value: f, Valid: true}
}

// ParseNumber reads user input leniently. Blank or non-numeric text yields an
// empty Number rather than an error.
func ParseNumber(s string) Number {
	s = strings.TrimSpace(s)
	if s == "" {
		return Number{}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Number{}
	}
	return NewNumber(f)
}

func (n Number) String() string {
	if !n.Valid {
		return ""
	}
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

// Positive reports whether the number is set and strictly greater than zero.
func (n Number) Positive() bool {
	return n.Valid && n.Value > 0
}

// MarshalJSON writes empty numbers as "" so exported files keep the shape of
// the browser version's backups.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte(`""`), nil
	}
	return []byte(n.String()), nil
}

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = Number{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = ParseNumber(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = NewNumber(f)
	return nil
}
