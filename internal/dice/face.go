// Package dice provides weighted dice with numeric or text faces and the
// randomness abstraction used to roll them.
package dice

import (
	"cmp"
	"strconv"
)

// Kind tags which variant a Face holds.
type Kind uint8

const (
	// KindNumeric faces carry a float64 label.
	KindNumeric Kind = iota + 1
	// KindText faces carry a string label.
	KindText
)

// String returns "numeric", "text", or "unknown".
func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Face is one labeled outcome of a die. Faces are comparable and may be used
// as map keys.
//
// Invariant: exactly one of num/text is meaningful, selected by kind.
type Face struct {
	kind Kind
	num  float64
	text string
}

// Num returns a numeric face. -0 is stored as 0 so equal faces render alike.
func Num(v float64) Face {
	if v == 0 {
		v = 0
	}
	return Face{kind: KindNumeric, num: v}
}

// Text returns a text face.
func Text(s string) Face { return Face{kind: KindText, text: s} }

// Kind reports which variant f holds. The zero Face has no kind.
func (f Face) Kind() Kind { return f.kind }

// Float returns the numeric label and true, or 0 and false for text faces.
func (f Face) Float() (float64, bool) {
	if f.kind != KindNumeric {
		return 0, false
	}
	return f.num, true
}

// String renders the face label. Numbers use the shortest representation
// that round-trips, so Num(3) renders as "3".
func (f Face) String() string {
	switch f.kind {
	case KindNumeric:
		return strconv.FormatFloat(f.num, 'g', -1, 64)
	case KindText:
		return f.text
	default:
		return "<nil>"
	}
}

// Compare orders faces: numeric faces by value, text faces lexicographically,
// and numeric faces before text faces.
//
// Postcondition: returns -1, 0, or +1.
func (f Face) Compare(o Face) int {
	if f.kind != o.kind {
		return cmp.Compare(f.kind, o.kind)
	}
	if f.kind == KindNumeric {
		return cmp.Compare(f.num, o.num)
	}
	return cmp.Compare(f.text, o.text)
}
