package dice

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// DefaultWeight is the weight every face starts with.
const DefaultWeight = 1.0

// FaceWeight is one row of a die's face/weight table.
type FaceWeight struct {
	Face   Face
	Weight float64
}

// Die is a weighted die with an immutable face set.
//
// Invariant: faces are unique and share one Kind; len(weights) == len(faces);
// every weight is finite and > 0.
//
// A Die is not safe for concurrent mutation. ChangeWeight must not run
// concurrently with Roll or Show on the same Die.
type Die struct {
	kind    Kind
	faces   []Face
	index   map[Face]int
	weights []float64
}

// New builds a die from an ordered sequence of faces, each weighted
// DefaultWeight.
//
// Precondition: faces is non-empty, unique, and of a single Kind; numeric
// faces are not NaN.
// Postcondition: returns a Die or an error wrapping ErrInvalidFaceSet.
func New(faces []Face) (*Die, error) {
	if len(faces) == 0 {
		return nil, fmt.Errorf("dice: New: at least one face is required: %w", ErrInvalidFaceSet)
	}
	kind := faces[0].Kind()
	if kind != KindNumeric && kind != KindText {
		return nil, fmt.Errorf("dice: New: face 0 has no kind: %w", ErrInvalidFaceSet)
	}

	d := &Die{
		kind:    kind,
		faces:   make([]Face, len(faces)),
		index:   make(map[Face]int, len(faces)),
		weights: make([]float64, len(faces)),
	}
	for i, f := range faces {
		if f.Kind() != kind {
			return nil, fmt.Errorf("dice: New: face %d (%s) is %s, want %s: %w", i, f, f.Kind(), kind, ErrInvalidFaceSet)
		}
		if v, ok := f.Float(); ok && math.IsNaN(v) {
			return nil, fmt.Errorf("dice: New: face %d is NaN: %w", i, ErrInvalidFaceSet)
		}
		if _, dup := d.index[f]; dup {
			return nil, fmt.Errorf("dice: New: duplicate face %s: %w", f, ErrInvalidFaceSet)
		}
		d.faces[i] = f
		d.index[f] = i
		d.weights[i] = DefaultWeight
	}
	return d, nil
}

// NewNumeric builds a die with numeric faces.
func NewNumeric(values ...float64) (*Die, error) {
	faces := make([]Face, len(values))
	for i, v := range values {
		faces[i] = Num(v)
	}
	return New(faces)
}

// NewText builds a die with text faces.
func NewText(labels ...string) (*Die, error) {
	faces := make([]Face, len(labels))
	for i, s := range labels {
		faces[i] = Text(s)
	}
	return New(faces)
}

// Kind returns the kind shared by every face.
func (d *Die) Kind() Kind { return d.kind }

// Len returns the number of faces.
func (d *Die) Len() int { return len(d.faces) }

// Faces returns a copy of the faces in construction order.
func (d *Die) Faces() []Face {
	out := make([]Face, len(d.faces))
	copy(out, d.faces)
	return out
}

// Has reports whether face is on the die.
func (d *Die) Has(face Face) bool {
	_, ok := d.index[face]
	return ok
}

// Weight returns the current weight of face.
//
// Postcondition: returns an error wrapping ErrUnknownFace if face is not on the die.
func (d *Die) Weight(face Face) (float64, error) {
	i, ok := d.index[face]
	if !ok {
		return 0, fmt.Errorf("dice: Weight: face %s: %w", face, ErrUnknownFace)
	}
	return d.weights[i], nil
}

// SameFaces reports whether d and o expose the identical face set. Order and
// weights are ignored.
func (d *Die) SameFaces(o *Die) bool {
	if len(d.faces) != len(o.faces) {
		return false
	}
	for _, f := range d.faces {
		if !o.Has(f) {
			return false
		}
	}
	return true
}

// ChangeWeight sets the weight of one existing face.
//
// Precondition: face is on the die; weight is finite and > 0.
// Postcondition: on error the weight table is unchanged.
func (d *Die) ChangeWeight(face Face, weight float64) error {
	i, ok := d.index[face]
	if !ok {
		return fmt.Errorf("dice: ChangeWeight: face %s: %w", face, ErrUnknownFace)
	}
	if err := checkWeight(weight); err != nil {
		return fmt.Errorf("dice: ChangeWeight: face %s: %w", face, err)
	}
	d.weights[i] = weight
	return nil
}

// Show returns the face/weight table in construction order. The result is a
// copy; mutating it does not affect the die.
func (d *Die) Show() []FaceWeight {
	out := make([]FaceWeight, len(d.faces))
	for i, f := range d.faces {
		out[i] = FaceWeight{Face: f, Weight: d.weights[i]}
	}
	return out
}

// Roll draws n faces independently, each with probability proportional to
// its weight. Weights are read once at the start of the call.
//
// Precondition: src is non-nil.
// Postcondition: len(result) == n and every element is on the die, or an
// error wrapping ErrInvalidArgument when n < 1.
func (d *Die) Roll(src Source, n int) ([]Face, error) {
	if n < 1 {
		return nil, fmt.Errorf("dice: Roll: num_rolls must be >= 1, got %d: %w", n, ErrInvalidArgument)
	}
	if src == nil {
		panic("dice: Die.Roll precondition violated: src must be non-nil")
	}

	// Scale by the largest weight so the cumulative sum cannot overflow.
	maxW := floats.Max(d.weights)
	cum := make([]float64, len(d.weights))
	for i, w := range d.weights {
		cum[i] = w / maxW
	}
	floats.CumSum(cum, cum)
	total := cum[len(cum)-1]

	out := make([]Face, n)
	for i := range out {
		out[i] = d.faces[pick(cum, total*unit(src))]
	}
	return out, nil
}

// pick returns the first index whose cumulative weight reaches target.
func pick(cum []float64, target float64) int {
	i := sort.SearchFloat64s(cum, target)
	if i >= len(cum) {
		i = len(cum) - 1
	}
	return i
}

func checkWeight(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
		return fmt.Errorf("weight %v must be a finite positive number: %w", w, ErrInvalidWeight)
	}
	return nil
}
