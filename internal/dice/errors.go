package dice

import "errors"

// ErrInvalidFaceSet indicates a die was built from empty, duplicate, or
// mixed-kind faces.
var ErrInvalidFaceSet = errors.New("invalid face set")

// ErrUnknownFace indicates a face that is not on the die.
var ErrUnknownFace = errors.New("unknown face")

// ErrInvalidWeight indicates a weight that is not a finite positive real.
var ErrInvalidWeight = errors.New("invalid weight")

// ErrInvalidArgument indicates a non-positive roll count or another bad
// call argument.
var ErrInvalidArgument = errors.New("invalid argument")
