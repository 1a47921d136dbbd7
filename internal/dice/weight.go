package dice

import (
	"fmt"

	"github.com/spf13/cast"
)

// ParseWeight coerces a loosely typed weight, such as a decoded YAML scalar
// or a numeric string, into a float64.
//
// Postcondition: returns a finite positive float64, or an error wrapping
// ErrInvalidWeight.
func ParseWeight(v any) (float64, error) {
	switch v.(type) {
	case nil, bool:
		return 0, fmt.Errorf("dice: ParseWeight: %T is not numeric: %w", v, ErrInvalidWeight)
	}
	w, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, fmt.Errorf("dice: ParseWeight: %v: %w", err, ErrInvalidWeight)
	}
	if err := checkWeight(w); err != nil {
		return 0, fmt.Errorf("dice: ParseWeight: %w", err)
	}
	return w, nil
}
